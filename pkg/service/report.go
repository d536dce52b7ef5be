package service

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/haugli/kontobean/pkg/importer"
)

// Summary accumulates per-file outcomes for one run.
type Summary struct {
	Files []FileResult
}

// FileResult is the outcome for a single input file.
type FileResult struct {
	File     string
	Importer string
	Imported int
	Failures []importer.RecordError
	Skipped  bool
	Err      error
}

// Failed reports whether any file ended in a hard error.
func (s *Summary) Failed() bool {
	for _, f := range s.Files {
		if f.Err != nil {
			return true
		}
	}
	return false
}

var (
	okStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("10")) // green
	skippedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))  // gray
	failStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))  // red
)

// Render formats the run summary for the terminal, one line per file with
// failed records listed underneath.
func (s *Summary) Render() string {
	var b strings.Builder

	imported, failed := 0, 0
	for _, f := range s.Files {
		switch {
		case f.Err != nil:
			b.WriteString(failStyle.Render(fmt.Sprintf("✗ %s: %v", f.File, f.Err)) + "\n")
		case f.Skipped:
			b.WriteString(skippedStyle.Render(fmt.Sprintf("- %s: skipped", f.File)) + "\n")
		default:
			line := fmt.Sprintf("✓ %s (%s): %d entries", f.File, f.Importer, f.Imported)
			if len(f.Failures) > 0 {
				line += fmt.Sprintf(", %d failed", len(f.Failures))
			}
			b.WriteString(okStyle.Render(line) + "\n")
			for _, rec := range f.Failures {
				b.WriteString(failStyle.Render("    "+rec.Error()) + "\n")
			}
		}
		imported += f.Imported
		failed += len(f.Failures)
	}

	b.WriteString(fmt.Sprintf("\nImported %d entries, %d records failed\n", imported, failed))
	return b.String()
}
