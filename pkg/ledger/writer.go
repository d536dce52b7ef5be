package ledger

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// Write renders entries as beancount text: a header line per entry, then
// the postings indented two spaces, a blank line between entries. Amounts
// are written as exact decimal text followed by the currency code.
func Write(w io.Writer, entries []Entry) error {
	bw := bufio.NewWriter(w)

	for i, entry := range entries {
		if i > 0 {
			if _, err := bw.WriteString("\n"); err != nil {
				return fmt.Errorf("error writing entry separator: %w", err)
			}
		}

		header := entry.Date.Format("2006-01-02") + " " + entry.Flag
		if entry.Payee != "" {
			header += " " + quote(entry.Payee)
		}
		header += " " + quote(entry.Narration)
		if _, err := bw.WriteString(header + "\n"); err != nil {
			return fmt.Errorf("error writing entry header: %w", err)
		}

		for _, p := range entry.Postings {
			line := fmt.Sprintf("  %s  %s %s\n", p.Account, p.Amount.String(), p.Currency)
			if _, err := bw.WriteString(line); err != nil {
				return fmt.Errorf("error writing posting: %w", err)
			}
		}
	}

	return bw.Flush()
}

func quote(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, `"`, `\"`)
	return `"` + s + `"`
}
