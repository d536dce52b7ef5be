package importer

import (
	"fmt"

	"github.com/haugli/kontobean/pkg/ledger"
)

// Result is the outcome of importing one file: the entries that built and
// the records that failed, side by side. A failure never hides a sibling's
// success.
type Result struct {
	Importer string
	Entries  []ledger.Entry
	Failures []RecordError
}

// RecordError describes one source record that did not become an entry.
type RecordError struct {
	// Row is the 1-based source row, when the adapter knows it.
	Row int
	// Narration identifies records that parsed but failed to build.
	Narration string
	Err       error
}

func (e RecordError) Error() string {
	switch {
	case e.Row > 0:
		return fmt.Sprintf("row %d: %v", e.Row, e.Err)
	case e.Narration != "":
		return fmt.Sprintf("%q: %v", e.Narration, e.Err)
	default:
		return e.Err.Error()
	}
}

func (e RecordError) Unwrap() error {
	return e.Err
}
