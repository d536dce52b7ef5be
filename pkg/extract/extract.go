// Package extract holds the per-bank file-format adapters. Each adapter
// turns the raw bytes of one export file into transactions; categorization
// happens later and is none of an adapter's business.
package extract

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/haugli/kontobean/pkg/models"
)

// Format identifies a supported bank export format.
type Format string

const (
	SpareBank1CSV    Format = "sparebank1-csv"
	DNBMastercardXLS Format = "dnb-xls"
	AmexOFX          Format = "amex-ofx"
)

// Extractor converts one export file into raw transactions. A non-nil error
// means the file as a whole is unusable; rows that fail individually come
// back as RowErrors so the rest of the file still imports.
type Extractor interface {
	Format() Format
	Extract(data []byte) ([]models.Transaction, []RowError, error)
}

// RowError describes one source row that could not be converted.
type RowError struct {
	Row int
	Err error
}

func (e RowError) Error() string {
	return fmt.Sprintf("row %d: %v", e.Row, e.Err)
}

func (e RowError) Unwrap() error {
	return e.Err
}

// New returns the extractor for a format.
func New(format Format, opts Options) (Extractor, error) {
	switch format {
	case SpareBank1CSV:
		return &SpareBank1{}, nil
	case DNBMastercardXLS:
		return &DNBMastercard{SkipBalanceForward: opts.SkipBalanceForward}, nil
	case AmexOFX:
		return &Amex{}, nil
	default:
		return nil, fmt.Errorf("unknown format %q", format)
	}
}

// Options carries the adapter knobs an importer configuration can set.
type Options struct {
	SkipBalanceForward bool
}

// parseAmount reads a Norwegian-formatted amount: comma decimal separator,
// optional dot or space thousand separators.
func parseAmount(s string) (decimal.Decimal, error) {
	s = strings.TrimSpace(s)
	s = strings.ReplaceAll(s, " ", "")
	s = strings.ReplaceAll(s, " ", "")
	s = strings.ReplaceAll(s, ".", "")
	s = strings.ReplaceAll(s, ",", ".")
	if s == "" {
		return decimal.Decimal{}, fmt.Errorf("empty amount")
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Decimal{}, fmt.Errorf("bad amount %q: %w", s, err)
	}
	return d, nil
}
