package extract

import (
	"bytes"
	"fmt"
	"strings"
	"time"

	"github.com/extrame/xls"

	"github.com/haugli/kontobean/pkg/models"
)

// balanceForwardMarker is the carried-balance row DNB prepends to each
// statement period.
const balanceForwardMarker = "OVERFØRT FRA FORRIGE FAKTURA"

// DNBMastercard parses the DNB Mastercard XLS statement. Rows are
// date / description / amount; purchases carry negative native amounts,
// refunds positive. With SkipBalanceForward set, the carried-balance row is
// dropped before it ever reaches categorization.
type DNBMastercard struct {
	SkipBalanceForward bool
}

func (d *DNBMastercard) Format() Format {
	return DNBMastercardXLS
}

func (d *DNBMastercard) Extract(data []byte) ([]models.Transaction, []RowError, error) {
	workbook, err := xls.OpenReader(bytes.NewReader(data), "cp1252")
	if err != nil {
		return nil, nil, fmt.Errorf("error opening workbook: %w", err)
	}

	rows := workbook.ReadAllCells(2000)
	if len(rows) == 0 {
		return nil, nil, fmt.Errorf("no data found in sheet")
	}

	return d.convertRows(rows)
}

// convertRows walks the sheet rows. Everything before the header row (first
// cell "Dato") is statement boilerplate; everything after is transaction
// data, and a data row that fails to parse is reported, not fatal.
func (d *DNBMastercard) convertRows(rows [][]string) ([]models.Transaction, []RowError, error) {
	var transactions []models.Transaction
	var rowErrs []RowError
	foundHeader := false

	for i, row := range rows {
		if len(row) < 3 {
			continue
		}

		first := strings.TrimSpace(row[0])
		if !foundHeader {
			if strings.EqualFold(first, "dato") {
				foundHeader = true
			}
			continue
		}

		if first == "" {
			continue
		}

		narration := strings.TrimSpace(row[1])
		if d.SkipBalanceForward && strings.EqualFold(narration, balanceForwardMarker) {
			continue
		}

		date, err := time.Parse("02.01.2006", first)
		if err != nil {
			rowErrs = append(rowErrs, RowError{Row: i + 1, Err: fmt.Errorf("bad date %q: %w", first, err)})
			continue
		}

		amount, err := parseAmount(row[2])
		if err != nil {
			rowErrs = append(rowErrs, RowError{Row: i + 1, Err: err})
			continue
		}

		transactions = append(transactions, models.Transaction{
			Date:      date,
			Narration: narration,
			Amount:    amount,
		})
	}

	if !foundHeader {
		return nil, nil, fmt.Errorf("not a DNB Mastercard statement: no header row")
	}

	return transactions, rowErrs, nil
}
