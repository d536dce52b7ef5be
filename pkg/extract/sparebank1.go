package extract

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/haugli/kontobean/pkg/models"
)

// SpareBank1 parses the semicolon-separated deposit-account export:
//
//	Dato;Beskrivelse;Rentedato;Inn på konto;Ut fra konto;Til konto;Fra konto
//
// Exactly one of the in/out columns is populated per row; outgoing amounts
// become negative native amounts. The counterparty account number comes from
// "Til konto" for outgoing rows and "Fra konto" for incoming ones.
type SpareBank1 struct{}

func (s *SpareBank1) Format() Format {
	return SpareBank1CSV
}

func (s *SpareBank1) Extract(data []byte) ([]models.Transaction, []RowError, error) {
	reader := csv.NewReader(bytes.NewReader(data))
	reader.Comma = ';'
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, nil, fmt.Errorf("empty file")
		}
		return nil, nil, fmt.Errorf("error reading header: %w", err)
	}
	if len(header) < 5 || !strings.EqualFold(strings.TrimSpace(header[0]), "dato") {
		return nil, nil, fmt.Errorf("not a SpareBank 1 export: header %v", header)
	}

	var transactions []models.Transaction
	var rowErrs []RowError

	row := 1
	for {
		row++
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			rowErrs = append(rowErrs, RowError{Row: row, Err: err})
			continue
		}

		txn, err := s.convertRow(record)
		if err != nil {
			rowErrs = append(rowErrs, RowError{Row: row, Err: err})
			continue
		}
		transactions = append(transactions, txn)
	}

	return transactions, rowErrs, nil
}

func (s *SpareBank1) convertRow(record []string) (models.Transaction, error) {
	if len(record) < 5 {
		return models.Transaction{}, fmt.Errorf("expected at least 5 columns, got %d", len(record))
	}

	date, err := time.Parse("02.01.2006", strings.TrimSpace(record[0]))
	if err != nil {
		return models.Transaction{}, fmt.Errorf("bad date %q: %w", record[0], err)
	}

	narration := strings.TrimSpace(record[1])

	in := strings.TrimSpace(record[3])
	out := strings.TrimSpace(record[4])

	txn := models.Transaction{
		Date:      date,
		Narration: narration,
	}

	switch {
	case out != "":
		amount, err := parseAmount(out)
		if err != nil {
			return models.Transaction{}, err
		}
		txn.Amount = amount.Abs().Neg()
		if len(record) > 5 {
			txn.CounterpartyAccount = strings.TrimSpace(record[5])
		}
	case in != "":
		amount, err := parseAmount(in)
		if err != nil {
			return models.Transaction{}, err
		}
		txn.Amount = amount.Abs()
		if len(record) > 6 {
			txn.CounterpartyAccount = strings.TrimSpace(record[6])
		}
	default:
		return models.Transaction{}, fmt.Errorf("row has neither an in nor an out amount")
	}

	return txn, nil
}
