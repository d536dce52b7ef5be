package models

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// Transaction is a single record from a bank export, exactly as the file
// adapter delivered it. Amount keeps the bank's native sign convention:
// negative for money leaving the account, positive for money coming in.
type Transaction struct {
	Date      time.Time
	Narration string
	Payee     string
	Amount    decimal.Decimal
	Currency  string

	// CounterpartyAccount is the bank account number on the other side of a
	// transfer, when the export carries one. Empty otherwise.
	CounterpartyAccount string
}

// Validate reports whether the transaction carries the fields every ledger
// entry needs. A zero amount is valid; a zero date is not.
func (t Transaction) Validate() error {
	if t.Date.IsZero() {
		return fmt.Errorf("transaction %q: missing date", t.Narration)
	}
	if t.Currency == "" {
		return fmt.Errorf("transaction %q: missing currency", t.Narration)
	}
	return nil
}
