// Package ledger holds the double-entry output model: postings, entries,
// the balanced-entry builder and the beancount text codec.
package ledger

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/haugli/kontobean/pkg/models"
)

// DefaultFlag marks an entry as cleared.
const DefaultFlag = "*"

// Posting is one account/amount line of a double-entry transaction.
type Posting struct {
	Account  string
	Amount   decimal.Decimal
	Currency string
}

// Entry is a complete double-entry transaction record.
type Entry struct {
	Date      time.Time
	Flag      string
	Payee     string
	Narration string
	Postings  []Posting
}

// NewEntry builds the balanced double entry for one raw transaction: the
// primary account posting with the native signed amount first, then the
// category posting with its negation. The two always sum to exactly zero.
// A zero amount still produces an entry; a missing date or currency does not.
func NewEntry(txn models.Transaction, primaryAccount, categoryAccount, flag string) (Entry, error) {
	if err := txn.Validate(); err != nil {
		return Entry{}, err
	}
	if flag == "" {
		flag = DefaultFlag
	}

	return Entry{
		Date:      txn.Date,
		Flag:      flag,
		Payee:     txn.Payee,
		Narration: txn.Narration,
		Postings: []Posting{
			{Account: primaryAccount, Amount: txn.Amount, Currency: txn.Currency},
			{Account: categoryAccount, Amount: txn.Amount.Neg(), Currency: txn.Currency},
		},
	}, nil
}

// Balanced reports whether the entry's postings sum to zero per currency.
func (e Entry) Balanced() bool {
	sums := make(map[string]decimal.Decimal)
	for _, p := range e.Postings {
		sums[p.Currency] = sums[p.Currency].Add(p.Amount)
	}
	for _, sum := range sums {
		if !sum.IsZero() {
			return false
		}
	}
	return true
}
