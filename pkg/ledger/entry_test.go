package ledger

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/haugli/kontobean/pkg/models"
)

func sampleTxn(t *testing.T, amount string) models.Transaction {
	t.Helper()
	return models.Transaction{
		Date:      time.Date(2025, 1, 15, 0, 0, 0, 0, time.UTC),
		Narration: "KIWI MAT OSLO",
		Amount:    decimal.RequireFromString(amount),
		Currency:  "NOK",
	}
}

func TestNewEntryBuildsBalancedPair(t *testing.T) {
	entry, err := NewEntry(sampleTxn(t, "-250.50"), "Assets:Bank:SpareBank1:Checking", "Expenses:Groceries", "")
	require.NoError(t, err)

	require.Len(t, entry.Postings, 2)

	primary := entry.Postings[0]
	assert.Equal(t, "Assets:Bank:SpareBank1:Checking", primary.Account)
	assert.True(t, primary.Amount.Equal(decimal.RequireFromString("-250.50")))
	assert.Equal(t, "NOK", primary.Currency)

	category := entry.Postings[1]
	assert.Equal(t, "Expenses:Groceries", category.Account)
	assert.True(t, category.Amount.Equal(decimal.RequireFromString("250.50")))
	assert.Equal(t, "NOK", category.Currency)

	assert.True(t, primary.Amount.Add(category.Amount).IsZero())
	assert.True(t, entry.Balanced())
}

func TestNewEntryCopiesSourceFields(t *testing.T) {
	txn := sampleTxn(t, "-99.00")
	txn.Payee = "Kiwi"

	entry, err := NewEntry(txn, "Assets:Bank:SpareBank1:Checking", "Expenses:Groceries", "")
	require.NoError(t, err)

	assert.Equal(t, txn.Date, entry.Date)
	assert.Equal(t, "KIWI MAT OSLO", entry.Narration)
	assert.Equal(t, "Kiwi", entry.Payee)
}

func TestNewEntryFlag(t *testing.T) {
	entry, err := NewEntry(sampleTxn(t, "-1"), "Assets:Bank:SpareBank1:Checking", "Expenses:Groceries", "")
	require.NoError(t, err)
	assert.Equal(t, "*", entry.Flag)

	entry, err = NewEntry(sampleTxn(t, "-1"), "Assets:Bank:SpareBank1:Checking", "Expenses:Groceries", "!")
	require.NoError(t, err)
	assert.Equal(t, "!", entry.Flag)
}

func TestNewEntryZeroAmountIsValid(t *testing.T) {
	entry, err := NewEntry(sampleTxn(t, "0"), "Assets:Bank:SpareBank1:Checking", "Expenses:Groceries", "")
	require.NoError(t, err)
	assert.True(t, entry.Balanced())
	assert.True(t, entry.Postings[0].Amount.IsZero())
}

func TestNewEntryRejectsMissingFields(t *testing.T) {
	noDate := sampleTxn(t, "-1")
	noDate.Date = time.Time{}
	_, err := NewEntry(noDate, "Assets:Bank:SpareBank1:Checking", "Expenses:Groceries", "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "missing date")

	noCurrency := sampleTxn(t, "-1")
	noCurrency.Currency = ""
	_, err = NewEntry(noCurrency, "Assets:Bank:SpareBank1:Checking", "Expenses:Groceries", "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "missing currency")
}

func TestValidateAccount(t *testing.T) {
	valid := []string{
		"Assets:Bank:SpareBank1:Checking",
		"Liabilities:CreditCard:DNB",
		"Income:TaxRefund",
		"Expenses:Subscriptions:Music",
		"Equity:Opening-Balances",
	}
	for _, account := range valid {
		assert.NoError(t, ValidateAccount(account), account)
	}

	invalid := []string{
		"",
		"Expenses",
		"expenses:Groceries",
		"Spending:Groceries",
		"Expenses:groceries",
		"Expenses::Groceries",
		"Expenses:",
	}
	for _, account := range invalid {
		assert.Error(t, ValidateAccount(account), account)
	}
}
