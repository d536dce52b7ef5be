// Package rules implements the ordered, first-match-wins categorization
// rules that assign a chart-of-accounts category to a raw transaction.
package rules

import (
	"fmt"

	"github.com/haugli/kontobean/pkg/ledger"
)

// MatchKind selects which transaction field a pattern matches and how.
type MatchKind string

const (
	// MatchNarrationSubstring matches when the value occurs as a contiguous
	// substring of the narration.
	MatchNarrationSubstring MatchKind = "narration_substring"
	// MatchNarrationRegex matches when the value, compiled as a regular
	// expression, finds a match anywhere in the narration.
	MatchNarrationRegex MatchKind = "narration_regex"
	// MatchCounterpartyAccount matches when the transaction's counterparty
	// account number is present and exactly equals the value.
	MatchCounterpartyAccount MatchKind = "counterparty_account"
)

// Pattern is one categorization rule: a single condition against one
// transaction field, and the account a match resolves to. Patterns are
// plain data; they are compiled and validated by NewRuleSet.
type Pattern struct {
	Kind    MatchKind
	Value   string
	Account string

	// IgnoreCase folds case for the narration kinds. It has no effect on
	// counterparty matching, which is always exact.
	IgnoreCase bool
}

func (p Pattern) validate() error {
	switch p.Kind {
	case MatchNarrationSubstring, MatchNarrationRegex, MatchCounterpartyAccount:
	default:
		return fmt.Errorf("unknown match kind %q", p.Kind)
	}
	if p.Value == "" {
		return fmt.Errorf("pattern for %s has an empty match value", p.Account)
	}
	if err := ledger.ValidateAccount(p.Account); err != nil {
		return err
	}
	return nil
}

// Substring builds a narration-substring pattern.
func Substring(value, account string) Pattern {
	return Pattern{Kind: MatchNarrationSubstring, Value: value, Account: account}
}

// Regex builds a narration-regex pattern.
func Regex(value, account string) Pattern {
	return Pattern{Kind: MatchNarrationRegex, Value: value, Account: account}
}

// Counterparty builds a counterparty-account pattern.
func Counterparty(number, account string) Pattern {
	return Pattern{Kind: MatchCounterpartyAccount, Value: number, Account: account}
}
