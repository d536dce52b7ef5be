package rules

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/haugli/kontobean/pkg/models"
)

// RuleSet is an ordered, compiled sequence of patterns for one source.
// Earlier patterns take priority over later ones. A RuleSet is immutable
// after construction and safe for concurrent use.
type RuleSet struct {
	patterns []compiled
}

type compiled struct {
	Pattern
	re     *regexp.Regexp // set for regex kind
	folded string         // lowercased value, set for case-insensitive substring
}

// NewRuleSet validates and compiles patterns. A malformed pattern, such as
// a bad regular expression or an account name outside the grammar, fails
// here, never at match time.
func NewRuleSet(patterns []Pattern) (*RuleSet, error) {
	rs := &RuleSet{patterns: make([]compiled, 0, len(patterns))}

	for i, p := range patterns {
		if err := p.validate(); err != nil {
			return nil, fmt.Errorf("pattern %d: %w", i, err)
		}

		c := compiled{Pattern: p}
		switch p.Kind {
		case MatchNarrationRegex:
			source := p.Value
			if p.IgnoreCase {
				source = "(?i)" + source
			}
			re, err := regexp.Compile(source)
			if err != nil {
				return nil, fmt.Errorf("pattern %d: invalid regex %q: %w", i, p.Value, err)
			}
			c.re = re
		case MatchNarrationSubstring:
			if p.IgnoreCase {
				c.folded = strings.ToLower(p.Value)
			}
		}
		rs.patterns = append(rs.patterns, c)
	}

	return rs, nil
}

// Len returns the number of patterns in the set.
func (rs *RuleSet) Len() int {
	return len(rs.patterns)
}

// Resolve returns the target account of the first pattern the transaction
// matches, in insertion order. It is a pure function of its inputs.
func (rs *RuleSet) Resolve(txn models.Transaction) (string, bool) {
	for _, c := range rs.patterns {
		if c.matches(txn) {
			return c.Account, true
		}
	}
	return "", false
}

// ResolveOrDefault resolves through the rule set, falling back to the
// sign-appropriate default account when nothing matches.
func (rs *RuleSet) ResolveOrDefault(txn models.Transaction, defaults Defaults) string {
	if account, ok := rs.Resolve(txn); ok {
		return account
	}
	return defaults.ForAmount(txn.Amount)
}

func (c compiled) matches(txn models.Transaction) bool {
	switch c.Kind {
	case MatchNarrationSubstring:
		if c.IgnoreCase {
			return strings.Contains(strings.ToLower(txn.Narration), c.folded)
		}
		return strings.Contains(txn.Narration, c.Value)
	case MatchNarrationRegex:
		return c.re.MatchString(txn.Narration)
	case MatchCounterpartyAccount:
		return txn.CounterpartyAccount != "" && txn.CounterpartyAccount == c.Value
	}
	return false
}

// Defaults selects the fallback account for unmatched transactions.
// Deposit-style sources split the fallback by amount sign; card-style
// sources use the same account for both.
type Defaults struct {
	Expense string // native amount < 0
	Income  string // native amount >= 0
}

// SingleDefault uses one account regardless of sign.
func SingleDefault(account string) Defaults {
	return Defaults{Expense: account, Income: account}
}

// ForAmount picks the default for a native signed amount.
func (d Defaults) ForAmount(amount decimal.Decimal) string {
	if amount.IsNegative() {
		return d.Expense
	}
	return d.Income
}
