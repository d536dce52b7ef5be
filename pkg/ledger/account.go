package ledger

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"
)

// Roots are the five account types a chart of accounts hangs off.
var Roots = []string{"Assets", "Liabilities", "Income", "Expenses", "Equity"}

// ValidateAccount checks a full account name against the beancount account
// grammar: a known root, at least one further component, components
// colon-separated and starting with an uppercase letter.
func ValidateAccount(name string) error {
	if name == "" {
		return fmt.Errorf("account name is empty")
	}

	parts := strings.Split(name, ":")
	if len(parts) < 2 {
		return fmt.Errorf("account %q: need a root and at least one component", name)
	}

	root := parts[0]
	validRoot := false
	for _, r := range Roots {
		if root == r {
			validRoot = true
			break
		}
	}
	if !validRoot {
		return fmt.Errorf("account %q: root must be one of %s", name, strings.Join(Roots, ", "))
	}

	for _, part := range parts[1:] {
		if part == "" {
			return fmt.Errorf("account %q: empty component", name)
		}
		first, _ := utf8.DecodeRuneInString(part)
		if !unicode.IsUpper(first) {
			return fmt.Errorf("account %q: component %q must start with an uppercase letter", name, part)
		}
	}

	return nil
}
