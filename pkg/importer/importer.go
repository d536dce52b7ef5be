// Package importer binds a file-format adapter, account metadata and a
// compiled rule set into one runnable importer per configured source.
package importer

import (
	"fmt"

	"github.com/charmbracelet/log"

	"github.com/haugli/kontobean/pkg/config"
	"github.com/haugli/kontobean/pkg/extract"
	"github.com/haugli/kontobean/pkg/ledger"
	"github.com/haugli/kontobean/pkg/models"
	"github.com/haugli/kontobean/pkg/rules"
)

// Importer processes export files for one configured source. It is
// immutable after construction and safe to share across concurrent file
// imports.
type Importer struct {
	name          string
	account       string
	accountNumber string
	currency      string
	flag          string
	extractor     extract.Extractor
	ruleSet       *rules.RuleSet
	defaults      rules.Defaults
	logger        *log.Logger
}

// New validates a source configuration and builds its importer. Every
// configuration problem (unknown format, malformed account name, bad regex,
// inconsistent defaults) surfaces here, before any file is touched.
func New(spec config.ImporterSpec, logger *log.Logger) (*Importer, error) {
	if spec.Name == "" {
		return nil, fmt.Errorf("importer has no name")
	}
	wrap := func(err error) error {
		return fmt.Errorf("importer %s: %w", spec.Name, err)
	}

	if err := ledger.ValidateAccount(spec.Account); err != nil {
		return nil, wrap(err)
	}
	if spec.Currency == "" {
		return nil, wrap(fmt.Errorf("no currency configured"))
	}

	defaults, err := buildDefaults(spec)
	if err != nil {
		return nil, wrap(err)
	}

	extractor, err := extract.New(extract.Format(spec.Format), extract.Options{
		SkipBalanceForward: spec.SkipBalanceForward,
	})
	if err != nil {
		return nil, wrap(err)
	}

	ruleSet, err := rules.NewRuleSet(buildPatterns(spec))
	if err != nil {
		return nil, wrap(err)
	}

	return &Importer{
		name:          spec.Name,
		account:       spec.Account,
		accountNumber: spec.PrimaryAccountNumber,
		currency:      spec.Currency,
		flag:          spec.Flag,
		extractor:     extractor,
		ruleSet:       ruleSet,
		defaults:      defaults,
		logger:        logger.With("importer", spec.Name),
	}, nil
}

// FromConfig builds every configured importer, failing fast on the first
// bad one.
func FromConfig(cfg *config.Config, logger *log.Logger) ([]*Importer, error) {
	importers := make([]*Importer, 0, len(cfg.Importers))
	for _, spec := range cfg.Importers {
		imp, err := New(spec, logger)
		if err != nil {
			return nil, err
		}
		importers = append(importers, imp)
	}
	return importers, nil
}

func buildDefaults(spec config.ImporterSpec) (rules.Defaults, error) {
	split := spec.DefaultExpenseAccount != "" || spec.DefaultIncomeAccount != ""
	switch {
	case spec.DefaultAccount != "" && split:
		return rules.Defaults{}, fmt.Errorf("configure either default_account or the expense/income pair, not both")
	case spec.DefaultAccount != "":
		if err := ledger.ValidateAccount(spec.DefaultAccount); err != nil {
			return rules.Defaults{}, err
		}
		return rules.SingleDefault(spec.DefaultAccount), nil
	case spec.DefaultExpenseAccount != "" && spec.DefaultIncomeAccount != "":
		if err := ledger.ValidateAccount(spec.DefaultExpenseAccount); err != nil {
			return rules.Defaults{}, err
		}
		if err := ledger.ValidateAccount(spec.DefaultIncomeAccount); err != nil {
			return rules.Defaults{}, err
		}
		return rules.Defaults{
			Expense: spec.DefaultExpenseAccount,
			Income:  spec.DefaultIncomeAccount,
		}, nil
	default:
		return rules.Defaults{}, fmt.Errorf("no default account configured")
	}
}

// buildPatterns flattens the declarative configuration into the ordered
// pattern list: explicit patterns first, then the counterparty account
// mappings in file order.
func buildPatterns(spec config.ImporterSpec) []rules.Pattern {
	patterns := make([]rules.Pattern, 0, len(spec.Patterns)+len(spec.CounterpartyAccounts))

	for _, p := range spec.Patterns {
		switch {
		case p.Counterparty != "":
			patterns = append(patterns, rules.Counterparty(p.Counterparty, p.Account))
		case p.Regex:
			pattern := rules.Regex(p.Match, p.Account)
			pattern.IgnoreCase = p.IgnoreCase
			patterns = append(patterns, pattern)
		default:
			pattern := rules.Substring(p.Match, p.Account)
			pattern.IgnoreCase = p.IgnoreCase
			patterns = append(patterns, pattern)
		}
	}

	for _, m := range spec.CounterpartyAccounts {
		patterns = append(patterns, rules.Counterparty(m.Number, m.Account))
	}

	return patterns
}

// Name returns the configured importer name.
func (i *Importer) Name() string {
	return i.name
}

// Account returns the primary ledger account.
func (i *Importer) Account() string {
	return i.account
}

// AccountNumber returns the bank account number this importer covers.
// Empty for card sources.
func (i *Importer) AccountNumber() string {
	return i.accountNumber
}

// Format returns the file format this importer consumes.
func (i *Importer) Format() extract.Format {
	return i.extractor.Format()
}

// RuleCount returns the number of compiled categorization patterns.
func (i *Importer) RuleCount() int {
	return i.ruleSet.Len()
}

// Extract runs the file-format adapter only, without categorization. The
// inspect command uses this to debug adapters.
func (i *Importer) Extract(data []byte) ([]models.Transaction, []extract.RowError, error) {
	return i.extractor.Extract(data)
}

// Import converts one export file into ledger entries. Records that fail
// individually land in the result's failure list; their siblings still
// import.
func (i *Importer) Import(data []byte) (*Result, error) {
	transactions, rowErrs, err := i.extractor.Extract(data)
	if err != nil {
		return nil, fmt.Errorf("importer %s: %w", i.name, err)
	}

	result := &Result{Importer: i.name}
	for _, re := range rowErrs {
		result.Failures = append(result.Failures, RecordError{Row: re.Row, Err: re.Err})
	}

	for _, txn := range transactions {
		if txn.Currency == "" {
			txn.Currency = i.currency
		}

		account := i.ruleSet.ResolveOrDefault(txn, i.defaults)
		entry, err := ledger.NewEntry(txn, i.account, account, i.flag)
		if err != nil {
			i.logger.Warn("skipping record", "narration", txn.Narration, "error", err)
			result.Failures = append(result.Failures, RecordError{Narration: txn.Narration, Err: err})
			continue
		}
		result.Entries = append(result.Entries, entry)
	}

	i.logger.Debug("imported file",
		"entries", len(result.Entries),
		"failures", len(result.Failures))

	return result, nil
}
