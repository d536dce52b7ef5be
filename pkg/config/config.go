// Package config loads the declarative importer configuration: which
// sources exist, how their files parse, and how their transactions
// categorize.
package config

import (
	"bytes"
	"fmt"
	"os"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// Config is the full configuration file.
type Config struct {
	// Output is the directory ledger files are written to. Empty means
	// stdout.
	Output string `yaml:"output"`

	Importers []ImporterSpec `yaml:"importers"`
}

// ImporterSpec configures one source: its file format, account metadata and
// categorization rules. It is declarative data; pkg/importer turns it into
// a running importer and rejects anything malformed.
type ImporterSpec struct {
	Name     string `yaml:"name"`
	Format   string `yaml:"format"`
	Account  string `yaml:"account"`
	Currency string `yaml:"currency"`

	// Flag overrides the cleared marker on emitted entries.
	Flag string `yaml:"flag"`

	PrimaryAccountNumber string `yaml:"primary_account_number"`
	SkipBalanceForward   bool   `yaml:"skip_balance_forward"`

	Patterns             []PatternSpec         `yaml:"patterns"`
	CounterpartyAccounts []CounterpartyMapping `yaml:"counterparty_accounts"`

	// DefaultAccount is the single fallback for card-style sources. The
	// split pair below is for deposit-style sources that pick the fallback
	// by amount sign. Exactly one of the two styles must be configured.
	DefaultAccount        string `yaml:"default_account"`
	DefaultExpenseAccount string `yaml:"default_expense_account"`
	DefaultIncomeAccount  string `yaml:"default_income_account"`
}

// PatternSpec is one categorization rule as written in YAML. Either match
// (narration substring, or regex with regex: true) or counterparty is set.
type PatternSpec struct {
	Match        string `yaml:"match"`
	Regex        bool   `yaml:"regex"`
	IgnoreCase   bool   `yaml:"ignorecase"`
	Counterparty string `yaml:"counterparty"`
	Account      string `yaml:"account"`
}

// CounterpartyMapping maps a known bank account number to a ledger account.
// Mappings keep their file order; they become ordinary counterparty
// patterns appended after the explicit pattern list.
type CounterpartyMapping struct {
	Number  string `yaml:"number"`
	Account string `yaml:"account"`
}

// Build resolves and loads the configuration. The explicit path wins;
// otherwise viper looks for kontobean.yaml in the working directory, with
// KONTOBEAN_* environment variables and bound flags overriding scalar
// settings.
func Build(cfgFile string, flags *pflag.FlagSet) (*Config, error) {
	v := viper.New()
	v.SetEnvPrefix("KONTOBEAN")
	v.AutomaticEnv()
	if flags != nil {
		if err := v.BindPFlags(flags); err != nil {
			return nil, fmt.Errorf("error binding flags: %w", err)
		}
	}

	if cfgFile == "" {
		cfgFile = v.GetString("config")
	}
	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		v.SetConfigName("kontobean")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
	}
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("error reading config: %w", err)
	}

	cfg, err := Load(v.ConfigFileUsed())
	if err != nil {
		return nil, err
	}

	if out := v.GetString("output"); out != "" {
		cfg.Output = out
	}
	return cfg, nil
}

// Load reads one configuration file with a strict decode, so a typoed key
// fails loudly instead of silently configuring nothing.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("error reading config file: %w", err)
	}

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	var cfg Config
	if err := dec.Decode(&cfg); err != nil {
		return nil, fmt.Errorf("error parsing %s: %w", path, err)
	}

	if len(cfg.Importers) == 0 {
		return nil, fmt.Errorf("%s configures no importers", path)
	}
	return &cfg, nil
}
