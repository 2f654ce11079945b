package config

import (
	"fmt"
	"os"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"

	"github.com/ledgerseed-dev/ledgerseed/internal/currency"
	"github.com/ledgerseed-dev/ledgerseed/internal/lunchmoney"
	"github.com/ledgerseed-dev/ledgerseed/internal/model"
)

// Config represents the top-level seed.yaml configuration. Money fields
// are YAML strings so they parse as exact decimals. The API key never
// lives here; it comes from the environment or a flag.
type Config struct {
	API        APIConfig        `yaml:"api"`
	Generation GenerationConfig `yaml:"generation"`
	Accounts   []AccountConfig  `yaml:"accounts"`
}

// APIConfig points at the ledger API.
type APIConfig struct {
	BaseURL string `yaml:"base_url"`
}

// GenerationConfig controls the shape of a run.
type GenerationConfig struct {
	Months       int    `yaml:"months"`
	Items        int    `yaml:"items"`
	BaseCurrency string `yaml:"base_currency"`
}

// AccountConfig describes one demo account to seed.
type AccountConfig struct {
	Type       string `yaml:"type"`
	Balance    string `yaml:"balance"`
	Rate       string `yaml:"rate,omitempty"`        // annual percent, liability types only
	TermMonths int    `yaml:"term_months,omitempty"` // liability types only
	Currency   string `yaml:"currency,omitempty"`
}

// Load reads a seed.yaml file from disk.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	return &cfg, nil
}

// Save writes a Config to a YAML file.
func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	return nil
}

// Default returns the starter configuration written by `ledgerseed init`:
// the four stock demo accounts, three months of history, the full
// template catalog.
func Default() *Config {
	return &Config{
		API: APIConfig{BaseURL: lunchmoney.DefaultBaseURL},
		Generation: GenerationConfig{
			Months:       3,
			Items:        10,
			BaseCurrency: currency.Default,
		},
		Accounts: []AccountConfig{
			{Type: "checking", Balance: "5000.00"},
			{Type: "savings", Balance: "15000.00"},
			{Type: "credit", Balance: "-850.00", Rate: "16"},
			{Type: "investment", Balance: "25000.00"},
		},
	}
}

// ValidationError describes a single rejected config field.
type ValidationError struct {
	Field       string
	Description string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Description)
}

// Validate checks every rule that can be checked offline. A run must
// not touch the network while any of these fail.
func (c *Config) Validate() []ValidationError {
	var errs []ValidationError

	if c.Generation.Months < 1 {
		errs = append(errs, ValidationError{Field: "generation.months", Description: "must be positive"})
	}
	if c.Generation.Items < 0 {
		errs = append(errs, ValidationError{Field: "generation.items", Description: "must not be negative"})
	}
	if !currency.Known(c.Generation.BaseCurrency) {
		errs = append(errs, ValidationError{
			Field:       "generation.base_currency",
			Description: fmt.Sprintf("unknown currency %q", c.Generation.BaseCurrency),
		})
	}

	for i, acct := range c.Accounts {
		field := fmt.Sprintf("accounts[%d]", i)

		accountType, err := model.ParseAccountType(acct.Type)
		if err != nil {
			errs = append(errs, ValidationError{Field: field + ".type", Description: err.Error()})
			continue
		}

		if _, err := decimal.NewFromString(acct.Balance); err != nil {
			errs = append(errs, ValidationError{
				Field:       field + ".balance",
				Description: fmt.Sprintf("not a decimal: %q", acct.Balance),
			})
		}

		if acct.Rate != "" {
			if _, err := decimal.NewFromString(acct.Rate); err != nil {
				errs = append(errs, ValidationError{
					Field:       field + ".rate",
					Description: fmt.Sprintf("not a decimal: %q", acct.Rate),
				})
			}
		}

		if !accountType.Liability() {
			if acct.Rate != "" {
				errs = append(errs, ValidationError{Field: field + ".rate", Description: "only meaningful for credit/loan/mortgage accounts"})
			}
			if acct.TermMonths != 0 {
				errs = append(errs, ValidationError{Field: field + ".term_months", Description: "only meaningful for credit/loan/mortgage accounts"})
			}
		}
		if acct.TermMonths < 0 {
			errs = append(errs, ValidationError{Field: field + ".term_months", Description: "must not be negative"})
		}
		if acct.Currency != "" && !currency.Known(acct.Currency) {
			errs = append(errs, ValidationError{
				Field:       field + ".currency",
				Description: fmt.Sprintf("unknown currency %q", acct.Currency),
			})
		}
	}

	return errs
}

// Specs converts the account configs into typed specs. Call Validate
// first; Specs fails on the first malformed field.
func (c *Config) Specs() ([]model.AccountSpec, error) {
	specs := make([]model.AccountSpec, 0, len(c.Accounts))
	for i, acct := range c.Accounts {
		accountType, err := model.ParseAccountType(acct.Type)
		if err != nil {
			return nil, fmt.Errorf("accounts[%d]: %w", i, err)
		}

		balance, err := decimal.NewFromString(acct.Balance)
		if err != nil {
			return nil, fmt.Errorf("accounts[%d]: parsing balance: %w", i, err)
		}

		rate := decimal.Zero
		if acct.Rate != "" {
			rate, err = decimal.NewFromString(acct.Rate)
			if err != nil {
				return nil, fmt.Errorf("accounts[%d]: parsing rate: %w", i, err)
			}
		}

		code := acct.Currency
		if code == "" {
			code = c.Generation.BaseCurrency
		}

		specs = append(specs, model.AccountSpec{
			Type:       accountType,
			Balance:    balance,
			Rate:       rate,
			TermMonths: acct.TermMonths,
			Currency:   currency.Normalize(code),
		})
	}
	return specs, nil
}
