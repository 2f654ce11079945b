package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ledgerseed-dev/ledgerseed/internal/model"
)

func TestLoadSaveRoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "seed.yaml")

	cfg := Default()
	cfg.Generation.Months = 6
	require.NoError(t, Save(path, cfg))

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 6, loaded.Generation.Months)
	assert.Equal(t, "usd", loaded.Generation.BaseCurrency)
	assert.Len(t, loaded.Accounts, 4)
	assert.Equal(t, "-850.00", loaded.Accounts[2].Balance)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestLoad_ParsesAccountFields(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "seed.yaml")
	data := `
api:
  base_url: https://dev.lunchmoney.app/v1
generation:
  months: 4
  items: 9
  base_currency: usd
accounts:
  - type: mortgage
    balance: "-250000.00"
    rate: "6"
    term_months: 360
  - type: savings
    balance: "120000"
    currency: jpy
`
	require.NoError(t, os.WriteFile(path, []byte(data), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Empty(t, cfg.Validate())

	specs, err := cfg.Specs()
	require.NoError(t, err)
	require.Len(t, specs, 2)

	assert.Equal(t, model.AccountMortgage, specs[0].Type)
	assert.True(t, specs[0].Balance.IsNegative())
	assert.Equal(t, 360, specs[0].TermMonths)
	assert.Equal(t, "usd", specs[0].Currency) // blank falls back to base
	assert.Equal(t, "jpy", specs[1].Currency)
}

func TestValidate_Default(t *testing.T) {
	assert.Empty(t, Default().Validate())
}

func TestValidate_RejectsBadFields(t *testing.T) {
	cfg := Default()
	cfg.Generation.Months = 0
	cfg.Generation.Items = -1
	cfg.Generation.BaseCurrency = "xyz"
	cfg.Accounts = append(cfg.Accounts,
		AccountConfig{Type: "chequing", Balance: "10"},
		AccountConfig{Type: "checking", Balance: "lots"},
		AccountConfig{Type: "savings", Balance: "10", Rate: "5"},
		AccountConfig{Type: "loan", Balance: "-10", TermMonths: -2},
	)

	errs := cfg.Validate()
	fields := make([]string, 0, len(errs))
	for _, e := range errs {
		fields = append(fields, e.Field)
	}
	assert.Contains(t, fields, "generation.months")
	assert.Contains(t, fields, "generation.items")
	assert.Contains(t, fields, "generation.base_currency")
	assert.Contains(t, fields, "accounts[4].type")
	assert.Contains(t, fields, "accounts[5].balance")
	assert.Contains(t, fields, "accounts[6].rate")
	assert.Contains(t, fields, "accounts[7].term_months")
}

func TestValidationError_Error(t *testing.T) {
	e := ValidationError{Field: "generation.months", Description: "must be positive"}
	assert.Equal(t, "generation.months: must be positive", e.Error())
}
