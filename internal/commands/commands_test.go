package commands

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ledgerseed-dev/ledgerseed/internal/config"
	"github.com/ledgerseed-dev/ledgerseed/internal/export"
	"github.com/ledgerseed-dev/ledgerseed/internal/generator"
	"github.com/ledgerseed-dev/ledgerseed/internal/runlog"
)

func TestInit_WritesConfig(t *testing.T) {
	dir := t.TempDir()
	cmd := &cobra.Command{}
	cmd.SetOut(&bytes.Buffer{})

	require.NoError(t, runInit(cmd, dir, false))

	cfg, err := config.Load(filepath.Join(dir, "seed.yaml"))
	require.NoError(t, err)
	assert.Empty(t, cfg.Validate())
	assert.Equal(t, 3, cfg.Generation.Months)

	// Refuses to clobber without --force.
	err = runInit(cmd, dir, false)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already exists")

	require.NoError(t, runInit(cmd, dir, true))
}

func TestLoadConfig_RejectsInvalid(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "seed.yaml")
	cfg := config.Default()
	cfg.Generation.Months = 0
	require.NoError(t, config.Save(path, cfg))

	_, _, err := loadConfig(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "generation.months")
}

func TestPreview_Output(t *testing.T) {
	cfg := config.Default()
	specs, err := cfg.Specs()
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, runPreview(&buf, cfg, specs))
	out := buf.String()

	assert.Contains(t, out, "Salary Deposit: $3250.00 on day 1")
	assert.Contains(t, out, "Rent Payment: -$1450.00 on day 3")
	assert.Contains(t, out, "Credit Card Payment")
	assert.Contains(t, out, "Total transactions: 33 (11/month over 3 months)")
}

func TestDryRun_ExportsCSVAndLogsRun(t *testing.T) {
	dir := t.TempDir()
	outPath := filepath.Join(dir, "transactions.csv")
	logPath := filepath.Join(dir, "seed-runs.csv")

	cfg := config.Default()
	specs, err := cfg.Specs()
	require.NoError(t, err)

	params := generator.Params{
		Months:       cfg.Generation.Months,
		Items:        cfg.Generation.Items,
		BaseCurrency: cfg.Generation.BaseCurrency,
		Accounts:     specs,
		Now:          time.Date(2025, 7, 14, 0, 0, 0, 0, time.UTC),
	}

	var buf bytes.Buffer
	require.NoError(t, runDryRun(&buf, params, outPath, logPath))
	assert.Contains(t, buf.String(), "33 transactions")

	f, err := os.Open(outPath)
	require.NoError(t, err)
	defer f.Close()
	txns, err := export.ReadTransactions(f)
	require.NoError(t, err)
	assert.Len(t, txns, 33)

	entries, err := runlog.Read(logPath)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "dry-run", entries[0].Outcome)
	assert.Equal(t, 33, entries[0].Generated)
}
