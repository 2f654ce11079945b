package commands

import (
	"fmt"
	"io"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/ledgerseed-dev/ledgerseed/internal/config"
	"github.com/ledgerseed-dev/ledgerseed/internal/currency"
	"github.com/ledgerseed-dev/ledgerseed/internal/generator"
	"github.com/ledgerseed-dev/ledgerseed/internal/model"
)

func newPreviewCommand(flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "preview",
		Short: "Show what a seed run would create, without touching the API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, specs, err := loadConfig(flags.configPath)
			if err != nil {
				return err
			}
			return runPreview(cmd.OutOrStdout(), cfg, specs)
		},
	}
}

// loadConfig reads and validates the seed configuration, returning the
// typed account specs alongside it.
func loadConfig(path string) (*config.Config, []model.AccountSpec, error) {
	cfg, err := config.Load(path)
	if err != nil {
		return nil, nil, err
	}
	if errs := cfg.Validate(); len(errs) > 0 {
		msgs := make([]string, len(errs))
		for i, e := range errs {
			msgs[i] = e.Error()
		}
		return nil, nil, fmt.Errorf("invalid config: %s", strings.Join(msgs, "; "))
	}
	specs, err := cfg.Specs()
	if err != nil {
		return nil, nil, err
	}
	return cfg, specs, nil
}

func runPreview(out io.Writer, cfg *config.Config, specs []model.AccountSpec) error {
	base := currency.Normalize(cfg.Generation.BaseCurrency)
	items := generator.BaseItems()
	if cfg.Generation.Items < len(items) {
		items = items[:cfg.Generation.Items]
	}

	totalIncome := decimal.Zero
	totalExpenses := decimal.Zero

	fmt.Fprintln(out, "Income:")
	for _, item := range items {
		if item.Amount.IsPositive() {
			totalIncome = totalIncome.Add(item.Amount)
			fmt.Fprintf(out, "  %s: %s on day %d\n", item.Notes, currency.Format(item.Amount, base), item.Day)
		}
	}

	fmt.Fprintln(out, "Expenses:")
	for _, item := range items {
		if item.Amount.IsNegative() {
			totalExpenses = totalExpenses.Add(item.Amount.Abs())
			fmt.Fprintf(out, "  %s: %s on day %d\n", item.Notes, currency.Format(item.Amount, base), item.Day)
		}
	}

	payments, err := generator.PreviewPayments(specs)
	if err != nil {
		return err
	}
	if len(payments) > 0 {
		fmt.Fprintln(out, "Automatic payments:")
		for _, p := range payments {
			code := p.Currency
			if code == "" {
				code = base
			}
			fmt.Fprintf(out, "  %s: %s/month on day %d\n", p.Payee, currency.Format(p.Amount, code), p.Day)
		}
	}

	international := generator.InternationalSelection(specs, base, cfg.Generation.Items)
	if len(international) > 0 {
		fmt.Fprintln(out, "International items:")
		for _, item := range international {
			fmt.Fprintf(out, "  %s: %s on day %d\n", item.Notes, currency.Format(item.Amount, item.Currency), item.Day)
		}
	}

	perMonth := generator.PerMonthCount(generator.Params{
		Months:       cfg.Generation.Months,
		Items:        cfg.Generation.Items,
		BaseCurrency: base,
		Accounts:     specs,
	})

	fmt.Fprintf(out, "Per month: +%s income, -%s expenses\n",
		currency.Format(totalIncome, base), currency.Format(totalExpenses, base))
	fmt.Fprintf(out, "Net per month: %s\n", currency.Format(totalIncome.Sub(totalExpenses), base))
	fmt.Fprintf(out, "Total transactions: %d (%d/month over %d months)\n",
		perMonth*cfg.Generation.Months, perMonth, cfg.Generation.Months)
	return nil
}
