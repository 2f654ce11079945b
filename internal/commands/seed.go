package commands

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/ledgerseed-dev/ledgerseed/internal/export"
	"github.com/ledgerseed-dev/ledgerseed/internal/generator"
	"github.com/ledgerseed-dev/ledgerseed/internal/logging"
	"github.com/ledgerseed-dev/ledgerseed/internal/lunchmoney"
	"github.com/ledgerseed-dev/ledgerseed/internal/registry"
	"github.com/ledgerseed-dev/ledgerseed/internal/runlog"
	"github.com/ledgerseed-dev/ledgerseed/internal/seeder"
)

func newSeedCommand(flags *rootFlags) *cobra.Command {
	var (
		confirm    bool
		dryRun     bool
		outPath    string
		runLogPath string
	)

	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Create demo accounts, categories, and transactions",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, specs, err := loadConfig(flags.configPath)
			if err != nil {
				return err
			}

			params := generator.Params{
				Months:       cfg.Generation.Months,
				Items:        cfg.Generation.Items,
				BaseCurrency: cfg.Generation.BaseCurrency,
				Accounts:     specs,
			}

			if dryRun {
				return runDryRun(cmd.OutOrStdout(), params, outPath, runLogPath)
			}

			if !confirm {
				return fmt.Errorf("seeding writes to the target account; re-run with --confirm (or --dry-run)")
			}

			key, err := flags.key()
			if err != nil {
				return err
			}

			log := logging.New(flags.logLevel)
			client := lunchmoney.NewClient(key,
				lunchmoney.WithBaseURL(cfg.API.BaseURL),
				lunchmoney.WithLogger(log),
			)
			obs := &consoleObserver{out: cmd.OutOrStdout()}
			s := seeder.New(client, obs, log)

			result, runErr := s.Run(cmd.Context(), params)
			appendRunLog(runLogPath, result, runErr)

			printSummary(cmd.OutOrStdout(), result, runErr)
			return runErr
		},
	}

	cmd.Flags().BoolVar(&confirm, "confirm", false, "confirm the target is a test account")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "generate only; write transactions to CSV instead of the API")
	cmd.Flags().StringVar(&outPath, "out", "transactions.csv", "CSV output path for --dry-run")
	cmd.Flags().StringVar(&runLogPath, "run-log", "seed-runs.csv", "path of the local run history")

	return cmd
}

// runDryRun generates against synthetic registries and writes the
// result to CSV. Identifiers in the output are placeholders, assigned
// in catalog order.
func runDryRun(out io.Writer, params generator.Params, outPath, runLogPath string) error {
	categories := registry.NewCategories()
	for i, spec := range generator.NeededCategories() {
		categories.Add(spec.Name, int64(i+1))
	}

	accounts := registry.NewAccounts()
	accounts.SetPrimary(1)
	nextID := int64(1)
	for _, spec := range params.Accounts {
		if !accounts.Registered(spec.Currency) {
			nextID++
			accounts.Register(spec.Currency, nextID)
		}
	}

	log := logging.New("warn")
	txns, err := generator.New(categories, accounts, log).Generate(params)
	if err != nil {
		return err
	}

	f, err := os.Create(outPath)
	if err != nil {
		return fmt.Errorf("creating output file: %w", err)
	}
	defer f.Close()

	if err := export.WriteTransactions(f, txns); err != nil {
		return fmt.Errorf("exporting transactions: %w", err)
	}

	entry := runlog.Entry{
		Timestamp: time.Now(),
		RunID:     uuid.NewString(),
		Months:    params.Months,
		Items:     params.Items,
		Generated: len(txns),
		Outcome:   "dry-run",
	}
	if err := runlog.Append(runLogPath, []runlog.Entry{entry}); err != nil {
		fmt.Fprintf(os.Stderr, "warning: failed to write run log: %v\n", err)
	}

	fmt.Fprintf(out, "Dry run: wrote %d transactions to %s\n", len(txns), outPath)
	return nil
}

func appendRunLog(path string, result *seeder.Result, runErr error) {
	outcome := "ok"
	if runErr != nil {
		outcome = "error: " + runErr.Error()
	}
	entry := runlog.Entry{
		Timestamp: time.Now(),
		RunID:     result.RunID,
		Months:    result.Months,
		Items:     result.Items,
		Generated: result.Generated,
		Created:   result.Created,
		Patterns:  len(result.Patterns),
		Outcome:   outcome,
	}
	if err := runlog.Append(path, []runlog.Entry{entry}); err != nil {
		fmt.Fprintf(os.Stderr, "warning: failed to write run log: %v\n", err)
	}
}

func printSummary(out io.Writer, result *seeder.Result, runErr error) {
	if runErr != nil {
		fmt.Fprintf(out, "Seed failed: %v\n", runErr)
		if result.Created > 0 {
			fmt.Fprintf(out, "%d transactions were created before the failure and remain in the account\n", result.Created)
		}
		return
	}

	fmt.Fprintf(out, "Created %d transactions across %d months for %s\n",
		result.Created, result.Months, result.User.Name)
	if len(result.Patterns) == 0 {
		fmt.Fprintln(out, "No recurring patterns detected yet; detection can lag a few minutes")
		return
	}

	fmt.Fprintln(out, "Detected recurring patterns:")
	for _, p := range result.Patterns {
		fmt.Fprintf(out, "  %s: %s (%d occurrences)\n", p.Payee, p.Amount, p.Count)
	}
}

// consoleObserver renders progress events as log lines.
type consoleObserver struct {
	out io.Writer
}

func (c *consoleObserver) Progress(phase seeder.Phase, message string, percent int) {
	fmt.Fprintf(c.out, "[%3d%%] %s: %s\n", percent, phase, message)
}
