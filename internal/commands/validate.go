package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ledgerseed-dev/ledgerseed/internal/logging"
	"github.com/ledgerseed-dev/ledgerseed/internal/lunchmoney"
	"github.com/ledgerseed-dev/ledgerseed/internal/seeder"
)

func newValidateCommand(flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "validate",
		Short: "Check the API key and report whether the account is empty",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			key, err := flags.key()
			if err != nil {
				return err
			}

			cfg, _, err := loadConfig(flags.configPath)
			if err != nil {
				return err
			}

			log := logging.New(flags.logLevel)
			client := lunchmoney.NewClient(key,
				lunchmoney.WithBaseURL(cfg.API.BaseURL),
				lunchmoney.WithLogger(log),
			)
			s := seeder.New(client, nil, log)

			ctx := cmd.Context()
			user, err := s.ValidateKey(ctx)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "API key valid\n")
			fmt.Fprintf(out, "User: %s\n", user.Name)
			fmt.Fprintf(out, "Email: %s\n", user.Email)

			count, err := s.ExistingTransactionCount(ctx)
			if err != nil {
				return err
			}
			if count == 0 {
				fmt.Fprintln(out, "Account appears to be empty (good for testing)")
			} else {
				fmt.Fprintf(out, "Warning: account has %d existing transactions in the trailing year\n", count)
			}
			return nil
		},
	}
}
