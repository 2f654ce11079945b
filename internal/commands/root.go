package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ledgerseed-dev/ledgerseed/internal/buildinfo"
)

const apiKeyEnv = "LEDGERSEED_API_KEY"

// rootFlags holds the persistent flags shared by all subcommands.
type rootFlags struct {
	configPath string
	apiKey     string
	logLevel   string
}

// key returns the API key from the flag or the environment.
func (f *rootFlags) key() (string, error) {
	if f.apiKey != "" {
		return f.apiKey, nil
	}
	if key := os.Getenv(apiKeyEnv); key != "" {
		return key, nil
	}
	return "", fmt.Errorf("no API key: set --api-key or %s", apiKeyEnv)
}

// NewRootCommand creates the root CLI command with all subcommands registered.
func NewRootCommand() *cobra.Command {
	flags := &rootFlags{}

	rootCmd := &cobra.Command{
		Use:     "ledgerseed",
		Short:   "Seed a Lunch Money account with demo transactions",
		Version: fmt.Sprintf("%s (commit: %s, built: %s)", buildinfo.Version, buildinfo.Commit, buildinfo.Date),
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		SilenceUsage: true,
	}

	rootCmd.PersistentFlags().StringVar(&flags.configPath, "config", "seed.yaml", "path to the seed configuration")
	rootCmd.PersistentFlags().StringVar(&flags.apiKey, "api-key", "", "API key (defaults to $"+apiKeyEnv+")")
	rootCmd.PersistentFlags().StringVar(&flags.logLevel, "log-level", "info", "log level (debug, info, warn, error)")

	rootCmd.AddCommand(
		newInitCommand(),
		newValidateCommand(flags),
		newPreviewCommand(flags),
		newSeedCommand(flags),
	)

	return rootCmd
}
