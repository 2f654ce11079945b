package main

import (
	"os"

	"github.com/ledgerseed-dev/ledgerseed/internal/commands"
)

func main() {
	if err := commands.NewRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}
