package main

import (
	"os"

	"github.com/stateprinter/stateprinter/internal/cli/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
