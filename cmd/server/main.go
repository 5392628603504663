package main

import (
	"os"

	"github.com/fatih/color"
	"github.com/yukikurage/idea-tracker-api/cmd/server/commands"
)

// Version information - set during build
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	commands.SetVersionInfo(version, commit, date)

	// Cobra's own error printing is silenced in Execute.
	if err := commands.Execute(); err != nil {
		color.New(color.FgRed, color.Bold).Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
