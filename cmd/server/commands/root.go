package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

// rootCmd runs the API server when called without a subcommand.
var rootCmd = &cobra.Command{
	Use:   "ideatracker",
	Short: "Startup Idea Tracker API server",
	Long: `ideatracker serves the Startup Idea Tracker REST API.

Configuration is read from the environment (PORT, DB_DRIVER, DB_DSN,
JWT_SECRET, JWT_TTL, CORS_ALLOWED_ORIGINS, ...).`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

// Execute runs the root command. Called once from main.
func Execute() error {
	rootCmd.SilenceErrors = true
	rootCmd.SilenceUsage = true
	return rootCmd.Execute()
}

// SetVersionInfo sets the version reported by --version.
func SetVersionInfo(v, c, d string) {
	rootCmd.Version = fmt.Sprintf("%s (commit: %s, built: %s)", v, c, d)
}
