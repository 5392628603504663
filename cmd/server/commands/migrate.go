package commands

import (
	"github.com/spf13/cobra"
	"github.com/yukikurage/idea-tracker-api/internal/database"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Apply the database schema and exit",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		_, log, db, err := bootstrap()
		if err != nil {
			return err
		}
		defer closeDatabase(log, db)

		if err := database.Migrate(db, log); err != nil {
			return err
		}

		log.Info("migrations applied")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(migrateCmd)
}
