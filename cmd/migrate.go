package cmd

import (
	"github.com/spf13/cobra"

	"tabloide-mp/config"
	"tabloide-mp/db"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create the database tables",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return err
		}
		conn, err := db.Open(cmd.Context(), cfg.DatabaseURL)
		if err != nil {
			return err
		}
		defer conn.Close()
		return db.Migrate(cmd.Context(), conn)
	},
}
