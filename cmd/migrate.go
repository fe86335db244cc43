package main

import (
	"github.com/spf13/cobra"

	"github.com/kiselevos/textquest_bot/internal/config"
	"github.com/kiselevos/textquest_bot/internal/db"
)

func newMigrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply database migrations for the postgres snapshot store",
		RunE: func(cmd *cobra.Command, _ []string) error {
			config.LoadEnv()

			dbCfg, err := config.GetDbConfig()
			if err != nil {
				return err
			}
			database, err := db.NewDB(dbCfg)
			if err != nil {
				return err
			}
			defer database.Close()

			if err := db.Migrate(database); err != nil {
				return err
			}
			cmd.Println("migrations applied")
			return nil
		},
	}
}
