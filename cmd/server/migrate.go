package main

import (
	"github.com/fadilmartias/skillsnap/internal/config"
	"github.com/fadilmartias/skillsnap/internal/logger"
	"github.com/fadilmartias/skillsnap/internal/repository"
	"github.com/spf13/cobra"
)

func newMigrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create or update the database schema",
		RunE: func(cmd *cobra.Command, args []string) error {
			appConfig := config.LoadAppConfig()
			log, err := logger.New(appConfig.Env)
			if err != nil {
				return err
			}
			defer log.Sync()

			db, err := ConnectDB(config.LoadDBConfig(), appConfig)
			if err != nil {
				return err
			}
			if err := repository.Migrate(db); err != nil {
				log.Error("migration failed", "error", err)
				return err
			}
			log.Info("migration finished")
			return nil
		},
	}
}
