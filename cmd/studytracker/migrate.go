package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/at-ishikawa/studytracker/internal/config"
	"github.com/at-ishikawa/studytracker/internal/database"
	"github.com/at-ishikawa/studytracker/schemas"
)

func newMigrateCommand() *cobra.Command {
	migrateCmd := &cobra.Command{
		Use:   "migrate",
		Short: "Migration commands",
	}

	migrateCmd.AddCommand(
		newMigrateRunCommand("up", "Apply all pending migrations", (*database.Migrator).Up),
		newMigrateRunCommand("down", "Roll back the latest migration", (*database.Migrator).Down),
		newMigrateRunCommand("status", "Show the applied and pending migrations", (*database.Migrator).Status),
	)
	return migrateCmd
}

func newMigrateRunCommand(use, short string, run func(*database.Migrator) error) *cobra.Command {
	return &cobra.Command{
		Use:   use,
		Short: short,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			if cfg.Store.Driver != config.StoreDriverDB {
				return fmt.Errorf("migrations need the %s store, not %s", config.StoreDriverDB, cfg.Store.Driver)
			}

			db, err := database.Open(cfg.Database)
			if err != nil {
				return err
			}
			defer func() {
				_ = db.Close()
			}()

			migrator, err := database.NewMigrator(db, schemas.Migrations, "migrations")
			if err != nil {
				return err
			}
			return run(migrator)
		},
	}
}
