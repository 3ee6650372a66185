package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/storynest/quiz-service/internal/config"
	"github.com/storynest/quiz-service/internal/db"
	"github.com/storynest/quiz-service/internal/logger"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Run schema migrations and exit",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := config.FromEnv()
		if d, _ := cmd.Flags().GetString("db"); d != "" {
			cfg.DatabaseDSN = d
		}

		log, err := logger.New(cfg.LogMode)
		if err != nil {
			return fmt.Errorf("init logger: %w", err)
		}
		defer log.Sync()

		dbSvc, err := db.New(cfg.DatabaseDSN, log)
		if err != nil {
			return fmt.Errorf("open database: %w", err)
		}
		if err := dbSvc.AutoMigrateAll(); err != nil {
			return fmt.Errorf("auto-migrate: %w", err)
		}
		log.Info("migrations complete")
		return nil
	},
}
