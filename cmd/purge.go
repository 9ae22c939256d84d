package cmd

import (
	"context"
	"database/sql"

	"ledger/app/repository"
	"ledger/config"

	_ "github.com/go-sql-driver/mysql"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

// The service never deletes refresh tokens on its own; expired rows just
// accumulate. This command exists for operators to reclaim them.
var purgeCmd = &cobra.Command{
	Use:   "purge-tokens",
	Short: "Delete expired refresh tokens",
	Run:   runPurge,
}

func init() {
	rootCmd.AddCommand(purgeCmd)
}

func runPurge(_ *cobra.Command, _ []string) {
	cfg, err := config.Load()
	if err != nil {
		logrus.WithError(err).Fatal("Failed to load configuration")
	}

	db, err := sql.Open("mysql", cfg.DSN())
	if err != nil {
		logrus.WithError(err).Fatal("Failed to connect to database")
	}
	defer db.Close()

	deleted, err := repository.NewRefreshTokenRepository(db).DeleteExpired(context.Background())
	if err != nil {
		logrus.WithError(err).Fatal("Failed to purge refresh tokens")
	}
	logrus.WithField("deleted", deleted).Info("Expired refresh tokens purged")
}
