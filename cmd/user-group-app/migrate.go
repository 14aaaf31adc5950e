package main

import (
	"user-group-app/internal/repository"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Apply database migrations",
	RunE: func(cmd *cobra.Command, args []string) error {
		db, err := repository.NewPostgres(cmd.Context(), appCfg.Database.DSN)
		if err != nil {
			return err
		}
		defer db.Close()

		log.Info().Msg("running migrations")
		if err := db.Migrate(cmd.Context()); err != nil {
			return err
		}
		log.Info().Msg("migrations complete")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(migrateCmd)
}
