package main

import (
	"net/http"

	"user-group-app/internal/events"
	httpapi "user-group-app/internal/http"
	"user-group-app/internal/repository"
	"user-group-app/internal/service"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

var migrateOnStart bool

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the REST API for AppUser and UserGroup",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		// Подключение к БД
		db, err := repository.NewPostgres(ctx, appCfg.Database.DSN)
		if err != nil {
			return err
		}
		defer db.Close()

		if migrateOnStart {
			if err := db.Migrate(ctx); err != nil {
				return err
			}
		}

		// События об изменениях; без брокеров публикация отключена
		publisher := events.New(appCfg.Kafka.Brokers, appCfg.Kafka.Topic)
		defer func() {
			if err := publisher.Close(); err != nil {
				log.Warn().Err(err).Msg("close event publisher")
			}
		}()

		// 1. Репозитории и менеджер транзакций
		appUserRepo := repository.NewAppUserRepo(db)
		userGroupRepo := repository.NewUserGroupRepo(db)
		txManager := repository.NewTransactionManager(db)

		// 2. Сервисы
		appUserService := service.NewAppUserService(appUserRepo, txManager, publisher)
		userGroupService := service.NewUserGroupService(userGroupRepo, txManager, publisher)

		// 3. HTTP
		handler := httpapi.NewHandler(appUserService, userGroupService, appCfg.CORS.AllowedOrigins)

		server := &http.Server{
			Addr:    appCfg.Server.Addr,
			Handler: handler.Router(),
		}
		return runServer(ctx, server, shutdownTimeout())
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().BoolVar(&migrateOnStart, "migrate", false, "apply database migrations before serving")
}
