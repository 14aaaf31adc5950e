package main

import (
	"net/http"

	"user-group-app/internal/client"
	"user-group-app/internal/web"

	"github.com/spf13/cobra"
)

var webCmd = &cobra.Command{
	Use:   "web",
	Short: "Run the server-rendered UI on top of the REST API",
	RunE: func(cmd *cobra.Command, args []string) error {
		transport := client.NewTransport(appCfg.Web.APIURL, nil)

		app, err := web.NewApp(transport)
		if err != nil {
			return err
		}

		server := &http.Server{
			Addr:    appCfg.Web.Addr,
			Handler: app.Router(),
		}
		return runServer(cmd.Context(), server, shutdownTimeout())
	},
}

func init() {
	rootCmd.AddCommand(webCmd)
}
