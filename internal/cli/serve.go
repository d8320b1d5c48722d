package cli

import (
	"os"

	"github.com/MakeNowJust/heredoc/v2"
	app "github.com/rocketscienceinc/tictactoe-hotseat/internal"
	"github.com/spf13/cobra"
)

// tictactoe serve
func Serve(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Serve games over HTTP and WebSocket",
		Args:  cobra.NoArgs,
		Long: heredoc.Doc(`serve starts the HTTP API and the WebSocket server.

			Each browser session owns one game, identified by the
			user_session cookie. Games live in memory unless storage
			is set to redis in the config.`),
		RunE: func(cmd *cobra.Command, _ []string) error {
			conf := initConfig(opts)
			logger := initLogger(conf.LogLevel, os.Stdout)

			return app.RunApp(cmd.Context(), logger, conf)
		},
	}
}
