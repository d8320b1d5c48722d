package cli

import (
	"github.com/MakeNowJust/heredoc/v2"
	app "github.com/rocketscienceinc/tictactoe-hotseat/internal"
	"github.com/spf13/cobra"
)

const playLogLevel = "warn"

// tictactoe play
func Play(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "play",
		Short: "Play a hot-seat game in the terminal",
		Args:  cobra.NoArgs,
		Long: heredoc.Doc(`play starts a game for two players sharing this terminal.

			The first player is X and moves first. Enter a cell number
			from 0 to 8 to place your marker, r to play again once the
			game is over, or q to quit.

			Games are kept in memory. Logs go to stderr at warn level
			unless --log-level is given or --config names a file with
			a log-level; no other config setting applies to play.`),
		RunE: func(cmd *cobra.Command, _ []string) error {
			level := playLogLevel
			if opts.configPath != "" {
				level = initConfig(opts).LogLevel
			} else if opts.logLevel != "" {
				level = opts.logLevel
			}

			logger := initLogger(level, cmd.ErrOrStderr())

			return app.RunConsole(cmd.Context(), logger, cmd.InOrStdin(), cmd.OutOrStdout())
		},
	}
}
