package cli

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/rocketscienceinc/tictactoe-hotseat/internal/config"
	"github.com/spf13/cobra"
)

type options struct {
	configPath string
	logLevel   string
}

func Root() *cobra.Command {
	opts := &options{}

	root := &cobra.Command{
		Use: "tictactoe",
		Long: heredoc.Doc(`tictactoe is a two player hot-seat game of tic-tac-toe.

			Players take turns on the same terminal with play, or through
			the HTTP and WebSocket APIs started by serve.`),

		SilenceErrors: true,
		SilenceUsage:  true,
	}

	// global flags
	root.PersistentFlags().StringVarP(&opts.configPath, "config", "c", "", "Path to the config file")
	root.PersistentFlags().StringVarP(&opts.logLevel, "log-level", "l", "", "Log level: debug, info, warn or error")

	root.AddCommand(Play(opts))
	root.AddCommand(Serve(opts))

	return root
}

// initConfig loads the config file picked by --config, ./config.yml or the XDG config dirs.
func initConfig(opts *options) *config.Config {
	baseDir, err := os.Getwd()
	if err != nil {
		panic(fmt.Errorf("failed to get current directory: %w", err))
	}

	conf := config.MustLoad(config.Resolve(opts.configPath, baseDir))
	if opts.logLevel != "" {
		conf.LogLevel = opts.logLevel
	}

	return conf
}

func initLogger(level string, out io.Writer) *slog.Logger {
	var logLevel slog.Level

	switch level {
	case "debug":
		logLevel = slog.LevelDebug
	case "warn":
		logLevel = slog.LevelWarn
	case "error":
		logLevel = slog.LevelError
	default:
		logLevel = slog.LevelInfo
	}

	return slog.New(slog.NewJSONHandler(out, &slog.HandlerOptions{Level: logLevel}))
}
