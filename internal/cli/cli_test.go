package cli

import (
	"bytes"
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitLogger(t *testing.T) {
	tests := []struct {
		level   string
		enabled slog.Level
		hidden  slog.Level
	}{
		{level: "debug", enabled: slog.LevelDebug, hidden: slog.LevelDebug - 1},
		{level: "info", enabled: slog.LevelInfo, hidden: slog.LevelDebug},
		{level: "warn", enabled: slog.LevelWarn, hidden: slog.LevelInfo},
		{level: "error", enabled: slog.LevelError, hidden: slog.LevelWarn},
		{level: "", enabled: slog.LevelInfo, hidden: slog.LevelDebug},
	}

	for _, tt := range tests {
		t.Run(tt.level, func(t *testing.T) {
			logger := initLogger(tt.level, &bytes.Buffer{})

			assert.True(t, logger.Enabled(context.Background(), tt.enabled))
			assert.False(t, logger.Enabled(context.Background(), tt.hidden))
		})
	}
}

func TestPlayCommand(t *testing.T) {
	// Given: two players who start a game and quit straight away
	var out, errOut bytes.Buffer

	root := Root()
	root.SetArgs([]string{"play"})
	root.SetIn(strings.NewReader("Alice\nBob\nq\n"))
	root.SetOut(&out)
	root.SetErr(&errOut)

	// When: the play command runs
	err := root.ExecuteContext(context.Background())

	// Then: the game is shown and nothing is logged below warn
	require.NoError(t, err)
	assert.Contains(t, out.String(), "New game! Let's play!")
	assert.Contains(t, out.String(), "Bye!")
	assert.Empty(t, errOut.String())
}

func TestPlayCommand_ConfigLogLevel(t *testing.T) {
	// Given: a config file that asks for debug logs
	path := filepath.Join(t.TempDir(), "config.yml")
	require.NoError(t, os.WriteFile(path, []byte("log-level: debug\n"), 0o600))

	var out, errOut bytes.Buffer

	root := Root()
	root.SetArgs([]string{"play", "--config", path})
	root.SetIn(strings.NewReader("Alice\nBob\n4\nq\n"))
	root.SetOut(&out)
	root.SetErr(&errOut)

	// When: the play command runs
	err := root.ExecuteContext(context.Background())

	// Then: the configured level reaches the logger
	require.NoError(t, err)
	assert.Contains(t, errOut.String(), "game started")
	assert.Contains(t, errOut.String(), "turn played")
}

func TestRoot_RejectsUnknownCommand(t *testing.T) {
	root := Root()
	root.SetArgs([]string{"fly"})
	root.SetOut(&bytes.Buffer{})
	root.SetErr(&bytes.Buffer{})

	err := root.Execute()

	require.Error(t, err)
	assert.Contains(t, err.Error(), `unknown command "fly"`)
}
