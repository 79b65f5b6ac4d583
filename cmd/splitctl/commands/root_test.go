package commands

import (
	"context"
	"log/slog"
	"testing"

	"github.com/mmynk/splitter/internal/config"
)

func TestSetupLogging_Debug(t *testing.T) {
	prev := slog.Default()
	t.Cleanup(func() {
		slog.SetDefault(prev)
		debug = false
	})
	cfg := config.Config{LogLevel: "warn", LogFormat: "text"}

	setupLogging(cfg)
	if slog.Default().Enabled(context.Background(), slog.LevelInfo) {
		t.Error("LOG_LEVEL=warn should hide info")
	}

	debug = true
	setupLogging(cfg)
	if !slog.Default().Enabled(context.Background(), slog.LevelDebug) {
		t.Error("--debug should enable debug logging")
	}
}

func TestRootCmd_Flags(t *testing.T) {
	root := newRootCmd()
	for _, name := range []string{"gateway", "currency", "debug"} {
		if root.PersistentFlags().Lookup(name) == nil {
			t.Errorf("missing --%s", name)
		}
	}
}
