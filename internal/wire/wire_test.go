package wire

import (
	"os"
	"testing"

	"github.com/rs/zerolog"

	"github.com/example/fieldops/internal/config"
)

func TestNewLoggerLevelResolution(t *testing.T) {
	oldWD, err := os.Getwd()
	if err != nil {
		t.Fatalf("Getwd failed: %v", err)
	}
	if err := os.Chdir(t.TempDir()); err != nil {
		t.Fatalf("Chdir failed: %v", err)
	}
	t.Cleanup(func() { os.Chdir(oldWD) })
	t.Setenv("FIELDOPS_LOG", "")

	if got := newLogger().GetLevel(); got != zerolog.WarnLevel {
		t.Errorf("expected default warn level, got %s", got)
	}

	// log_level from .fieldops/config.json.
	if err := config.SaveConfig(".", &config.Config{Version: "1", LogLevel: "debug"}); err != nil {
		t.Fatalf("SaveConfig failed: %v", err)
	}
	if got := newLogger().GetLevel(); got != zerolog.DebugLevel {
		t.Errorf("expected debug level from config, got %s", got)
	}

	// FIELDOPS_LOG wins over the config file.
	t.Setenv("FIELDOPS_LOG", "error")
	if got := newLogger().GetLevel(); got != zerolog.ErrorLevel {
		t.Errorf("expected error level from env, got %s", got)
	}
}
