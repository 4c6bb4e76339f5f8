package db

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/example/fieldops/internal/config"
)

func TestGetDBPathResolution(t *testing.T) {
	dir := t.TempDir()
	oldWD, err := os.Getwd()
	if err != nil {
		t.Fatalf("Getwd failed: %v", err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatalf("Chdir failed: %v", err)
	}
	t.Cleanup(func() { os.Chdir(oldWD) })
	t.Setenv("FIELDOPS_DB", "")

	// No env, no config: the home-directory default.
	path, err := GetDBPath()
	if err != nil {
		t.Fatalf("GetDBPath failed: %v", err)
	}
	if filepath.Base(path) != "fieldops.db" {
		t.Errorf("expected default fieldops.db path, got %s", path)
	}

	// db_path from .fieldops/config.json takes over.
	configured := filepath.Join(dir, "custom.db")
	if err := config.SaveConfig(".", &config.Config{Version: "1", DBPath: configured}); err != nil {
		t.Fatalf("SaveConfig failed: %v", err)
	}
	path, err = GetDBPath()
	if err != nil {
		t.Fatalf("GetDBPath failed: %v", err)
	}
	if path != configured {
		t.Errorf("expected configured path %s, got %s", configured, path)
	}

	// FIELDOPS_DB wins over the config file.
	t.Setenv("FIELDOPS_DB", filepath.Join(dir, "env.db"))
	path, err = GetDBPath()
	if err != nil {
		t.Fatalf("GetDBPath failed: %v", err)
	}
	if path != filepath.Join(dir, "env.db") {
		t.Errorf("expected env override, got %s", path)
	}
}
