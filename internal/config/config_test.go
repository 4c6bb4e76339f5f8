package config

import (
	"testing"
)

func TestSaveAndLoadConfig(t *testing.T) {
	dir := t.TempDir()

	cfg := &Config{
		Version:     "1",
		ActorUserID: "user-admin",
		LogLevel:    "debug",
	}

	if err := SaveConfig(dir, cfg); err != nil {
		t.Fatalf("SaveConfig failed: %v", err)
	}

	loaded, err := LoadConfig(dir)
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}

	if loaded.ActorUserID != "user-admin" {
		t.Errorf("expected actor user-admin, got %s", loaded.ActorUserID)
	}
	if loaded.LogLevel != "debug" {
		t.Errorf("expected log level debug, got %s", loaded.LogLevel)
	}
	if loaded.DBPath != "" {
		t.Errorf("expected empty db path, got %s", loaded.DBPath)
	}
}

func TestLoadConfigMissing(t *testing.T) {
	dir := t.TempDir()

	if _, err := LoadConfig(dir); err == nil {
		t.Error("expected error loading missing config, got nil")
	}
}
