package config

import (
	"path/filepath"
	"testing"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}

	if cfg.BronzeDir != "Bronze/data/raw" {
		t.Errorf("BronzeDir = %q", cfg.BronzeDir)
	}
	if cfg.BronzeFile != "employees.csv" {
		t.Errorf("BronzeFile = %q", cfg.BronzeFile)
	}
	if cfg.SilverFile != "employees_clean.csv" {
		t.Errorf("SilverFile = %q", cfg.SilverFile)
	}
	if cfg.TopEarners != 5 {
		t.Errorf("TopEarners = %d, want 5", cfg.TopEarners)
	}
	if cfg.LogLevel != "info" || cfg.LogFormat != "text" {
		t.Errorf("logging defaults wrong: %q/%q", cfg.LogLevel, cfg.LogFormat)
	}
	if cfg.AuditDB != "" {
		t.Errorf("AuditDB should default empty, got %q", cfg.AuditDB)
	}
	if cfg.SMTPPort != 587 {
		t.Errorf("SMTPPort = %d, want 587", cfg.SMTPPort)
	}
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("MEDALLION_BRONZE_DIR", "/data/raw")
	t.Setenv("MEDALLION_TOP_EARNERS", "10")
	t.Setenv("MEDALLION_AUDIT_DB", "/data/audit.db")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	if cfg.BronzeDir != "/data/raw" {
		t.Errorf("BronzeDir = %q", cfg.BronzeDir)
	}
	if cfg.TopEarners != 10 {
		t.Errorf("TopEarners = %d, want 10", cfg.TopEarners)
	}
	if cfg.AuditDB != "/data/audit.db" {
		t.Errorf("AuditDB = %q", cfg.AuditDB)
	}
}

func TestLoadRejectsBadInt(t *testing.T) {
	t.Setenv("MEDALLION_TOP_EARNERS", "many")
	if _, err := Load(); err == nil {
		t.Fatal("expected error for non-numeric top earners")
	}
}

func TestPathHelpers(t *testing.T) {
	cfg := Config{
		BronzeDir:  "in",
		BronzeFile: "raw.csv",
		SilverDir:  "out",
		SilverFile: "clean.csv",
	}
	if got := cfg.BronzePath(); got != filepath.Join("in", "raw.csv") {
		t.Errorf("BronzePath = %q", got)
	}
	if got := cfg.SilverPath(); got != filepath.Join("out", "clean.csv") {
		t.Errorf("SilverPath = %q", got)
	}
}
