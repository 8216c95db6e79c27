// Package config loads pipeline configuration from environment variables.
package config

import (
	"fmt"
	"path/filepath"

	"github.com/caarlos0/env/v11"
)

// Config holds every tunable of a pipeline run. Defaults mirror the layer
// layout the raw store ships with.
type Config struct {
	BronzeDir  string `env:"MEDALLION_BRONZE_DIR" envDefault:"Bronze/data/raw"`
	BronzeFile string `env:"MEDALLION_BRONZE_FILE" envDefault:"employees.csv"`
	SilverDir  string `env:"MEDALLION_SILVER_DIR" envDefault:"Silver/data/clean"`
	SilverFile string `env:"MEDALLION_SILVER_FILE" envDefault:"employees_clean.csv"`
	GoldDir    string `env:"MEDALLION_GOLD_DIR" envDefault:"Gold/data/gold"`

	// AuditDB enables the SQLite audit store when non-empty.
	AuditDB string `env:"MEDALLION_AUDIT_DB"`

	TopEarners int `env:"MEDALLION_TOP_EARNERS" envDefault:"5"`

	LogLevel  string `env:"MEDALLION_LOG_LEVEL" envDefault:"info"`
	LogFormat string `env:"MEDALLION_LOG_FORMAT" envDefault:"text"`

	// SMTP settings for the notification stub; notifications are a no-op
	// until SMTPHost is set.
	SMTPHost     string `env:"MEDALLION_SMTP_HOST"`
	SMTPPort     int    `env:"MEDALLION_SMTP_PORT" envDefault:"587"`
	SMTPUsername string `env:"MEDALLION_SMTP_USERNAME"`
	SMTPPassword string `env:"MEDALLION_SMTP_PASSWORD"`
	NotifyFrom   string `env:"MEDALLION_NOTIFY_FROM"`
	NotifyTo     string `env:"MEDALLION_NOTIFY_TO"`
}

// Load parses configuration from the environment.
func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	return cfg, nil
}

// BronzePath is the raw input CSV path.
func (c Config) BronzePath() string {
	return filepath.Join(c.BronzeDir, c.BronzeFile)
}

// SilverPath is the cleaned output CSV path.
func (c Config) SilverPath() string {
	return filepath.Join(c.SilverDir, c.SilverFile)
}
