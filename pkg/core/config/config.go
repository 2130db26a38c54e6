// Package config loads the service configuration from a yaml file with
// environment variable overrides for secrets and deployment knobs.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v2"

	"client_intel/pkg/core/agent"
)

// Config is the full service configuration. Secrets (API keys, database
// URL) normally come from the environment; the yaml file carries the
// structural settings.
type Config struct {
	Port        string `yaml:"port"`
	DatabaseURL string `yaml:"database_url"`

	GoogleAPIKey string `yaml:"google_api_key"`
	SheetID      string `yaml:"sheet_id"`
	SheetRange   string `yaml:"sheet_range"`

	// DocSource selects how documents are fetched: "google" for the Docs
	// API, "html" for published-to-web exports.
	DocSource   string `yaml:"doc_source"`
	HTMLBaseURL string `yaml:"html_base_url"`

	GeminiAPIKey      string `yaml:"gemini_api_key"`
	GeminiModel       string `yaml:"gemini_model"`
	HeadOfficeBaseURL string `yaml:"headoffice_base_url"`
	HeadOfficeAPIKey  string `yaml:"headoffice_api_key"`

	RefreshCron string `yaml:"refresh_cron"`

	Agent agent.Config `yaml:"agent"`
}

// Load reads the yaml file at path (missing file is fine, defaults and
// environment take over) and applies env overrides on top.
func Load(path string) (*Config, error) {
	cfg := &Config{
		Port:        "8080",
		SheetRange:  "A2:B",
		DocSource:   "google",
		GeminiModel: "gemini-2.0-flash",
		RefreshCron: "0 6 * * *",
	}

	if data, err := os.ReadFile(path); err == nil {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
		}
	} else if !os.IsNotExist(err) {
		return nil, fmt.Errorf("failed to read config %s: %w", path, err)
	}

	overrideFromEnv(&cfg.Port, "PORT")
	overrideFromEnv(&cfg.DatabaseURL, "DATABASE_URL")
	overrideFromEnv(&cfg.GoogleAPIKey, "GOOGLE_API_KEY")
	overrideFromEnv(&cfg.SheetID, "SHEET_ID")
	overrideFromEnv(&cfg.SheetRange, "SHEET_RANGE")
	overrideFromEnv(&cfg.DocSource, "DOC_SOURCE")
	overrideFromEnv(&cfg.HTMLBaseURL, "HTML_BASE_URL")
	overrideFromEnv(&cfg.GeminiAPIKey, "GEMINI_API_KEY")
	overrideFromEnv(&cfg.GeminiModel, "GEMINI_MODEL")
	overrideFromEnv(&cfg.HeadOfficeBaseURL, "HEADOFFICE_BASE_URL")
	overrideFromEnv(&cfg.HeadOfficeAPIKey, "HEADOFFICE_API_KEY")
	overrideFromEnv(&cfg.RefreshCron, "REFRESH_CRON")

	return cfg, nil
}

// Validate checks the settings a server cannot start without.
func (c *Config) Validate() error {
	if c.DatabaseURL == "" {
		return fmt.Errorf("database URL not configured (set DATABASE_URL)")
	}
	if c.SheetID == "" {
		return fmt.Errorf("sheet ID not configured (set SHEET_ID)")
	}
	switch c.DocSource {
	case "google":
		if c.GoogleAPIKey == "" {
			return fmt.Errorf("google API key required for doc_source=google (set GOOGLE_API_KEY)")
		}
	case "html":
		// Base URL has a sane default; nothing to require.
	default:
		return fmt.Errorf("unknown doc_source %q (want google or html)", c.DocSource)
	}
	if c.GeminiAPIKey == "" && c.HeadOfficeBaseURL == "" {
		return fmt.Errorf("no generation provider configured (set GEMINI_API_KEY or HEADOFFICE_BASE_URL)")
	}
	return nil
}

func overrideFromEnv(dst *string, key string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}
