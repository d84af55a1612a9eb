package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/caarlos0/env/v10"
)

const tokenFileName = ".cisbosium_token"

// AppConfig holds the application settings. Every field can be overridden
// through the environment; defaults match the hosted event service.
type AppConfig struct {
	APIBaseURL     string        `env:"CISBOSIUM_API_URL" envDefault:"https://stock-api-v2-0.onrender.com"`
	StreamURL      string        `env:"CISBOSIUM_STREAM_URL"` // optional; empty keeps the feed on polling
	PollInterval   time.Duration `env:"CISBOSIUM_POLL_INTERVAL" envDefault:"30s"`
	CatalogDelay   time.Duration `env:"CISBOSIUM_CATALOG_DELAY" envDefault:"1s"`
	RequestTimeout time.Duration `env:"CISBOSIUM_REQUEST_TIMEOUT" envDefault:"15s"`
	TokenFile      string        `env:"CISBOSIUM_TOKEN_FILE"`

	WindowWidth  float32
	WindowHeight float32
	AppName      string
	Version      string
}

// NewAppConfig builds the configuration from defaults and the environment.
func NewAppConfig() (*AppConfig, error) {
	cfg := &AppConfig{
		WindowWidth:  1280,
		WindowHeight: 820,
		AppName:      "Cisbosium Trader",
		Version:      "1.2.0",
	}

	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse environment: %w", err)
	}

	if cfg.TokenFile == "" {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			// No home directory: keep the token next to the binary.
			cfg.TokenFile = tokenFileName
		} else {
			cfg.TokenFile = filepath.Join(homeDir, tokenFileName)
		}
	}

	return cfg, nil
}

// GetWindowSize returns the preferred window size.
func (c *AppConfig) GetWindowSize() (float32, float32) {
	return c.WindowWidth, c.WindowHeight
}

// GetAppInfo returns the application name and version.
func (c *AppConfig) GetAppInfo() (string, string) {
	return c.AppName, c.Version
}
