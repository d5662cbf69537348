// Package config loads runtime settings from the environment and an
// optional .env file.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"

	"github.com/insightdelivered/statement-parser/internal/parser"
)

// Config is the application configuration.
type Config struct {
	Server ServerConfig
	Layout parser.Layout
	// LogLevel is one of debug, info, warn, error.
	LogLevel string
	// Currency is the ISO 4217 code used when printing amounts.
	Currency string
}

// ServerConfig configures the HTTP API.
type ServerConfig struct {
	Port        int
	StaticDir   string
	MaxUploadMB int
}

// Load reads configuration from the environment. A .env file is loaded
// first when present; envPath names a specific file, which must exist.
func Load(envPath ...string) (*Config, error) {
	if len(envPath) > 0 && envPath[0] != "" {
		if err := godotenv.Load(envPath[0]); err != nil {
			return nil, fmt.Errorf("failed to load .env file: %w", err)
		}
	} else {
		_ = godotenv.Load()
	}

	port, err := intEnv("PORT", 8080)
	if err != nil {
		return nil, err
	}
	maxUpload, err := intEnv("MAX_UPLOAD_MB", 32)
	if err != nil {
		return nil, err
	}

	layout := parser.DefaultLayout()
	if layout.CustomerNameLine, err = intEnv("STATEMENT_NAME_LINE", layout.CustomerNameLine); err != nil {
		return nil, err
	}
	if layout.AddressLines, err = intEnv("STATEMENT_ADDRESS_LINES", layout.AddressLines); err != nil {
		return nil, err
	}
	layout.MerchantMarker = getEnvOrDefault("STATEMENT_MERCHANT", layout.MerchantMarker)
	layout.ATMMarker = getEnvOrDefault("STATEMENT_ATM_MARKER", layout.ATMMarker)

	cfg := &Config{
		Server: ServerConfig{
			Port:        port,
			StaticDir:   os.Getenv("STATIC_DIR"),
			MaxUploadMB: maxUpload,
		},
		Layout:   layout,
		LogLevel: getEnvOrDefault("LOG_LEVEL", "info"),
		Currency: strings.ToUpper(getEnvOrDefault("CURRENCY", "USD")),
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the loaded values.
func (c *Config) Validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid PORT %d", c.Server.Port)
	}
	if c.Server.MaxUploadMB <= 0 {
		return fmt.Errorf("invalid MAX_UPLOAD_MB %d", c.Server.MaxUploadMB)
	}
	if err := c.Layout.Validate(); err != nil {
		return fmt.Errorf("statement layout: %w", err)
	}
	return nil
}

func getEnvOrDefault(key, def string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return def
}

func intEnv(key string, def int) (int, error) {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return n, nil
}
