package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// AppConfig holds process-level settings for the CLI.
type AppConfig struct {
	LogLevel    string
	Environment string
	OutputDir   string
	Workers     int
}

// LoadAppConfig reads configuration from environment variables and from the
// given .env files, or ./.env when none are named. Missing files are ignored
// and existing environment variables are never overridden.
func LoadAppConfig(envFiles ...string) (*AppConfig, error) {
	if len(envFiles) == 0 {
		_ = godotenv.Load()
	} else {
		for _, f := range envFiles {
			if f == "" {
				continue
			}
			if err := godotenv.Load(f); err != nil {
				return nil, fmt.Errorf("failed to load env file %s: %w", f, err)
			}
		}
	}

	cfg := &AppConfig{}

	cfg.LogLevel = strings.ToLower(os.Getenv("NETWORTH_LOG_LEVEL"))
	if cfg.LogLevel == "" {
		cfg.LogLevel = "info"
	}

	cfg.Environment = strings.ToLower(os.Getenv("NETWORTH_ENV"))
	if cfg.Environment == "" {
		cfg.Environment = "development"
	}

	cfg.OutputDir = os.Getenv("NETWORTH_OUTPUT_DIR")
	if cfg.OutputDir == "" {
		cfg.OutputDir = "."
	}

	cfg.Workers = 1
	if raw := os.Getenv("NETWORTH_WORKERS"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			return nil, fmt.Errorf("invalid NETWORTH_WORKERS: %w", err)
		}
		if n < 1 {
			return nil, fmt.Errorf("NETWORTH_WORKERS must be at least 1, got %d", n)
		}
		cfg.Workers = n
	}

	return cfg, nil
}
