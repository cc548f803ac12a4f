package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/strrl/cleantime/internal/insights"
)

const (
	EnvConfig  = "CLEANTIME_CONFIG"
	EnvDB      = "CLEANTIME_DB"
	EnvLogMode = "CLEANTIME_LOG_MODE"
)

type Config struct {
	LogMode  string          `yaml:"log_mode"`
	DBPath   string          `yaml:"db_path"`
	Currency string          `yaml:"currency"`
	Insights insights.Config `yaml:"insights"`
}

func Default() Config {
	return Config{
		LogMode:  "quiet",
		DBPath:   defaultDBPath(),
		Currency: "BRL",
		Insights: insights.DefaultConfig(),
	}
}

func defaultDBPath() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "cleantime.duckdb"
	}
	return filepath.Join(homeDir, ".cleantime", "cleantime.duckdb")
}

// Load reads path over the defaults, then applies environment overrides.
// An empty path falls back to $CLEANTIME_CONFIG; if that is empty too the
// defaults are used as is. Keys missing from the file keep their defaults.
func Load(path string) (Config, error) {
	cfg := Default()

	if path == "" {
		path = strings.TrimSpace(os.Getenv(EnvConfig))
	}
	if path != "" {
		raw, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("failed to read config %s: %w", path, err)
		}
		if err := yaml.Unmarshal(raw, &cfg); err != nil {
			return Config{}, fmt.Errorf("failed to parse config %s: %w", path, err)
		}
	}

	if v := strings.TrimSpace(os.Getenv(EnvDB)); v != "" {
		cfg.DBPath = v
	}
	if v := strings.TrimSpace(os.Getenv(EnvLogMode)); v != "" {
		cfg.LogMode = v
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) Validate() error {
	switch strings.ToLower(c.LogMode) {
	case "dev", "prod", "production", "quiet", "":
	default:
		return fmt.Errorf("invalid log_mode %q", c.LogMode)
	}
	if strings.TrimSpace(c.Currency) == "" {
		return errors.New("currency must not be empty")
	}
	if err := c.Insights.Validate(); err != nil {
		return fmt.Errorf("invalid insights config: %w", err)
	}
	return nil
}
