package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

// Config holds the server configuration.
type Config struct {
	HTTPAddress     string        `yaml:"http_address" env:"HTTP_ADDRESS" env-default:":3000"`
	DBPath          string        `yaml:"db_path" env:"DB_PATH" env-default:"data.db"`
	DBDebug         bool          `yaml:"db_debug" env:"DB_DEBUG" env-default:"false"`
	SeedDemoData    bool          `yaml:"seed_demo_data" env:"SEED_DEMO_DATA" env-default:"false"`
	StrictDueDates  bool          `yaml:"strict_due_dates" env:"STRICT_DUE_DATES" env-default:"false"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" env:"SHUTDOWN_TIMEOUT" env-default:"30s"`
	LogLevel        string        `yaml:"log_level" env:"LOG_LEVEL" env-default:"info"`
}

// Load reads the configuration from configPath. An empty path or a missing
// file falls back to environment variables.
func Load(configPath string) (Config, error) {
	var cfg Config

	if configPath == "" {
		if err := cleanenv.ReadEnv(&cfg); err != nil {
			return Config{}, fmt.Errorf("cannot read env: %w", err)
		}
		return cfg, nil
	}

	if err := cleanenv.ReadConfig(configPath, &cfg); err != nil {
		var pe *os.PathError
		if !errors.As(err, &pe) {
			return Config{}, fmt.Errorf("cannot read config %q: %w", configPath, err)
		}
		if err := cleanenv.ReadEnv(&cfg); err != nil {
			return Config{}, fmt.Errorf("cannot read env: %w", err)
		}
	}

	return cfg, nil
}

// QuietLogs reports whether framework logging should be limited to errors.
func (c Config) QuietLogs() bool {
	return strings.EqualFold(c.LogLevel, "error")
}
