// Package config loads lens settings from defaults, an optional YAML file,
// an optional .env file and LENS_* environment variables, in that order.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/kedare/lens/internal/kv"
	"github.com/kedare/lens/internal/logger"
	"gopkg.in/yaml.v3"
)

// FileName is the default config file name inside ~/.lens.
const FileName = "config.yaml"

// Config holds user settings.
type Config struct {
	DBPath   string        `yaml:"db_path"`
	PerPage  int           `yaml:"per_page"`
	Delay    time.Duration `yaml:"delay"`
	LogLevel string        `yaml:"log_level"`
	Output   string        `yaml:"output"`
	NoCache  bool          `yaml:"no_cache"`
	// TranslateTo is the language text found in uploaded images is
	// translated to. Empty disables translation.
	TranslateTo string `yaml:"translate_to"`
}

// Default returns the built-in settings.
func Default() Config {
	return Config{
		PerPage:  8,
		Delay:    time.Second,
		LogLevel: "info",
		Output:   "table",
	}
}

// DefaultPath returns ~/.lens/config.yaml.
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get user home directory: %w", err)
	}

	return filepath.Join(home, kv.Dir, FileName), nil
}

// Load builds the configuration. An empty file means the default location,
// which may be missing; an explicit file must exist. envFile is loaded into
// the environment when present without overriding variables already set.
func Load(file, envFile string) (Config, error) {
	cfg := Default()

	explicit := file != ""
	if !explicit {
		if p, err := DefaultPath(); err == nil {
			file = p
		}
	}

	if file != "" {
		if err := loadYAML(&cfg, file); err != nil {
			if explicit || !errors.Is(err, os.ErrNotExist) {
				return cfg, err
			}

			logger.Log.Debugf("No config file at %s", file)
		}
	}

	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil {
			if !errors.Is(err, os.ErrNotExist) {
				return cfg, fmt.Errorf("failed to load %s: %w", envFile, err)
			}
		} else {
			logger.Log.Debugf("Loaded environment from %s", envFile)
		}
	}

	if err := applyEnv(&cfg); err != nil {
		return cfg, err
	}

	if cfg.PerPage <= 0 {
		return cfg, fmt.Errorf("per_page must be positive, got %d", cfg.PerPage)
	}

	if cfg.Delay < 0 {
		return cfg, fmt.Errorf("delay must not be negative, got %v", cfg.Delay)
	}

	return cfg, nil
}

func loadYAML(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("failed to parse config %s: %w", path, err)
	}

	logger.Log.Debugf("Loaded config from %s", path)

	return nil
}

func applyEnv(cfg *Config) error {
	if v, ok := lookup("LENS_DB_PATH"); ok {
		cfg.DBPath = v
	}

	if v, ok := lookup("LENS_LOG_LEVEL"); ok {
		cfg.LogLevel = v
	}

	if v, ok := lookup("LENS_OUTPUT"); ok {
		cfg.Output = strings.ToLower(v)
	}

	if v, ok := lookup("LENS_PER_PAGE"); ok {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid LENS_PER_PAGE %q: %w", v, err)
		}
		cfg.PerPage = n
	}

	if v, ok := lookup("LENS_DELAY"); ok {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("invalid LENS_DELAY %q: %w", v, err)
		}
		cfg.Delay = d
	}

	if v, ok := lookup("LENS_TRANSLATE_TO"); ok {
		cfg.TranslateTo = v
	}

	if v, ok := lookup("LENS_NO_CACHE"); ok {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("invalid LENS_NO_CACHE %q: %w", v, err)
		}
		cfg.NoCache = b
	}

	return nil
}

func lookup(name string) (string, bool) {
	v, ok := os.LookupEnv(name)
	if !ok {
		return "", false
	}

	v = strings.TrimSpace(v)

	return v, v != ""
}
