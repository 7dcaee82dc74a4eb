// Package config loads tool configuration from an optional YAML file plus
// environment variables, with the environment winning for secrets.
package config

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Provider describes the remote sampling service.
type Provider struct {
	URL     string `yaml:"url"`
	Token   string `yaml:"token"`
	Backend string `yaml:"backend"`
	Channel string `yaml:"channel"`
}

// Defaults are fallback values for per-run flags.
type Defaults struct {
	Shots    int `yaml:"shots"`
	OptLevel int `yaml:"opt_level"`
	TopK     int `yaml:"topk"`
}

// Config is the full tool configuration.
type Config struct {
	Provider Provider `yaml:"provider"`
	Defaults Defaults `yaml:"defaults"`
}

// Default returns the configuration used when no file is present.
func Default() Config {
	return Config{
		Defaults: Defaults{
			Shots:    4096,
			OptLevel: 1,
			TopK:     5,
		},
	}
}

// Load reads configuration in precedence order: built-in defaults, then the
// YAML file at path (skipped when path is empty or missing), then the
// environment. A .env file in the working directory is folded into the
// environment first; its absence is not an error.
func Load(path string) (Config, error) {
	cfg := Default()

	// Best effort: a missing .env is the common case.
	_ = godotenv.Load()

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case os.IsNotExist(err):
			// Explicitly named but absent config falls through to defaults.
		case err != nil:
			return cfg, fmt.Errorf("read config: %w", err)
		default:
			if err := yaml.Unmarshal(data, &cfg); err != nil {
				return cfg, fmt.Errorf("parse config %s: %w", path, err)
			}
		}
	}

	applyEnv(&cfg)

	if cfg.Defaults.Shots <= 0 {
		return cfg, fmt.Errorf("config: shots must be positive, got %d", cfg.Defaults.Shots)
	}
	if cfg.Defaults.OptLevel < 0 || cfg.Defaults.OptLevel > 3 {
		return cfg, fmt.Errorf("config: opt_level must be in [0,3], got %d", cfg.Defaults.OptLevel)
	}
	if cfg.Defaults.TopK <= 0 {
		return cfg, fmt.Errorf("config: topk must be positive, got %d", cfg.Defaults.TopK)
	}

	return cfg, nil
}

// applyEnv overlays environment variables. The token accepts two names so
// existing IBM Quantum credentials work unchanged.
func applyEnv(cfg *Config) {
	if v := os.Getenv("MOTIFQU_PROVIDER_URL"); v != "" {
		cfg.Provider.URL = v
	}
	if v := os.Getenv("MOTIFQU_TOKEN"); v != "" {
		cfg.Provider.Token = v
	} else if v := os.Getenv("IBMQ_TOKEN"); v != "" && cfg.Provider.Token == "" {
		cfg.Provider.Token = v
	}
	if v := os.Getenv("MOTIFQU_BACKEND"); v != "" {
		cfg.Provider.Backend = v
	}
}
