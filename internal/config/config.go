// Package config loads runtime settings from an optional YAML file and the
// environment. Nothing is ever written back.
package config

import (
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

type Config struct {
	HTTPAddr        string
	RefreshInterval time.Duration
	ProbeTarget     string
	ProbeTimeout    time.Duration
	ProbeInterval   time.Duration
	AllowedOrigins  []string
}

// fileConfig mirrors Config for YAML decoding; durations are strings like
// "500ms" or "2s"
type fileConfig struct {
	HTTPAddr        string   `yaml:"http_addr"`
	RefreshInterval string   `yaml:"refresh_interval"`
	ProbeTarget     string   `yaml:"probe_target"`
	ProbeTimeout    string   `yaml:"probe_timeout"`
	ProbeInterval   string   `yaml:"probe_interval"`
	AllowedOrigins  []string `yaml:"allowed_origins"`
}

// Default returns the built-in settings: 1 s tick, Google DNS probe with a
// 1 s connect timeout and a 1 s pause between probes.
func Default() *Config {
	return &Config{
		HTTPAddr:        "localhost:8080",
		RefreshInterval: time.Second,
		ProbeTarget:     "8.8.8.8:53",
		ProbeTimeout:    time.Second,
		ProbeInterval:   time.Second,
	}
}

// Load builds the configuration: defaults, then the YAML file at path if it
// exists, then environment variables (a .env file is honored first).
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		if err := applyFile(cfg, path); err != nil {
			return nil, err
		}
	}

	godotenv.Load()

	if addr := os.Getenv("HTTP_ADDR"); addr != "" {
		cfg.HTTPAddr = addr
	}
	if target := os.Getenv("PROBE_TARGET"); target != "" {
		cfg.ProbeTarget = target
	}
	if err := overrideDuration(&cfg.RefreshInterval, os.Getenv("REFRESH_INTERVAL"), "REFRESH_INTERVAL"); err != nil {
		return nil, err
	}
	if err := overrideDuration(&cfg.ProbeTimeout, os.Getenv("PROBE_TIMEOUT"), "PROBE_TIMEOUT"); err != nil {
		return nil, err
	}
	if err := overrideDuration(&cfg.ProbeInterval, os.Getenv("PROBE_INTERVAL"), "PROBE_INTERVAL"); err != nil {
		return nil, err
	}

	if cfg.RefreshInterval <= 0 {
		cfg.RefreshInterval = time.Second
	}
	if cfg.ProbeTimeout <= 0 {
		cfg.ProbeTimeout = time.Second
	}
	if cfg.ProbeInterval <= 0 {
		cfg.ProbeInterval = time.Second
	}

	return cfg, nil
}

func applyFile(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("reading config: %w", err)
	}

	var fc fileConfig
	if err := yaml.Unmarshal(data, &fc); err != nil {
		return fmt.Errorf("parsing config: %w", err)
	}

	if fc.HTTPAddr != "" {
		cfg.HTTPAddr = fc.HTTPAddr
	}
	if fc.ProbeTarget != "" {
		cfg.ProbeTarget = fc.ProbeTarget
	}
	if len(fc.AllowedOrigins) > 0 {
		cfg.AllowedOrigins = fc.AllowedOrigins
	}
	if err := overrideDuration(&cfg.RefreshInterval, fc.RefreshInterval, "refresh_interval"); err != nil {
		return err
	}
	if err := overrideDuration(&cfg.ProbeTimeout, fc.ProbeTimeout, "probe_timeout"); err != nil {
		return err
	}
	if err := overrideDuration(&cfg.ProbeInterval, fc.ProbeInterval, "probe_interval"); err != nil {
		return err
	}

	return nil
}

func overrideDuration(dst *time.Duration, raw, name string) error {
	if raw == "" {
		return nil
	}
	parsed, err := time.ParseDuration(raw)
	if err != nil {
		return fmt.Errorf("parsing %s: %w", name, err)
	}
	*dst = parsed
	return nil
}
