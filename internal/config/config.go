// Package config loads the optional YAML configuration file.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/hammamikhairi/crunchyorder/internal/catalog"
	"github.com/hammamikhairi/crunchyorder/internal/checkout"
)

// Defaults.
const (
	DefaultBackendURL    = "http://127.0.0.1:8000"
	DefaultHTTPTimeout   = 10 * time.Second
	DefaultModelTimeout  = 30 * time.Second
	DefaultModelProvider = "gpt"
	DefaultOpenAIModel   = "gpt-4o-mini"
)

// Config is the file-level configuration. Zero fields take defaults.
type Config struct {
	BackendURL        string        `yaml:"backend_url"`
	DefaultETAMinutes int           `yaml:"default_eta_minutes"`
	HTTPTimeout       time.Duration `yaml:"http_timeout"`
	LogLevel          string        `yaml:"log_level"`

	Model struct {
		Provider string        `yaml:"provider"` // gpt | openai
		Name     string        `yaml:"name"`
		Timeout  time.Duration `yaml:"timeout"`
	} `yaml:"model"`

	Delivery struct {
		Tick           time.Duration `yaml:"tick"`
		Minute         time.Duration `yaml:"minute"`
		NotifyCooldown time.Duration `yaml:"notify_cooldown"`
		MaxEscalation  int           `yaml:"max_escalation"`
	} `yaml:"delivery"`

	Metrics struct {
		Addr string `yaml:"addr"`
	} `yaml:"metrics"`

	Menu catalog.Groups `yaml:"menu"`
}

// Default returns the compiled-in configuration.
func Default() *Config {
	c := &Config{}
	c.applyDefaults()
	return c
}

// Load reads path. A missing file is not an error and yields defaults.
func Load(path string) (*Config, error) {
	c := &Config{}
	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case errors.Is(err, fs.ErrNotExist):
		case err != nil:
			return nil, fmt.Errorf("config: reading %s: %w", path, err)
		default:
			if err := yaml.Unmarshal(data, c); err != nil {
				return nil, fmt.Errorf("config: parsing %s: %w", path, err)
			}
		}
	}
	c.applyDefaults()
	return c, nil
}

func (c *Config) applyDefaults() {
	if c.BackendURL == "" {
		c.BackendURL = DefaultBackendURL
	}
	if c.DefaultETAMinutes <= 0 {
		c.DefaultETAMinutes = checkout.DefaultETAMinutes
	}
	if c.HTTPTimeout <= 0 {
		c.HTTPTimeout = DefaultHTTPTimeout
	}
	if c.Model.Provider == "" {
		c.Model.Provider = DefaultModelProvider
	}
	if c.Model.Timeout <= 0 {
		c.Model.Timeout = DefaultModelTimeout
	}
	if c.Delivery.Tick <= 0 {
		c.Delivery.Tick = time.Second
	}
	if c.Delivery.Minute <= 0 {
		c.Delivery.Minute = time.Minute
	}
	if c.Delivery.NotifyCooldown <= 0 {
		c.Delivery.NotifyCooldown = 2 * time.Minute
	}
	if c.Delivery.MaxEscalation <= 0 {
		c.Delivery.MaxEscalation = 2
	}
	c.Menu = c.Menu.WithDefaults()
}
