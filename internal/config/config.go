package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/ytget/departure-board/internal/transit"
)

// Default values
const (
	DefaultPollInterval    = 5 * time.Second
	DefaultFetchTimeout    = 20 * time.Second
	DefaultFilterTerminals = true
	DefaultStyle           = StyleBoard
	DefaultLanguage        = "system"
	MinPollInterval        = time.Second
)

// Config is the runtime configuration of the board
type Config struct {
	BaseURL         string        `yaml:"base_url"`
	Station         string        `yaml:"station"`
	Limit           int           `yaml:"limit"`
	Terminals       []string      `yaml:"terminals"`
	FilterTerminals bool          `yaml:"filter_terminals"`
	PollInterval    time.Duration `yaml:"poll_interval"`
	FetchTimeout    time.Duration `yaml:"fetch_timeout"`
	Style           StyleName     `yaml:"style"`
	Language        string        `yaml:"language"`
}

// Default returns the built-in configuration
func Default() Config {
	client := transit.DefaultConfig()
	return Config{
		BaseURL:         client.BaseURL,
		Station:         client.Station,
		Limit:           client.Limit,
		Terminals:       client.Terminals,
		FilterTerminals: DefaultFilterTerminals,
		PollInterval:    DefaultPollInterval,
		FetchTimeout:    DefaultFetchTimeout,
		Style:           DefaultStyle,
		Language:        DefaultLanguage,
	}
}

// LoadFile overlays the YAML file at path onto base. A missing file returns
// base unchanged.
func LoadFile(path string, base Config) (Config, error) {
	if path == "" {
		return base, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return base, nil
		}
		return base, errors.Wrap(err, "failed to read config file")
	}

	cfg := base
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return base, errors.Wrapf(err, "failed to parse config file %s", path)
	}

	if err := cfg.Validate(); err != nil {
		return base, errors.Wrapf(err, "invalid config file %s", path)
	}
	return cfg, nil
}

// Validate checks the configuration for values the board cannot run with
func (c Config) Validate() error {
	if strings.TrimSpace(c.Station) == "" {
		return fmt.Errorf("station must not be empty")
	}
	if c.Limit <= 0 {
		return fmt.Errorf("limit must be positive, got %d", c.Limit)
	}
	if c.PollInterval < MinPollInterval {
		return fmt.Errorf("poll_interval must be at least %s, got %s", MinPollInterval, c.PollInterval)
	}
	if c.FetchTimeout <= 0 {
		return fmt.Errorf("fetch_timeout must be positive, got %s", c.FetchTimeout)
	}
	if _, ok := LookupStyle(c.Style); !ok {
		return fmt.Errorf("unknown style %q", c.Style)
	}
	return nil
}

// ClientConfig returns the fetcher configuration
func (c Config) ClientConfig() transit.Config {
	cfg := transit.DefaultConfig()
	cfg.BaseURL = c.BaseURL
	cfg.Station = c.Station
	cfg.Limit = c.Limit
	cfg.Terminals = c.Terminals
	return cfg
}
