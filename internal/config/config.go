// Package config loads service settings from the environment.
package config

import (
	"errors"
	"fmt"
	"net/url"
	"time"

	"github.com/caarlos0/env/v11"
)

// DefaultRelayEndpoint is the Formspree form the site posts to.
const DefaultRelayEndpoint = "https://formspree.io/f/mkovqlpb"

// Config holds everything the serve and send commands need.
type Config struct {
	Port          string        `env:"PORT"                     envDefault:"8080"`
	RelayEndpoint string        `env:"PORTFOLIO_RELAY_ENDPOINT" envDefault:"https://formspree.io/f/mkovqlpb"`
	RelayTimeout  time.Duration `env:"PORTFOLIO_RELAY_TIMEOUT"  envDefault:"10s"`
	ResetDelay    time.Duration `env:"PORTFOLIO_RESET_DELAY"    envDefault:"5s"`
	ContentFile   string        `env:"PORTFOLIO_CONTENT_FILE"`
	LogLevel      string        `env:"PORTFOLIO_LOG_LEVEL"      envDefault:"info"`
	OTelEndpoint  string        `env:"PORTFOLIO_OTEL_ENDPOINT"`
}

// Load parses the environment into a Config and validates it.
func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate reports the first setting that cannot work.
func (c Config) Validate() error {
	if c.Port == "" {
		return errors.New("port must not be empty")
	}
	u, err := url.Parse(c.RelayEndpoint)
	if err != nil {
		return fmt.Errorf("relay endpoint: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" || u.Host == "" {
		return fmt.Errorf("relay endpoint %q must be an absolute http(s) URL", c.RelayEndpoint)
	}
	if c.RelayTimeout <= 0 {
		return fmt.Errorf("relay timeout must be positive, got %s", c.RelayTimeout)
	}
	if c.ResetDelay <= 0 {
		return fmt.Errorf("reset delay must be positive, got %s", c.ResetDelay)
	}
	return nil
}

// Addr is the listen address for the HTTP server.
func (c Config) Addr() string {
	return ":" + c.Port
}
