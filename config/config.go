// Package config provides suite configuration loaded from .env files and environment variables.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"net/url"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// DefaultEnvFile is read by Load when no files are named. It is optional.
const DefaultEnvFile = ".env"

// Config holds the settings of one test run. Command-line flags override these values.
type Config struct {
	APIBaseURL     string        `envconfig:"API_BASE_URL" default:"https://petstore.swagger.io/v2"`
	APIKey         string        `envconfig:"API_KEY"`
	RequestTimeout time.Duration `envconfig:"REQUEST_TIMEOUT" default:"30s"`
	Retries        int           `envconfig:"RETRIES" default:"0"`
	Debug          bool          `envconfig:"DEBUG" default:"false"`
	EndpointsFile  string        `envconfig:"ENDPOINTS_FILE"`
}

// Load reads the named .env files into the process environment, without overriding variables
// that are already set, and then builds a Config from the environment. If no files are named,
// DefaultEnvFile is read if it exists. A named file that does not exist is an error.
func Load(files ...string) (Config, error) {
	if len(files) == 0 {
		if err := godotenv.Load(DefaultEnvFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return Config{}, fmt.Errorf("error reading %s: %w", DefaultEnvFile, err)
		}
	} else if err := godotenv.Load(files...); err != nil {
		return Config{}, fmt.Errorf("error reading env files: %w", err)
	}

	var c Config
	if err := envconfig.Process("", &c); err != nil {
		return Config{}, fmt.Errorf("error getting configuration from environment: %w", err)
	}
	return c, nil
}

// Validate checks the values that a run cannot do without.
func (c Config) Validate() error {
	if c.APIBaseURL == "" {
		return errors.New("API_BASE_URL is required")
	}
	u, err := url.Parse(c.APIBaseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("API_BASE_URL %q is not an absolute URL", c.APIBaseURL)
	}
	if c.RequestTimeout <= 0 {
		return errors.New("REQUEST_TIMEOUT must be positive")
	}
	if c.Retries < 0 {
		return errors.New("RETRIES must not be negative")
	}
	return nil
}

// Headers returns the headers every request should carry.
func (c Config) Headers() map[string]string {
	if c.APIKey == "" {
		return nil
	}
	return map[string]string{"api_key": c.APIKey}
}
