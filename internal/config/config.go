// Package config loads server settings from the environment.
package config

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// Config holds all server configuration. Values come from FORMCLONE_*
// environment variables.
type Config struct {
	Addr         string        `envconfig:"ADDR" default:":8080"`
	ReadTimeout  time.Duration `envconfig:"READ_TIMEOUT" default:"10s"`
	WriteTimeout time.Duration `envconfig:"WRITE_TIMEOUT" default:"30s"`

	// FetchTimeout caps how long one upstream form fetch may take.
	FetchTimeout time.Duration `envconfig:"FETCH_TIMEOUT" default:"15s"`

	// UserAgent overrides the agent sent on upstream fetches.
	UserAgent string `envconfig:"USER_AGENT"`

	// StoreTTL bounds how long a cloned form waits for its submission.
	StoreTTL time.Duration `envconfig:"STORE_TTL" default:"1h"`

	LogLevel    string `envconfig:"LOG_LEVEL" default:"info"`
	Development bool   `envconfig:"DEV" default:"false"`
}

// Load reads configuration from the environment.
func Load() (Config, error) {
	var cfg Config
	if err := envconfig.Process("formclone", &cfg); err != nil {
		return Config{}, fmt.Errorf("config: process environment: %w", err)
	}
	return cfg, nil
}
