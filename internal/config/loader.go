package config

import (
	"time"
)

// Loader handles loading configuration from multiple sources
type Loader struct {
	config *Config
}

// NewLoader creates a new configuration loader
func NewLoader() *Loader {
	return &Loader{
		config: NewConfig(),
	}
}

// Load loads configuration using the cascading strategy:
// 1. Start with defaults
// 2. Override with environment variables
// 3. Override with command line flags (handled by cobra)
func (l *Loader) Load() (*Config, error) {
	// Step 1: Start with defaults (already done in NewConfig)

	// Step 2: Load from environment variables
	if err := l.config.LoadFromEnvironment(); err != nil {
		return nil, err
	}

	// Step 3: Validate the configuration
	if err := l.config.Validate(); err != nil {
		return nil, err
	}

	return l.config, nil
}

// LoadWithOverrides loads configuration and applies command line overrides
func (l *Loader) LoadWithOverrides(overrides *ConfigOverrides) (*Config, error) {
	// Load base configuration
	config, err := l.Load()
	if err != nil {
		return nil, err
	}

	// Apply command line overrides
	if overrides != nil {
		l.applyOverrides(config, overrides)
	}

	// Re-validate after applying overrides
	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

// ConfigOverrides holds command line flag overrides
type ConfigOverrides struct {
	// API overrides
	APIBaseURL        *string
	APIRequestTimeout *time.Duration

	// Channel overrides
	ReconnectDelay   *time.Duration
	HandshakeTimeout *time.Duration

	// Sync overrides
	PostCreateRefreshDelay *time.Duration

	// Database overrides
	DBDir      *string
	DBFilename *string

	// Application overrides
	Timeout *time.Duration
	Verbose *bool
}

// applyOverrides applies command line overrides to the configuration
func (l *Loader) applyOverrides(config *Config, overrides *ConfigOverrides) {
	// API overrides
	if overrides.APIBaseURL != nil {
		config.API.BaseURL = *overrides.APIBaseURL
	}
	if overrides.APIRequestTimeout != nil {
		config.API.RequestTimeout = *overrides.APIRequestTimeout
	}

	// Channel overrides
	if overrides.ReconnectDelay != nil {
		config.Channel.ReconnectDelay = *overrides.ReconnectDelay
	}
	if overrides.HandshakeTimeout != nil {
		config.Channel.HandshakeTimeout = *overrides.HandshakeTimeout
	}

	// Sync overrides
	if overrides.PostCreateRefreshDelay != nil {
		config.Sync.PostCreateRefreshDelay = *overrides.PostCreateRefreshDelay
	}

	// Database overrides
	if overrides.DBDir != nil {
		config.Database.Dir = *overrides.DBDir
	}
	if overrides.DBFilename != nil {
		config.Database.Filename = *overrides.DBFilename
	}

	// Application overrides
	if overrides.Timeout != nil {
		config.Application.Timeout = *overrides.Timeout
	}
	if overrides.Verbose != nil {
		config.Application.Verbose = *overrides.Verbose
	}
}
