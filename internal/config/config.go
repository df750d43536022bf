package config

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

// Config holds all configuration options for the task board client
type Config struct {
	API         APIConfig
	Channel     ChannelConfig
	Sync        SyncConfig
	Database    DatabaseConfig
	Validation  ValidationConfig
	Application ApplicationConfig
}

// APIConfig holds task server related configuration
type APIConfig struct {
	BaseURL        string        `env:"TB_API_BASE_URL"`
	RequestTimeout time.Duration `env:"TB_API_TIMEOUT"`
}

// ChannelConfig holds notification channel configuration
type ChannelConfig struct {
	ReconnectDelay   time.Duration `env:"TB_CHANNEL_RECONNECT_DELAY"`
	HandshakeTimeout time.Duration `env:"TB_CHANNEL_HANDSHAKE_TIMEOUT"`
}

// SyncConfig holds reconciliation engine configuration
type SyncConfig struct {
	PostCreateRefreshDelay time.Duration `env:"TB_SYNC_REFRESH_DELAY"`
}

// DatabaseConfig holds credential store configuration
type DatabaseConfig struct {
	Dir            string        `env:"TB_DB_DIR"`
	Filename       string        `env:"TB_DB_FILENAME"`
	WriteTimeout   time.Duration `env:"TB_DB_WRITE_TIMEOUT"`
	DirPermissions uint32        `env:"TB_DB_DIR_PERMISSIONS"`
}

// ValidationConfig holds validation rules configuration
type ValidationConfig struct {
	TitleMinLength int `env:"TB_VALIDATION_TITLE_MIN"`
	TitleMaxLength int `env:"TB_VALIDATION_TITLE_MAX"`
}

// ApplicationConfig holds application-level configuration
type ApplicationConfig struct {
	Timeout time.Duration `env:"TB_APP_TIMEOUT"`
	Verbose bool          `env:"TB_APP_VERBOSE"`
}

// NewConfig creates a new configuration with sensible defaults
func NewConfig() *Config {
	homeDir, _ := os.UserHomeDir()
	defaultDBDir := filepath.Join(homeDir, ".tb")

	return &Config{
		API: APIConfig{
			BaseURL:        "http://localhost:8080",
			RequestTimeout: 10 * time.Second,
		},
		Channel: ChannelConfig{
			ReconnectDelay:   5 * time.Second,
			HandshakeTimeout: 10 * time.Second,
		},
		Sync: SyncConfig{
			PostCreateRefreshDelay: 300 * time.Millisecond,
		},
		Database: DatabaseConfig{
			Dir:            defaultDBDir,
			Filename:       "tb.db",
			WriteTimeout:   5 * time.Second,
			DirPermissions: 0755,
		},
		Validation: ValidationConfig{
			TitleMinLength: 1,
			TitleMaxLength: 255,
		},
		Application: ApplicationConfig{
			Timeout: 60 * time.Second,
			Verbose: false,
		},
	}
}

// GetDatabasePath returns the full path to the credential database file
func (c *Config) GetDatabasePath() string {
	return filepath.Join(c.Database.Dir, c.Database.Filename)
}

// WebSocketURL derives the notification channel endpoint from the API base URL
func (c *Config) WebSocketURL() string {
	url := c.API.BaseURL
	switch {
	case strings.HasPrefix(url, "https://"):
		url = "wss://" + strings.TrimPrefix(url, "https://")
	case strings.HasPrefix(url, "http://"):
		url = "ws://" + strings.TrimPrefix(url, "http://")
	}
	return strings.TrimSuffix(url, "/") + "/ws"
}

// LoadFromEnvironment loads configuration from environment variables
func (c *Config) LoadFromEnvironment() error {
	// API configuration
	if baseURL := os.Getenv("TB_API_BASE_URL"); baseURL != "" {
		c.API.BaseURL = baseURL
	}
	if timeout := os.Getenv("TB_API_TIMEOUT"); timeout != "" {
		if d, err := time.ParseDuration(timeout); err == nil {
			c.API.RequestTimeout = d
		}
	}

	// Channel configuration
	if delay := os.Getenv("TB_CHANNEL_RECONNECT_DELAY"); delay != "" {
		if d, err := time.ParseDuration(delay); err == nil {
			c.Channel.ReconnectDelay = d
		}
	}
	if timeout := os.Getenv("TB_CHANNEL_HANDSHAKE_TIMEOUT"); timeout != "" {
		if d, err := time.ParseDuration(timeout); err == nil {
			c.Channel.HandshakeTimeout = d
		}
	}

	// Sync configuration
	if delay := os.Getenv("TB_SYNC_REFRESH_DELAY"); delay != "" {
		if d, err := time.ParseDuration(delay); err == nil {
			c.Sync.PostCreateRefreshDelay = d
		}
	}

	// Database configuration
	if dir := os.Getenv("TB_DB_DIR"); dir != "" {
		c.Database.Dir = dir
	}
	if filename := os.Getenv("TB_DB_FILENAME"); filename != "" {
		c.Database.Filename = filename
	}
	if timeout := os.Getenv("TB_DB_WRITE_TIMEOUT"); timeout != "" {
		if d, err := time.ParseDuration(timeout); err == nil {
			c.Database.WriteTimeout = d
		}
	}
	if perms := os.Getenv("TB_DB_DIR_PERMISSIONS"); perms != "" {
		if p, err := strconv.ParseUint(perms, 8, 32); err == nil {
			c.Database.DirPermissions = uint32(p)
		}
	}

	// Validation configuration
	if minLen := os.Getenv("TB_VALIDATION_TITLE_MIN"); minLen != "" {
		if n, err := strconv.Atoi(minLen); err == nil {
			c.Validation.TitleMinLength = n
		}
	}
	if maxLen := os.Getenv("TB_VALIDATION_TITLE_MAX"); maxLen != "" {
		if n, err := strconv.Atoi(maxLen); err == nil {
			c.Validation.TitleMaxLength = n
		}
	}

	// Application configuration
	if timeout := os.Getenv("TB_APP_TIMEOUT"); timeout != "" {
		if d, err := time.ParseDuration(timeout); err == nil {
			c.Application.Timeout = d
		}
	}
	if verbose := os.Getenv("TB_APP_VERBOSE"); verbose != "" {
		if b, err := strconv.ParseBool(verbose); err == nil {
			c.Application.Verbose = b
		}
	}

	return nil
}

// Validate validates the configuration and returns any errors
func (c *Config) Validate() error {
	// Validate API configuration
	if c.API.BaseURL == "" {
		return &ConfigError{Field: "api.base_url", Message: "API base URL cannot be empty"}
	}
	if !strings.HasPrefix(c.API.BaseURL, "http://") && !strings.HasPrefix(c.API.BaseURL, "https://") {
		return &ConfigError{Field: "api.base_url", Message: "API base URL must start with http:// or https://"}
	}
	if c.API.RequestTimeout <= 0 {
		return &ConfigError{Field: "api.request_timeout", Message: "request timeout must be positive"}
	}

	// Validate channel configuration
	if c.Channel.ReconnectDelay <= 0 {
		return &ConfigError{Field: "channel.reconnect_delay", Message: "reconnect delay must be positive"}
	}
	if c.Channel.HandshakeTimeout <= 0 {
		return &ConfigError{Field: "channel.handshake_timeout", Message: "handshake timeout must be positive"}
	}

	// Validate sync configuration
	if c.Sync.PostCreateRefreshDelay <= 0 {
		return &ConfigError{Field: "sync.post_create_refresh_delay", Message: "post-create refresh delay must be positive"}
	}

	// Validate database configuration
	if c.Database.Dir == "" {
		return &ConfigError{Field: "database.dir", Message: "database directory cannot be empty"}
	}
	if c.Database.Filename == "" {
		return &ConfigError{Field: "database.filename", Message: "database filename cannot be empty"}
	}
	if c.Database.WriteTimeout <= 0 {
		return &ConfigError{Field: "database.write_timeout", Message: "write timeout must be positive"}
	}

	// Validate validation configuration
	if c.Validation.TitleMinLength < 1 {
		return &ConfigError{Field: "validation.title_min_length", Message: "title minimum length must be at least 1"}
	}
	if c.Validation.TitleMaxLength < c.Validation.TitleMinLength {
		return &ConfigError{Field: "validation.title_max_length", Message: "title maximum length must be greater than minimum length"}
	}

	// Validate application configuration
	if c.Application.Timeout <= 0 {
		return &ConfigError{Field: "application.timeout", Message: "application timeout must be positive"}
	}

	return nil
}

// ConfigError represents a configuration validation error
type ConfigError struct {
	Field   string
	Message string
}

func (e *ConfigError) Error() string {
	return e.Field + ": " + e.Message
}
