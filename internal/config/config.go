// Package config loads and validates application configuration from a YAML
// file with environment variable overrides.
package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"gopkg.in/yaml.v3"

	"github.com/dvornik/boorubot/internal/constants"
)

// AppConfig represents the entire application configuration
type AppConfig struct {
	App      AppSettings      `yaml:"app"`
	Server   ServerSettings   `yaml:"server"`
	Database DatabaseSettings `yaml:"database"`
	Booru    BooruSettings    `yaml:"booru"`
	Logging  LoggingSettings  `yaml:"logging"`
}

// AppSettings contains general application settings
type AppSettings struct {
	Environment string `yaml:"environment" env:"APP_ENV"`
	Name        string `yaml:"name" env:"APP_NAME"`
	Version     string `yaml:"version" env:"APP_VERSION"`
}

// ServerSettings contains HTTP server settings
type ServerSettings struct {
	Host            string        `yaml:"host" env:"SERVER_HOST"`
	Port            int           `yaml:"port" env:"SERVER_PORT"`
	ReadTimeout     time.Duration `yaml:"read_timeout" env:"SERVER_READ_TIMEOUT"`
	WriteTimeout    time.Duration `yaml:"write_timeout" env:"SERVER_WRITE_TIMEOUT"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" env:"SERVER_SHUTDOWN_TIMEOUT"`
}

// DatabaseSettings contains settings-store connection settings.
// Driver selects between mysql and sqlite3; Path is only used by sqlite3.
type DatabaseSettings struct {
	Driver   string `yaml:"driver" env:"DB_DRIVER"`
	Host     string `yaml:"host" env:"DB_HOST"`
	Port     int    `yaml:"port" env:"DB_PORT"`
	Name     string `yaml:"name" env:"DB_NAME"`
	User     string `yaml:"user" env:"DB_USER"`
	Password string `yaml:"password" env:"DB_PASSWORD"`
	Path     string `yaml:"path" env:"DB_PATH"`
	MaxConns int    `yaml:"max_conns" env:"DB_MAX_CONNS"`
	MinConns int    `yaml:"min_conns" env:"DB_MIN_CONNS"`
}

// BooruSettings contains upstream image-board API settings.
// APIKey and UserID form the optional static credential pair: both must be
// present for authenticated requests, otherwise neither is sent.
type BooruSettings struct {
	BaseURL     string        `yaml:"base_url" env:"BOORU_BASE_URL"`
	APIKey      string        `yaml:"api_key" env:"BOORU_API_KEY"`
	UserID      string        `yaml:"user_id" env:"BOORU_USER_ID"`
	Timeout     time.Duration `yaml:"timeout" env:"BOORU_TIMEOUT"`
	SearchLimit int           `yaml:"search_limit" env:"BOORU_SEARCH_LIMIT"`
}

// LoggingSettings contains logging configuration
type LoggingSettings struct {
	Level      string `yaml:"level" env:"LOG_LEVEL"`
	Format     string `yaml:"format" env:"LOG_FORMAT"`
	RequestLog bool   `yaml:"request_log" env:"LOG_REQUESTS"`
}

// ConnectionString returns the database connection string for the configured
// driver.
func (dbs *DatabaseSettings) ConnectionString() string {
	if dbs.Driver == constants.DriverSQLite {
		return dbs.Path
	}

	// MySQL connection string format: username:password@tcp(host:port)/dbname
	password := dbs.Password
	if password != "" {
		password = ":" + password
	}

	return fmt.Sprintf(
		"%s%s@tcp(%s:%d)/%s?parseTime=true&charset=utf8mb4&collation=utf8mb4_unicode_ci",
		dbs.User, password, dbs.Host, dbs.Port, dbs.Name,
	)
}

// ServerAddress returns the complete server address
func (ss *ServerSettings) ServerAddress() string {
	return fmt.Sprintf("%s:%d", ss.Host, ss.Port)
}

// HasCredentials reports whether the full credential pair is configured.
func (bs *BooruSettings) HasCredentials() bool {
	return bs.APIKey != "" && bs.UserID != ""
}

// IsDevelopment checks if the application is running in development mode
func (as *AppSettings) IsDevelopment() bool {
	return strings.ToLower(as.Environment) == constants.EnvDevelopment
}

// IsProduction checks if the application is running in production mode
func (as *AppSettings) IsProduction() bool {
	return strings.ToLower(as.Environment) == constants.EnvProduction
}

// IsTesting checks if the application is running in testing mode
func (as *AppSettings) IsTesting() bool {
	return strings.ToLower(as.Environment) == constants.EnvTesting
}

var (
	// cfg holds the current application configuration
	cfg *AppConfig
)

// Load loads the configuration from a config file and environment variables
func Load(configPath string) (*AppConfig, error) {
	config := &AppConfig{}

	// Load configuration from file if it exists
	if _, err := os.Stat(configPath); err == nil {
		data, err := os.ReadFile(configPath)
		if err != nil {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}

		if err := yaml.Unmarshal(data, config); err != nil {
			return nil, fmt.Errorf("error parsing config file: %w", err)
		}
	}

	// Override with environment variables
	if err := LoadEnv(config); err != nil {
		return nil, fmt.Errorf("error loading environment variables: %w", err)
	}

	// Set defaults for missing values
	setDefaults(config)

	// Validate the configuration
	if err := validateConfig(config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	cfg = config
	logConfig(config)

	return config, nil
}

// Get returns the current application configuration
func Get() *AppConfig {
	if cfg == nil {
		log.Fatal().Msg("configuration not loaded")
	}
	return cfg
}

// setDefaults sets default values for any missing configuration
func setDefaults(config *AppConfig) {
	if config.App.Environment == "" {
		config.App.Environment = constants.EnvDevelopment
	}
	if config.App.Name == "" {
		config.App.Name = constants.DefaultAppName
	}
	if config.App.Version == "" {
		config.App.Version = "1.0.0"
	}

	if config.Server.Host == "" {
		config.Server.Host = constants.DefaultServerHost
	}
	if config.Server.Port == 0 {
		config.Server.Port = constants.DefaultServerPort
	}
	if config.Server.ReadTimeout == 0 {
		config.Server.ReadTimeout = constants.DefaultReadTimeout
	}
	if config.Server.WriteTimeout == 0 {
		config.Server.WriteTimeout = constants.DefaultWriteTimeout
	}
	if config.Server.ShutdownTimeout == 0 {
		config.Server.ShutdownTimeout = constants.DefaultShutdownTimeout
	}

	if config.Database.Driver == "" {
		config.Database.Driver = constants.DriverSQLite
	}
	if config.Database.Path == "" {
		config.Database.Path = constants.DefaultSQLitePath
	}
	if config.Database.MaxConns == 0 {
		config.Database.MaxConns = constants.DefaultDBMaxConnections
	}
	if config.Database.MinConns == 0 {
		config.Database.MinConns = constants.DefaultDBMinConnections
	}

	if config.Booru.BaseURL == "" {
		config.Booru.BaseURL = constants.DefaultBooruBaseURL
	}
	if config.Booru.Timeout == 0 {
		config.Booru.Timeout = constants.DefaultBooruTimeout
	}
	if config.Booru.SearchLimit == 0 {
		config.Booru.SearchLimit = constants.MaxPostLimit
	}

	if config.Logging.Level == "" {
		config.Logging.Level = constants.DefaultLogLevel
	}
	if config.Logging.Format == "" {
		config.Logging.Format = constants.DefaultLogFormat
	}
}

// validateConfig checks the configuration for invalid values
func validateConfig(config *AppConfig) error {
	if config.Server.Port < 1 || config.Server.Port > 65535 {
		return fmt.Errorf("server port %d is out of range", config.Server.Port)
	}

	switch config.Database.Driver {
	case constants.DriverMySQL:
		if config.Database.Host == "" || config.Database.Name == "" {
			return fmt.Errorf("mysql driver requires database host and name")
		}
	case constants.DriverSQLite:
		if config.Database.Path == "" {
			return fmt.Errorf("sqlite3 driver requires a database path")
		}
	default:
		return fmt.Errorf("unsupported database driver %q", config.Database.Driver)
	}

	if config.Booru.BaseURL == "" {
		return fmt.Errorf("booru base URL must be set")
	}
	if !strings.HasPrefix(config.Booru.BaseURL, "http://") && !strings.HasPrefix(config.Booru.BaseURL, "https://") {
		return fmt.Errorf("booru base URL %q must include a scheme", config.Booru.BaseURL)
	}

	// An API key without a user ID (or vice versa) is a misconfiguration:
	// the upstream rejects half a credential pair.
	if (config.Booru.APIKey == "") != (config.Booru.UserID == "") {
		return fmt.Errorf("booru api_key and user_id must be configured together")
	}

	return nil
}

// logConfig logs the loaded configuration with credentials hidden
func logConfig(config *AppConfig) {
	log.Info().
		Str("environment", config.App.Environment).
		Str("server", config.Server.ServerAddress()).
		Str("db_driver", config.Database.Driver).
		Str("booru_base_url", config.Booru.BaseURL).
		Bool("booru_authenticated", config.Booru.HasCredentials()).
		Str("log_level", config.Logging.Level).
		Msg("Configuration loaded")
}
