package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/knadh/koanf/parsers/toml/v2"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

var (
	ErrConfigFileNotFound    = errors.New("could not find config file in any config path")
	ErrConfigVersionMissing  = errors.New("config file is missing version field")
	ErrConfigVersionMismatch = errors.New("config file version mismatch")
)

// Current version of the config file.
const (
	CurrentCommonVersion = 1
	CurrentWorkerVersion = 1
	CurrentAPIVersion    = 1
)

// Config represents the entire application configuration.
type Config struct {
	Common CommonConfig
	Worker WorkerConfig
	API    APIConfig
}

// CommonConfig contains configuration shared between the worker and the API.
type CommonConfig struct {
	// Version of the common config.
	Version    int        `koanf:"version"`
	Debug      Debug      `koanf:"debug"`
	PostgreSQL PostgreSQL `koanf:"postgresql"`
	Redis      Redis      `koanf:"redis"`
	Quota      Quota      `koanf:"quota"`
	Limits     Limits     `koanf:"limits"`
	Platforms  Platforms  `koanf:"platforms"`
}

// WorkerConfig contains scan worker specific configuration.
type WorkerConfig struct {
	// Version of the worker config.
	Version int `koanf:"version"`
	// Startup delay in milliseconds.
	StartupDelay int `koanf:"startup_delay"`
	// Minutes a connection must wait between background scans.
	ScanInterval int `koanf:"scan_interval"`
	// Number of due connections claimed per polling round.
	BatchSize int `koanf:"batch_size"`
	// Scans run concurrently within one batch.
	ConcurrentScans int `koanf:"concurrent_scans"`
	// Maximum content items walked per scan.
	MaxContents int `koanf:"max_contents"`
	// Maximum comments fetched per content item.
	MaxCommentsPerContent int `koanf:"max_comments_per_content"`
}

// APIConfig contains REST API specific configuration.
type APIConfig struct {
	// Version of the API config.
	Version int `koanf:"version"`
	// Listen address, e.g. ":8080".
	ListenAddr string    `koanf:"listen_addr"`
	RateLimit  RateLimit `koanf:"rate_limit"`
}

// RateLimit contains per-client request limiting configuration.
type RateLimit struct {
	// Requests allowed per second per client IP.
	RequestsPerSecond float64 `koanf:"requests_per_second"`
	// Burst size per client IP.
	BurstSize int `koanf:"burst_size"`
}

// Debug contains debug-related configuration.
type Debug struct {
	// Log level (debug, info, warn, error).
	LogLevel string `koanf:"log_level"`
	// Maximum log sessions to retain on disk.
	MaxLogsToKeep int `koanf:"max_logs_to_keep"`
}

// PostgreSQL contains database connection configuration.
type PostgreSQL struct {
	// Database hostname.
	Host string `koanf:"host"`
	// Database port.
	Port int `koanf:"port"`
	// Database username.
	User string `koanf:"user"`
	// Database password.
	Password string `koanf:"password"`
	// Database name.
	DBName string `koanf:"db_name"`
	// Maximum open connections.
	MaxOpenConns int `koanf:"max_open_conns"`
	// Maximum idle connections.
	MaxIdleConns int `koanf:"max_idle_conns"`
	// Connection lifetime in minutes.
	MaxLifetime int `koanf:"max_lifetime"`
	// Idle timeout in minutes.
	MaxIdleTime int `koanf:"max_idle_time"`
}

// Redis contains Redis connection configuration.
type Redis struct {
	// Redis hostname.
	Host string `koanf:"host"`
	// Redis port.
	Port int `koanf:"port"`
	// Redis username.
	Username string `koanf:"username"`
	// Redis password.
	Password string `koanf:"password"`
}

// Quota contains the metered-platform budget configuration.
type Quota struct {
	// Daily quota units shared across all scans of a platform.
	DailyLimit int64 `koanf:"daily_limit"`
	// Requests allowed per user per minute.
	PerMinuteLimit int64 `koanf:"per_minute_limit"`
}

// Limits contains subscription enforcement configuration.
type Limits struct {
	// Moderation actions allowed per user per month.
	MonthlyActions int64 `koanf:"monthly_actions"`
}

// Platforms contains per-platform API configuration.
type Platforms struct {
	YouTube YouTube `koanf:"youtube"`
}

// YouTube contains Data API configuration.
type YouTube struct {
	// Base URL for the Data API.
	APIBaseURL string `koanf:"api_base_url"`
	// OAuth token endpoint for refresh grants.
	TokenURL string `koanf:"token_url"`
	// OAuth client ID.
	ClientID string `koanf:"client_id"`
	// OAuth client secret.
	ClientSecret string `koanf:"client_secret"`
	// Request timeout in milliseconds.
	RequestTimeout int `koanf:"request_timeout"`
}

// LoadConfig loads the configuration from the specified file.
// Returns the config along with the used config directory.
func LoadConfig() (*Config, string, error) {
	k := koanf.New(".")

	// Get user's home directory
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return nil, "", fmt.Errorf("failed to get home directory: %w", err)
	}

	// List search paths
	configPaths := []string{
		".modsweep",
		homeDir + "/.modsweep/config",
		"/etc/modsweep/config",
		"/app/config",
		"config",
		".",
	}

	// Load all config files
	var usedConfigPath string

	configFiles := []string{"common", "worker", "api"}
	for _, configName := range configFiles {
		configLoaded := false

		for _, path := range configPaths {
			configPath := fmt.Sprintf("%s/%s.toml", path, configName)
			if err := k.Load(file.Provider(configPath), toml.Parser()); err == nil {
				configLoaded = true

				if usedConfigPath == "" {
					usedConfigPath = path
				}

				break
			}
		}

		if !configLoaded {
			return nil, "", fmt.Errorf("%w: %s.toml", ErrConfigFileNotFound, configName)
		}
	}

	var config Config
	if err := k.Unmarshal("", &config); err != nil {
		return nil, "", fmt.Errorf("error unmarshaling config: %w", err)
	}

	// Check versions for each config file
	if err := checkConfigVersion("common", config.Common.Version, CurrentCommonVersion); err != nil {
		return nil, "", err
	}

	if err := checkConfigVersion("worker", config.Worker.Version, CurrentWorkerVersion); err != nil {
		return nil, "", err
	}

	if err := checkConfigVersion("api", config.API.Version, CurrentAPIVersion); err != nil {
		return nil, "", err
	}

	return &config, usedConfigPath, nil
}

// checkConfigVersion checks if the config file version is correct.
func checkConfigVersion(name string, current, expected int) error {
	if current == 0 {
		return fmt.Errorf("%w: %s.toml", ErrConfigVersionMissing, name)
	}

	if current != expected {
		return fmt.Errorf("%w: %s.toml (got: %d, expected: %d)",
			ErrConfigVersionMismatch, name, current, expected)
	}

	return nil
}
