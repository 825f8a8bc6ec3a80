package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the application
type Config struct {
	Server    ServerConfig
	Database  DatabaseConfig
	CORS      CORSConfig
	Planner   PlannerConfig
	Rebalance RebalanceConfig
	Backup    BackupConfig
}

// ServerConfig holds server-specific configuration
type ServerConfig struct {
	Port string
	Host string
	Addr string // Combined host:port for convenience
}

// DatabaseConfig holds database-specific configuration
type DatabaseConfig struct {
	Path string
}

// CORSConfig holds CORS-specific configuration
type CORSConfig struct {
	AllowedOrigins []string
}

// PlannerConfig holds the default allocation-planner settings. These seed
// the persisted settings on first use and can be changed at runtime.
type PlannerConfig struct {
	FeeFlat   float64
	BufferPct float64
}

// RebalanceConfig holds the default drift-detection settings.
type RebalanceConfig struct {
	ThresholdPct float64
	Enabled      bool
}

// BackupConfig holds the scheduled snapshot backup settings. Key, when set,
// must be a base64 fernet key; backups are then written encrypted.
type BackupConfig struct {
	Dir      string
	Schedule string
	Key      string
}

// Load reads configuration from environment variables and .env file
func Load() (*Config, error) {
	// Try to load .env file (ignore error if it doesn't exist)
	_ = godotenv.Load()

	config := &Config{
		Server: ServerConfig{
			Port: getEnv("SERVER_PORT", "5001"),
			Host: getEnv("SERVER_HOST", "localhost"),
		},
		Database: DatabaseConfig{
			Path: getEnv("DB_PATH", "./data/portfolio_tracker.db"),
		},
		CORS: CORSConfig{
			AllowedOrigins: getEnvList("CORS_ALLOWED_ORIGINS", []string{
				"http://localhost:3000",
				"http://localhost",
			}),
		},
		Planner: PlannerConfig{
			FeeFlat:   getEnvFloat("PLANNER_FEE_FLAT", 0),
			BufferPct: getEnvFloat("PLANNER_BUFFER_PCT", 0),
		},
		Rebalance: RebalanceConfig{
			ThresholdPct: getEnvFloat("REBALANCE_THRESHOLD_PCT", 5),
			Enabled:      getEnvBool("REBALANCE_ENABLED", true),
		},
		Backup: BackupConfig{
			Dir:      getEnv("BACKUP_DIR", ""),
			Schedule: getEnv("BACKUP_SCHEDULE", "0 3 * * *"),
			Key:      getEnv("BACKUP_KEY", ""),
		},
	}

	// Combine host and port
	config.Server.Addr = fmt.Sprintf("%s:%s", config.Server.Host, config.Server.Port)

	return config, nil
}

// getEnv gets an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

// getEnvList gets a comma-separated environment variable or returns a
// default value. Entries are trimmed; empty entries are dropped.
func getEnvList(key string, defaultValue []string) []string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	var list []string
	for _, entry := range strings.Split(value, ",") {
		if entry = strings.TrimSpace(entry); entry != "" {
			list = append(list, entry)
		}
	}
	if len(list) == 0 {
		return defaultValue
	}
	return list
}

// getEnvFloat gets a float environment variable or returns a default value.
// Unparseable values fall back to the default.
func getEnvFloat(key string, defaultValue float64) float64 {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	parsed, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return defaultValue
	}
	return parsed
}

// getEnvBool gets a boolean environment variable or returns a default value.
func getEnvBool(key string, defaultValue bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	parsed, err := strconv.ParseBool(value)
	if err != nil {
		return defaultValue
	}
	return parsed
}
