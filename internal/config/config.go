// Package config provides configuration management functionality.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Config holds application configuration
type Config struct {
	DataDir  string // Base directory for all databases (always absolute)
	Port     int
	LogLevel string
	LogFile  string // Optional rotated log file; empty disables file output
	DevMode  bool

	// Identity provider (managed auth) settings
	IdentityBaseURL string // REST endpoint of the identity provider
	IdentityAPIKey  string

	// Origin host patterns allowed to open websocket sessions
	// (e.g. "app.example.com", "*.example.com"). "*" allows any origin.
	AllowedOrigins []string

	// Backup settings (S3-compatible object storage)
	Backup *BackupConfig
}

// BackupConfig holds object-storage backup configuration.
// Backups are disabled when no bucket is configured.
type BackupConfig struct {
	Enabled         bool
	Endpoint        string // S3-compatible endpoint URL
	Region          string
	Bucket          string
	AccessKeyID     string
	SecretAccessKey string
	Schedule        string // cron spec, JST
	RetainCount     int    // number of backups kept in the bucket
}

// Load reads configuration from environment variables.
// A .env file in the working directory is honored when present.
func Load() (*Config, error) {
	_ = godotenv.Load()

	// Determine data directory with fallback logic:
	// 1. JOURNAL_DATA_DIR environment variable
	// 2. ./data
	// Always resolved to an absolute path, created if missing.
	dataDir := getEnv("JOURNAL_DATA_DIR", "data")
	absDataDir, err := filepath.Abs(dataDir)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve data directory path: %w", err)
	}
	if err := os.MkdirAll(absDataDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}

	cfg := &Config{
		DataDir:         absDataDir,
		Port:            getEnvAsInt("PORT", 8080),
		LogLevel:        getEnv("LOG_LEVEL", "info"),
		LogFile:         getEnv("LOG_FILE", ""),
		DevMode:         getEnvAsBool("DEV_MODE", false),
		IdentityBaseURL: getEnv("IDENTITY_BASE_URL", ""),
		IdentityAPIKey:  getEnv("IDENTITY_API_KEY", ""),
		AllowedOrigins:  getEnvAsSlice("ALLOWED_ORIGINS", []string{"*"}),
		Backup:          loadBackupConfig(),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks required fields and value ranges.
func (c *Config) Validate() error {
	if c.Port <= 0 || c.Port > 65535 {
		return fmt.Errorf("invalid port: %d", c.Port)
	}
	switch c.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("invalid log level: %s", c.LogLevel)
	}
	if c.Backup != nil && c.Backup.Enabled && c.Backup.Bucket == "" {
		return fmt.Errorf("backup enabled but BACKUP_BUCKET is empty")
	}
	return nil
}

// loadBackupConfig reads backup settings. Backups are opt-in: enabled only
// when BACKUP_BUCKET is set.
func loadBackupConfig() *BackupConfig {
	bucket := getEnv("BACKUP_BUCKET", "")
	return &BackupConfig{
		Enabled:         bucket != "",
		Endpoint:        getEnv("BACKUP_ENDPOINT", ""),
		Region:          getEnv("BACKUP_REGION", "auto"),
		Bucket:          bucket,
		AccessKeyID:     getEnv("BACKUP_ACCESS_KEY_ID", ""),
		SecretAccessKey: getEnv("BACKUP_SECRET_ACCESS_KEY", ""),
		Schedule:        getEnv("BACKUP_SCHEDULE", "0 3 * * *"),
		RetainCount:     getEnvAsInt("BACKUP_RETAIN_COUNT", 14),
	}
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	if value := os.Getenv(key); value != "" {
		if i, err := strconv.Atoi(value); err == nil {
			return i
		}
	}
	return fallback
}

func getEnvAsSlice(key string, fallback []string) []string {
	if value := os.Getenv(key); value != "" {
		parts := strings.Split(value, ",")
		for i := range parts {
			parts[i] = strings.TrimSpace(parts[i])
		}
		return parts
	}
	return fallback
}

func getEnvAsBool(key string, fallback bool) bool {
	if value := os.Getenv(key); value != "" {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return fallback
}
