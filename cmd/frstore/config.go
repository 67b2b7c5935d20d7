package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// Config holds the store daemon configuration
type Config struct {
	// DataDir holds the user/ and admin/ store directories
	DataDir string `json:"data_dir"`

	// AdminPasswordHash is the argon2id hash of the shared admin secret,
	// generated with `frstore hash-password`
	AdminPasswordHash string `json:"admin_password_hash"`

	// Logging
	AppLogPath   string `json:"app_log_path,omitempty"`   // Optional: application log file
	AuditLogPath string `json:"audit_log_path,omitempty"` // Optional: store operation log file
	LogMaxSize   int64  `json:"log_max_size,omitempty"`   // Rotation threshold in bytes
	Debug        bool   `json:"debug,omitempty"`          // Enable debug logging

	// StatusDir receives daemon health files in run mode
	StatusDir string `json:"status_dir,omitempty"`

	// Refresh intervals in seconds
	LevelRefreshInterval int `json:"level_refresh_interval,omitempty"`
	StatusUpdateInterval int `json:"status_update_interval,omitempty"`
}

// LoadConfig loads configuration from a JSON file
func LoadConfig(path string, config *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading config file: %w", err)
	}

	if err := json.Unmarshal(data, config); err != nil {
		return fmt.Errorf("parsing config file: %w", err)
	}

	if config.DataDir == "" {
		return fmt.Errorf("data_dir is required")
	}

	// Convert relative paths to absolute paths based on config file location
	configDir := filepath.Dir(path)
	if !filepath.IsAbs(config.DataDir) {
		config.DataDir = filepath.Join(configDir, config.DataDir)
	}
	if config.AppLogPath != "" && !filepath.IsAbs(config.AppLogPath) {
		config.AppLogPath = filepath.Join(configDir, config.AppLogPath)
	}
	if config.AuditLogPath != "" && !filepath.IsAbs(config.AuditLogPath) {
		config.AuditLogPath = filepath.Join(configDir, config.AuditLogPath)
	}
	if config.StatusDir != "" && !filepath.IsAbs(config.StatusDir) {
		config.StatusDir = filepath.Join(configDir, config.StatusDir)
	}

	// Set defaults for optional settings
	if config.LevelRefreshInterval == 0 {
		config.LevelRefreshInterval = 60 // 1 minute
	}
	if config.StatusUpdateInterval == 0 {
		config.StatusUpdateInterval = 30
	}

	return nil
}
