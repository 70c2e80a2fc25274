package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config holds user preferences
type Config struct {
	DefaultSort   string `yaml:"default_sort" json:"default_sort"`     // recent, oldest, title_asc, title_desc
	ConfirmDelete bool   `yaml:"confirm_delete" json:"confirm_delete"` // Require confirmation for delete
	DarkMode      bool   `yaml:"dark_mode" json:"dark_mode"`           // Initial theme; runtime state lives in storage
	ListenAddr    string `yaml:"listen_addr" json:"listen_addr"`       // Address for `nota serve`

	// Logging configuration
	LogLevel   string `yaml:"log_level" json:"log_level"`     // Log level: DEBUG, INFO, WARN, ERROR
	LogFile    string `yaml:"log_file" json:"log_file"`       // Path to log file
	LogConsole bool   `yaml:"log_console" json:"log_console"` // Enable console logging
}

// DefaultConfig returns default settings
func DefaultConfig() *Config {
	home, _ := os.UserHomeDir()
	logPath := ""
	if home != "" {
		logPath = filepath.Join(home, ".config", "nota", "nota.log")
	}

	return &Config{
		DefaultSort:   "recent",
		ConfirmDelete: true,
		DarkMode:      true,
		ListenAddr:    getEnv("NOTA_LISTEN_ADDR", "127.0.0.1:8484"),
		LogLevel:      getEnv("NOTA_LOG_LEVEL", "INFO"),
		LogFile:       getEnv("NOTA_LOG_FILE", logPath),
		LogConsole:    getEnv("NOTA_LOG_CONSOLE", "false") == "true",
	}
}

// getEnv gets an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// path returns the config file location: ~/.config/nota/config.yaml
func path() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "nota", "config.yaml"), nil
}

// Load loads config from ~/.config/nota/config.yaml, returning defaults
// when the file does not exist.
func Load() (*Config, error) {
	configPath, err := path()
	if err != nil {
		return nil, err
	}
	return LoadFrom(configPath)
}

// LoadFrom loads config from the given path.
func LoadFrom(configPath string) (*Config, error) {
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return DefaultConfig(), nil
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	return cfg, nil
}

// Save saves config to ~/.config/nota/config.yaml
func (c *Config) Save() error {
	configPath, err := path()
	if err != nil {
		return err
	}
	return c.SaveTo(configPath)
}

// SaveTo saves config to the given path, creating the directory if needed.
func (c *Config) SaveTo(configPath string) error {
	if err := os.MkdirAll(filepath.Dir(configPath), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(configPath, data, 0644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}

	return nil
}
