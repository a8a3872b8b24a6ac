package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Editor            string `yaml:"editor"`
	DefaultOrder      string `yaml:"default_order"` // "sequential" or "random"
	DateFormat        string `yaml:"date_format"`
	DisplayDateFormat string `yaml:"display_date_format"`
	ColorTheme        string `yaml:"color_theme"`
	TableWidth        int    `yaml:"table_width"`
	MaxSearchResults  int    `yaml:"max_search_results"`

	// Backup Settings
	AutoBackup      bool `yaml:"auto_backup"`
	BackupRetention int  `yaml:"backup_retention"`

	// Watch daemon
	WatchDebounceMS int `yaml:"watch_debounce_ms"`

	// Image Settings
	ImagePreview bool `yaml:"image_preview"`

	Aliases map[string]string `yaml:"aliases"`
}

// DefaultConfig returns a Config struct with default values
func DefaultConfig() *Config {
	return &Config{
		Editor:            "",
		DefaultOrder:      "sequential",
		DateFormat:        "20060102",
		DisplayDateFormat: "2006-01-02",
		ColorTheme:        "auto",
		TableWidth:        0,
		MaxSearchResults:  50,
		AutoBackup:        true,
		BackupRetention:   5,
		WatchDebounceMS:   500,
		ImagePreview:      true,
		Aliases:           make(map[string]string),
	}
}

// Load reads configuration from the specified file path
func Load(path string) (*Config, error) {
	// Start with default config
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		// If file doesn't exist, return default config (not an error)
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	// Ensure map is initialized if nil
	if cfg.Aliases == nil {
		cfg.Aliases = make(map[string]string)
	}

	// Apply defaults for essential values if missing
	if cfg.DefaultOrder != "sequential" && cfg.DefaultOrder != "random" {
		cfg.DefaultOrder = "sequential"
	}
	if cfg.DateFormat == "" {
		cfg.DateFormat = "20060102"
	}
	if cfg.DisplayDateFormat == "" {
		cfg.DisplayDateFormat = "2006-01-02"
	}
	if cfg.MaxSearchResults <= 0 {
		cfg.MaxSearchResults = 50
	}
	if cfg.BackupRetention <= 0 {
		cfg.BackupRetention = 5
	}
	if cfg.WatchDebounceMS <= 0 {
		cfg.WatchDebounceMS = 500
	}

	return cfg, nil
}

// Save persists the current configuration to the specified file path
func (c *Config) Save(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}
