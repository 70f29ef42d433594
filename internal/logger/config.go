package logger

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

// Config holds logging configuration
type Config struct {
	Level          string `yaml:"level"`
	ConsoleEnabled bool   `yaml:"console_enabled"`
	ConsoleFormat  string `yaml:"console_format"`
	FileEnabled    bool   `yaml:"file_enabled"`
	FilePath       string `yaml:"file_path"`
	FileFormat     string `yaml:"file_format"`
	FileMaxSizeMB  int    `yaml:"file_max_size_mb"`
	FileMaxBackups int    `yaml:"file_max_backups"`
	FileMaxAgeDays int    `yaml:"file_max_age_days"`
}

// DefaultConfig logs INFO and above as text on the console
func DefaultConfig() Config {
	return Config{
		Level:          "INFO",
		ConsoleEnabled: true,
		ConsoleFormat:  "text",
		FilePath:       "logs/galaxygen.log",
		FileFormat:     "text",
		FileMaxSizeMB:  10,
		FileMaxBackups: 5,
		FileMaxAgeDays: 30,
	}
}

// LoadConfig reads the logging block of a YAML file and applies environment
// overrides. A missing file yields the defaults.
func LoadConfig(configPath string) (Config, error) {
	config := DefaultConfig()

	if configPath != "" {
		data, err := os.ReadFile(configPath)
		switch {
		case err == nil:
			// decode over the defaults so absent keys keep their value
			file := struct {
				Logging Config `yaml:"logging"`
			}{Logging: config}
			if err := yaml.Unmarshal(data, &file); err != nil {
				return DefaultConfig(), fmt.Errorf("failed to parse logging config: %w", err)
			}
			config = file.Logging
		case !os.IsNotExist(err):
			return config, fmt.Errorf("failed to read logging config: %w", err)
		}
	}

	if v := os.Getenv("LOG_LEVEL"); v != "" {
		config.Level = v
	}
	if v := os.Getenv("LOG_CONSOLE_FORMAT"); v != "" {
		config.ConsoleFormat = v
	}
	if v := os.Getenv("LOG_FILE_ENABLED"); v != "" {
		if enabled, err := strconv.ParseBool(v); err == nil {
			config.FileEnabled = enabled
		}
	}
	if v := os.Getenv("LOG_FILE_PATH"); v != "" {
		config.FilePath = v
	}

	return config, nil
}
