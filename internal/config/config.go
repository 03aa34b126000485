package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v2"
)

// Config represents the complete application configuration
type Config struct {
	Logging  LoggingConfig  `yaml:"logging" envconfig:"LOGGING"`
	Cleaning CleaningConfig `yaml:"cleaning" envconfig:"CLEANING"`
}

// LoggingConfig contains logging configuration
type LoggingConfig struct {
	Level    string `yaml:"level" envconfig:"LEVEL" default:"info"`
	Format   string `yaml:"format" envconfig:"FORMAT" default:"text"`
	Output   string `yaml:"output" envconfig:"OUTPUT" default:"console"`
	FilePath string `yaml:"file_path" envconfig:"FILE_PATH" default:"logs/gapcli.log"`
}

// CleaningConfig carries the default arguments for the cleaning pipeline.
type CleaningConfig struct {
	Threshold int `yaml:"threshold" envconfig:"THRESHOLD" default:"20"`
	FillLimit int `yaml:"fill_limit" envconfig:"FILL_LIMIT" default:"3"`
}

// Load builds the configuration from environment variables (prefix GAP)
// overlaid on an optional config.yaml next to the executable.
func Load() (*Config, error) {
	var cfg Config

	if err := envconfig.Process("GAP", &cfg); err != nil {
		return nil, fmt.Errorf("failed to load config from env: %w", err)
	}

	configFile := getConfigFilePath()
	if _, err := os.Stat(configFile); err == nil {
		fileConfig, err := loadFromFile(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config from file: %w", err)
		}
		cfg = mergeConfigs(*fileConfig, cfg)
	}

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}
	return &cfg, nil
}

// loadFromFile loads configuration from a YAML file
func loadFromFile(filePath string) (*Config, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, err
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// mergeConfigs overlays env values on top of file values; env wins where
// it differs from the defaults.
func mergeConfigs(file, env Config) Config {
	out := file
	if env.Logging.Level != "" {
		out.Logging.Level = env.Logging.Level
	}
	if env.Logging.Format != "" {
		out.Logging.Format = env.Logging.Format
	}
	if env.Logging.Output != "" {
		out.Logging.Output = env.Logging.Output
	}
	if env.Logging.FilePath != "" {
		out.Logging.FilePath = env.Logging.FilePath
	}
	if env.Cleaning.Threshold != 0 {
		out.Cleaning.Threshold = env.Cleaning.Threshold
	}
	if env.Cleaning.FillLimit != 0 {
		out.Cleaning.FillLimit = env.Cleaning.FillLimit
	}
	return out
}

// validate checks configuration values
func (c *Config) validate() error {
	switch c.Logging.Output {
	case "", "console", "file", "both":
	default:
		return fmt.Errorf("invalid logging output %q", c.Logging.Output)
	}
	if c.Cleaning.Threshold < 0 || c.Cleaning.Threshold > 99 {
		return fmt.Errorf("cleaning threshold %d out of range [0 - 99]", c.Cleaning.Threshold)
	}
	if c.Cleaning.FillLimit < 0 || c.Cleaning.FillLimit > 5 {
		return fmt.Errorf("cleaning fill limit %d out of range [0 - 5]", c.Cleaning.FillLimit)
	}
	return nil
}

// getConfigFilePath returns the path of the optional config file next to
// the executable, falling back to the working directory.
func getConfigFilePath() string {
	if exe, err := os.Executable(); err == nil {
		return filepath.Join(filepath.Dir(exe), ConfigFileName)
	}
	return ConfigFileName
}
