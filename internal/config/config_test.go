package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{
			name:   "defaults pass",
			mutate: func(c *Config) {},
		},
		{
			name:   "file output",
			mutate: func(c *Config) { c.Logging.Output = "file" },
		},
		{
			name:    "bad output",
			mutate:  func(c *Config) { c.Logging.Output = "syslog" },
			wantErr: "invalid logging output",
		},
		{
			name:    "threshold out of range",
			mutate:  func(c *Config) { c.Cleaning.Threshold = 100 },
			wantErr: "threshold 100 out of range",
		},
		{
			name:    "fill limit out of range",
			mutate:  func(c *Config) { c.Cleaning.FillLimit = 6 },
			wantErr: "fill limit 6 out of range",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Config{
				Logging:  LoggingConfig{Level: "info", Format: "text", Output: "console"},
				Cleaning: CleaningConfig{Threshold: 20, FillLimit: 3},
			}
			tt.mutate(&cfg)
			err := cfg.validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
			} else {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
			}
		})
	}
}

func TestLoadFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), ConfigFileName)
	content := `logging:
  level: debug
  output: both
cleaning:
  threshold: 35
  fill_limit: 2
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	cfg, err := loadFromFile(path)
	require.NoError(t, err)
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, "both", cfg.Logging.Output)
	assert.Equal(t, 35, cfg.Cleaning.Threshold)
	assert.Equal(t, 2, cfg.Cleaning.FillLimit)
}

func TestLoadFromFile_BadYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), ConfigFileName)
	require.NoError(t, os.WriteFile(path, []byte("logging: [not a map"), 0644))

	_, err := loadFromFile(path)
	assert.Error(t, err)
}

func TestMergeConfigs(t *testing.T) {
	file := Config{
		Logging:  LoggingConfig{Level: "warn", Format: "json", Output: "file", FilePath: "logs/app.log"},
		Cleaning: CleaningConfig{Threshold: 40, FillLimit: 1},
	}
	env := Config{
		Logging:  LoggingConfig{Level: "debug"},
		Cleaning: CleaningConfig{Threshold: 25},
	}

	merged := mergeConfigs(file, env)
	assert.Equal(t, "debug", merged.Logging.Level, "env overrides file")
	assert.Equal(t, "json", merged.Logging.Format, "file value kept when env empty")
	assert.Equal(t, "file", merged.Logging.Output)
	assert.Equal(t, 25, merged.Cleaning.Threshold)
	assert.Equal(t, 1, merged.Cleaning.FillLimit, "file value kept when env zero")
}
