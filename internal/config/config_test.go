package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func validConfig() *Config {
	return &Config{
		BaseURL:    "http://192.168.1.50",
		AppDataDir: "/tmp/pc1console",
		LogLevel:   "info",
		RetryConfig: RetryConfig{
			MaxRetries:        30,
			InitialDelay:      time.Second,
			MaxDelay:          time.Second,
			BackoffMultiplier: 1.0,
		},
		WiFiPollInterval:       10 * time.Second,
		SystemTimePollInterval: 30 * time.Second,
		ModuleWriteDebounce:    1500 * time.Millisecond,
		SettingsWriteDebounce:  time.Second,
		StatusClearAfter:       3 * time.Second,
	}
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{
			name:    "valid config",
			mutate:  func(c *Config) {},
			wantErr: false,
		},
		{
			name:    "https url",
			mutate:  func(c *Config) { c.BaseURL = "https://pc1.local" },
			wantErr: false,
		},
		{
			name:    "missing base url",
			mutate:  func(c *Config) { c.BaseURL = "" },
			wantErr: true,
		},
		{
			name:    "non-http scheme",
			mutate:  func(c *Config) { c.BaseURL = "ftp://192.168.1.50" },
			wantErr: true,
		},
		{
			name:    "url without host",
			mutate:  func(c *Config) { c.BaseURL = "http://" },
			wantErr: true,
		},
		{
			name:    "negative retries",
			mutate:  func(c *Config) { c.RetryConfig.MaxRetries = -1 },
			wantErr: true,
		},
		{
			name:    "zero wifi poll interval",
			mutate:  func(c *Config) { c.WiFiPollInterval = 0 },
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			config := validConfig()
			tt.mutate(config)
			err := config.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Config.Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestLoad(t *testing.T) {
	t.Run("missing required env var", func(t *testing.T) {
		t.Setenv("PC1_BASE_URL", "")
		_, err := Load()
		if err == nil {
			t.Error("Load() should fail when PC1_BASE_URL is missing")
		}
	})

	t.Run("valid config with defaults", func(t *testing.T) {
		t.Setenv("PC1_BASE_URL", "http://192.168.1.50")
		config, err := Load()
		if err != nil {
			t.Fatalf("Load() error = %v", err)
		}
		assert.Equal(t, "http://192.168.1.50", config.BaseURL)
		assert.Equal(t, "info", config.LogLevel)
		assert.Equal(t, 1500*time.Millisecond, config.ModuleWriteDebounce)
		assert.Equal(t, 3*time.Second, config.StatusClearAfter)
	})

	t.Run("env overrides", func(t *testing.T) {
		t.Setenv("PC1_BASE_URL", "http://pc1.local")
		t.Setenv("LOG_LEVEL", "debug")
		t.Setenv("MODULE_WRITE_DEBOUNCE", "250ms")
		config, err := Load()
		if err != nil {
			t.Fatalf("Load() error = %v", err)
		}
		assert.Equal(t, "debug", config.LogLevel)
		assert.Equal(t, 250*time.Millisecond, config.ModuleWriteDebounce)
	})
}
