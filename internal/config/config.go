// Package config содержит загрузку и валидацию конфигурации консоли.
package config

import (
	"fmt"
	"net/url"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config представляет конфигурацию приложения
type Config struct {
	// Device
	BaseURL string

	// App Data Directory (токен администратора, логи)
	AppDataDir string

	// Logging
	LogLevel string

	// HTTP Client
	HTTPClientConfig HTTPClientConfig

	// Retry (используется для health-check после установки обновления)
	RetryConfig RetryConfig

	// Интервалы опроса
	WiFiPollInterval       time.Duration
	SystemTimePollInterval time.Duration

	// Окна дебаунса
	ModuleWriteDebounce   time.Duration
	SettingsWriteDebounce time.Duration
	LocationDebounce      time.Duration

	// Таймауты
	LocationSearchTimeout time.Duration
	StatusClearAfter      time.Duration

	// Update install recovery
	InstallFallbackReload time.Duration
}

// HTTPClientConfig представляет конфигурацию HTTP клиента
type HTTPClientConfig struct {
	MaxIdleConns          int
	MaxIdleConnsPerHost   int
	IdleConnTimeout       time.Duration
	TLSHandshakeTimeout   time.Duration
	ResponseHeaderTimeout time.Duration
	DisableKeepAlives     bool
}

// RetryConfig представляет конфигурацию retry механизма
type RetryConfig struct {
	MaxRetries        int
	InitialDelay      time.Duration
	MaxDelay          time.Duration
	BackoffMultiplier float64
}

// Load загружает конфигурацию из переменных окружения
func Load() (*Config, error) {
	// Загружаем .env файл если он существует
	if err := godotenv.Load(); err != nil {
		// Игнорируем ошибку если файл не найден
	}

	config := &Config{
		BaseURL:    getEnv("PC1_BASE_URL", ""),
		AppDataDir: getEnv("PC1_DATA_DIR", defaultDataDir()),
		LogLevel:   getEnv("LOG_LEVEL", "info"),
		HTTPClientConfig: HTTPClientConfig{
			MaxIdleConns:          getEnvInt("HTTP_MAX_IDLE_CONNS", 10),
			MaxIdleConnsPerHost:   getEnvInt("HTTP_MAX_IDLE_CONNS_PER_HOST", 4),
			IdleConnTimeout:       getEnvDuration("HTTP_IDLE_CONN_TIMEOUT", 90*time.Second),
			TLSHandshakeTimeout:   getEnvDuration("HTTP_TLS_HANDSHAKE_TIMEOUT", 10*time.Second),
			ResponseHeaderTimeout: getEnvDuration("HTTP_RESPONSE_HEADER_TIMEOUT", 30*time.Second),
			DisableKeepAlives:     getEnvBool("HTTP_DISABLE_KEEP_ALIVES", false),
		},
		RetryConfig: RetryConfig{
			MaxRetries:        getEnvInt("HEALTH_MAX_RETRIES", 30),
			InitialDelay:      getEnvDuration("HEALTH_RETRY_DELAY", 1*time.Second),
			MaxDelay:          getEnvDuration("HEALTH_RETRY_MAX_DELAY", 1*time.Second),
			BackoffMultiplier: getEnvFloat("HEALTH_RETRY_BACKOFF", 1.0),
		},
		WiFiPollInterval:       getEnvDuration("WIFI_POLL_INTERVAL", 10*time.Second),
		SystemTimePollInterval: getEnvDuration("TIME_POLL_INTERVAL", 30*time.Second),
		ModuleWriteDebounce:    getEnvDuration("MODULE_WRITE_DEBOUNCE", 1500*time.Millisecond),
		SettingsWriteDebounce:  getEnvDuration("SETTINGS_WRITE_DEBOUNCE", 1*time.Second),
		LocationDebounce:       getEnvDuration("LOCATION_DEBOUNCE", 500*time.Millisecond),
		LocationSearchTimeout:  getEnvDuration("LOCATION_SEARCH_TIMEOUT", 15*time.Second),
		StatusClearAfter:       getEnvDuration("STATUS_CLEAR_AFTER", 3*time.Second),
		InstallFallbackReload:  getEnvDuration("INSTALL_FALLBACK_RELOAD", 45*time.Second),
	}

	// Валидация обязательных полей
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return config, nil
}

// Validate проверяет конфигурацию
func (c *Config) Validate() error {
	if c.BaseURL == "" {
		return fmt.Errorf("PC1_BASE_URL is required")
	}

	u, err := url.Parse(c.BaseURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("PC1_BASE_URL must be an http(s) URL")
	}

	if c.RetryConfig.MaxRetries < 0 {
		return fmt.Errorf("HEALTH_MAX_RETRIES must be non-negative")
	}

	if c.WiFiPollInterval <= 0 {
		return fmt.Errorf("WIFI_POLL_INTERVAL must be positive")
	}

	return nil
}

// GetAppDataDir возвращает директорию данных приложения
func (c *Config) GetAppDataDir() string {
	return c.AppDataDir
}

func defaultDataDir() string {
	if home, err := os.UserHomeDir(); err == nil {
		return home + "/.pc1console"
	}
	return "./data"
}

// getEnv получает переменную окружения с значением по умолчанию
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvInt получает переменную окружения как int
func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

// getEnvBool получает переменную окружения как bool
func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}

// getEnvDuration получает переменную окружения как time.Duration
func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}

// getEnvFloat получает переменную окружения как float64
func getEnvFloat(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if floatValue, err := strconv.ParseFloat(value, 64); err == nil {
			return floatValue
		}
	}
	return defaultValue
}
