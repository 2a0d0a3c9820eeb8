package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/okxbot/gookx/okx/types"
)

// ExchangeConfig is everything needed to talk to the exchange. Credentials
// normally come from the environment (.env); the YAML file can carry the
// non-secret parts.
type ExchangeConfig struct {
	BaseURL        string
	APIKey         string
	SecretKey      string
	Passphrase     string
	Demo           bool
	TimeoutSeconds int
}

// TradingConfig holds the exit-percentage defaults applied when a request
// leaves them unset.
type TradingConfig struct {
	DefaultTakeProfitPct float64
	DefaultStopLossPct   float64
}

// ServerConfig holds the HTTP gateway settings.
type ServerConfig struct {
	Port int
}

// LogConfig mirrors logger.Config so the file can drive it.
type LogConfig struct {
	Level      string
	File       string
	MaxSize    int
	MaxBackups int
	MaxAge     int
	Compress   bool
}

// Config is the full application configuration.
type Config struct {
	Exchange ExchangeConfig
	Trading  TradingConfig
	Server   ServerConfig
	Log      LogConfig
}

// Credentials packages the exchange credentials for the API client.
func (c *Config) Credentials() types.Credentials {
	return types.Credentials{
		APIKey:     c.Exchange.APIKey,
		SecretKey:  c.Exchange.SecretKey,
		Passphrase: c.Exchange.Passphrase,
	}
}

var globalConfig *Config
var configFilePath string

// SetConfigPath sets the YAML file path used by Load.
func SetConfigPath(path string) {
	configFilePath = path
}

// configFile is the YAML layout. Secrets may be set here but the
// environment always wins, so a committed file can stay secret-free.
type configFile struct {
	Exchange struct {
		BaseURL        string `yaml:"base_url"`
		APIKey         string `yaml:"api_key"`
		SecretKey      string `yaml:"secret_key"`
		Passphrase     string `yaml:"passphrase"`
		Demo           *bool  `yaml:"demo"`
		TimeoutSeconds int    `yaml:"timeout_seconds"`
	} `yaml:"exchange"`
	Trading struct {
		DefaultTakeProfitPct float64 `yaml:"default_take_profit_pct"`
		DefaultStopLossPct   float64 `yaml:"default_stop_loss_pct"`
	} `yaml:"trading"`
	Server struct {
		Port int `yaml:"port"`
	} `yaml:"server"`
	Log struct {
		Level      string `yaml:"level"`
		File       string `yaml:"file"`
		MaxSize    int    `yaml:"max_size"`
		MaxBackups int    `yaml:"max_backups"`
		MaxAge     int    `yaml:"max_age"`
		Compress   *bool  `yaml:"compress"`
	} `yaml:"log"`
}

// Load builds the configuration from the YAML file (if set and present)
// plus environment overrides, then validates it.
func Load() (*Config, error) {
	return LoadFromFile(configFilePath)
}

// LoadFromFile loads the configuration from the given YAML file.
// An empty path means environment-only configuration.
func LoadFromFile(filePath string) (*Config, error) {
	var cf configFile
	if filePath != "" {
		data, err := os.ReadFile(filePath)
		if err != nil {
			return nil, fmt.Errorf("read config file %s: %w", filePath, err)
		}
		if err := yaml.Unmarshal(data, &cf); err != nil {
			return nil, fmt.Errorf("parse config file %s: %w", filePath, err)
		}
	}

	demo := true
	if cf.Exchange.Demo != nil {
		demo = *cf.Exchange.Demo
	}
	compress := true
	if cf.Log.Compress != nil {
		compress = *cf.Log.Compress
	}

	config := &Config{
		Exchange: ExchangeConfig{
			BaseURL:        getEnv("OKX_BASE_URL", firstNonEmpty(cf.Exchange.BaseURL, "https://www.okx.com")),
			APIKey:         getEnv("OKX_API_KEY", cf.Exchange.APIKey),
			SecretKey:      getEnv("OKX_SECRET_KEY", cf.Exchange.SecretKey),
			Passphrase:     getEnv("OKX_PASSPHRASE", cf.Exchange.Passphrase),
			Demo:           parseBoolEnv("OKX_DEMO_MODE", demo),
			TimeoutSeconds: parseIntEnv("OKX_TIMEOUT_SECONDS", positiveOr(cf.Exchange.TimeoutSeconds, 15)),
		},
		Trading: TradingConfig{
			DefaultTakeProfitPct: parseFloatEnv("DEFAULT_TP_PCT", positiveOrF(cf.Trading.DefaultTakeProfitPct, 5.0)),
			DefaultStopLossPct:   parseFloatEnv("DEFAULT_SL_PCT", positiveOrF(cf.Trading.DefaultStopLossPct, 2.0)),
		},
		Server: ServerConfig{
			Port: parseIntEnv("SERVER_PORT", positiveOr(cf.Server.Port, 8080)),
		},
		Log: LogConfig{
			Level:      getEnv("LOG_LEVEL", firstNonEmpty(cf.Log.Level, "info")),
			File:       getEnv("LOG_FILE", firstNonEmpty(cf.Log.File, "logs/gateway.log")),
			MaxSize:    positiveOr(cf.Log.MaxSize, 100),
			MaxBackups: positiveOr(cf.Log.MaxBackups, 3),
			MaxAge:     positiveOr(cf.Log.MaxAge, 7),
			Compress:   compress,
		},
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	globalConfig = config
	configFilePath = filePath
	return config, nil
}

// Get returns the global configuration if already loaded.
func Get() *Config {
	return globalConfig
}

// Validate checks structural sanity. Missing credentials are allowed here:
// public market-data endpoints work without them and the signing layer
// rejects private calls with a configuration error of its own.
func (c *Config) Validate() error {
	if c.Exchange.BaseURL == "" {
		return fmt.Errorf("exchange base URL is required")
	}
	if !strings.HasPrefix(c.Exchange.BaseURL, "http://") && !strings.HasPrefix(c.Exchange.BaseURL, "https://") {
		return fmt.Errorf("exchange base URL must start with http:// or https://: %s", c.Exchange.BaseURL)
	}
	if c.Exchange.TimeoutSeconds <= 0 {
		return fmt.Errorf("exchange timeout must be > 0, got %d", c.Exchange.TimeoutSeconds)
	}
	if c.Trading.DefaultTakeProfitPct <= 0 {
		return fmt.Errorf("default take-profit percentage must be > 0, got %v", c.Trading.DefaultTakeProfitPct)
	}
	if c.Trading.DefaultStopLossPct <= 0 {
		return fmt.Errorf("default stop-loss percentage must be > 0, got %v", c.Trading.DefaultStopLossPct)
	}
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("server port must be in 1..65535, got %d", c.Server.Port)
	}
	return nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

func positiveOr(value, fallback int) int {
	if value > 0 {
		return value
	}
	return fallback
}

func positiveOrF(value, fallback float64) float64 {
	if value > 0 {
		return value
	}
	return fallback
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func parseIntEnv(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return defaultValue
	}
	return parsed
}

func parseFloatEnv(key string, defaultValue float64) float64 {
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

func parseBoolEnv(key string, defaultValue bool) bool {
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
