package config

import (
	"fmt"
	"os"
	"strings"

	"stock-dashboard/src/models"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v3"
)

const envPrefix = "DASHBOARD"

// -----------------------------------------------------------------------------

// Config wraps models.MConfig and provides business logic methods
type Config struct {
	*models.MConfig
}

// envOverrides are read from the environment after the YAML file. Each key is
// looked up as DASHBOARD_<KEY> first, then as <KEY>.
type envOverrides struct {
	TelegramBotToken   string `envconfig:"TELEGRAM_BOT_TOKEN"`
	TelegramChatID     string `envconfig:"TELEGRAM_CHAT_ID"`
	Port               int    `envconfig:"PORT"`
	LogLevel           string `envconfig:"LOG_LEVEL"`
	DBType             string `envconfig:"DB_TYPE"`
	DBConnectionString string `envconfig:"DB_CONNECTION_STRING"`
}

// -----------------------------------------------------------------------------

// NewConfig creates a new Config from a YAML file plus environment overrides
func NewConfig(configPath string) (*Config, error) {
	// 1. Read the YAML file content
	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file '%s': %w", configPath, err)
	}

	// 2. Unmarshal data into the models struct
	var modelConfig models.MConfig
	if err := yaml.Unmarshal(data, &modelConfig); err != nil {
		return nil, fmt.Errorf("failed to parse config from YAML: %w", err)
	}

	config := &Config{MConfig: &modelConfig}
	config.applyDefaults()

	// 3. Overlay .env and process environment
	_ = godotenv.Load()
	if err := config.applyEnv(); err != nil {
		return nil, fmt.Errorf("failed to read environment: %w", err)
	}

	// 4. Validate the loaded configuration
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return config, nil
}

// -----------------------------------------------------------------------------

func (c *Config) applyDefaults() {
	if c.Name == "" {
		c.Name = "stock-dashboard"
	}
	if c.Host == "" {
		c.Host = "127.0.0.1"
	}
	if c.Port == 0 {
		c.Port = 8000
	}
	if c.LogLevel == "" {
		c.LogLevel = "INFO"
	}
	if c.Theme == "" {
		c.Theme = string(models.ThemeLight)
	}
	if c.Storage.DBType == "" {
		c.Storage.DBType = "memory"
	}
	if c.Storage.RetentionDays == 0 {
		c.Storage.RetentionDays = 7
	}
	if c.Storage.MemoryCapacity == 0 {
		c.Storage.MemoryCapacity = 500
	}
	if c.Network.RequestTimeout == 0 {
		c.Network.RequestTimeout = 10
	}
	if c.Telegram.APIBaseURL == "" {
		c.Telegram.APIBaseURL = "https://api.telegram.org"
	}
	if c.Telegram.Workers == 0 {
		c.Telegram.Workers = 2
	}
	if c.Telegram.QueueSize == 0 {
		c.Telegram.QueueSize = 64
	}
	if c.Market.MIC == "" {
		c.Market.MIC = "xkrx"
	}
}

// -----------------------------------------------------------------------------

func (c *Config) applyEnv() error {
	var env envOverrides
	if err := envconfig.Process(envPrefix, &env); err != nil {
		return err
	}

	if env.TelegramBotToken != "" {
		c.Telegram.BotToken = env.TelegramBotToken
	}
	if env.TelegramChatID != "" {
		c.Telegram.ChatID = env.TelegramChatID
	}
	if env.Port != 0 {
		c.Port = env.Port
	}
	if env.LogLevel != "" {
		c.LogLevel = env.LogLevel
	}
	if env.DBType != "" {
		c.Storage.DBType = env.DBType
	}
	if env.DBConnectionString != "" {
		c.Storage.DBConnectionString = env.DBConnectionString
	}
	return nil
}

// -----------------------------------------------------------------------------

// Validate performs basic configuration validation
func (c *Config) Validate() error {
	if c.Name == "" {
		return fmt.Errorf("application name cannot be empty")
	}

	if c.Host == "" {
		return fmt.Errorf("server host cannot be empty")
	}
	if c.Port <= 1024 || c.Port > 65535 {
		return fmt.Errorf("invalid server port number: %d (must be between 1025 and 65535)", c.Port)
	}

	switch models.MTheme(c.Theme) {
	case models.ThemeLight, models.ThemeDark:
	default:
		return fmt.Errorf("unknown theme %q", c.Theme)
	}

	// Storage
	switch strings.ToLower(c.Storage.DBType) {
	case "memory":
		if c.Storage.MemoryCapacity <= 0 {
			return fmt.Errorf("memory capacity must be greater than 0")
		}
	case "sqlite":
		if c.Storage.DBPath == "" {
			return fmt.Errorf("database path cannot be empty for sqlite")
		}
	case "postgres":
		if c.Storage.DBConnectionString == "" {
			return fmt.Errorf("connection string cannot be empty for postgres")
		}
	default:
		return fmt.Errorf("unsupported database type %q", c.Storage.DBType)
	}
	if c.Storage.RetentionDays <= 0 {
		return fmt.Errorf("retention days must be greater than 0")
	}

	// Network
	if c.Network.RequestTimeout <= 0 {
		return fmt.Errorf("request timeout must be greater than 0")
	}

	// Telegram
	if !strings.HasPrefix(c.Telegram.APIBaseURL, "http://") && !strings.HasPrefix(c.Telegram.APIBaseURL, "https://") {
		return fmt.Errorf("telegram api_base_url must be an http(s) URL")
	}
	if c.Telegram.Workers <= 0 {
		return fmt.Errorf("telegram workers must be greater than 0")
	}
	if c.Telegram.QueueSize <= 0 {
		return fmt.Errorf("telegram queue size must be greater than 0")
	}

	return nil
}

// -----------------------------------------------------------------------------

// Save persists the current configuration to the specified YAML file path
func (c *Config) Save(configPath string) error {
	data, err := yaml.Marshal(c.MConfig)
	if err != nil {
		return fmt.Errorf("failed to marshal config to YAML: %w", err)
	}

	if err := os.WriteFile(configPath, data, 0600); err != nil {
		return fmt.Errorf("failed to write config to file '%s': %w", configPath, err)
	}

	return nil
}

// -----------------------------------------------------------------------------

// InitialCredentials returns the Telegram credentials that seed the dashboard.
func (c *Config) InitialCredentials() models.MTelegramCredentials {
	return models.MTelegramCredentials{
		BotToken: c.Telegram.BotToken,
		ChatID:   c.Telegram.ChatID,
	}
}
