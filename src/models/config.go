package models

// MConfig Structure
type MConfig struct {
	Name     string          `yaml:"name"`
	Host     string          `yaml:"host"`
	Port     int             `yaml:"port"`
	LogLevel string          `yaml:"log_level"`
	Theme    string          `yaml:"theme"`
	Storage  MStorageConfig  `yaml:"storage"`
	Network  MNetworkConfig  `yaml:"network"`
	Telegram MTelegramConfig `yaml:"telegram"`
	Catalog  MCatalogConfig  `yaml:"catalog"`
	Market   MMarketConfig   `yaml:"market"`
}

type MStorageConfig struct {
	DBType             string `yaml:"db_type"` // memory, sqlite, postgres
	DBPath             string `yaml:"db_path"`
	DBConnectionString string `yaml:"db_connection_string"`
	RetentionDays      int    `yaml:"retention_days"`
	MemoryCapacity     int    `yaml:"memory_capacity"`
}

type MNetworkConfig struct {
	Proxies        []string `yaml:"proxies"`
	RequestTimeout int      `yaml:"timeout"`
	UserAgent      string   `yaml:"user_agent"`
}

type MTelegramConfig struct {
	APIBaseURL string `yaml:"api_base_url"`
	BotToken   string `yaml:"bot_token"`
	ChatID     string `yaml:"chat_id"`
	Workers    int    `yaml:"workers"`
	QueueSize  int    `yaml:"queue_size"`
}

type MCatalogConfig struct {
	Path string `yaml:"path"` // Optional, built-in mock catalog when empty
}

type MMarketConfig struct {
	MIC string `yaml:"mic"`
}
