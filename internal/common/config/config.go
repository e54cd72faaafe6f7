// internal/common/config/config.go
package config

import "fmt"

// Config is the main application configuration struct.
type Config struct {
	App           AppConfig          `mapstructure:"app"`
	Server        ServerConfig       `mapstructure:"server"`
	Database      DatabaseConfig     `mapstructure:"database"`
	Telegram      TelegramConfig     `mapstructure:"telegram"`
	AI            AIConfig           `mapstructure:"ai"`
	Notifications NotificationConfig `mapstructure:"notifications"`
	Resume        ResumeConfig       `mapstructure:"resume"`
	Logging       LoggingConfig      `mapstructure:"logging"`
}

// --- Core App/Infrastructure Config ---
type AppConfig struct {
	Name        string `mapstructure:"name"`
	Version     string `mapstructure:"version"`
	Environment string `mapstructure:"environment"`
}

type ServerConfig struct {
	Host string `mapstructure:"host"`
	Port int    `mapstructure:"port"`
}

// Addr returns the host:port the HTTP server binds to.
func (s ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

type DatabaseConfig struct {
	Postgres      PostgresConfig      `mapstructure:"postgres"`
	Redis         RedisConfig         `mapstructure:"redis"`
	Elasticsearch ElasticsearchConfig `mapstructure:"elasticsearch"`
}

type PostgresConfig struct {
	Host           string `mapstructure:"host"`
	Port           int    `mapstructure:"port"`
	Database       string `mapstructure:"database"`
	User           string `mapstructure:"user"`
	Password       string `mapstructure:"password"`
	MaxConnections int    `mapstructure:"max_connections"`
	MaxIdle        int    `mapstructure:"max_idle"`
	SSLMode        string `mapstructure:"sslmode"`
}

// GetDSN returns the PostgreSQL connection string
func (p PostgresConfig) GetDSN() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		p.Host, p.Port, p.User, p.Password, p.Database, p.SSLMode,
	)
}

type RedisConfig struct {
	Address  string `mapstructure:"address"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

type ElasticsearchConfig struct {
	Addresses []string `mapstructure:"addresses"`
	Username  string   `mapstructure:"username"`
	Password  string   `mapstructure:"password"`
	JobsIndex string   `mapstructure:"jobs_index"`
}

// --- Telegram Bot API ---
type TelegramConfig struct {
	BotToken  string `mapstructure:"bot_token"`
	WebAppURL string `mapstructure:"webapp_url"`
	Timeout   int    `mapstructure:"timeout"` // milliseconds
}

// AIConfig holds settings for the Gemini-backed applicant analyzer.
type AIConfig struct {
	GeminiAPIKey       string `mapstructure:"gemini_api_key"`
	Model              string `mapstructure:"model"`
	Timeout            int    `mapstructure:"timeout"` // milliseconds
	ResumeTextMaxChars int    `mapstructure:"resume_text_max_chars"`
}

// NotificationConfig holds settings for milestone and status notifications.
type NotificationConfig struct {
	Email struct {
		Enabled   bool   `mapstructure:"enabled"`
		FromEmail string `mapstructure:"from_email"`
	} `mapstructure:"email"`
	SMS struct {
		Enabled bool `mapstructure:"enabled"`
		// Milestone value at or above which an SMS is also sent.
		MilestoneThreshold int `mapstructure:"milestone_threshold"`
	} `mapstructure:"sms"`
	AWS struct {
		Region string `mapstructure:"region"`
	} `mapstructure:"aws"`
}

// ResumeConfig holds settings for resume text extraction.
type ResumeConfig struct {
	FetchTimeout  int `mapstructure:"fetch_timeout"`   // milliseconds
	CacheTTL      int `mapstructure:"cache_ttl"`       // seconds
	MaxFetchBytes int `mapstructure:"max_fetch_bytes"` // cap on downloaded resume size
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
	Output string `mapstructure:"output"`
}
