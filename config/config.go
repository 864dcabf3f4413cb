package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all configuration for the service.
type Config struct {
	General   GeneralConfig   `mapstructure:"general"`
	Providers ProvidersConfig `mapstructure:"providers"`
	Interview InterviewConfig `mapstructure:"interview"`
	Databases DatabasesConfig `mapstructure:"databases"`
	History   HistoryConfig   `mapstructure:"history"`
}

// GeneralConfig contains server-wide settings.
type GeneralConfig struct {
	Listen      string `mapstructure:"listen"`
	Debug       bool   `mapstructure:"debug"`
	LogLevel    string `mapstructure:"log_level"`
	JWTSecret   string `mapstructure:"jwt_secret"`
	FrontendURL string `mapstructure:"frontend_url"`
}

// ProvidersConfig selects and configures the generative model backends.
type ProvidersConfig struct {
	Active string       `mapstructure:"active"` // gemini | openai
	Gemini GeminiConfig `mapstructure:"gemini"`
	OpenAI OpenAIConfig `mapstructure:"openai"`
}

type GeminiConfig struct {
	APIKey      string        `mapstructure:"api_key"`
	Model       string        `mapstructure:"model"`
	Temperature float64       `mapstructure:"temperature"`
	MaxTokens   int           `mapstructure:"max_tokens"`
	Timeout     time.Duration `mapstructure:"timeout"`
}

type OpenAIConfig struct {
	APIKey      string        `mapstructure:"api_key"`
	BaseURL     string        `mapstructure:"base_url"`
	Model       string        `mapstructure:"model"`
	Temperature float64       `mapstructure:"temperature"`
	MaxTokens   int           `mapstructure:"max_tokens"`
	Timeout     time.Duration `mapstructure:"timeout"`
}

// InterviewConfig tunes the interview session engine.
type InterviewConfig struct {
	Store          string        `mapstructure:"store"` // inmemory | redis
	SessionTTL     time.Duration `mapstructure:"session_ttl"`
	HumanTurnLimit int           `mapstructure:"human_turn_limit"`
	HRTurnLimit    int           `mapstructure:"hr_turn_limit"`
}

// DatabasesConfig groups backing stores.
type DatabasesConfig struct {
	Postgres PostgresConfig `mapstructure:"postgres"`
	Redis    RedisConfig    `mapstructure:"redis"`
}

type PostgresConfig struct {
	URL      string `mapstructure:"url"`
	Host     string `mapstructure:"host"`
	Port     string `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	DBName   string `mapstructure:"dbname"`
	SSLMode  string `mapstructure:"sslmode"`
}

// DSN builds a postgres connection string, preferring the explicit URL.
func (p PostgresConfig) DSN() (string, error) {
	if p.URL != "" {
		return p.URL, nil
	}
	if p.Host == "" || p.DBName == "" {
		return "", fmt.Errorf("postgres not configured (databases.postgres.host/dbname or url)")
	}
	port := p.Port
	if port == "" {
		port = "5432"
	}
	ssl := p.SSLMode
	if ssl == "" {
		ssl = "disable"
	}
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=%s", p.User, p.Password, p.Host, port, p.DBName, ssl), nil
}

type RedisConfig struct {
	Host     string `mapstructure:"host"`
	Port     string `mapstructure:"port"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

func (r RedisConfig) Addr() string { return r.Host + ":" + r.Port }

// HistoryConfig controls the audit sink and its retention.
type HistoryConfig struct {
	RetentionCron string        `mapstructure:"retention_cron"`
	RetentionAge  time.Duration `mapstructure:"retention_age"`
	AMQPURL       string        `mapstructure:"amqp_url"`
	Exchange      string        `mapstructure:"exchange"`
}

// LoadConfig reads configuration from an optional yaml file and the
// environment (CAREERFLOW_ prefix, dots replaced by underscores). Missing
// values fall back to the defaults below.
func LoadConfig(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.AddConfigPath(".")
		v.AddConfigPath("./config")
	}

	v.SetEnvPrefix("CAREERFLOW")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		// A missing file is fine; env and defaults carry the config.
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok && path != "" {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("general.listen", ":8001")
	v.SetDefault("general.log_level", "info")
	v.SetDefault("general.frontend_url", "http://localhost:5173")

	v.SetDefault("providers.active", "gemini")
	v.SetDefault("providers.gemini.model", "gemini-2.5-flash")
	v.SetDefault("providers.gemini.temperature", 0.8)
	v.SetDefault("providers.gemini.max_tokens", 2048)
	v.SetDefault("providers.gemini.timeout", 30*time.Second)
	v.SetDefault("providers.openai.model", "gpt-4o-mini")
	v.SetDefault("providers.openai.temperature", 0.8)
	v.SetDefault("providers.openai.max_tokens", 2048)
	v.SetDefault("providers.openai.timeout", 30*time.Second)

	v.SetDefault("interview.store", "inmemory")
	v.SetDefault("interview.session_ttl", 30*time.Minute)
	v.SetDefault("interview.human_turn_limit", 7)
	v.SetDefault("interview.hr_turn_limit", 5)

	v.SetDefault("databases.redis.db", 0)

	v.SetDefault("history.retention_cron", "@daily")
	v.SetDefault("history.retention_age", 90*24*time.Hour)
	v.SetDefault("history.exchange", "history_updates")
}
