package config

import (
	"github.com/spf13/viper"
)

// Config stores all configuration for the application.
type Config struct {
	PostgresURL     string `mapstructure:"POSTGRES_URL"`
	RedisAddr       string `mapstructure:"REDIS_ADDR"`
	ServerPort      string `mapstructure:"SERVER_PORT"`
	SessionTTLHours int    `mapstructure:"SESSION_TTL_HOURS"`
	BcryptCost      int    `mapstructure:"BCRYPT_COST"`

	ScrapeTimeout   int `mapstructure:"SCRAPE_TIMEOUT"`
	ScrapeCacheDays int `mapstructure:"SCRAPE_CACHE_DAYS"`

	OCRAPIBase   string `mapstructure:"OCR_API_BASE"`
	OCRAPIKey    string `mapstructure:"OCR_API_KEY"`
	OCRModel     string `mapstructure:"OCR_MODEL"`
	OCRMaxTokens int    `mapstructure:"OCR_MAX_TOKENS"`
	OCRTimeout   int    `mapstructure:"OCR_TIMEOUT"`
}

// Load reads configuration from file or environment variables.
func Load() (*Config, error) {
	viper.SetConfigFile(".env")
	viper.SetConfigType("env")
	viper.AutomaticEnv()

	// Attempt to read the .env file, but don't fail if it's not present
	// This allows configuration purely through environment variables in production
	_ = viper.ReadInConfig()

	// Set default values
	viper.SetDefault("SERVER_PORT", "8080")
	viper.SetDefault("SESSION_TTL_HOURS", 168)
	viper.SetDefault("BCRYPT_COST", 12)
	viper.SetDefault("SCRAPE_TIMEOUT", 30) // in seconds
	viper.SetDefault("SCRAPE_CACHE_DAYS", 7)
	viper.SetDefault("OCR_API_BASE", "https://api.x.ai/v1")
	viper.SetDefault("OCR_MODEL", "grok-2-vision-1212")
	viper.SetDefault("OCR_MAX_TOKENS", 2000)
	viper.SetDefault("OCR_TIMEOUT", 60) // in seconds

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}
