package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// Config holds all configuration for the application
type Config struct {
	Server    ServerConfig    `mapstructure:"server"`
	Redis     RedisConfig     `mapstructure:"redis"`
	Database  DatabaseConfig  `mapstructure:"database"`
	Catalog   CatalogConfig   `mapstructure:"catalog"`
	Quotation QuotationConfig `mapstructure:"quotation"`
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	Port int    `mapstructure:"port"`
	Host string `mapstructure:"host"`
}

// RedisConfig holds Redis connection details for cart persistence
type RedisConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	Password string `mapstructure:"password"`
	Database int    `mapstructure:"database"`
}

// DatabaseConfig holds the postgres connection for the quotation log
type DatabaseConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	Name     string `mapstructure:"name"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
}

// CatalogConfig holds the product catalog source. Path is a local JSON
// file; URL, when set, takes precedence and the catalog is fetched over
// HTTP on startup.
type CatalogConfig struct {
	Path    string `mapstructure:"path"`
	URL     string `mapstructure:"url"`
	Timeout int    `mapstructure:"timeout"`
}

// QuotationConfig holds the outbound quotation handoff settings
type QuotationConfig struct {
	WhatsAppNumber string       `mapstructure:"whatsapp_number"`
	Resend         ResendConfig `mapstructure:"resend"`
}

// ResendConfig holds the Resend email API settings. An empty APIKey
// disables email delivery.
type ResendConfig struct {
	APIKey               string `mapstructure:"api_key"`
	BaseURL              string `mapstructure:"base_url"`
	FromEmail            string `mapstructure:"from_email"`
	ToEmail              string `mapstructure:"to_email"`
	MaxRequestsPerSecond int    `mapstructure:"max_requests_per_second"`
}

// Load loads configuration from YAML file with environment variable overrides
func Load() (*Config, error) {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")

	setDefaults()

	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			return nil, fmt.Errorf("config.yaml file not found in current directory")
		}
		return nil, fmt.Errorf("error reading config file: %w", err)
	}

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}

	return &config, nil
}

func setDefaults() {
	viper.SetDefault("server.port", 8080)
	viper.SetDefault("server.host", "localhost")

	viper.SetDefault("redis.host", "localhost")
	viper.SetDefault("redis.port", 6379)
	viper.SetDefault("redis.password", "")
	viper.SetDefault("redis.database", 0)

	viper.SetDefault("database.host", "localhost")
	viper.SetDefault("database.port", 5432)
	viper.SetDefault("database.name", "storefront")
	viper.SetDefault("database.user", "storefront_user")
	viper.SetDefault("database.password", "storefront_pass")

	viper.SetDefault("catalog.path", "./products.json")
	viper.SetDefault("catalog.url", "")
	viper.SetDefault("catalog.timeout", 30)

	viper.SetDefault("quotation.whatsapp_number", "60103570729")
	viper.SetDefault("quotation.resend.api_key", "")
	viper.SetDefault("quotation.resend.base_url", "https://api.resend.com")
	viper.SetDefault("quotation.resend.from_email", "")
	viper.SetDefault("quotation.resend.to_email", "")
	viper.SetDefault("quotation.resend.max_requests_per_second", 2)
}
