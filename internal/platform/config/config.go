package config

import (
	"log"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds application configuration.
type Config struct {
	DatabaseURL      string
	DatabaseMaxConns int32
	Port             string
	IsProduction     bool

	// SecretKey protects app secrets at rest. Must be overridden outside
	// local development.
	SecretKey string

	// RateLimit uses the limiter format, e.g. "100-M" for 100 per minute.
	RateLimit string

	// AllowedOrigins is the comma-separated CORS allow list. "*" allows any.
	AllowedOrigins string
}

// LoadConfig loads configuration from environment variables and .env file if present.
func LoadConfig() (*Config, error) {
	// Attempt to load .env file, ignore error if it doesn't exist
	_ = godotenv.Load()

	viper.SetDefault("PGSQL_URL", "")
	viper.SetDefault("PGSQL_MAX_CONNS", 10)
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("IS_PRODUCTION", false)
	viper.SetDefault("SECRET_KEY", "default_insecure_secret_please_change_this_!@#$")
	viper.SetDefault("RATE_LIMIT", "100-M")
	viper.SetDefault("ALLOWED_ORIGINS", "*")

	viper.AutomaticEnv()

	cfg := &Config{
		DatabaseURL:      viper.GetString("PGSQL_URL"),
		DatabaseMaxConns: viper.GetInt32("PGSQL_MAX_CONNS"),
		Port:             viper.GetString("PORT"),
		IsProduction:     viper.GetBool("IS_PRODUCTION"),
		SecretKey:        viper.GetString("SECRET_KEY"),
		RateLimit:        viper.GetString("RATE_LIMIT"),
		AllowedOrigins:   viper.GetString("ALLOWED_ORIGINS"),
	}

	if cfg.DatabaseURL == "" {
		log.Println("Warning: PGSQL_URL environment variable not set.")
	}
	if cfg.IsProduction && cfg.SecretKey == "default_insecure_secret_please_change_this_!@#$" {
		log.Println("Warning: SECRET_KEY is the insecure default in production.")
	}

	return cfg, nil
}
