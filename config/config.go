package config

import (
	"log"

	"github.com/spf13/viper"
)

// Config holds all configuration values.
type Config struct {
	AppPort           string `mapstructure:"APP_PORT"`
	Env               string `mapstructure:"ENV"`
	LogLevel          string `mapstructure:"LOG_LEVEL"`
	MaxRequestsPerMin int    `mapstructure:"MAX_REQUESTS_PER_MIN"`

	// DataFile is the default document location checked at startup and
	// written on save.
	DataFile string `mapstructure:"DATA_FILE"`

	// BaseYear is the canonical year for season/holiday point tables.
	// When a resort does not contain it, the smallest year present in
	// that resort is used instead.
	BaseYear string `mapstructure:"BASE_YEAR"`

	// AdminPasswordHash is a bcrypt hash guarding mutating endpoints.
	// Empty disables the gate.
	AdminPasswordHash string `mapstructure:"ADMIN_PASSWORD_HASH"`
}

var AppConfig Config

func LoadConfig() {
	// Look for a config file named "config.yaml" in the current and "config" directory.
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./config")
	// Automatically use environment variables where available.
	viper.AutomaticEnv()

	// Set default values.
	viper.SetDefault("APP_PORT", "8080")
	viper.SetDefault("ENV", "development")
	viper.SetDefault("LOG_LEVEL", "info")
	viper.SetDefault("MAX_REQUESTS_PER_MIN", 100)
	viper.SetDefault("DATA_FILE", "data_v2.json")
	viper.SetDefault("BASE_YEAR", "2025")
	viper.SetDefault("ADMIN_PASSWORD_HASH", "")

	if err := viper.ReadInConfig(); err != nil {
		log.Println("No config file found, using environment variables only")
	}

	if err := viper.Unmarshal(&AppConfig); err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
}

func GetEnv() string {
	return AppConfig.Env
}

func IsProduction() bool {
	return GetEnv() == "production"
}
