// Package config provides application configuration loading and management.
package config

import (
	"log"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds configuration values loaded from file or environment variables.
// APIURL and StatePath drive the client; JWTSecret, Port and RedisURL are only
// read by the stub server command.
type Config struct {
	APIURL    string `mapstructure:"ZOCIAL_API_URL"`
	StatePath string `mapstructure:"ZOCIAL_STATE_PATH"`
	JWTSecret string `mapstructure:"ZOCIAL_JWT_SECRET"`
	Port      string `mapstructure:"ZOCIAL_PORT"`
	RedisURL  string `mapstructure:"ZOCIAL_REDIS_URL"`
}

// Load reads configuration from .env, an optional config file, and the
// environment, applying defaults for anything unset.
func Load() *Config {
	// .env is optional; ignore a missing file
	_ = godotenv.Load()

	viper.AddConfigPath(".")
	viper.SetConfigName("zocial")
	viper.SetConfigType("yml")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			log.Println("Config file not found; using environment variables and defaults")
		} else {
			log.Fatalf("Error reading config file: %s", err)
		}
	}

	// Set default values
	viper.SetDefault("ZOCIAL_API_URL", "http://localhost:8080")
	viper.SetDefault("ZOCIAL_STATE_PATH", defaultStatePath())
	viper.SetDefault("ZOCIAL_PORT", "8080")
	viper.SetDefault("ZOCIAL_REDIS_URL", "")
	viper.SetDefault("ZOCIAL_JWT_SECRET", "your-secret-key-change-in-production")

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		log.Fatalf("Unable to decode config into struct, %v", err)
	}

	return &config
}

func defaultStatePath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "zocial-state.db"
	}
	return filepath.Join(home, ".zocial", "state.db")
}
