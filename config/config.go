package config

import (
	"errors"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Addr       string        `mapstructure:"addr"`
	Database   string        `mapstructure:"database"`
	RedisAddr  string        `mapstructure:"redis_addr"`
	DataDir    string        `mapstructure:"data_dir"`
	ServiceKey string        `mapstructure:"service_key"`
	SignSecret string        `mapstructure:"sign_secret"`
	SignTTL    time.Duration `mapstructure:"sign_ttl"`
	SessionTTL time.Duration `mapstructure:"session_ttl"`
}

var C Config

// Load reads gridlock.yaml from the working directory if present and applies
// GRIDLOCK_* environment overrides on top of the defaults.
func Load() error {
	viper.SetDefault("addr", ":8080")
	viper.SetDefault("database", "gridlock.db")
	viper.SetDefault("redis_addr", "127.0.0.1:6379")
	viper.SetDefault("data_dir", "data")
	viper.SetDefault("service_key", "")
	viper.SetDefault("sign_secret", "")
	viper.SetDefault("sign_ttl", 15*time.Minute)
	viper.SetDefault("session_ttl", 24*time.Hour)

	viper.SetConfigName("gridlock")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.SetEnvPrefix("gridlock")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return err
		}
	}

	return viper.Unmarshal(&C)
}
