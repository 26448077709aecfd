// Package config provides application configuration loading and management.
package config

import (
	"errors"
	"fmt"
	"log"

	"github.com/spf13/viper"
)

// Config holds application configuration values loaded from file or
// environment variables.
type Config struct {
	Env             string `mapstructure:"APP_ENV"`
	SupabaseURL     string `mapstructure:"SUPABASE_URL"`
	SupabaseAnonKey string `mapstructure:"SUPABASE_ANON_KEY"`
	StoreTable      string `mapstructure:"STORE_TABLE"`
}

// LoadConfig loads application configuration from file and environment
// variables.
func LoadConfig() (*Config, error) {
	viper.AddConfigPath(".")
	viper.AddConfigPath("..")
	viper.SetConfigName("config")
	viper.SetConfigType("yml")
	viper.AutomaticEnv()

	// The config file is optional; environment variables are enough.
	_ = viper.ReadInConfig()

	env := viper.GetString("APP_ENV")
	if env == "" {
		env = "development"
	}

	if env != "development" {
		viper.SetConfigName("config." + env)
		if err := viper.MergeInConfig(); err != nil {
			return nil, fmt.Errorf("required profile-specific config 'config.%s.yml' not found: %w", env, err)
		}
		log.Printf("Loaded profile-specific configuration: config.%s.yml", env)
	}

	viper.SetDefault("APP_ENV", "development")
	viper.SetDefault("SUPABASE_URL", "")
	viper.SetDefault("SUPABASE_ANON_KEY", "")
	viper.SetDefault("STORE_TABLE", "ripple-documents")

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("unable to decode config into struct: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

// Validate ensures required configuration values are present. Dev mode
// runs against in-memory backends, so the remote endpoints are only
// required outside development.
func (c *Config) Validate() error {
	if c.StoreTable == "" {
		return errors.New("STORE_TABLE is required")
	}

	if c.DevMode() {
		return nil
	}

	if c.SupabaseURL == "" {
		return errors.New("SUPABASE_URL is required outside development")
	}
	if c.SupabaseAnonKey == "" {
		return errors.New("SUPABASE_ANON_KEY is required outside development")
	}
	return nil
}

// DevMode reports whether the client should run against local in-memory
// backends.
func (c *Config) DevMode() bool {
	return c.Env == "" || c.Env == "development"
}
