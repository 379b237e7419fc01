package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Port                  string `mapstructure:"PORT"`
	RedisAddr             string `mapstructure:"REDIS_ADDR"`
	RedisPassword         string `mapstructure:"REDIS_PASSWORD"`
	RedisDB               int    `mapstructure:"REDIS_DB"`
	WebhookTimeoutSeconds int    `mapstructure:"WEBHOOK_TIMEOUT_SECONDS"`
	SubscriptionsFile     string `mapstructure:"SUBSCRIPTIONS_FILE"`
}

func GetConfig() (*Config, error) {
	viper.SetConfigName(".env")
	viper.SetConfigType("toml")
	viper.AddConfigPath(".")
	viper.AutomaticEnv()
	err := viper.ReadInConfig()
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}
	var config Config
	err = viper.Unmarshal(&config)
	if err != nil {
		return nil, fmt.Errorf("parsing config data: %w", err)
	}
	return &config, nil
}

// GetWebhookTimeout returns the timeout for outbound webhook calls
// Defaults to 120 seconds when not configured
func (c *Config) GetWebhookTimeout() time.Duration {
	seconds := c.WebhookTimeoutSeconds
	if seconds <= 0 {
		seconds = 120
	}
	return time.Duration(seconds) * time.Second
}

// GetSubscriptionsFile returns the path to the subscriptions registry
// Defaults to subscriptions.yaml in the working directory
func (c *Config) GetSubscriptionsFile() string {
	if c.SubscriptionsFile == "" {
		return "subscriptions.yaml"
	}
	return c.SubscriptionsFile
}
