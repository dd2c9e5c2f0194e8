package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

func LoadConfig(path string) (*Config, error) {
	v := viper.New()

	// defaults first
	setDefaults(v)

	// File Config
	v.SetConfigFile(path)
	v.SetConfigType("yaml")

	// Env Config
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// Read File
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	// Validate
	if err := validateConfig(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("env", "development")
	v.SetDefault("service_name", "pulsecheck")
	v.SetDefault("port", 8080)
	v.SetDefault("timezone", "UTC")

	v.SetDefault("scheduler.cadence", "5m")
	v.SetDefault("scheduler.probe_timeout", "5s")
	v.SetDefault("scheduler.concurrency", 10)

	v.SetDefault("alerts.enabled", false)
	v.SetDefault("alerts.workers", 2)

	v.SetDefault("storage.driver", "sqlite")
	v.SetDefault("storage.path", "pulsecheck.db")
	v.SetDefault("storage.max_open_conns", 10)
	v.SetDefault("storage.min_idle_conns", 2)
	v.SetDefault("storage.conn_max_lifetime", "1h")
	v.SetDefault("storage.conn_max_idle_time", "30m")
	v.SetDefault("storage.health_timeout", "5s")

	v.SetDefault("redis.url", "redis://localhost:6379/0")

	v.SetDefault("rabbitmq.enabled", false)
	v.SetDefault("rabbitmq.exchange_name", "alerts")
	v.SetDefault("rabbitmq.exchange_type", "direct")
	v.SetDefault("rabbitmq.queue_name", "url-alerts")
	v.SetDefault("rabbitmq.routing_key", "url.down")
}

func validateConfig(cfg *Config) error {

	validate := validator.New()

	if err := validate.Struct(cfg); err != nil {
		var ve validator.ValidationErrors
		if errors.As(err, &ve) {
			return formatValidationErrors(ve)
		}
		return err
	}
	return nil
}

func formatValidationErrors(ve validator.ValidationErrors) error {
	var sb strings.Builder
	sb.WriteString("config validation failed:\n")

	for _, fe := range ve {
		fmt.Fprintf(&sb, "- field '%s' failed on '%s'\n", fe.Namespace(), fe.Tag())
	}
	return errors.New(sb.String())
}
