package config

import "time"

type StorageConfig struct {
	Driver          string        `mapstructure:"driver" validate:"required,oneof=postgres sqlite"`
	URL             string        `mapstructure:"url" validate:"required_if=Driver postgres"`
	Path            string        `mapstructure:"path" validate:"required_if=Driver sqlite"`
	MaxOpenConns    int32         `mapstructure:"max_open_conns"`
	MinIdleConns    int32         `mapstructure:"min_idle_conns"`
	ConnMaxLifetime time.Duration `mapstructure:"conn_max_lifetime"`
	ConnMaxIdleTime time.Duration `mapstructure:"conn_max_idle_time"`
	HealthTimeout   time.Duration `mapstructure:"health_timeout"`
}

type RedisConfig struct {
	URL string `mapstructure:"url" validate:"required"`
}

type SchedulerConfig struct {
	Cadence      time.Duration `mapstructure:"cadence" validate:"required"`
	ProbeTimeout time.Duration `mapstructure:"probe_timeout" validate:"required"`
	Concurrency  int           `mapstructure:"concurrency" validate:"gte=1"`
	DefaultURLs  []string      `mapstructure:"default_urls" validate:"dive,url"`
}

type SMTPConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	Username string `mapstructure:"username"`
	Password string `mapstructure:"password"`
	From     string `mapstructure:"from"`
}

type AlertsConfig struct {
	Enabled   bool        `mapstructure:"enabled"`
	Recipient string      `mapstructure:"recipient" validate:"required_if=Enabled true,omitempty,email"`
	Workers   int         `mapstructure:"workers" validate:"gte=1"`
	SMTP      *SMTPConfig `mapstructure:"smtp"`
}

type RabbitMQConfig struct {
	Enabled      bool   `mapstructure:"enabled"`
	BrokerLink   string `mapstructure:"broker_link" validate:"required_if=Enabled true"`
	ExchangeName string `mapstructure:"exchange_name"`
	ExchangeType string `mapstructure:"exchange_type"`
	QueueName    string `mapstructure:"queue_name"`
	RoutingKey   string `mapstructure:"routing_key"`
}

type Config struct {
	ServiceName string           `mapstructure:"service_name"`
	Env         string           `mapstructure:"env"`
	Port        int              `mapstructure:"port" validate:"gte=1,lte=65535"`
	Timezone    string           `mapstructure:"timezone"`
	Storage     *StorageConfig   `mapstructure:"storage" validate:"required"`
	Redis       *RedisConfig     `mapstructure:"redis" validate:"required"`
	Scheduler   *SchedulerConfig `mapstructure:"scheduler" validate:"required"`
	Alerts      *AlertsConfig    `mapstructure:"alerts" validate:"required"`
	RabbitMQ    *RabbitMQConfig  `mapstructure:"rabbitmq"`
}

// Location resolves the timezone used for timestamps on the API surface.
func (c *Config) Location() (*time.Location, error) {
	if c.Timezone == "" {
		return time.UTC, nil
	}
	return time.LoadLocation(c.Timezone)
}
