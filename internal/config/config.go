package config

import (
	"github.com/nats-io/nats.go"
)

type Config struct {
	HttpPort int `env:"HTTP_PORT" envDefault:"8080"` //nolint:stylecheck

	NATSURL string `env:"NATS_URL"`

	Loglevel string `env:"LOG_LEVEL" envDefault:"info"`

	Backend string `env:"STORAGE_BACKEND" envDefault:"memory"`

	Secret string `env:"SESSION_SECRET" envDefault:"dev-secret-change-me"`
}

func (c Config) HTTPPort() int {
	return c.HttpPort
}

func (c Config) NatsURL() string {
	if c.NATSURL == "" {
		return nats.DefaultURL
	}

	return c.NATSURL
}

func (c Config) LogLevel() string {
	return c.Loglevel
}

func (c Config) StorageBackend() string {
	return c.Backend
}

func (c Config) SessionSecret() string {
	return c.Secret
}
