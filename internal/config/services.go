package config

import (
	"github.com/caarlos0/env/v11"
	"github.com/samber/do"
	"github.com/skcvote/ballotd/internal/core"
)

func Register(injector *do.Injector) {
	do.Provide(injector, func(_ *do.Injector) (core.Config, error) {
		var cfg Config

		if err := env.Parse(&cfg); err != nil {
			return nil, err
		}

		return cfg, nil
	})
}

// RegisterValue injects a pre-built config, bypassing the environment.
func RegisterValue(injector *do.Injector, cfg Config) {
	do.ProvideValue[core.Config](injector, cfg)
}
