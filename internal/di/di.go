package di

import (
	"github.com/samber/do"
	"github.com/skcvote/ballotd/internal/api"
	"github.com/skcvote/ballotd/internal/auth"
	"github.com/skcvote/ballotd/internal/ballots"
	"github.com/skcvote/ballotd/internal/candidates"
	"github.com/skcvote/ballotd/internal/config"
	"github.com/skcvote/ballotd/internal/elections"
	"github.com/skcvote/ballotd/internal/kv"
	"github.com/skcvote/ballotd/internal/logging"
	"github.com/skcvote/ballotd/internal/seed"
	"github.com/skcvote/ballotd/internal/tally"
)

// New builds the injector with config read from the environment.
func New() *do.Injector {
	injector := do.New()

	config.Register(injector)
	registerServices(injector)

	return injector
}

// NewWithConfig builds the injector around a pre-built config.
func NewWithConfig(cfg config.Config) *do.Injector {
	injector := do.New()

	config.RegisterValue(injector, cfg)
	registerServices(injector)

	return injector
}

func registerServices(injector *do.Injector) {
	logging.Register(injector)
	kv.Register(injector)
	auth.Register(injector)
	elections.Register(injector)
	candidates.Register(injector)
	ballots.Register(injector)
	tally.Register(injector)
	seed.Register(injector)
	api.Register(injector)
}
