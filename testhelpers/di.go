package testhelpers

import (
	"github.com/samber/do"
	"github.com/skcvote/ballotd/internal/config"
	"github.com/skcvote/ballotd/internal/di"
)

// NewInjector builds an injector backed by the in-memory store, suitable
// for tests that need the full service graph without external processes.
func NewInjector() *do.Injector {
	return di.NewWithConfig(config.Config{
		Loglevel: "error",
		Backend:  "memory",
		Secret:   "test-secret",
	})
}
