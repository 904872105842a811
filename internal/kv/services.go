package kv

import (
	"fmt"

	"github.com/samber/do"
	"github.com/skcvote/ballotd/internal/core"
	"github.com/skcvote/ballotd/internal/kv/memory"
	"github.com/skcvote/ballotd/internal/kv/nats"
)

// Register wires the storage backend selected by config. The voting services
// only ever see core.KV.
func Register(injector *do.Injector) {
	do.Provide(injector, func(injector *do.Injector) (core.KV, error) {
		config, err := do.Invoke[core.Config](injector)
		if err != nil {
			return nil, err
		}

		switch config.StorageBackend() {
		case "memory":
			return memory.NewKV(), nil
		case "nats":
			return nats.NewKV(injector)
		default:
			return nil, fmt.Errorf("%w: %q", errUnknownBackend, config.StorageBackend())
		}
	})
}
