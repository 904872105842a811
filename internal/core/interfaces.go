package core

import (
	"context"

	"github.com/samber/do"
)

type ServiceDependency interface {
	do.Healthcheckable
	do.Shutdownable
}

type Config interface {
	HTTPPort() int
	NatsURL() string
	LogLevel() string
	StorageBackend() string
	SessionSecret() string
}

// KVEntry is a single key/value pair with its storage revision.
type KVEntry struct {
	Key      string
	Value    []byte
	Revision uint64
}

type KVBucket interface {
	Name() string

	All(ctx context.Context) ([]KVEntry, error)

	Get(ctx context.Context, key string) ([]byte, error)
	Entry(ctx context.Context, key string) (KVEntry, error)
	Create(ctx context.Context, key string, value []byte) (uint64, error)
	Put(ctx context.Context, key string, value []byte) error
	Update(ctx context.Context, key string, value []byte, seq uint64) (uint64, error)
	Delete(ctx context.Context, key string) error

	Incr(ctx context.Context, key string, n int64) (int64, error)
}

type KV interface {
	ServiceDependency

	// CreateBucket returns the existing bucket when it already exists.
	CreateBucket(ctx context.Context, name string) (KVBucket, error)
	Bucket(ctx context.Context, name string) (KVBucket, error)
	DeleteBucket(ctx context.Context, name string) error
}
