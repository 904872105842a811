package memory

import (
	"context"
	"fmt"
	"sync"

	"github.com/skcvote/ballotd/internal/core"
)

// KV is an in-process implementation of core.KV backed by owned maps. It
// mirrors the revision semantics of the NATS backend so the voting services
// behave identically against either.
func NewKV() *KV {
	return &KV{
		buckets: map[string]*Bucket{},
	}
}

type KV struct {
	mu      sync.RWMutex
	buckets map[string]*Bucket
}

func (k *KV) CreateBucket(_ context.Context, name string) (core.KVBucket, error) {
	k.mu.Lock()
	defer k.mu.Unlock()

	if bucket, ok := k.buckets[name]; ok {
		return bucket, nil
	}

	bucket := newBucket(name)
	k.buckets[name] = bucket

	return bucket, nil
}

func (k *KV) Bucket(_ context.Context, name string) (core.KVBucket, error) {
	k.mu.RLock()
	defer k.mu.RUnlock()

	bucket, ok := k.buckets[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", core.ErrBucketNotFound, name)
	}

	return bucket, nil
}

func (k *KV) DeleteBucket(_ context.Context, name string) error {
	k.mu.Lock()
	defer k.mu.Unlock()

	if _, ok := k.buckets[name]; !ok {
		return fmt.Errorf("%w: %s", core.ErrBucketNotFound, name)
	}

	delete(k.buckets, name)

	return nil
}

func (k *KV) HealthCheck() error {
	return nil
}

func (k *KV) Shutdown() error {
	return nil
}
