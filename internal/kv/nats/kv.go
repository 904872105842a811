package nats

import (
	"context"
	"errors"
	"fmt"

	"github.com/nats-io/nats.go/jetstream"
	"github.com/samber/do"
	"github.com/skcvote/ballotd/internal/core"
)

func NewKV(injector *do.Injector) (*KV, error) {
	client, err := NewClient(injector)
	if err != nil {
		return nil, err
	}

	return &KV{Client: client}, nil
}

type KV struct {
	Client *Client
}

func (k KV) CreateBucket(ctx context.Context, name string) (core.KVBucket, error) {
	bucket, err := k.Client.JetStream.CreateKeyValue(ctx, jetstream.KeyValueConfig{
		Bucket: name,
	})
	if err != nil {
		if errors.Is(err, jetstream.ErrBucketExists) {
			return k.Bucket(ctx, name)
		}

		return nil, fmt.Errorf("failed to create bucket: %w", err)
	}

	return Bucket{bucket: bucket}, nil
}

func (k KV) Bucket(ctx context.Context, name string) (core.KVBucket, error) {
	bucket, err := k.Client.JetStream.KeyValue(ctx, name)
	if err != nil {
		if errors.Is(err, jetstream.ErrBucketNotFound) {
			return nil, fmt.Errorf("%w: %w", core.ErrBucketNotFound, err)
		}

		return nil, fmt.Errorf("failed to get bucket: %w", err)
	}

	return Bucket{bucket: bucket}, nil
}

func (k KV) DeleteBucket(ctx context.Context, name string) error {
	err := k.Client.JetStream.DeleteKeyValue(ctx, name)
	if err != nil {
		if errors.Is(err, jetstream.ErrBucketNotFound) {
			return fmt.Errorf("%w: %w", core.ErrBucketNotFound, err)
		}

		return fmt.Errorf("failed to delete bucket: %w", err)
	}

	return nil
}

func (k KV) HealthCheck() error {
	return k.Client.HealthCheck()
}

func (k KV) Shutdown() error {
	return k.Client.Shutdown()
}
