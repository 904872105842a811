package memory

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"sync"

	"github.com/skcvote/ballotd/internal/core"
)

func newBucket(name string) *Bucket {
	return &Bucket{
		name:    name,
		entries: map[string]entry{},
	}
}

type entry struct {
	value    []byte
	revision uint64
}

type Bucket struct {
	name string

	mu      sync.RWMutex
	seq     uint64
	entries map[string]entry
}

func (b *Bucket) Name() string {
	return b.name
}

// All returns entries sorted by key.
func (b *Bucket) All(_ context.Context) ([]core.KVEntry, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	keys := make([]string, 0, len(b.entries))
	for key := range b.entries {
		keys = append(keys, key)
	}

	sort.Strings(keys)

	var entries []core.KVEntry //nolint:prealloc

	for _, key := range keys {
		e := b.entries[key]
		entries = append(entries, core.KVEntry{
			Key:      key,
			Value:    clone(e.value),
			Revision: e.revision,
		})
	}

	return entries, nil
}

func (b *Bucket) Get(ctx context.Context, key string) ([]byte, error) {
	e, err := b.Entry(ctx, key)
	if err != nil {
		return nil, err
	}

	return e.Value, nil
}

func (b *Bucket) Entry(_ context.Context, key string) (core.KVEntry, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	e, ok := b.entries[key]
	if !ok {
		return core.KVEntry{}, fmt.Errorf("%w: %s", core.ErrKeyNotFound, key)
	}

	return core.KVEntry{
		Key:      key,
		Value:    clone(e.value),
		Revision: e.revision,
	}, nil
}

func (b *Bucket) Create(_ context.Context, key string, value []byte) (uint64, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if _, ok := b.entries[key]; ok {
		return 0, fmt.Errorf("%w: %s", core.ErrKeyExists, key)
	}

	return b.write(key, value), nil
}

func (b *Bucket) Put(_ context.Context, key string, value []byte) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.write(key, value)

	return nil
}

func (b *Bucket) Update(_ context.Context, key string, value []byte, seq uint64) (uint64, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	e, ok := b.entries[key]
	if !ok {
		return 0, fmt.Errorf("%w: %s", core.ErrKeyNotFound, key)
	}

	if e.revision != seq {
		return 0, fmt.Errorf("%w: revision mismatch for %s", core.ErrKeyExists, key)
	}

	return b.write(key, value), nil
}

func (b *Bucket) Delete(_ context.Context, key string) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	delete(b.entries, key)

	return nil
}

func (b *Bucket) Incr(_ context.Context, key string, n int64) (int64, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	value := int64(0)

	if e, ok := b.entries[key]; ok {
		parsed, err := strconv.ParseInt(string(e.value), 10, 64)
		if err != nil {
			return 0, fmt.Errorf("failed to parse counter value: %w", err)
		}

		value = parsed
	}

	value += n
	b.write(key, []byte(strconv.FormatInt(value, 10)))

	return value, nil
}

// write stores value under key and returns the new revision. Caller holds
// the write lock.
func (b *Bucket) write(key string, value []byte) uint64 {
	b.seq++
	b.entries[key] = entry{
		value:    clone(value),
		revision: b.seq,
	}

	return b.seq
}

func clone(value []byte) []byte {
	if value == nil {
		return nil
	}

	out := make([]byte, len(value))
	copy(out, value)

	return out
}
