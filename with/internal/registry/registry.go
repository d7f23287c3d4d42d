package registry

import (
	"sync"

	"github.com/cespare/xxhash/v2"
)

// Registry is a sharded table of values keyed by string id. Shards are
// selected by hashing the key, so unrelated scopes never contend on the
// same lock.
type Registry[T any] struct {
	shards []shard[T]
}

type shard[T any] struct {
	mu      sync.Mutex
	entries map[string]T
}

func New[T any](numShards int) *Registry[T] {
	if numShards <= 0 {
		numShards = 1
	}
	shards := make([]shard[T], numShards)
	for i := range shards {
		shards[i].entries = make(map[string]T)
	}
	return &Registry[T]{shards: shards}
}

func (r *Registry[T]) shardOf(key string) *shard[T] {
	switch len(r.shards) {
	case 1:
		return &r.shards[0]
	default:
		return &r.shards[xxhash.Sum64String(key)%uint64(len(r.shards))]
	}
}

func (r *Registry[T]) Put(key string, v T) {
	s := r.shardOf(key)
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries[key] = v
}

func (r *Registry[T]) Delete(key string) {
	s := r.shardOf(key)
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.entries, key)
}

func (r *Registry[T]) Len() int {
	var n int
	for i := range r.shards {
		s := &r.shards[i]
		s.mu.Lock()
		n += len(s.entries)
		s.mu.Unlock()
	}
	return n
}

// Values snapshots every entry. Order is unspecified.
func (r *Registry[T]) Values() []T {
	var out []T
	for i := range r.shards {
		s := &r.shards[i]
		s.mu.Lock()
		for _, v := range s.entries {
			out = append(out, v)
		}
		s.mu.Unlock()
	}
	return out
}
