package cache

import (
	"context"
	"time"
)

// Entry is a cached value and the time it was loaded.
type Entry struct {
	Value    []byte
	StoredAt time.Time
}

// Store keeps entries and the key set and generation of every entity.
type Store interface {
	Get(ctx context.Context, key Key) (Entry, bool, error)
	// Set stores entry under key and registers key with its entity, but only
	// while the entity generation still equals generation. It reports whether
	// the entry was stored.
	Set(ctx context.Context, key Key, entry Entry, ttl time.Duration, generation uint64) (bool, error)
	// Invalidate drops every key of each entity and advances its generation.
	Invalidate(ctx context.Context, entities ...Entity) error
	Generation(ctx context.Context, entity Entity) (uint64, error)
}
