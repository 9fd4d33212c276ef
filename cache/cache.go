package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/rpupo63/bilingual-portfolio-backend/metrics"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/singleflight"
)

const (
	DefaultStaleAfter = 30 * time.Second
	DefaultTTL        = 10 * time.Minute

	resultHit   = "hit"
	resultStale = "stale"
	resultMiss  = "miss"
)

// Cache serves reads from a Store and loads missing entries once per key.
type Cache struct {
	store      Store
	staleAfter time.Duration
	ttl        time.Duration
	now        func() time.Time
	logger     zerolog.Logger

	group      singleflight.Group
	background sync.WaitGroup
}

type Option func(*Cache)

// WithStaleAfter sets the age after which an entry is served stale and
// refreshed in the background.
func WithStaleAfter(d time.Duration) Option {
	return func(c *Cache) {
		if d > 0 {
			c.staleAfter = d
		}
	}
}

// WithTTL sets how long the store keeps an entry at all.
func WithTTL(d time.Duration) Option {
	return func(c *Cache) {
		if d > 0 {
			c.ttl = d
		}
	}
}

func WithLogger(logger zerolog.Logger) Option {
	return func(c *Cache) {
		c.logger = logger
	}
}

func withClock(now func() time.Time) Option {
	return func(c *Cache) {
		c.now = now
	}
}

func New(store Store, opts ...Option) *Cache {
	c := &Cache{
		store:      store,
		staleAfter: DefaultStaleAfter,
		ttl:        DefaultTTL,
		now:        time.Now,
		logger:     log.With().Str("component", "cache").Logger(),
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.ttl < c.staleAfter {
		c.ttl = c.staleAfter
	}
	return c
}

// Fetch returns the value cached under key, loading it with load on a miss.
// A fresh entry is returned as is. A stale entry is returned and refreshed in
// the background. Concurrent misses for the same key share one load. A load
// that overlaps an invalidation of its entity is returned to its callers but
// never stored.
func Fetch[T any](ctx context.Context, c *Cache, key Key, load func(context.Context) (T, error)) (T, error) {
	var zero T

	if entry, ok := c.lookup(ctx, key); ok {
		var value T
		err := json.Unmarshal(entry.Value, &value)
		switch {
		case err != nil:
			c.logger.Warn().Err(err).Str("key", key.String()).Msg("Dropping undecodable cache entry")
		case c.now().Sub(entry.StoredAt) < c.staleAfter:
			metrics.ObserveCacheResult(string(key.Entity), resultHit)
			return value, nil
		default:
			metrics.ObserveCacheResult(string(key.Entity), resultStale)
			c.revalidate(ctx, key, encoder(load))
			return value, nil
		}
	}

	metrics.ObserveCacheResult(string(key.Entity), resultMiss)
	raw, err := c.load(ctx, key, encoder(load))
	if err != nil {
		return zero, err
	}

	var value T
	if err := json.Unmarshal(raw, &value); err != nil {
		return zero, fmt.Errorf("decode loaded value %s: %w", key, err)
	}
	return value, nil
}

// Invalidate drops every cached key of the given entities.
func (c *Cache) Invalidate(ctx context.Context, entities ...Entity) error {
	if len(entities) == 0 {
		return nil
	}
	if err := c.store.Invalidate(ctx, entities...); err != nil {
		return err
	}
	for _, entity := range entities {
		metrics.RecordInvalidation(string(entity))
	}
	return nil
}

// Wait blocks until background refreshes have finished.
func (c *Cache) Wait() {
	c.background.Wait()
}

func (c *Cache) lookup(ctx context.Context, key Key) (Entry, bool) {
	entry, ok, err := c.store.Get(ctx, key)
	if err != nil {
		c.logger.Warn().Err(err).Str("key", key.String()).Msg("Cache read failed, loading from backend")
		return Entry{}, false
	}
	return entry, ok
}

type loader func(context.Context) ([]byte, error)

func encoder[T any](load func(context.Context) (T, error)) loader {
	return func(ctx context.Context) ([]byte, error) {
		value, err := load(ctx)
		if err != nil {
			return nil, err
		}
		return json.Marshal(value)
	}
}

// load runs one shared load for key at the current generation. Waiting callers
// stop waiting when their own context ends; the load itself continues for the
// others.
func (c *Cache) load(ctx context.Context, key Key, load loader) ([]byte, error) {
	generation, err := c.store.Generation(ctx, key.Entity)
	if err != nil {
		c.logger.Warn().Err(err).Str("entity", string(key.Entity)).Msg("Cache generation unavailable, loading without storing")
		return load(ctx)
	}

	flight := fmt.Sprintf("%s#%d", key.String(), generation)
	ch := c.group.DoChan(flight, func() (any, error) {
		return c.loadAndStore(context.WithoutCancel(ctx), key, generation, load)
	})

	select {
	case res := <-ch:
		if res.Err != nil {
			return nil, res.Err
		}
		return res.Val.([]byte), nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

func (c *Cache) loadAndStore(ctx context.Context, key Key, generation uint64, load loader) ([]byte, error) {
	raw, err := load(ctx)
	if err != nil {
		metrics.RecordLoadError(string(key.Entity))
		return nil, err
	}

	stored, err := c.store.Set(ctx, key, Entry{Value: raw, StoredAt: c.now()}, c.ttl, generation)
	if err != nil {
		c.logger.Warn().Err(err).Str("key", key.String()).Msg("Cache write failed")
	} else if !stored {
		c.logger.Debug().Str("key", key.String()).Msg("Discarded load that overlapped an invalidation")
	}
	return raw, nil
}

func (c *Cache) revalidate(ctx context.Context, key Key, load loader) {
	ctx = context.WithoutCancel(ctx)
	c.background.Add(1)
	go func() {
		defer c.background.Done()
		if _, err := c.load(ctx, key, load); err != nil {
			c.logger.Warn().Err(err).Str("key", key.String()).Msg("Background refresh failed")
		}
	}()
}
