package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	defaultRedisPrefix = "portfolio:cache"
	maxInvalidateTries = 5
)

// RedisStore keeps entries in Redis. Each entity has a SET holding the names
// of its keys and a counter holding its generation.
type RedisStore struct {
	client *redis.Client
	prefix string
}

func NewRedisStore(client *redis.Client, prefix string) *RedisStore {
	if prefix == "" {
		prefix = defaultRedisPrefix
	}
	return &RedisStore{client: client, prefix: prefix}
}

type redisEntry struct {
	Value    json.RawMessage `json:"value"`
	StoredAt time.Time       `json:"stored_at"`
}

func (s *RedisStore) entryKey(key Key) string {
	return fmt.Sprintf("%s:entry:%s", s.prefix, key.String())
}

func (s *RedisStore) setKey(entity Entity) string {
	return fmt.Sprintf("%s:keys:%s", s.prefix, entity)
}

func (s *RedisStore) generationKey(entity Entity) string {
	return fmt.Sprintf("%s:gen:%s", s.prefix, entity)
}

func (s *RedisStore) Get(ctx context.Context, key Key) (Entry, bool, error) {
	raw, err := s.client.Get(ctx, s.entryKey(key)).Bytes()
	if errors.Is(err, redis.Nil) {
		return Entry{}, false, nil
	}
	if err != nil {
		return Entry{}, false, fmt.Errorf("redis get %s: %w", key, err)
	}

	var stored redisEntry
	if err := json.Unmarshal(raw, &stored); err != nil {
		return Entry{}, false, fmt.Errorf("decode cached entry %s: %w", key, err)
	}
	return Entry{Value: stored.Value, StoredAt: stored.StoredAt}, true, nil
}

func (s *RedisStore) Set(ctx context.Context, key Key, entry Entry, ttl time.Duration, generation uint64) (bool, error) {
	payload, err := json.Marshal(redisEntry{Value: entry.Value, StoredAt: entry.StoredAt})
	if err != nil {
		return false, fmt.Errorf("encode cached entry %s: %w", key, err)
	}

	genKey := s.generationKey(key.Entity)
	stored := false
	err = s.client.Watch(ctx, func(tx *redis.Tx) error {
		current, err := readGeneration(ctx, tx, genKey)
		if err != nil {
			return err
		}
		if current != generation {
			return nil
		}
		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, s.entryKey(key), payload, ttl)
			pipe.SAdd(ctx, s.setKey(key.Entity), s.entryKey(key))
			return nil
		})
		if err == nil {
			stored = true
		}
		return err
	}, genKey)

	if errors.Is(err, redis.TxFailedErr) {
		// the generation moved while we were writing
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("redis set %s: %w", key, err)
	}
	return stored, nil
}

func (s *RedisStore) Invalidate(ctx context.Context, entities ...Entity) error {
	for _, entity := range entities {
		if err := s.invalidate(ctx, entity); err != nil {
			return err
		}
	}
	return nil
}

func (s *RedisStore) invalidate(ctx context.Context, entity Entity) error {
	setKey := s.setKey(entity)
	genKey := s.generationKey(entity)

	for attempt := 0; attempt < maxInvalidateTries; attempt++ {
		err := s.client.Watch(ctx, func(tx *redis.Tx) error {
			members, err := tx.SMembers(ctx, setKey).Result()
			if err != nil {
				return err
			}
			_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
				if len(members) > 0 {
					pipe.Del(ctx, members...)
				}
				pipe.Del(ctx, setKey)
				pipe.Incr(ctx, genKey)
				return nil
			})
			return err
		}, setKey, genKey)

		if errors.Is(err, redis.TxFailedErr) {
			continue
		}
		if err != nil {
			return fmt.Errorf("redis invalidate %s: %w", entity, err)
		}
		return nil
	}
	return fmt.Errorf("redis invalidate %s: %w", entity, redis.TxFailedErr)
}

func (s *RedisStore) Generation(ctx context.Context, entity Entity) (uint64, error) {
	return readGeneration(ctx, s.client, s.generationKey(entity))
}

type stringGetter interface {
	Get(ctx context.Context, key string) *redis.StringCmd
}

func readGeneration(ctx context.Context, c stringGetter, key string) (uint64, error) {
	gen, err := c.Get(ctx, key).Uint64()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("redis generation %s: %w", key, err)
	}
	return gen, nil
}
