package cache

import (
	"context"
	"sync"
	"time"
)

type memoryItem struct {
	entry   Entry
	expires time.Time
}

// MemoryStore is an in-process Store.
type MemoryStore struct {
	mu          sync.Mutex
	items       map[string]memoryItem
	keys        map[Entity]map[string]struct{}
	generations map[Entity]uint64
	now         func() time.Time
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		items:       make(map[string]memoryItem),
		keys:        make(map[Entity]map[string]struct{}),
		generations: make(map[Entity]uint64),
		now:         time.Now,
	}
}

func (s *MemoryStore) Get(_ context.Context, key Key) (Entry, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	item, ok := s.items[key.String()]
	if !ok {
		return Entry{}, false, nil
	}
	if !item.expires.IsZero() && !s.now().Before(item.expires) {
		s.remove(key.Entity, key.String())
		return Entry{}, false, nil
	}
	return item.entry, true, nil
}

func (s *MemoryStore) Set(_ context.Context, key Key, entry Entry, ttl time.Duration, generation uint64) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.generations[key.Entity] != generation {
		return false, nil
	}

	item := memoryItem{entry: entry}
	if ttl > 0 {
		item.expires = s.now().Add(ttl)
	}
	name := key.String()
	s.items[name] = item
	set, ok := s.keys[key.Entity]
	if !ok {
		set = make(map[string]struct{})
		s.keys[key.Entity] = set
	}
	set[name] = struct{}{}
	return true, nil
}

func (s *MemoryStore) Invalidate(_ context.Context, entities ...Entity) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, entity := range entities {
		for name := range s.keys[entity] {
			delete(s.items, name)
		}
		delete(s.keys, entity)
		s.generations[entity]++
	}
	return nil
}

func (s *MemoryStore) Generation(_ context.Context, entity Entity) (uint64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.generations[entity], nil
}

// Sweep drops expired entries and returns how many were removed.
func (s *MemoryStore) Sweep() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	removed := 0
	for entity, set := range s.keys {
		for name := range set {
			item, ok := s.items[name]
			if ok && (item.expires.IsZero() || now.Before(item.expires)) {
				continue
			}
			s.remove(entity, name)
			removed++
		}
	}
	return removed
}

// Len returns the number of stored entries, expired ones included.
func (s *MemoryStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.items)
}

// remove must be called with mu held.
func (s *MemoryStore) remove(entity Entity, name string) {
	delete(s.items, name)
	if set, ok := s.keys[entity]; ok {
		delete(set, name)
		if len(set) == 0 {
			delete(s.keys, entity)
		}
	}
}
