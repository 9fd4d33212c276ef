package cache

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type clock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *clock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *clock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

func newTestCache(store Store) (*Cache, *clock) {
	clk := &clock{now: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)}
	c := New(store, WithStaleAfter(time.Minute), WithTTL(time.Hour), withClock(clk.Now))
	return c, clk
}

func TestKeyDistinctness(t *testing.T) {
	assert.Equal(t, "blog-posts/published/1/10", NewKey(BlogPosts, "published", 1, 10).String())
	assert.NotEqual(t, NewKey(BlogPosts, "published", 1, 10).String(), NewKey(BlogPosts, "published", 2, 10).String())
	assert.NotEqual(t, NewKey(Projects, "slug", "a/b").String(), NewKey(Projects, "slug", "a", "b").String())
	assert.NotEqual(t, NewKey(Projects, "all").String(), NewKey(Activities, "all").String())
}

func TestFetchCachesFreshValues(t *testing.T) {
	c, _ := newTestCache(NewMemoryStore())
	ctx := context.Background()
	calls := 0
	load := func(context.Context) ([]string, error) {
		calls++
		return []string{"a", "b"}, nil
	}

	first, err := Fetch(ctx, c, NewKey(Projects, "all"), load)
	require.NoError(t, err)
	second, err := Fetch(ctx, c, NewKey(Projects, "all"), load)
	require.NoError(t, err)

	assert.Equal(t, []string{"a", "b"}, first)
	assert.Equal(t, first, second)
	assert.Equal(t, 1, calls)
}

func TestFetchDoesNotCacheErrors(t *testing.T) {
	c, _ := newTestCache(NewMemoryStore())
	ctx := context.Background()
	boom := errors.New("backend down")
	calls := 0

	_, err := Fetch(ctx, c, NewKey(Settings, "all"), func(context.Context) (int, error) {
		calls++
		return 0, boom
	})
	assert.ErrorIs(t, err, boom)

	v, err := Fetch(ctx, c, NewKey(Settings, "all"), func(context.Context) (int, error) {
		calls++
		return 7, nil
	})
	require.NoError(t, err)
	assert.Equal(t, 7, v)
	assert.Equal(t, 2, calls)
}

func TestFetchSharesConcurrentLoads(t *testing.T) {
	c, _ := newTestCache(NewMemoryStore())
	ctx := context.Background()

	var calls atomic.Int32
	release := make(chan struct{})
	load := func(context.Context) (string, error) {
		calls.Add(1)
		<-release
		return "value", nil
	}

	const callers = 8
	var wg sync.WaitGroup
	var started sync.WaitGroup
	results := make([]string, callers)
	for i := 0; i < callers; i++ {
		wg.Add(1)
		started.Add(1)
		go func(i int) {
			defer wg.Done()
			started.Done()
			v, err := Fetch(ctx, c, NewKey(BlogPosts, "featured", 3), load)
			assert.NoError(t, err)
			results[i] = v
		}(i)
	}
	started.Wait()
	time.Sleep(50 * time.Millisecond)
	close(release)
	wg.Wait()

	assert.Equal(t, int32(1), calls.Load())
	for _, r := range results {
		assert.Equal(t, "value", r)
	}
}

func TestFetchServesStaleAndRevalidates(t *testing.T) {
	c, clk := newTestCache(NewMemoryStore())
	ctx := context.Background()
	key := NewKey(Profile)

	_, err := Fetch(ctx, c, key, func(context.Context) (string, error) { return "v1", nil })
	require.NoError(t, err)

	clk.Advance(2 * time.Minute)
	v, err := Fetch(ctx, c, key, func(context.Context) (string, error) { return "v2", nil })
	require.NoError(t, err)
	assert.Equal(t, "v1", v)
	c.Wait()

	v, err = Fetch(ctx, c, key, func(context.Context) (string, error) { return "v3", nil })
	require.NoError(t, err)
	assert.Equal(t, "v2", v)
}

func TestInvalidateDropsEntityKeysOnly(t *testing.T) {
	c, _ := newTestCache(NewMemoryStore())
	ctx := context.Background()

	value := "old"
	load := func(context.Context) (string, error) { return value, nil }

	_, err := Fetch(ctx, c, NewKey(BlogPosts, "slug", "a"), load)
	require.NoError(t, err)
	_, err = Fetch(ctx, c, NewKey(BlogPosts, "published", 1, 10), load)
	require.NoError(t, err)
	_, err = Fetch(ctx, c, NewKey(Projects, "all"), load)
	require.NoError(t, err)

	value = "new"
	require.NoError(t, c.Invalidate(ctx, BlogPosts))

	got, _ := Fetch(ctx, c, NewKey(BlogPosts, "slug", "a"), load)
	assert.Equal(t, "new", got)
	got, _ = Fetch(ctx, c, NewKey(BlogPosts, "published", 1, 10), load)
	assert.Equal(t, "new", got)
	got, _ = Fetch(ctx, c, NewKey(Projects, "all"), load)
	assert.Equal(t, "old", got)
}

func TestLoadOverlappingInvalidationIsNotStored(t *testing.T) {
	store := NewMemoryStore()
	c, _ := newTestCache(store)
	ctx := context.Background()
	key := NewKey(Settings, "footer")

	v, err := Fetch(ctx, c, key, func(ctx context.Context) (string, error) {
		assert.NoError(t, c.Invalidate(ctx, Settings))
		return "stale", nil
	})
	require.NoError(t, err)
	assert.Equal(t, "stale", v)

	_, ok, err := store.Get(ctx, key)
	require.NoError(t, err)
	assert.False(t, ok)

	v, err = Fetch(ctx, c, key, func(context.Context) (string, error) { return "fresh", nil })
	require.NoError(t, err)
	assert.Equal(t, "fresh", v)
}

func TestFetchReturnsWhenCallerContextEnds(t *testing.T) {
	c, _ := newTestCache(NewMemoryStore())
	ctx, cancel := context.WithCancel(context.Background())
	release := make(chan struct{})
	defer close(release)

	cancel()
	_, err := Fetch(ctx, c, NewKey(Media, "all"), func(context.Context) (int, error) {
		<-release
		return 1, nil
	})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestFetchReturnsIndependentCopies(t *testing.T) {
	c, _ := newTestCache(NewMemoryStore())
	ctx := context.Background()
	load := func(context.Context) ([]string, error) { return []string{"a"}, nil }

	first, err := Fetch(ctx, c, NewKey(BlogTags, "all"), load)
	require.NoError(t, err)
	first[0] = "mutated"

	second, err := Fetch(ctx, c, NewKey(BlogTags, "all"), load)
	require.NoError(t, err)
	assert.Equal(t, []string{"a"}, second)
}
