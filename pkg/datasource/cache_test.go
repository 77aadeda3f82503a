package datasource

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/eko/gocache/lib/v4/cache"
	"github.com/eko/gocache/lib/v4/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/davwheat/rail-announcements-sub000/pkg/raildata"
)

// memoryStore is a minimal gocache store so the read-through cache can be
// exercised without Redis.
type memoryStore struct {
	values map[string]string
	setErr error
}

func newMemoryStore() *memoryStore {
	return &memoryStore{values: map[string]string{}}
}

func (s *memoryStore) Get(_ context.Context, key any) (any, error) {
	value, ok := s.values[key.(string)]
	if !ok {
		return nil, errors.New("value not found")
	}
	return value, nil
}

func (s *memoryStore) GetWithTTL(ctx context.Context, key any) (any, time.Duration, error) {
	value, err := s.Get(ctx, key)
	return value, 0, err
}

func (s *memoryStore) Set(_ context.Context, key any, value any, _ ...store.Option) error {
	if s.setErr != nil {
		return s.setErr
	}
	s.values[key.(string)] = value.(string)
	return nil
}

func (s *memoryStore) Delete(_ context.Context, key any) error {
	delete(s.values, key.(string))
	return nil
}

func (s *memoryStore) Invalidate(context.Context, ...store.InvalidateOption) error {
	return nil
}

func (s *memoryStore) Clear(context.Context) error {
	s.values = map[string]string{}
	return nil
}

func (s *memoryStore) GetType() string { return "memory" }

type countingSource struct {
	calls    int
	services []raildata.TrainService
}

func (s *countingSource) GetServices(context.Context, string) ([]raildata.TrainService, error) {
	s.calls++
	return s.services, nil
}

func TestCachedSourceReadThrough(t *testing.T) {
	upstream := &countingSource{services: []raildata.TrainService{{RID: "a"}}}
	source := &CachedSource{upstream: upstream, cache: cache.New[string](newMemoryStore())}

	services, err := source.GetServices(context.Background(), "CLJ")
	require.NoError(t, err)
	require.Len(t, services, 1)
	assert.Equal(t, 1, upstream.calls)

	// The second fetch is served from the cache.
	services, err = source.GetServices(context.Background(), "CLJ")
	require.NoError(t, err)
	require.Len(t, services, 1)
	assert.Equal(t, "a", services[0].RID)
	assert.Equal(t, 1, upstream.calls)
}

func TestCachedSourceSurvivesCacheWriteFailure(t *testing.T) {
	memory := newMemoryStore()
	memory.setErr = errors.New("store unavailable")

	upstream := &countingSource{services: []raildata.TrainService{{RID: "a"}}}
	source := &CachedSource{upstream: upstream, cache: cache.New[string](memory)}

	services, err := source.GetServices(context.Background(), "CLJ")
	require.NoError(t, err)
	require.Len(t, services, 1)

	// Nothing was cached, so the next call goes upstream again.
	_, err = source.GetServices(context.Background(), "CLJ")
	require.NoError(t, err)
	assert.Equal(t, 2, upstream.calls)
}
