package datasource

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/eko/gocache/lib/v4/cache"
	"github.com/eko/gocache/lib/v4/store"
	redisstore "github.com/eko/gocache/store/redis/v4"
	"github.com/rs/zerolog/log"

	"github.com/davwheat/rail-announcements-sub000/pkg/raildata"
	"github.com/davwheat/rail-announcements-sub000/pkg/redis_client"
)

// CachedSource is a read-through cache over a Source, so several monitors
// watching the same station share one upstream fetch per interval.
type CachedSource struct {
	upstream Source
	cache    *cache.Cache[string]
}

// NewCachedSource wraps upstream with a Redis-backed cache. Requires
// redis_client.Connect to have been called.
func NewCachedSource(upstream Source, ttl time.Duration) *CachedSource {
	redisStore := redisstore.NewRedis(redis_client.Client, store.WithExpiration(ttl))

	return &CachedSource{
		upstream: upstream,
		cache:    cache.New[string](redisStore),
	}
}

func (s *CachedSource) GetServices(ctx context.Context, crs string) ([]raildata.TrainService, error) {
	key := fmt.Sprintf("announcer:board:%s", crs)

	if cached, err := s.cache.Get(ctx, key); err == nil {
		var services []raildata.TrainService
		if err := json.Unmarshal([]byte(cached), &services); err == nil {
			return services, nil
		}
	}

	services, err := s.upstream.GetServices(ctx, crs)
	if err != nil {
		return nil, err
	}

	if encoded, err := json.Marshal(services); err == nil {
		if err := s.cache.Set(ctx, key, string(encoded)); err != nil {
			log.Debug().Err(err).Str("crs", crs).Msg("Failed to cache departure board")
		}
	}

	return services, nil
}
