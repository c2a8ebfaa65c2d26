package cache

import (
	"context"

	"github.com/rs/zerolog/log"
)

// Remember returns the cached value for key or loads it. A loaded value is written back in the
// background with a context detached from the request; failures there are only logged.
func Remember[T any](ctx context.Context, c RedisCache, key string, ttl int, load func(context.Context) (T, error)) (T, error) {
	var cached T
	if err := c.Get(ctx, key, &cached); err == nil {
		log.Debug().Str("cacheKey", key).Msg("cache hit")

		return cached, nil
	}

	value, err := load(ctx)
	if err != nil {
		return value, err
	}

	go func() {
		if err := c.Save(context.WithoutCancel(ctx), key, value, ttl); err != nil {
			log.Error().Err(err).Str("cacheKey", key).Msg("failed to save value to cache")
		}
	}()

	return value, nil
}
