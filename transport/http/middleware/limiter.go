package middleware

import (
	"context"
	"errors"
	"net/http"
	"shareit/shared"
	"shareit/shared/cache"
	"shareit/shared/constant"
	"shareit/transport/http/response"
	"strconv"
	"strings"

	"github.com/rs/zerolog/log"
)

const (
	cacheKeyRateLimit = "limiter"
	unknownUserAgent  = "unknown"
)

// RateLimit counts requests per caller in fixed windows. Callers are told apart by the
// user id header when it is sent and by address and user agent otherwise.
// A failing cache never blocks traffic.
func (a *appMiddleware) RateLimit() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !a.config.App.RateLimiter.Enable {
				next.ServeHTTP(w, r)

				return
			}

			limit := a.config.App.RateLimiter.MaxRequests
			window := a.config.App.RateLimiter.WindowSeconds

			count, ok := a.hit(r.Context(), a.rateKey(r), window)
			if !ok {
				next.ServeHTTP(w, r)

				return
			}

			if count > limit {
				response.WithRequestLimitExceeded(w)

				return
			}

			w.Header().Set(constant.RequestHeaderRateLimit, strconv.Itoa(limit))
			w.Header().Set(constant.RequestHeaderRateLimitRemaining, strconv.Itoa(max(0, limit-count)))
			w.Header().Set(constant.RequestHeaderRateLimitWindow, strconv.Itoa(window))

			next.ServeHTTP(w, r)
		})
	}
}

// hit bumps the counter stored under key. The second result is false when the cache is unusable.
// An exhausted counter is not saved again so its window is not extended.
func (a *appMiddleware) hit(ctx context.Context, key string, window int) (int, bool) {
	var count int

	err := a.cache.Get(ctx, key, &count)

	switch {
	case errors.Is(err, cache.Nil):
		count = 0
	case err != nil:
		log.Warn().Err(err).Str("key", key).Msg("Rate limiter cache unavailable")

		return 0, false
	}

	count++

	if count > a.config.App.RateLimiter.MaxRequests {
		return count, true
	}

	if err := a.cache.Save(ctx, key, count, window); err != nil {
		log.Warn().Err(err).Str("key", key).Msg("Rate limiter failed to store counter")

		return 0, false
	}

	return count, true
}

func (a *appMiddleware) rateKey(r *http.Request) string {
	if caller := strings.TrimSpace(r.Header.Get(a.userIDHeader())); caller != "" {
		return shared.BuildCacheKey(cacheKeyRateLimit, "user", caller)
	}

	return shared.BuildCacheKey(cacheKeyRateLimit, a.getClientIP(r), a.getUA(r))
}

func (a *appMiddleware) userIDHeader() string {
	if a.config.App.UserIDHeader != "" {
		return a.config.App.UserIDHeader
	}

	return constant.RequestHeaderUserID
}

func (a *appMiddleware) getUA(r *http.Request) string {
	if ua := r.Header.Get(constant.RequestHeaderUserAgent); ua != "" {
		return ua
	}

	return unknownUserAgent
}

// getClientIP prefers the first X-Forwarded-For hop, then X-Real-IP, then the socket address.
func (a *appMiddleware) getClientIP(r *http.Request) string {
	if xff := r.Header.Get(constant.RequestHeaderForwardedFor); xff != "" {
		first, _, _ := strings.Cut(xff, ",")

		return strings.TrimSpace(first)
	}

	if xri := r.Header.Get(constant.RequestHeaderRealIP); xri != "" {
		return strings.TrimSpace(xri)
	}

	return r.RemoteAddr
}
