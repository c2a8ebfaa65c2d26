package middleware_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"shareit/config"
	otelMocks "shareit/infras/otel/mocks"
	"shareit/shared/cache"
	cacheMocks "shareit/shared/cache/mocks"
	"shareit/shared/constant"
	"shareit/transport/http/middleware"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func TestRequestID(t *testing.T) {
	app := middleware.NewAppMiddleware(otelMocks.NewOtel(), &config.Config{}, nil)

	var seen string

	handler := app.RequestID(http.HandlerFunc(func(_ http.ResponseWriter, r *http.Request) {
		seen, _ = r.Context().Value(constant.ContextKeyRequestID).(string)
	}))

	recorder := httptest.NewRecorder()
	handler.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.NotEmpty(t, seen)
	assert.Equal(t, seen, recorder.Header().Get(constant.RequestHeaderRequestID))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(constant.RequestHeaderRequestID, "abc-123")

	recorder = httptest.NewRecorder()
	handler.ServeHTTP(recorder, req)

	assert.Equal(t, "abc-123", seen)
	assert.Equal(t, "abc-123", recorder.Header().Get(constant.RequestHeaderRequestID))
}

func TestRateLimit(t *testing.T) {
	cfg := &config.Config{}
	cfg.App.RateLimiter.Enable = true
	cfg.App.RateLimiter.MaxRequests = 2
	cfg.App.RateLimiter.WindowSeconds = 60

	ok := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	tests := []struct {
		name          string
		header        map[string]string
		setup         func(mockCache *cacheMocks.MockRedisCache)
		wantCode      int
		wantRemaining string
	}{
		{
			name: "first request",
			setup: func(mockCache *cacheMocks.MockRedisCache) {
				mockCache.EXPECT().Get(gomock.Any(), "limiter:10.0.0.1:curl", gomock.Any()).Return(cache.Nil)
				mockCache.EXPECT().Save(gomock.Any(), "limiter:10.0.0.1:curl", 1, 60).Return(nil)
			},
			wantCode:      http.StatusOK,
			wantRemaining: "1",
		},
		{
			name: "over the limit",
			setup: func(mockCache *cacheMocks.MockRedisCache) {
				mockCache.EXPECT().Get(gomock.Any(), "limiter:10.0.0.1:curl", gomock.Any()).
					DoAndReturn(func(_ context.Context, _ string, value any) error {
						*value.(*int) = 2

						return nil
					})
			},
			wantCode: http.StatusTooManyRequests,
		},
		{
			name:   "caller header keys the counter",
			header: map[string]string{constant.RequestHeaderUserID: "7"},
			setup: func(mockCache *cacheMocks.MockRedisCache) {
				mockCache.EXPECT().Get(gomock.Any(), "limiter:user:7", gomock.Any()).
					DoAndReturn(func(_ context.Context, _ string, value any) error {
						*value.(*int) = 1

						return nil
					})
				mockCache.EXPECT().Save(gomock.Any(), "limiter:user:7", 2, 60).Return(nil)
			},
			wantCode:      http.StatusOK,
			wantRemaining: "0",
		},
		{
			name: "cache failure lets the request through",
			setup: func(mockCache *cacheMocks.MockRedisCache) {
				mockCache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(assert.AnError)
			},
			wantCode: http.StatusOK,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			mockCache := cacheMocks.NewMockRedisCache(ctrl)
			tt.setup(mockCache)

			app := middleware.NewAppMiddleware(otelMocks.NewOtel(), cfg, mockCache)

			req := httptest.NewRequest(http.MethodGet, "/items/search", nil)
			req.Header.Set(constant.RequestHeaderForwardedFor, "10.0.0.1, 172.16.0.1")
			req.Header.Set(constant.RequestHeaderUserAgent, "curl")

			for key, value := range tt.header {
				req.Header.Set(key, value)
			}

			recorder := httptest.NewRecorder()
			app.RateLimit()(ok).ServeHTTP(recorder, req)

			assert.Equal(t, tt.wantCode, recorder.Code)
			assert.Equal(t, tt.wantRemaining, recorder.Header().Get(constant.RequestHeaderRateLimitRemaining))
		})
	}
}

func TestTracing(t *testing.T) {
	recorder := otelMocks.NewRecorder()

	cfg := &config.Config{}
	cfg.App.Name = "shareit"

	app := middleware.NewAppMiddleware(recorder, cfg, nil)

	router := chi.NewRouter()
	router.Use(app.RequestID, app.Tracing)
	router.Get("/bookings/{id}", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})

	req := httptest.NewRequest(http.MethodGet, "/bookings/5", nil)
	req.Header.Set(constant.RequestHeaderRequestID, "req-42")

	router.ServeHTTP(httptest.NewRecorder(), req)

	scope, ok := recorder.Find("GET /bookings/5")
	require.True(t, ok)
	assert.True(t, scope.Ended)
	assert.Equal(t, "/bookings/{id}", scope.Attributes["http.route"])
	assert.Equal(t, "req-42", scope.Attributes["http.request_id"])
	assert.Equal(t, http.StatusNotFound, scope.Attributes["http.status_code"])
}
