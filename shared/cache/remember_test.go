package cache_test

import (
	"context"
	"errors"
	"shareit/shared/cache"
	"shareit/shared/cache/mocks"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
)

type itemPage struct {
	IDs []int64 `json:"ids"`
}

func TestRemember(t *testing.T) {
	t.Run("hit skips the loader", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		mockCache := mocks.NewMockRedisCache(ctrl)

		mockCache.EXPECT().Get(gomock.Any(), "item:search:drill", gomock.Any()).
			DoAndReturn(func(_ context.Context, _ string, value any) error {
				*value.(*itemPage) = itemPage{IDs: []int64{4}}

				return nil
			})

		got, err := cache.Remember(context.Background(), mockCache, "item:search:drill", 60, func(context.Context) (itemPage, error) {
			t.Fatal("loader must not run on a hit")

			return itemPage{}, nil
		})

		assert.NoError(t, err)
		assert.Equal(t, []int64{4}, got.IDs)
	})

	t.Run("miss loads and stores", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		mockCache := mocks.NewMockRedisCache(ctrl)
		saved := make(chan any, 1)

		mockCache.EXPECT().Get(gomock.Any(), "item:search:drill", gomock.Any()).Return(cache.Nil)
		mockCache.EXPECT().Save(gomock.Any(), "item:search:drill", itemPage{IDs: []int64{1, 2}}, 60).
			DoAndReturn(func(_ context.Context, _ string, value any, _ int) error {
				saved <- value

				return nil
			})

		got, err := cache.Remember(context.Background(), mockCache, "item:search:drill", 60, func(context.Context) (itemPage, error) {
			return itemPage{IDs: []int64{1, 2}}, nil
		})

		assert.NoError(t, err)
		assert.Equal(t, []int64{1, 2}, got.IDs)
		assert.Equal(t, itemPage{IDs: []int64{1, 2}}, <-saved)
	})

	t.Run("loader error is returned and not cached", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		mockCache := mocks.NewMockRedisCache(ctrl)
		loadErr := errors.New("pq: timeout")

		mockCache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(cache.Nil)

		_, err := cache.Remember(context.Background(), mockCache, "user:get:1", 60, func(context.Context) (int, error) {
			return 0, loadErr
		})

		assert.ErrorIs(t, err, loadErr)
	})
}
