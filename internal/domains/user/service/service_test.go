package service_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"shareit/config"
	"shareit/infras/otel/mocks"
	userMocks "shareit/internal/domains/user/mocks"
	"shareit/internal/domains/user/model"
	"shareit/internal/domains/user/model/dto"
	"shareit/internal/domains/user/service"
	cacheMocks "shareit/shared/cache/mocks"
	"shareit/shared/constant"
	gDto "shareit/shared/dto"
	"shareit/shared/failure"
)

func newService(t *testing.T) (service.User, *userMocks.MockUser, *cacheMocks.MockRedisCache) {
	t.Helper()

	ctrl := gomock.NewController(t)

	mockRepo := userMocks.NewMockUser(ctrl)
	mockCache := cacheMocks.NewMockRedisCache(ctrl)

	cfg := &config.Config{}
	cfg.Cache.TTL = 3600

	mockCache.EXPECT().Clear(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	mockCache.EXPECT().Delete(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	mockCache.EXPECT().Save(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil).AnyTimes()

	return service.New(mockRepo, cfg, mockCache, mocks.NewOtel()), mockRepo, mockCache
}

func strPtr(s string) *string {
	return &s
}

func TestUserService_Create(t *testing.T) {
	tests := []struct {
		name      string
		req       dto.CreateUserRequest
		setupMock func(repo *userMocks.MockUser)
		wantKind  failure.Kind
		wantErr   bool
		wantID    int64
	}{
		{
			name: "successful creation",
			req:  dto.CreateUserRequest{Name: "Alice", Email: "alice@example.com"},
			setupMock: func(repo *userMocks.MockUser) {
				repo.EXPECT().EmailTaken(gomock.Any(), "alice@example.com", int64(0)).Return(false, nil)
				repo.EXPECT().InsertReturning(gomock.Any(), gomock.Any()).Return(int64(1), nil)
			},
			wantID: 1,
		},
		{
			name: "email already registered",
			req:  dto.CreateUserRequest{Name: "Alice", Email: "alice@example.com"},
			setupMock: func(repo *userMocks.MockUser) {
				repo.EXPECT().EmailTaken(gomock.Any(), "alice@example.com", int64(0)).Return(true, nil)
			},
			wantErr:  true,
			wantKind: failure.KindConflict,
		},
		{
			name: "unique violation from concurrent insert",
			req:  dto.CreateUserRequest{Name: "Alice", Email: "alice@example.com"},
			setupMock: func(repo *userMocks.MockUser) {
				repo.EXPECT().EmailTaken(gomock.Any(), "alice@example.com", int64(0)).Return(false, nil)
				repo.EXPECT().InsertReturning(gomock.Any(), gomock.Any()).
					Return(int64(0), &pq.Error{Code: constant.PqErrorCodeUniqueViolation})
			},
			wantErr:  true,
			wantKind: failure.KindConflict,
		},
		{
			name: "repository error",
			req:  dto.CreateUserRequest{Name: "Alice", Email: "alice@example.com"},
			setupMock: func(repo *userMocks.MockUser) {
				repo.EXPECT().EmailTaken(gomock.Any(), "alice@example.com", int64(0)).Return(false, errors.New("database error"))
			},
			wantErr:  true,
			wantKind: failure.KindUnknown,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, repo, _ := newService(t)
			tt.setupMock(repo)

			res, err := svc.Create(context.Background(), tt.req)

			time.Sleep(10 * time.Millisecond)

			if tt.wantErr {
				assert.Error(t, err)
				assert.Equal(t, tt.wantKind, failure.GetKind(err))

				return
			}

			assert.NoError(t, err)
			assert.Equal(t, tt.wantID, res.ID)
			assert.Equal(t, tt.req.Email, res.Email)
			assert.Equal(t, constant.ContextSystem, res.CreatedBy)
		})
	}
}

func TestUserService_Get(t *testing.T) {
	t.Run("cache hit skips repository", func(t *testing.T) {
		svc, _, mockCache := newService(t)

		mockCache.EXPECT().Get(gomock.Any(), "user:get:3", gomock.Any()).Return(nil)

		_, err := svc.Get(context.Background(), 3)
		assert.NoError(t, err)
	})

	t.Run("cache miss reads repository", func(t *testing.T) {
		svc, repo, mockCache := newService(t)

		mockCache.EXPECT().Get(gomock.Any(), "user:get:3", gomock.Any()).Return(errors.New("cache miss"))
		repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.User{ID: 3, Name: "Bob", Email: "bob@example.com"}, nil)

		res, err := svc.Get(context.Background(), 3)

		time.Sleep(10 * time.Millisecond)

		assert.NoError(t, err)
		assert.Equal(t, int64(3), res.ID)
		assert.Equal(t, "Bob", res.Name)
	})

	t.Run("unknown user", func(t *testing.T) {
		svc, repo, mockCache := newService(t)

		mockCache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("cache miss"))
		repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.User{}, nil)

		_, err := svc.Get(context.Background(), 99)
		assert.Equal(t, failure.KindNotFound, failure.GetKind(err))
		assert.Contains(t, err.Error(), "99")
	})
}

func TestUserService_GetAll(t *testing.T) {
	svc, repo, mockCache := newService(t)

	mockCache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("cache miss")).Times(2)
	repo.EXPECT().Count(gomock.Any(), gomock.Any()).Return(11, nil)
	repo.EXPECT().GetAll(gomock.Any(), gomock.Any(), gomock.Any()).Return([]model.User{{ID: 1, Name: "Alice"}}, nil)

	res, err := svc.GetAll(context.Background(), gDto.QueryParams{Page: 1, Limit: 10}, gDto.FilterGroup{})

	time.Sleep(10 * time.Millisecond)

	assert.NoError(t, err)
	assert.Equal(t, 11, res.TotalData)
	assert.Equal(t, 2, res.TotalPage)
	assert.Len(t, res.Users, 1)
}

func TestUserService_Update(t *testing.T) {
	existing := model.User{ID: 5, Name: "Carol", Email: "carol@example.com"}

	tests := []struct {
		name      string
		req       dto.UpdateUserRequest
		setupMock func(repo *userMocks.MockUser)
		wantKind  failure.Kind
		wantErr   bool
		wantName  string
		wantEmail string
	}{
		{
			name:    "empty request",
			req:     dto.UpdateUserRequest{},
			wantErr: true,
			setupMock: func(_ *userMocks.MockUser) {
			},
			wantKind: failure.KindValidation,
		},
		{
			name: "unknown user",
			req:  dto.UpdateUserRequest{Name: strPtr("New")},
			setupMock: func(repo *userMocks.MockUser) {
				repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.User{}, nil)
			},
			wantErr:  true,
			wantKind: failure.KindNotFound,
		},
		{
			name: "name only keeps email",
			req:  dto.UpdateUserRequest{Name: strPtr("Caroline")},
			setupMock: func(repo *userMocks.MockUser) {
				repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(existing, nil)
				repo.EXPECT().Update(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)
			},
			wantName:  "Caroline",
			wantEmail: "carol@example.com",
		},
		{
			name: "email taken by another user",
			req:  dto.UpdateUserRequest{Email: strPtr("dave@example.com")},
			setupMock: func(repo *userMocks.MockUser) {
				repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(existing, nil)
				repo.EXPECT().EmailTaken(gomock.Any(), "dave@example.com", int64(5)).Return(true, nil)
			},
			wantErr:  true,
			wantKind: failure.KindConflict,
		},
		{
			name: "same email is not a conflict",
			req:  dto.UpdateUserRequest{Email: strPtr("carol@example.com")},
			setupMock: func(repo *userMocks.MockUser) {
				repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(existing, nil)
				repo.EXPECT().Update(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)
			},
			wantName:  "Carol",
			wantEmail: "carol@example.com",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, repo, _ := newService(t)
			tt.setupMock(repo)

			res, err := svc.Update(context.Background(), tt.req, 5)

			time.Sleep(10 * time.Millisecond)

			if tt.wantErr {
				assert.Error(t, err)
				assert.Equal(t, tt.wantKind, failure.GetKind(err))

				return
			}

			assert.NoError(t, err)
			assert.Equal(t, tt.wantName, res.Name)
			assert.Equal(t, tt.wantEmail, res.Email)
		})
	}
}

func TestUserService_Delete(t *testing.T) {
	t.Run("successful delete", func(t *testing.T) {
		svc, repo, _ := newService(t)

		repo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(true, nil)
		repo.EXPECT().Delete(gomock.Any(), gomock.Any()).Return(nil)

		err := svc.Delete(context.Background(), 5)

		time.Sleep(10 * time.Millisecond)

		assert.NoError(t, err)
	})

	t.Run("unknown user", func(t *testing.T) {
		svc, repo, _ := newService(t)

		repo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(false, nil)

		err := svc.Delete(context.Background(), 5)
		assert.Equal(t, failure.KindNotFound, failure.GetKind(err))
	})
}
