package service_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"shareit/infras/otel/mocks"
	itemMocks "shareit/internal/domains/item/mocks"
	itemModel "shareit/internal/domains/item/model"
	requestMocks "shareit/internal/domains/request/mocks"
	"shareit/internal/domains/request/model"
	"shareit/internal/domains/request/model/dto"
	"shareit/internal/domains/request/service"
	userMocks "shareit/internal/domains/user/mocks"
	gDto "shareit/shared/dto"
	"shareit/shared/failure"
)

type fixture struct {
	svc      service.ItemRequest
	repo     *requestMocks.MockItemRequest
	itemRepo *itemMocks.MockItem
	userRepo *userMocks.MockUser
}

func newFixture(t *testing.T) fixture {
	t.Helper()

	ctrl := gomock.NewController(t)

	f := fixture{
		repo:     requestMocks.NewMockItemRequest(ctrl),
		itemRepo: itemMocks.NewMockItem(ctrl),
		userRepo: userMocks.NewMockUser(ctrl),
	}
	f.svc = service.New(f.repo, f.itemRepo, f.userRepo, mocks.NewOtel())

	return f
}

func TestItemRequestService_Create(t *testing.T) {
	t.Run("unknown requestor", func(t *testing.T) {
		f := newFixture(t)
		f.userRepo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(false, nil)

		_, err := f.svc.Create(context.Background(), 3, dto.CreateItemRequestRequest{Description: "Need a ladder"})
		assert.Equal(t, failure.KindNotFound, failure.GetKind(err))
	})

	t.Run("created without answers", func(t *testing.T) {
		f := newFixture(t)
		f.userRepo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(true, nil)
		f.repo.EXPECT().InsertReturning(gomock.Any(), gomock.Any()).Return(int64(4), nil)

		res, err := f.svc.Create(context.Background(), 3, dto.CreateItemRequestRequest{Description: "Need a ladder"})

		require.NoError(t, err)
		assert.Equal(t, int64(4), res.ID)
		assert.Equal(t, int64(3), res.RequestorID)
		assert.NotNil(t, res.Items)
		assert.Empty(t, res.Items)
	})
}

func TestItemRequestService_ListOwn(t *testing.T) {
	f := newFixture(t)
	f.userRepo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(true, nil)
	f.repo.EXPECT().GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, params gDto.QueryParams, filter gDto.FilterGroup, _ ...string) ([]model.ItemRequest, error) {
			assert.Equal(t, "item_requests.created_at", params.SortBy)
			assert.Equal(t, "item_requests.id", params.ThenBy)
			assert.Equal(t, gDto.SortDirDesc, params.SortDir)

			where, _ := filter.GetWhereClause()
			assert.Equal(t, "(item_requests.requestor_id = :requestor_id)", where)

			return []model.ItemRequest{{ID: 5, RequestorID: 3}, {ID: 4, RequestorID: 3}}, nil
		})

	requestID := int64(4)
	f.itemRepo.EXPECT().GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
		Return([]itemModel.Item{{ID: 9, Name: "Ladder", OwnerID: 1, RequestID: &requestID}}, nil)

	res, err := f.svc.ListOwn(context.Background(), 3)

	require.NoError(t, err)
	require.Len(t, res, 2)
	assert.Empty(t, res[0].Items)
	require.Len(t, res[1].Items, 1)
	assert.Equal(t, int64(9), res[1].Items[0].ID)
	assert.Equal(t, int64(4), res[1].Items[0].RequestID)
}

func TestItemRequestService_ListOthers(t *testing.T) {
	f := newFixture(t)
	f.userRepo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(true, nil)
	f.repo.EXPECT().GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, params gDto.QueryParams, filter gDto.FilterGroup, _ ...string) ([]model.ItemRequest, error) {
			assert.Equal(t, 2, params.Offset)
			assert.Equal(t, 1, params.Limit)

			where, _ := filter.GetWhereClause()
			assert.Equal(t, "(item_requests.requestor_id != :requestor_id)", where)

			return nil, nil
		})

	res, err := f.svc.ListOthers(context.Background(), 3, gDto.QueryParams{Offset: 2, Limit: 1})

	require.NoError(t, err)
	assert.NotNil(t, res)
	assert.Empty(t, res)
}

func TestItemRequestService_Get(t *testing.T) {
	t.Run("unknown request", func(t *testing.T) {
		f := newFixture(t)
		f.userRepo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(true, nil)
		f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.ItemRequest{}, nil)

		_, err := f.svc.Get(context.Background(), 3, 4)
		assert.Equal(t, failure.KindNotFound, failure.GetKind(err))
		assert.Contains(t, err.Error(), "item request 4 not found")
	})

	t.Run("any user may read a request", func(t *testing.T) {
		f := newFixture(t)
		f.userRepo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(true, nil)
		f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.ItemRequest{ID: 4, RequestorID: 1, Description: "Need a ladder"}, nil)
		f.itemRepo.EXPECT().GetAll(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, nil)

		res, err := f.svc.Get(context.Background(), 3, 4)

		require.NoError(t, err)
		assert.Equal(t, "Need a ladder", res.Description)
	})
}
