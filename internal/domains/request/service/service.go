package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=./mocks/service_mock.go -package=mocks

import (
	"context"
	"fmt"
	"shareit/infras/otel"
	itemModel "shareit/internal/domains/item/model"
	itemRepo "shareit/internal/domains/item/repository"
	"shareit/internal/domains/request/model"
	"shareit/internal/domains/request/model/dto"
	"shareit/internal/domains/request/repository"
	userModel "shareit/internal/domains/user/model"
	userRepo "shareit/internal/domains/user/repository"
	"shareit/shared"
	"shareit/shared/constant"
	gDto "shareit/shared/dto"
	"shareit/shared/failure"

	"github.com/rs/zerolog/log"
)

type ItemRequest interface {
	Create(ctx context.Context, requestorID int64, req dto.CreateItemRequestRequest) (dto.ItemRequestResponse, error)
	ListOwn(ctx context.Context, requestorID int64) ([]dto.ItemRequestResponse, error)
	ListOthers(ctx context.Context, userID int64, params gDto.QueryParams) ([]dto.ItemRequestResponse, error)
	Get(ctx context.Context, userID, requestID int64) (dto.ItemRequestResponse, error)
}

type serviceImpl struct {
	repo     repository.ItemRequest
	itemRepo itemRepo.Item
	userRepo userRepo.User
	otel     otel.Otel
}

func New(repo repository.ItemRequest, itemRepo itemRepo.Item, userRepo userRepo.User, otel otel.Otel) ItemRequest {
	return &serviceImpl{
		repo:     repo,
		itemRepo: itemRepo,
		userRepo: userRepo,
		otel:     otel,
	}
}

func (s *serviceImpl) Create(ctx context.Context, requestorID int64, req dto.CreateItemRequestRequest) (res dto.ItemRequestResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Create")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	if err = s.ensureUser(ctx, requestorID); err != nil {
		return res, err
	}

	request := req.ToModel(requestorID, shared.Actor(ctx))

	request.ID, err = s.repo.InsertReturning(ctx, request)
	if err != nil {
		log.Error().Err(err).Msg("failed to create item request")

		return res, fmt.Errorf("failed to create item request: %w", err)
	}

	res.FromModel(request, nil)

	return res, nil
}

func (s *serviceImpl) ListOwn(ctx context.Context, requestorID int64) (res []dto.ItemRequestResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".ListOwn")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	if err = s.ensureUser(ctx, requestorID); err != nil {
		return res, err
	}

	filter := shared.FilterByID(requestorID, model.FieldRequestorID, model.TableName)

	return s.list(ctx, gDto.QueryParams{}, filter)
}

func (s *serviceImpl) ListOthers(ctx context.Context, userID int64, params gDto.QueryParams) (res []dto.ItemRequestResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".ListOthers")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	if err = s.ensureUser(ctx, userID); err != nil {
		return res, err
	}

	filter := gDto.FilterGroup{
		Filters: []any{
			gDto.Filter{
				Field:    model.FieldRequestorID,
				Value:    userID,
				Operator: gDto.FilterOperatorNotEq,
				Table:    model.TableName,
			},
		},
	}

	return s.list(ctx, params, filter)
}

func (s *serviceImpl) Get(ctx context.Context, userID, requestID int64) (res dto.ItemRequestResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Get")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	if err = s.ensureUser(ctx, userID); err != nil {
		return res, err
	}

	request, err := s.repo.Get(ctx, shared.FilterByID(requestID, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get item request")

		return res, fmt.Errorf("failed to get item request: %w", err)
	}

	if request.ID == 0 {
		return res, failure.NotFound(fmt.Sprintf("item request %d not found", requestID))
	}

	answers, err := s.answers(ctx, []int64{request.ID})
	if err != nil {
		return res, err
	}

	res.FromModel(request, answers[request.ID])

	return res, nil
}

// list returns the matching requests newest first, each with the items answering it.
func (s *serviceImpl) list(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup) ([]dto.ItemRequestResponse, error) {
	params.SortBy = model.TableName + "." + constant.FieldCreatedAt
	params.SortDir = gDto.SortDirDesc
	params.ThenBy = model.TableName + "." + model.FieldID

	requests, err := s.repo.GetAll(ctx, params, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get item requests")

		return nil, fmt.Errorf("failed to get item requests: %w", err)
	}

	res := make([]dto.ItemRequestResponse, len(requests))
	if len(requests) == 0 {
		return res, nil
	}

	requestIDs := make([]int64, len(requests))
	for i, request := range requests {
		requestIDs[i] = request.ID
	}

	answers, err := s.answers(ctx, requestIDs)
	if err != nil {
		return nil, err
	}

	for i, request := range requests {
		res[i].FromModel(request, answers[request.ID])
	}

	return res, nil
}

func (s *serviceImpl) answers(ctx context.Context, requestIDs []int64) (map[int64][]itemModel.Item, error) {
	filter := gDto.FilterGroup{
		Filters: []any{
			gDto.Filter{
				Field:    itemModel.FieldRequestID,
				Value:    requestIDs,
				Operator: gDto.FilterOperatorIn,
				Table:    itemModel.TableName,
			},
		},
	}

	items, err := s.itemRepo.GetAll(ctx, gDto.QueryParams{}, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get answering items")

		return nil, fmt.Errorf("failed to get answering items: %w", err)
	}

	byRequest := make(map[int64][]itemModel.Item, len(requestIDs))
	for _, item := range items {
		if item.RequestID != nil {
			byRequest[*item.RequestID] = append(byRequest[*item.RequestID], item)
		}
	}

	return byRequest, nil
}

func (s *serviceImpl) ensureUser(ctx context.Context, userID int64) error {
	exist, err := s.userRepo.Exist(ctx, shared.FilterByID(userID, userModel.FieldID, userModel.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to check if user exists")

		return fmt.Errorf("failed to check if user exists: %w", err)
	}

	if !exist {
		return failure.NotFound(fmt.Sprintf("user %d not found", userID))
	}

	return nil
}
