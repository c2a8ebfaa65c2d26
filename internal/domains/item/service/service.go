package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=./mocks/service_mock.go -package=mocks

import (
	"context"
	"fmt"
	"shareit/config"
	"shareit/infras/otel"
	bookingModel "shareit/internal/domains/booking/model"
	bookingRepo "shareit/internal/domains/booking/repository"
	"shareit/internal/domains/item/model"
	"shareit/internal/domains/item/model/dto"
	"shareit/internal/domains/item/repository"
	requestModel "shareit/internal/domains/request/model"
	requestRepo "shareit/internal/domains/request/repository"
	userModel "shareit/internal/domains/user/model"
	userRepo "shareit/internal/domains/user/repository"
	"shareit/shared"
	"shareit/shared/cache"
	"shareit/shared/constant"
	gDto "shareit/shared/dto"
	"shareit/shared/failure"
	"shareit/shared/timezone"
	"strings"

	"github.com/rs/zerolog/log"
)

const (
	cacheSearchItem = "item:search"
)

type Item interface {
	Create(ctx context.Context, ownerID int64, req dto.CreateItemRequest) (dto.ItemResponse, error)
	Update(ctx context.Context, ownerID, itemID int64, req dto.UpdateItemRequest) (dto.ItemResponse, error)
	Get(ctx context.Context, userID, itemID int64) (dto.ItemDetailResponse, error)
	ListByOwner(ctx context.Context, ownerID int64, params gDto.QueryParams) ([]dto.ItemDetailResponse, error)
	Search(ctx context.Context, text string, params gDto.QueryParams) ([]dto.ItemResponse, error)
	AddComment(ctx context.Context, authorID, itemID int64, req dto.CreateCommentRequest) (dto.CommentResponse, error)
}

type serviceImpl struct {
	repo        repository.Item
	commentRepo repository.Comment
	bookingRepo bookingRepo.Booking
	userRepo    userRepo.User
	requestRepo requestRepo.ItemRequest
	cfg         *config.Config
	cache       cache.RedisCache
	otel        otel.Otel
}

func New(
	repo repository.Item,
	commentRepo repository.Comment,
	bookingRepo bookingRepo.Booking,
	userRepo userRepo.User,
	requestRepo requestRepo.ItemRequest,
	cfg *config.Config,
	cache cache.RedisCache,
	otel otel.Otel,
) Item {
	return &serviceImpl{
		repo:        repo,
		commentRepo: commentRepo,
		bookingRepo: bookingRepo,
		userRepo:    userRepo,
		requestRepo: requestRepo,
		cfg:         cfg,
		cache:       cache,
		otel:        otel,
	}
}

func (s *serviceImpl) Create(ctx context.Context, ownerID int64, req dto.CreateItemRequest) (res dto.ItemResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Create")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	if _, err = s.getUser(ctx, ownerID); err != nil {
		return res, err
	}

	if req.RequestID != nil {
		exist, err := s.requestRepo.Exist(ctx, shared.FilterByID(*req.RequestID, requestModel.FieldID, requestModel.TableName))
		if err != nil {
			log.Error().Err(err).Msg("failed to check if item request exists")

			return res, fmt.Errorf("failed to check if item request exists: %w", err)
		}

		if !exist {
			return res, failure.NotFound(fmt.Sprintf("item request %d not found", *req.RequestID))
		}
	}

	item := req.ToModel(ownerID, shared.Actor(ctx))

	item.ID, err = s.repo.InsertReturning(ctx, item)
	if err != nil {
		log.Error().Err(err).Msg("failed to create item")

		return res, fmt.Errorf("failed to create item: %w", err)
	}

	log.Info().Int64("item_id", item.ID).Int64("owner_id", ownerID).Msg("item created")

	res.FromModel(item)

	go func() {
		shared.InvalidateCaches(context.WithoutCancel(ctx), s.cache, cacheSearchItem)
	}()

	return res, nil
}

func (s *serviceImpl) Update(ctx context.Context, ownerID, itemID int64, req dto.UpdateItemRequest) (res dto.ItemResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Update")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	filter := shared.FilterByID(itemID, model.FieldID, model.TableName)

	item, err := s.repo.Get(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get item")

		return res, fmt.Errorf("failed to get item: %w", err)
	}

	if item.ID == 0 || item.OwnerID != ownerID {
		return res, failure.NotFound(fmt.Sprintf("item %d not found for owner %d", itemID, ownerID))
	}

	if req == (dto.UpdateItemRequest{}) {
		res.FromModel(item)

		return res, nil
	}

	if err = s.repo.Update(ctx, shared.TransformFields(req, shared.Actor(ctx)), filter); err != nil {
		log.Error().Err(err).Msg("failed to update item")

		return res, fmt.Errorf("failed to update item: %w", err)
	}

	req.Apply(&item)
	res.FromModel(item)

	go func() {
		shared.InvalidateCaches(context.WithoutCancel(ctx), s.cache, cacheSearchItem)
	}()

	return res, nil
}

func (s *serviceImpl) Get(ctx context.Context, userID, itemID int64) (res dto.ItemDetailResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Get")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	if _, err = s.getUser(ctx, userID); err != nil {
		return res, err
	}

	item, err := s.repo.Get(ctx, shared.FilterByID(itemID, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get item")

		return res, fmt.Errorf("failed to get item: %w", err)
	}

	if item.ID == 0 {
		return res, failure.NotFound(fmt.Sprintf("item %d not found", itemID))
	}

	itemIDs := []int64{item.ID}

	comments, err := s.comments(ctx, itemIDs)
	if err != nil {
		return res, err
	}

	var rollup bookingModel.Rollup

	if item.OwnerID == userID {
		rollups, err := s.rollups(ctx, itemIDs)
		if err != nil {
			return res, err
		}

		rollup = rollups[item.ID]
	}

	return dto.NewItemDetailResponse(item, rollup, comments[item.ID]), nil
}

func (s *serviceImpl) ListByOwner(ctx context.Context, ownerID int64, params gDto.QueryParams) (res []dto.ItemDetailResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".ListByOwner")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	if _, err = s.getUser(ctx, ownerID); err != nil {
		return res, err
	}

	params.SortBy = model.TableName + "." + model.FieldID
	params.SortDir = gDto.SortDirAsc

	items, err := s.repo.GetAll(ctx, params, shared.FilterByID(ownerID, model.FieldOwnerID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get owner items")

		return res, fmt.Errorf("failed to get owner items: %w", err)
	}

	res = make([]dto.ItemDetailResponse, 0, len(items))
	if len(items) == 0 {
		return res, nil
	}

	itemIDs := make([]int64, len(items))
	for i, item := range items {
		itemIDs[i] = item.ID
	}

	rollups, err := s.rollups(ctx, itemIDs)
	if err != nil {
		return res, err
	}

	comments, err := s.comments(ctx, itemIDs)
	if err != nil {
		return res, err
	}

	for _, item := range items {
		res = append(res, dto.NewItemDetailResponse(item, rollups[item.ID], comments[item.ID]))
	}

	return res, nil
}

func (s *serviceImpl) Search(ctx context.Context, text string, params gDto.QueryParams) (res []dto.ItemResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Search")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	text = strings.TrimSpace(text)
	if text == "" {
		return []dto.ItemResponse{}, nil
	}

	filter := gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters: []any{
			gDto.Filter{
				Field:    model.FieldAvailable,
				Value:    true,
				Operator: gDto.FilterOperatorEq,
				Table:    model.TableName,
			},
			gDto.FilterGroup{
				Operator: gDto.FilterGroupOperatorOr,
				Filters: []any{
					gDto.Filter{
						ArgName:  "search_name",
						Field:    model.FieldName,
						Value:    text,
						Operator: gDto.FilterOperatorLike,
						Table:    model.TableName,
					},
					gDto.Filter{
						ArgName:  "search_description",
						Field:    model.FieldDescription,
						Value:    text,
						Operator: gDto.FilterOperatorLike,
						Table:    model.TableName,
					},
				},
			},
		},
	}

	params.SortBy = model.TableName + "." + model.FieldID
	params.SortDir = gDto.SortDirAsc

	cacheKey := shared.BuildCacheKeyWithQuery(cacheSearchItem, params, filter)

	return cache.Remember(ctx, s.cache, cacheKey, s.cfg.Cache.TTL, func(ctx context.Context) ([]dto.ItemResponse, error) {
		items, err := s.repo.GetAll(ctx, params, filter)
		if err != nil {
			log.Error().Err(err).Str("text", text).Msg("failed to search items")

			return nil, fmt.Errorf("failed to search items: %w", err)
		}

		return dto.FromModels(items), nil
	})
}

func (s *serviceImpl) AddComment(ctx context.Context, authorID, itemID int64, req dto.CreateCommentRequest) (res dto.CommentResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".AddComment")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	author, err := s.getUser(ctx, authorID)
	if err != nil {
		return res, err
	}

	exist, err := s.repo.Exist(ctx, shared.FilterByID(itemID, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to check if item exists")

		return res, fmt.Errorf("failed to check if item exists: %w", err)
	}

	if !exist {
		return res, failure.NotFound(fmt.Sprintf("item %d not found", itemID))
	}

	finished := gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters: []any{
			gDto.Filter{Field: bookingModel.FieldBookerID, Value: authorID, Operator: gDto.FilterOperatorEq, Table: bookingModel.TableName},
			gDto.Filter{Field: bookingModel.FieldItemID, Value: itemID, Operator: gDto.FilterOperatorEq, Table: bookingModel.TableName},
			gDto.Filter{Field: bookingModel.FieldEndTime, Value: timezone.Now(), Operator: gDto.FilterOperatorLess, Table: bookingModel.TableName},
			gDto.Filter{Field: bookingModel.FieldStatus, Value: bookingModel.StatusRejected, Operator: gDto.FilterOperatorNotEq, Table: bookingModel.TableName},
		},
	}

	booked, err := s.bookingRepo.Exist(ctx, finished)
	if err != nil {
		log.Error().Err(err).Msg("failed to check finished bookings")

		return res, fmt.Errorf("failed to check finished bookings: %w", err)
	}

	if !booked {
		return res, failure.Validation(fmt.Sprintf("user %d has no finished booking of item %d", authorID, itemID))
	}

	comment := model.CommentDetail{
		Comment:    req.ToModel(itemID, authorID, shared.Actor(ctx)),
		AuthorName: author.Name,
	}

	comment.ID, err = s.commentRepo.InsertReturning(ctx, comment.Comment)
	if err != nil {
		log.Error().Err(err).Msg("failed to create comment")

		return res, fmt.Errorf("failed to create comment: %w", err)
	}

	res.FromModel(comment)

	return res, nil
}

func (s *serviceImpl) getUser(ctx context.Context, userID int64) (userModel.User, error) {
	user, err := s.userRepo.Get(ctx, shared.FilterByID(userID, userModel.FieldID, userModel.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get user")

		return user, fmt.Errorf("failed to get user: %w", err)
	}

	if user.ID == 0 {
		return user, failure.NotFound(fmt.Sprintf("user %d not found", userID))
	}

	return user, nil
}

// rollups loads every booking of the items once and reduces them per item.
func (s *serviceImpl) rollups(ctx context.Context, itemIDs []int64) (map[int64]bookingModel.Rollup, error) {
	now := timezone.Now()

	details, err := s.bookingRepo.GetAll(ctx, gDto.QueryParams{}, bookingModel.StateAll.Filter(bookingModel.OwnerScope(itemIDs), now))
	if err != nil {
		log.Error().Err(err).Msg("failed to get item bookings")

		return nil, fmt.Errorf("failed to get item bookings: %w", err)
	}

	bookings := make([]bookingModel.Booking, len(details))
	for i, detail := range details {
		bookings[i] = detail.Booking
	}

	return bookingModel.Rollups(bookings, now), nil
}

func (s *serviceImpl) comments(ctx context.Context, itemIDs []int64) (map[int64][]model.CommentDetail, error) {
	params := gDto.QueryParams{
		SortBy:  model.CommentTableName + "." + constant.FieldCreatedAt,
		SortDir: gDto.SortDirAsc,
	}

	filter := gDto.FilterGroup{
		Filters: []any{
			gDto.Filter{
				Field:    model.FieldCommentItemID,
				Value:    itemIDs,
				Operator: gDto.FilterOperatorIn,
				Table:    model.CommentTableName,
			},
		},
	}

	comments, err := s.commentRepo.GetAll(ctx, params, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get item comments")

		return nil, fmt.Errorf("failed to get item comments: %w", err)
	}

	byItem := make(map[int64][]model.CommentDetail, len(itemIDs))
	for _, comment := range comments {
		byItem[comment.ItemID] = append(byItem[comment.ItemID], comment)
	}

	return byItem, nil
}
