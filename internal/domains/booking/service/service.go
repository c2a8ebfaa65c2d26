package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=./mocks/service_mock.go -package=mocks

import (
	"context"
	"fmt"
	"shareit/config"
	"shareit/infras/kafka"
	"shareit/infras/otel"
	"shareit/infras/postgres"
	"shareit/internal/domains/booking/model"
	"shareit/internal/domains/booking/model/dto"
	"shareit/internal/domains/booking/repository"
	itemModel "shareit/internal/domains/item/model"
	itemRepo "shareit/internal/domains/item/repository"
	userModel "shareit/internal/domains/user/model"
	userRepo "shareit/internal/domains/user/repository"
	"shareit/shared"
	"shareit/shared/constant"
	gDto "shareit/shared/dto"
	"shareit/shared/failure"
	gModel "shareit/shared/model"
	"shareit/shared/timezone"
	"strconv"

	"github.com/jmoiron/sqlx"
	"github.com/rs/zerolog/log"
)

const (
	headerEventType = "event_type"
	headerRequestID = "request_id"
)

type Booking interface {
	Create(ctx context.Context, bookerID int64, req dto.CreateBookingRequest) (dto.BookingResponse, error)
	Approve(ctx context.Context, ownerID, bookingID int64, approved bool) (dto.BookingResponse, error)
	Get(ctx context.Context, userID, bookingID int64) (dto.BookingResponse, error)
	ListByBooker(ctx context.Context, bookerID int64, state string, params gDto.QueryParams) ([]dto.BookingResponse, error)
	ListByOwner(ctx context.Context, ownerID int64, state string, params gDto.QueryParams) ([]dto.BookingResponse, error)
}

type serviceImpl struct {
	repo       repository.Booking
	itemRepo   itemRepo.Item
	userRepo   userRepo.User
	transactor postgres.Transactor
	kafka      kafka.Client
	cfg        *config.Config
	otel       otel.Otel
}

func New(
	repo repository.Booking,
	itemRepo itemRepo.Item,
	userRepo userRepo.User,
	transactor postgres.Transactor,
	kafka kafka.Client,
	cfg *config.Config,
	otel otel.Otel,
) Booking {
	return &serviceImpl{
		repo:       repo,
		itemRepo:   itemRepo,
		userRepo:   userRepo,
		transactor: transactor,
		kafka:      kafka,
		cfg:        cfg,
		otel:       otel,
	}
}

func (s *serviceImpl) Create(ctx context.Context, bookerID int64, req dto.CreateBookingRequest) (res dto.BookingResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Create")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	start, end, err := req.Interval()
	if err != nil {
		return res, err
	}

	var detail model.BookingDetail

	err = s.transactor.WithinTx(ctx, func(ctx context.Context, tx *sqlx.Tx) error {
		booker, err := s.bookerTx(ctx, tx, bookerID)
		if err != nil {
			return err
		}

		item, err := s.itemRepo.GetForUpdateTx(ctx, tx, shared.FilterByID(req.ItemID, itemModel.FieldID, itemModel.TableName))
		if err != nil {
			log.Error().Err(err).Msg("failed to lock item")

			return fmt.Errorf("failed to lock item: %w", err)
		}

		if item.ID == 0 {
			return failure.NotFound(fmt.Sprintf("item %d not found", req.ItemID))
		}

		booking, err := model.NewBooking(bookerID, item, start, end, gModel.Created(shared.Actor(ctx)))
		if err != nil {
			return err
		}

		booking.ID, err = s.repo.InsertReturningTx(ctx, tx, booking)
		if err != nil {
			log.Error().Err(err).Msg("failed to create booking")

			return fmt.Errorf("failed to create booking: %w", err)
		}

		detail = model.BookingDetail{
			Booking:    booking,
			ItemName:   item.Name,
			OwnerID:    item.OwnerID,
			BookerName: booker.Name,
		}

		return nil
	})
	if err != nil {
		return res, err
	}

	s.publish(ctx, dto.EventBookingCreated, detail.Booking)

	res.FromModel(detail)

	return res, nil
}

func (s *serviceImpl) Approve(ctx context.Context, ownerID, bookingID int64, approved bool) (res dto.BookingResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Approve")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	var detail model.BookingDetail

	err = s.transactor.WithinTx(ctx, func(ctx context.Context, tx *sqlx.Tx) error {
		booking, err := s.repo.GetForUpdateTx(ctx, tx, shared.FilterByID(bookingID, model.FieldID, model.TableName))
		if err != nil {
			log.Error().Err(err).Msg("failed to lock booking")

			return fmt.Errorf("failed to lock booking: %w", err)
		}

		if booking.ID == 0 {
			return failure.NotFound(fmt.Sprintf("booking %d not found", bookingID))
		}

		item, err := s.itemRepo.GetTx(ctx, tx, shared.FilterByID(booking.ItemID, itemModel.FieldID, itemModel.TableName))
		if err != nil {
			log.Error().Err(err).Msg("failed to get booked item")

			return fmt.Errorf("failed to get booked item: %w", err)
		}

		if item.ID == 0 {
			return failure.NotFound(fmt.Sprintf("item %d not found", booking.ItemID))
		}

		if item.OwnerID != ownerID {
			return failure.Validation(fmt.Sprintf("caller is not the item owner: user %d does not own item %d", ownerID, item.ID))
		}

		status, err := booking.Decide(approved)
		if err != nil {
			return err
		}

		booking.Status = status
		booking.Touch(shared.Actor(ctx))

		err = s.repo.UpdateTx(ctx, tx, map[string]any{
			model.FieldStatus:        booking.Status,
			constant.FieldModifiedAt: booking.ModifiedAt,
			constant.FieldModifiedBy: booking.ModifiedBy,
		}, shared.FilterByID(booking.ID, model.FieldID, model.TableName))
		if err != nil {
			log.Error().Err(err).Msg("failed to update booking status")

			return fmt.Errorf("failed to update booking status: %w", err)
		}

		booker, err := s.bookerTx(ctx, tx, booking.BookerID)
		if err != nil {
			return err
		}

		detail = model.BookingDetail{
			Booking:    booking,
			ItemName:   item.Name,
			OwnerID:    item.OwnerID,
			BookerName: booker.Name,
		}

		return nil
	})
	if err != nil {
		return res, err
	}

	s.publish(ctx, dto.DecisionEventType(detail.Status), detail.Booking)

	res.FromModel(detail)

	return res, nil
}

func (s *serviceImpl) Get(ctx context.Context, userID, bookingID int64) (res dto.BookingResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Get")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	booking, err := s.repo.Get(ctx, shared.FilterByID(bookingID, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get booking")

		return res, fmt.Errorf("failed to get booking: %w", err)
	}

	if booking.ID == 0 {
		return res, failure.NotFound(fmt.Sprintf("booking %d not found", bookingID))
	}

	if !booking.VisibleTo(userID) {
		return res, failure.NotFound(fmt.Sprintf("no such booking visible to this user: booking %d, user %d", bookingID, userID))
	}

	res.FromModel(booking)

	return res, nil
}

func (s *serviceImpl) ListByBooker(ctx context.Context, bookerID int64, state string, params gDto.QueryParams) (res []dto.BookingResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".ListByBooker")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	if err = s.ensureUser(ctx, bookerID); err != nil {
		return res, err
	}

	parsed, err := model.ParseState(state)
	if err != nil {
		return res, err
	}

	return s.list(ctx, parsed.Filter(model.BookerScope(bookerID), timezone.Now()), params)
}

func (s *serviceImpl) ListByOwner(ctx context.Context, ownerID int64, state string, params gDto.QueryParams) (res []dto.BookingResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".ListByOwner")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	if err = s.ensureUser(ctx, ownerID); err != nil {
		return res, err
	}

	parsed, err := model.ParseState(state)
	if err != nil {
		return res, err
	}

	items, err := s.itemRepo.GetAll(ctx, gDto.QueryParams{}, shared.FilterByID(ownerID, itemModel.FieldOwnerID, itemModel.TableName), itemModel.FieldID)
	if err != nil {
		log.Error().Err(err).Msg("failed to get owner items")

		return res, fmt.Errorf("failed to get owner items: %w", err)
	}

	if len(items) == 0 {
		return []dto.BookingResponse{}, nil
	}

	itemIDs := make([]int64, len(items))
	for i, item := range items {
		itemIDs[i] = item.ID
	}

	return s.list(ctx, parsed.Filter(model.OwnerScope(itemIDs), timezone.Now()), params)
}

func (s *serviceImpl) list(ctx context.Context, filter gDto.FilterGroup, params gDto.QueryParams) ([]dto.BookingResponse, error) {
	params.SortBy = model.TableName + "." + model.FieldStartTime
	params.SortDir = gDto.SortDirDesc
	params.ThenBy = model.TableName + "." + model.FieldID

	bookings, err := s.repo.GetAll(ctx, params, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get bookings")

		return nil, fmt.Errorf("failed to get bookings: %w", err)
	}

	return dto.FromModels(bookings), nil
}

// bookerTx reads the booker on the transaction's connection, not the replica.
func (s *serviceImpl) bookerTx(ctx context.Context, tx *sqlx.Tx, bookerID int64) (userModel.User, error) {
	booker, err := s.userRepo.GetTx(ctx, tx, shared.FilterByID(bookerID, userModel.FieldID, userModel.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get booker")

		return booker, fmt.Errorf("failed to get booker: %w", err)
	}

	if booker.ID == 0 {
		return booker, failure.NotFound(fmt.Sprintf("user %d not found", bookerID))
	}

	return booker, nil
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

// publish runs after commit. A failed publish is logged and never undoes the booking change.
func (s *serviceImpl) publish(ctx context.Context, eventType string, booking model.Booking) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelEventScopeName, constant.OtelEventScopeName+"."+eventType)
	defer scope.End()

	message := kafka.Message{
		Key:   strconv.FormatInt(booking.ID, 10),
		Value: dto.NewBookingEvent(eventType, booking),
		Headers: map[string]string{
			headerEventType: eventType,
		},
	}

	if requestID, ok := ctx.Value(constant.ContextKeyRequestID).(string); ok {
		message.Headers[headerRequestID] = requestID
	}

	if err := s.kafka.SendMessages(ctx, s.cfg.Kafka.Topic, message); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Int64("booking_id", booking.ID).Str("event", eventType).Msg("failed to publish booking event")
	}
}
