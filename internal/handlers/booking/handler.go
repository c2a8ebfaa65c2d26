package booking

import (
	"context"
	"net/http"
	"shareit/infras/otel"
	"shareit/internal/domains/booking/model/dto"
	"shareit/internal/domains/booking/service"
	"shareit/shared"
	"shareit/shared/constant"
	gDto "shareit/shared/dto"
	"shareit/shared/failure"
	"shareit/shared/validator"
	"shareit/transport/http/response"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

type Handler struct {
	service service.Booking
	otel    otel.Otel
}

func New(service service.Booking, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/bookings", func(routerGroup chi.Router) {
		routerGroup.Post("/", handler.CreateBooking)
		routerGroup.Get("/", handler.GetBookerBookings)
		routerGroup.Get("/owner", handler.GetOwnerBookings)
		routerGroup.Get("/{id}", handler.GetBookingByID)
		routerGroup.Patch("/{id}", handler.ApproveBooking)
	})
}

// CreateBooking requests an item for an interval.
// @Summary Create a booking
// @Description Request an item for [start, end). The booking starts WAITING for the owner's decision.
// @Tags Booking
// @Accept json
// @Produce json
// @Param X-Sharer-User-Id header int true "Caller id"
// @Param request body dto.CreateBookingRequest true "Create Booking Request"
// @Success 201 {object} response.Data[dto.BookingResponse] "Created booking"
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /bookings [post]
func (handler *Handler) CreateBooking(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CreateBooking")
	defer scope.End()

	userID, err := shared.RequireUserID(ctx)
	if err != nil {
		response.WithError(w, err)

		return
	}

	req := dto.CreateBookingRequest{}
	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	booking, err := handler.service.Create(ctx, userID, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to create booking")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Booking created successfully")

	response.WithCreated(w, booking)
}

// ApproveBooking records the owner's decision on a booking.
// @Summary Approve or reject a booking
// @Description Only the owner of the booked item may decide. An approved booking cannot be decided again.
// @Tags Booking
// @Accept json
// @Produce json
// @Param X-Sharer-User-Id header int true "Caller id"
// @Param id path int true "Booking ID"
// @Param approved query bool true "Decision"
// @Success 200 {object} response.Data[dto.BookingResponse] "Decided booking"
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /bookings/{id} [patch]
func (handler *Handler) ApproveBooking(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".ApproveBooking")
	defer scope.End()

	userID, err := shared.RequireUserID(ctx)
	if err != nil {
		response.WithError(w, err)

		return
	}

	bookingID, err := shared.ParseID(chi.URLParam(r, constant.RequestParamID))
	if err != nil {
		response.WithError(w, err)

		return
	}

	approved := shared.ConvertStringToBool(r.URL.Query().Get(constant.RequestParamApproved))
	if approved == nil {
		response.WithError(w, failure.BadRequestFromString("approved must be true or false"))

		return
	}

	booking, err := handler.service.Approve(ctx, userID, bookingID, *approved)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to decide booking")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Booking decided successfully")

	response.WithJSON(w, http.StatusOK, booking)
}

// GetBookingByID returns a booking to its booker or to the owner of the booked item.
// @Summary Get a booking by ID
// @Tags Booking
// @Accept json
// @Produce json
// @Param X-Sharer-User-Id header int true "Caller id"
// @Param id path int true "Booking ID"
// @Success 200 {object} response.Data[dto.BookingResponse] "Booking details"
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /bookings/{id} [get]
func (handler *Handler) GetBookingByID(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetBookingByID")
	defer scope.End()

	userID, err := shared.RequireUserID(ctx)
	if err != nil {
		response.WithError(w, err)

		return
	}

	bookingID, err := shared.ParseID(chi.URLParam(r, constant.RequestParamID))
	if err != nil {
		response.WithError(w, err)

		return
	}

	booking, err := handler.service.Get(ctx, userID, bookingID)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get booking by ID")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, booking)
}

// GetBookerBookings lists the caller's own bookings.
// @Summary List bookings made by the caller
// @Description Newest start first. state is one of ALL, CURRENT, PAST, FUTURE, WAITING, REJECTED.
// @Tags Booking
// @Accept json
// @Produce json
// @Param X-Sharer-User-Id header int true "Caller id"
// @Param state query string false "State filter" default(ALL)
// @Param from query int false "Offset" default(0)
// @Param size query int false "Page size" default(10)
// @Success 200 {object} response.Data[[]dto.BookingResponse] "Bookings"
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /bookings [get]
func (handler *Handler) GetBookerBookings(w http.ResponseWriter, r *http.Request) {
	handler.list(w, r, ".GetBookerBookings", handler.service.ListByBooker)
}

// GetOwnerBookings lists the bookings of every item the caller owns.
// @Summary List bookings of the caller's items
// @Description Newest start first. state is one of ALL, CURRENT, PAST, FUTURE, WAITING, REJECTED.
// @Tags Booking
// @Accept json
// @Produce json
// @Param X-Sharer-User-Id header int true "Caller id"
// @Param state query string false "State filter" default(ALL)
// @Param from query int false "Offset" default(0)
// @Param size query int false "Page size" default(10)
// @Success 200 {object} response.Data[[]dto.BookingResponse] "Bookings"
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /bookings/owner [get]
func (handler *Handler) GetOwnerBookings(w http.ResponseWriter, r *http.Request) {
	handler.list(w, r, ".GetOwnerBookings", handler.service.ListByOwner)
}

type listFunc func(ctx context.Context, userID int64, state string, params gDto.QueryParams) ([]dto.BookingResponse, error)

func (handler *Handler) list(w http.ResponseWriter, r *http.Request, scopeName string, fn listFunc) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+scopeName)
	defer scope.End()

	userID, err := shared.RequireUserID(ctx)
	if err != nil {
		response.WithError(w, err)

		return
	}

	queryParams := gDto.QueryParams{}
	if err := queryParams.FromOffsetRequest(r); err != nil {
		response.WithError(w, err)

		return
	}

	state := r.URL.Query().Get(constant.RequestParamState)
	if state == "" {
		state = constant.DefaultValueState
	}

	bookings, err := fn(ctx, userID, state, queryParams)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Str("state", state).Msg("failed to list bookings")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, bookings)
}
