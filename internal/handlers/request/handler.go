package request

import (
	"net/http"
	"shareit/infras/otel"
	"shareit/internal/domains/request/model/dto"
	"shareit/internal/domains/request/service"
	"shareit/shared"
	"shareit/shared/constant"
	gDto "shareit/shared/dto"
	"shareit/shared/validator"
	"shareit/transport/http/response"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

type Handler struct {
	service service.ItemRequest
	otel    otel.Otel
}

func New(service service.ItemRequest, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/requests", func(routerGroup chi.Router) {
		routerGroup.Post("/", handler.CreateRequest)
		routerGroup.Get("/", handler.GetOwnRequests)
		routerGroup.Get("/all", handler.GetOtherRequests)
		routerGroup.Get("/{id}", handler.GetRequestByID)
	})
}

// CreateRequest asks the community for an item that is not listed yet.
// @Summary Create an item request
// @Tags Request
// @Accept json
// @Produce json
// @Param X-Sharer-User-Id header int true "Caller id"
// @Param request body dto.CreateItemRequestRequest true "Create Item Request"
// @Success 201 {object} response.Data[dto.ItemRequestResponse] "Created request"
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /requests [post]
func (handler *Handler) CreateRequest(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CreateRequest")
	defer scope.End()

	userID, err := shared.RequireUserID(ctx)
	if err != nil {
		response.WithError(w, err)

		return
	}

	req := dto.CreateItemRequestRequest{}
	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	request, err := handler.service.Create(ctx, userID, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to create item request")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Item request created successfully")

	response.WithCreated(w, request)
}

// GetOwnRequests lists the caller's requests, newest first, with the items answering them.
// @Summary List own item requests
// @Tags Request
// @Accept json
// @Produce json
// @Param X-Sharer-User-Id header int true "Caller id"
// @Success 200 {object} response.Data[[]dto.ItemRequestResponse] "Requests"
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /requests [get]
func (handler *Handler) GetOwnRequests(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetOwnRequests")
	defer scope.End()

	userID, err := shared.RequireUserID(ctx)
	if err != nil {
		response.WithError(w, err)

		return
	}

	requests, err := handler.service.ListOwn(ctx, userID)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to list own item requests")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, requests)
}

// GetOtherRequests pages through the requests of other users.
// @Summary List other users' item requests
// @Tags Request
// @Accept json
// @Produce json
// @Param X-Sharer-User-Id header int true "Caller id"
// @Param from query int false "Offset" default(0)
// @Param size query int false "Page size" default(10)
// @Success 200 {object} response.Data[[]dto.ItemRequestResponse] "Requests"
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /requests/all [get]
func (handler *Handler) GetOtherRequests(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetOtherRequests")
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

	requests, err := handler.service.ListOthers(ctx, userID, queryParams)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to list other item requests")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, requests)
}

// GetRequestByID returns one request with the items answering it.
// @Summary Get an item request by ID
// @Tags Request
// @Accept json
// @Produce json
// @Param X-Sharer-User-Id header int true "Caller id"
// @Param id path int true "Request ID"
// @Success 200 {object} response.Data[dto.ItemRequestResponse] "Request"
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /requests/{id} [get]
func (handler *Handler) GetRequestByID(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetRequestByID")
	defer scope.End()

	userID, err := shared.RequireUserID(ctx)
	if err != nil {
		response.WithError(w, err)

		return
	}

	requestID, err := shared.ParseID(chi.URLParam(r, constant.RequestParamID))
	if err != nil {
		response.WithError(w, err)

		return
	}

	request, err := handler.service.Get(ctx, userID, requestID)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get item request by ID")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, request)
}
