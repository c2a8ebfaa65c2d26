package item

import (
	"net/http"
	"shareit/infras/otel"
	"shareit/internal/domains/item/model/dto"
	"shareit/internal/domains/item/service"
	"shareit/shared"
	"shareit/shared/constant"
	gDto "shareit/shared/dto"
	"shareit/shared/validator"
	"shareit/transport/http/response"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

type Handler struct {
	service service.Item
	otel    otel.Otel
}

func New(service service.Item, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/items", func(routerGroup chi.Router) {
		routerGroup.Post("/", handler.CreateItem)
		routerGroup.Get("/", handler.GetOwnItems)
		routerGroup.Get("/search", handler.SearchItems)
		routerGroup.Get("/{id}", handler.GetItemByID)
		routerGroup.Patch("/{id}", handler.UpdateItem)
		routerGroup.Post("/{id}/comment", handler.AddComment)
	})
}

// CreateItem lists a new item owned by the caller.
// @Summary Create an item
// @Tags Item
// @Accept json
// @Produce json
// @Param X-Sharer-User-Id header int true "Caller id"
// @Param request body dto.CreateItemRequest true "Create Item Request"
// @Success 201 {object} response.Data[dto.ItemResponse] "Created item"
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /items [post]
func (handler *Handler) CreateItem(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CreateItem")
	defer scope.End()

	userID, err := shared.RequireUserID(ctx)
	if err != nil {
		response.WithError(w, err)

		return
	}

	req := dto.CreateItemRequest{}
	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	item, err := handler.service.Create(ctx, userID, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to create item")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Item created successfully")

	response.WithCreated(w, item)
}

// UpdateItem changes the name, description or availability of an owned item.
// @Summary Update an item
// @Tags Item
// @Accept json
// @Produce json
// @Param X-Sharer-User-Id header int true "Caller id"
// @Param id path int true "Item ID"
// @Param request body dto.UpdateItemRequest true "Update Item Request"
// @Success 200 {object} response.Data[dto.ItemResponse] "Updated item"
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /items/{id} [patch]
func (handler *Handler) UpdateItem(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".UpdateItem")
	defer scope.End()

	userID, err := shared.RequireUserID(ctx)
	if err != nil {
		response.WithError(w, err)

		return
	}

	itemID, err := shared.ParseID(chi.URLParam(r, constant.RequestParamID))
	if err != nil {
		response.WithError(w, err)

		return
	}

	req := dto.UpdateItemRequest{}
	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	item, err := handler.service.Update(ctx, userID, itemID, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to update item")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Item updated successfully")

	response.WithJSON(w, http.StatusOK, item)
}

// GetItemByID returns an item with its comments. The owner also sees its last and next bookings.
// @Summary Get an item by ID
// @Tags Item
// @Accept json
// @Produce json
// @Param X-Sharer-User-Id header int true "Caller id"
// @Param id path int true "Item ID"
// @Success 200 {object} response.Data[dto.ItemDetailResponse] "Item details"
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /items/{id} [get]
func (handler *Handler) GetItemByID(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetItemByID")
	defer scope.End()

	userID, err := shared.RequireUserID(ctx)
	if err != nil {
		response.WithError(w, err)

		return
	}

	itemID, err := shared.ParseID(chi.URLParam(r, constant.RequestParamID))
	if err != nil {
		response.WithError(w, err)

		return
	}

	item, err := handler.service.Get(ctx, userID, itemID)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get item by ID")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, item)
}

// GetOwnItems lists the caller's items with their bookings summary.
// @Summary List own items
// @Tags Item
// @Accept json
// @Produce json
// @Param X-Sharer-User-Id header int true "Caller id"
// @Param from query int false "Offset" default(0)
// @Param size query int false "Page size" default(10)
// @Success 200 {object} response.Data[[]dto.ItemDetailResponse] "Items"
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /items [get]
func (handler *Handler) GetOwnItems(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetOwnItems")
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

	items, err := handler.service.ListByOwner(ctx, userID, queryParams)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to list own items")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, items)
}

// SearchItems finds available items by name or description.
// @Summary Search available items
// @Tags Item
// @Accept json
// @Produce json
// @Param text query string true "Search text"
// @Param from query int false "Offset" default(0)
// @Param size query int false "Page size" default(10)
// @Success 200 {object} response.Data[[]dto.ItemResponse] "Items"
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /items/search [get]
func (handler *Handler) SearchItems(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".SearchItems")
	defer scope.End()

	queryParams := gDto.QueryParams{}
	if err := queryParams.FromOffsetRequest(r); err != nil {
		response.WithError(w, err)

		return
	}

	items, err := handler.service.Search(ctx, r.URL.Query().Get(constant.RequestParamText), queryParams)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to search items")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, items)
}

// AddComment lets a past booker review an item.
// @Summary Comment on an item
// @Description The caller needs a finished, non-rejected booking of the item.
// @Tags Item
// @Accept json
// @Produce json
// @Param X-Sharer-User-Id header int true "Caller id"
// @Param id path int true "Item ID"
// @Param request body dto.CreateCommentRequest true "Create Comment Request"
// @Success 201 {object} response.Data[dto.CommentResponse] "Created comment"
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /items/{id}/comment [post]
func (handler *Handler) AddComment(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".AddComment")
	defer scope.End()

	userID, err := shared.RequireUserID(ctx)
	if err != nil {
		response.WithError(w, err)

		return
	}

	itemID, err := shared.ParseID(chi.URLParam(r, constant.RequestParamID))
	if err != nil {
		response.WithError(w, err)

		return
	}

	req := dto.CreateCommentRequest{}
	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	comment, err := handler.service.AddComment(ctx, userID, itemID, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to add comment")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Comment added successfully")

	response.WithCreated(w, comment)
}
