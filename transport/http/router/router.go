package router

import (
	"shareit/internal/handlers/booking"
	"shareit/internal/handlers/item"
	"shareit/internal/handlers/request"
	"shareit/internal/handlers/user"

	"github.com/go-chi/chi/v5"
)

// mounter is implemented by every domain handler.
type mounter interface {
	Router(router chi.Router)
}

type DomainHandlers struct {
	User    user.Handler
	Item    item.Handler
	Request request.Handler
	Booking booking.Handler
}

func (d *DomainHandlers) all() []mounter {
	return []mounter{&d.User, &d.Item, &d.Request, &d.Booking}
}

type Router struct {
	DomainHandlers DomainHandlers
}

func New(domainHandlers DomainHandlers) Router {
	return Router{DomainHandlers: domainHandlers}
}

// SetupRoutes mounts the user, item, request and booking routes at the root of router.
func (r *Router) SetupRoutes(router chi.Router) {
	for _, handler := range r.DomainHandlers.all() {
		handler.Router(router)
	}
}
