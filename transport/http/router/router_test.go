package router_test

import (
	"net/http"
	"shareit/transport/http/router"
	"slices"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetupRoutes(t *testing.T) {
	r := router.New(router.DomainHandlers{})
	mux := chi.NewRouter()

	r.SetupRoutes(mux)

	var routes []string

	err := chi.Walk(mux, func(method, route string, _ http.Handler, _ ...func(http.Handler) http.Handler) error {
		routes = append(routes, method+" "+route)

		return nil
	})
	require.NoError(t, err)

	for _, want := range []string{
		"POST /users/",
		"GET /items/search",
		"POST /items/{id}/comment",
		"GET /requests/all",
		"POST /bookings/",
		"PATCH /bookings/{id}",
		"GET /bookings/owner",
	} {
		assert.True(t, slices.Contains(routes, want), "missing route %s in %v", want, routes)
	}
}
