package middleware

import (
	"context"
	"net/http"
	"shareit/config"
	"shareit/infras/otel"
	"shareit/permissions"
	"shareit/shared/constant"
	"shareit/shared/failure"
	"shareit/transport/http/response"
	"strconv"

	"github.com/go-chi/chi/v5"
)

type SkipIdentityKey string

var invalidUserID = failure.BadRequestFromString("user id header must be a positive integer")

// Identity defines the caller identification middleware.
// The marketplace trusts its gateway: the caller id arrives in a header and is not authenticated here.
type Identity interface {
	Identity(http.Handler) http.Handler
	APIKey(http.Handler) http.Handler
}

type identityImpl struct {
	otel       otel.Otel
	permission *permissions.PermissionData
	cfg        *config.Config
}

func NewIdentityMiddleware(otel otel.Otel, permissions *permissions.PermissionData, cfg *config.Config) Identity {
	return &identityImpl{
		otel:       otel,
		permission: permissions,
		cfg:        cfg,
	}
}

func (m *identityImpl) header() string {
	if m.cfg.App.UserIDHeader != "" {
		return m.cfg.App.UserIDHeader
	}

	return constant.RequestHeaderUserID
}

// Identity puts the caller id from the user id header into the request context.
// A missing header is rejected unless the route is marked skip or the request came with a valid API key.
func (m *identityImpl) Identity(next http.Handler) http.Handler {
	return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		ctx := request.Context()
		_, scope := m.otel.NewScope(ctx, constant.OtelHandlerScopeName, "identity.middleware")
		defer scope.End()

		raw := request.Header.Get(m.header())
		if raw != "" {
			userID, err := strconv.ParseInt(raw, 10, 64)
			if err != nil || userID <= 0 {
				scope.TraceError(invalidUserID)
				response.WithError(writer, invalidUserID)

				return
			}

			scope.SetAttribute("user.id", strconv.FormatInt(userID, 10))

			ctx = context.WithValue(ctx, constant.ContextKeyUserID, userID)
			next.ServeHTTP(writer, request.WithContext(ctx))

			return
		}

		if skip, _ := ctx.Value(SkipIdentityKey("skip")).(bool); skip {
			next.ServeHTTP(writer, request)

			return
		}

		if m.skipRoute(request) {
			next.ServeHTTP(writer, request)

			return
		}

		scope.TraceError(failure.MissingUserID)
		response.WithError(writer, failure.MissingUserID)
	})
}

func (m *identityImpl) skipRoute(request *http.Request) bool {
	if m.permission == nil {
		return false
	}

	rctx := chi.RouteContext(request.Context())
	if rctx == nil {
		return false
	}

	path := rctx.Routes.Find(chi.NewRouteContext(), request.Method, request.URL.Path)
	if path == "" {
		return false
	}

	return m.permission.FindPermissions(path, request.Method).Skip
}

// APIKey lets internal callers holding the configured key through without a user id header.
func (m *identityImpl) APIKey(next http.Handler) http.Handler {
	return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		ctx := request.Context()
		_, scope := m.otel.NewScope(ctx, constant.OtelHandlerScopeName, "api_key.middleware")

		apiKey := request.Header.Get(constant.RequestHeaderAPIKey)

		if apiKey == "" {
			scope.SetAttribute("http.source", "client")
			scope.End()
			next.ServeHTTP(writer, request)

			return
		}

		scope.SetAttribute("http.source", "internal")

		if m.cfg.App.APIKey == "" || apiKey != m.cfg.App.APIKey {
			err := failure.ForbiddenError

			response.WithError(writer, err)

			scope.TraceError(err)
			scope.End()

			return
		}

		ctx = context.WithValue(ctx, SkipIdentityKey("skip"), true)

		scope.End()
		next.ServeHTTP(writer, request.WithContext(ctx))
	})
}
