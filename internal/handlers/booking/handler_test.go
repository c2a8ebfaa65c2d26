package booking_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	otelMocks "shareit/infras/otel/mocks"
	"shareit/internal/domains/booking/model/dto"
	"shareit/internal/domains/booking/service/mocks"
	"shareit/internal/handlers/booking"
	"shareit/shared/constant"
	gDto "shareit/shared/dto"
	"shareit/shared/failure"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
)

func newRouter(t *testing.T) (chi.Router, *mocks.MockBooking) {
	t.Helper()

	ctrl := gomock.NewController(t)
	service := mocks.NewMockBooking(ctrl)

	handler := booking.New(service, otelMocks.NewOtel())
	router := chi.NewRouter()
	handler.Router(router)

	return router, service
}

func serve(router http.Handler, method, target, body string, userID int64) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	if userID != 0 {
		req = req.WithContext(context.WithValue(req.Context(), constant.ContextKeyUserID, userID))
	}

	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, req)

	return recorder
}

func TestCreateBooking(t *testing.T) {
	tests := []struct {
		name     string
		body     string
		userID   int64
		setup    func(service *mocks.MockBooking)
		wantCode int
		wantBody string
	}{
		{
			name:     "missing caller",
			body:     `{"itemId":1,"start":"2026-03-11T10:00:00","end":"2026-03-12T10:00:00"}`,
			wantCode: http.StatusBadRequest,
			wantBody: `{"error":"user id header is required"}`,
		},
		{
			name:     "missing item id",
			body:     `{"start":"2026-03-11T10:00:00","end":"2026-03-12T10:00:00"}`,
			userID:   2,
			wantCode: http.StatusBadRequest,
		},
		{
			name:     "malformed start",
			body:     `{"itemId":1,"start":"tomorrow","end":"2026-03-12T10:00:00"}`,
			userID:   2,
			wantCode: http.StatusBadRequest,
		},
		{
			name:   "rule violation from service",
			body:   `{"itemId":1,"start":"2026-03-11T10:00:00","end":"2026-03-12T10:00:00"}`,
			userID: 2,
			setup: func(service *mocks.MockBooking) {
				service.EXPECT().Create(gomock.Any(), int64(2), gomock.Any()).
					Return(dto.BookingResponse{}, failure.Validation("owner cannot book own item: item 1"))
			},
			wantCode: http.StatusBadRequest,
			wantBody: `{"error":"owner cannot book own item: item 1"}`,
		},
		{
			name:   "created",
			body:   `{"itemId":1,"start":"2026-03-11T10:00:00","end":"2026-03-12T10:00:00"}`,
			userID: 2,
			setup: func(service *mocks.MockBooking) {
				service.EXPECT().Create(gomock.Any(), int64(2), dto.CreateBookingRequest{
					ItemID: 1,
					Start:  "2026-03-11T10:00:00",
					End:    "2026-03-12T10:00:00",
				}).Return(dto.BookingResponse{ID: 7, Status: "WAITING"}, nil)
			},
			wantCode: http.StatusCreated,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router, service := newRouter(t)
			if tt.setup != nil {
				tt.setup(service)
			}

			recorder := serve(router, http.MethodPost, "/bookings", tt.body, tt.userID)

			assert.Equal(t, tt.wantCode, recorder.Code)

			if tt.wantBody != "" {
				assert.JSONEq(t, tt.wantBody, recorder.Body.String())
			}
		})
	}
}

func TestApproveBooking(t *testing.T) {
	tests := []struct {
		name     string
		target   string
		setup    func(service *mocks.MockBooking)
		wantCode int
		wantBody string
	}{
		{
			name:     "approved is required",
			target:   "/bookings/5",
			wantCode: http.StatusBadRequest,
			wantBody: `{"error":"approved must be true or false"}`,
		},
		{
			name:     "approved must be boolean",
			target:   "/bookings/5?approved=maybe",
			wantCode: http.StatusBadRequest,
		},
		{
			name:     "invalid id",
			target:   "/bookings/abc?approved=true",
			wantCode: http.StatusBadRequest,
			wantBody: `{"error":"invalid id: \"abc\""}`,
		},
		{
			name:   "rejected",
			target: "/bookings/5?approved=false",
			setup: func(service *mocks.MockBooking) {
				service.EXPECT().Approve(gomock.Any(), int64(3), int64(5), false).
					Return(dto.BookingResponse{ID: 5, Status: "REJECTED"}, nil)
			},
			wantCode: http.StatusOK,
		},
		{
			name:   "not the owner",
			target: "/bookings/5?approved=true",
			setup: func(service *mocks.MockBooking) {
				service.EXPECT().Approve(gomock.Any(), int64(3), int64(5), true).
					Return(dto.BookingResponse{}, failure.Validation("caller is not the item owner: user 3"))
			},
			wantCode: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router, service := newRouter(t)
			if tt.setup != nil {
				tt.setup(service)
			}

			recorder := serve(router, http.MethodPatch, tt.target, "", 3)

			assert.Equal(t, tt.wantCode, recorder.Code)

			if tt.wantBody != "" {
				assert.JSONEq(t, tt.wantBody, recorder.Body.String())
			}
		})
	}
}

func TestGetBookingByID(t *testing.T) {
	router, service := newRouter(t)

	service.EXPECT().Get(gomock.Any(), int64(4), int64(9)).
		Return(dto.BookingResponse{}, failure.NotFound("no such booking visible to this user: booking 9"))

	recorder := serve(router, http.MethodGet, "/bookings/9", "", 4)

	assert.Equal(t, http.StatusNotFound, recorder.Code)
	assert.JSONEq(t, `{"error":"no such booking visible to this user: booking 9"}`, recorder.Body.String())
}

func TestListBookings(t *testing.T) {
	tests := []struct {
		name     string
		target   string
		setup    func(service *mocks.MockBooking)
		wantCode int
		wantBody string
	}{
		{
			name:   "booker defaults",
			target: "/bookings",
			setup: func(service *mocks.MockBooking) {
				service.EXPECT().ListByBooker(gomock.Any(), int64(1), "ALL", gDto.QueryParams{Limit: 10}).
					Return([]dto.BookingResponse{}, nil)
			},
			wantCode: http.StatusOK,
			wantBody: `{"data":[]}`,
		},
		{
			name:   "owner with state and paging",
			target: "/bookings/owner?state=future&from=20&size=5",
			setup: func(service *mocks.MockBooking) {
				service.EXPECT().ListByOwner(gomock.Any(), int64(1), "future", gDto.QueryParams{Offset: 20, Limit: 5}).
					Return([]dto.BookingResponse{}, nil)
			},
			wantCode: http.StatusOK,
		},
		{
			name:   "unknown state",
			target: "/bookings?state=SOMETIME",
			setup: func(service *mocks.MockBooking) {
				service.EXPECT().ListByBooker(gomock.Any(), int64(1), "SOMETIME", gomock.Any()).
					Return(nil, failure.UnknownState("SOMETIME"))
			},
			wantCode: http.StatusBadRequest,
			wantBody: `{"error":"Unknown state: SOMETIME"}`,
		},
		{
			name:     "negative from",
			target:   "/bookings?from=-1",
			wantCode: http.StatusBadRequest,
			wantBody: `{"error":"from must be zero or positive"}`,
		},
		{
			name:     "zero size",
			target:   "/bookings/owner?size=0",
			wantCode: http.StatusBadRequest,
			wantBody: `{"error":"size must be positive"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router, service := newRouter(t)
			if tt.setup != nil {
				tt.setup(service)
			}

			recorder := serve(router, http.MethodGet, tt.target, "", 1)

			assert.Equal(t, tt.wantCode, recorder.Code)

			if tt.wantBody != "" {
				assert.JSONEq(t, tt.wantBody, recorder.Body.String())
			}
		})
	}
}
