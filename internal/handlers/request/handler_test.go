package request_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	otelMocks "shareit/infras/otel/mocks"
	"shareit/internal/domains/request/model/dto"
	"shareit/internal/domains/request/service/mocks"
	"shareit/internal/handlers/request"
	"shareit/shared/constant"
	gDto "shareit/shared/dto"
	"shareit/shared/failure"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
)

func TestHandler(t *testing.T) {
	tests := []struct {
		name     string
		method   string
		target   string
		body     string
		userID   int64
		setup    func(service *mocks.MockItemRequest)
		wantCode int
		wantBody string
	}{
		{
			name:     "create without caller",
			method:   http.MethodPost,
			target:   "/requests",
			body:     `{"description":"Need a ladder"}`,
			wantCode: http.StatusBadRequest,
			wantBody: `{"error":"user id header is required"}`,
		},
		{
			name:     "create with blank description",
			method:   http.MethodPost,
			target:   "/requests",
			body:     `{"description":" "}`,
			userID:   1,
			wantCode: http.StatusBadRequest,
		},
		{
			name:   "create",
			method: http.MethodPost,
			target: "/requests",
			body:   `{"description":"Need a ladder"}`,
			userID: 1,
			setup: func(service *mocks.MockItemRequest) {
				service.EXPECT().Create(gomock.Any(), int64(1), dto.CreateItemRequestRequest{Description: "Need a ladder"}).
					Return(dto.ItemRequestResponse{ID: 2, Description: "Need a ladder", RequestorID: 1, Items: []dto.AnswerResponse{}}, nil)
			},
			wantCode: http.StatusCreated,
		},
		{
			name:   "own requests",
			method: http.MethodGet,
			target: "/requests",
			userID: 1,
			setup: func(service *mocks.MockItemRequest) {
				service.EXPECT().ListOwn(gomock.Any(), int64(1)).Return([]dto.ItemRequestResponse{}, nil)
			},
			wantCode: http.StatusOK,
			wantBody: `{"data":[]}`,
		},
		{
			name:   "other requests with paging",
			method: http.MethodGet,
			target: "/requests/all?from=10&size=2",
			userID: 1,
			setup: func(service *mocks.MockItemRequest) {
				service.EXPECT().ListOthers(gomock.Any(), int64(1), gDto.QueryParams{Offset: 10, Limit: 2}).
					Return([]dto.ItemRequestResponse{}, nil)
			},
			wantCode: http.StatusOK,
		},
		{
			name:   "missing request",
			method: http.MethodGet,
			target: "/requests/8",
			userID: 1,
			setup: func(service *mocks.MockItemRequest) {
				service.EXPECT().Get(gomock.Any(), int64(1), int64(8)).
					Return(dto.ItemRequestResponse{}, failure.NotFound("item request 8 not found"))
			},
			wantCode: http.StatusNotFound,
			wantBody: `{"error":"item request 8 not found"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			service := mocks.NewMockItemRequest(ctrl)

			if tt.setup != nil {
				tt.setup(service)
			}

			handler := request.New(service, otelMocks.NewOtel())
			router := chi.NewRouter()
			handler.Router(router)

			req := httptest.NewRequest(tt.method, tt.target, strings.NewReader(tt.body))
			if tt.userID != 0 {
				req = req.WithContext(context.WithValue(req.Context(), constant.ContextKeyUserID, tt.userID))
			}

			recorder := httptest.NewRecorder()
			router.ServeHTTP(recorder, req)

			assert.Equal(t, tt.wantCode, recorder.Code)

			if tt.wantBody != "" {
				assert.JSONEq(t, tt.wantBody, recorder.Body.String())
			}
		})
	}
}
