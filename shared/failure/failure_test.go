package failure_test

import (
	"errors"
	"fmt"
	"net/http"
	"shareit/shared/failure"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestConstructors(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		wantCode int
		wantKind failure.Kind
		wantMsg  string
	}{
		{name: "bad request", err: failure.BadRequest(errors.New("bad json")), wantCode: http.StatusBadRequest, wantKind: failure.KindValidation, wantMsg: "bad json"},
		{name: "bad request from string", err: failure.BadRequestFromString("name is required"), wantCode: http.StatusBadRequest, wantKind: failure.KindValidation, wantMsg: "name is required"},
		{name: "validation", err: failure.Validation("owner cannot book own item"), wantCode: http.StatusBadRequest, wantKind: failure.KindValidation, wantMsg: "owner cannot book own item"},
		{name: "unknown state", err: failure.UnknownState("UNSUPPORTED_STATUS"), wantCode: http.StatusBadRequest, wantKind: failure.KindUnknownState, wantMsg: "Unknown state: UNSUPPORTED_STATUS"},
		{name: "internal", err: failure.InternalError(errors.New("connection reset")), wantCode: http.StatusInternalServerError, wantKind: failure.KindUnknown, wantMsg: "connection reset"},
		{name: "not found", err: failure.NotFound("user 1 not found"), wantCode: http.StatusNotFound, wantKind: failure.KindNotFound, wantMsg: "user 1 not found"},
		{name: "conflict", err: failure.Conflict("email taken"), wantCode: http.StatusConflict, wantKind: failure.KindConflict, wantMsg: "email taken"},
		{name: "forbidden", err: failure.Forbidden("not the owner"), wantCode: http.StatusForbidden, wantKind: failure.KindForbidden, wantMsg: "not the owner"},
		{name: "from param", err: failure.InvalidFromParam, wantCode: http.StatusBadRequest, wantKind: failure.KindValidation, wantMsg: "from must be zero or positive"},
		{name: "size param", err: failure.InvalidSizeParam, wantCode: http.StatusBadRequest, wantKind: failure.KindValidation, wantMsg: "size must be positive"},
		{name: "missing user", err: failure.MissingUserID, wantCode: http.StatusBadRequest, wantKind: failure.KindValidation, wantMsg: "user id header is required"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.EqualError(t, tt.err, tt.wantMsg)
			assert.Equal(t, tt.wantCode, failure.GetCode(tt.err))
			assert.Equal(t, tt.wantKind, failure.GetKind(tt.err))
		})
	}
}

func TestNilPassThrough(t *testing.T) {
	assert.NoError(t, failure.BadRequest(nil))
	assert.NoError(t, failure.InternalError(nil))
}

func TestGetCodeAndKind(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		wantCode int
		wantKind failure.Kind
	}{
		{name: "wrapped not found", err: fmt.Errorf("get: %w", failure.NotFound("x")), wantCode: http.StatusNotFound, wantKind: failure.KindNotFound},
		{name: "wrapped validation", err: fmt.Errorf("create: %w", failure.Validation("x")), wantCode: http.StatusBadRequest, wantKind: failure.KindValidation},
		{name: "infrastructure", err: errors.New("connection reset"), wantCode: http.StatusInternalServerError, wantKind: failure.KindUnknown},
		{name: "nil", err: nil, wantCode: http.StatusInternalServerError, wantKind: failure.KindUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.wantCode, failure.GetCode(tt.err))
			assert.Equal(t, tt.wantKind, failure.GetKind(tt.err))
		})
	}
}

func TestKind_String(t *testing.T) {
	assert.Equal(t, "unknown_state", failure.KindUnknownState.String())
	assert.Equal(t, "not_found", failure.KindNotFound.String())
	assert.Equal(t, "unknown", failure.Kind(99).String())
	assert.NotEqual(t, failure.KindValidation, failure.KindUnknownState)
}
