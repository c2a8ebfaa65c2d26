// Package failure carries domain errors together with the HTTP status they map to.
// Errors that are not a *Failure are treated as infrastructure faults.
package failure

import (
	"errors"
	"fmt"
	"net/http"
)

// Kind classifies a Failure independently of its HTTP code.
type Kind int

const (
	KindUnknown Kind = iota
	KindNotFound
	KindValidation
	KindUnknownState
	KindConflict
	KindForbidden
)

func (k Kind) String() string {
	switch k {
	case KindNotFound:
		return "not_found"
	case KindValidation:
		return "validation"
	case KindUnknownState:
		return "unknown_state"
	case KindConflict:
		return "conflict"
	case KindForbidden:
		return "forbidden"
	default:
		return "unknown"
	}
}

type Failure struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Kind    Kind   `json:"-"`
}

var (
	InvalidFromParam = newFailure(http.StatusBadRequest, KindValidation, "from must be zero or positive")
	InvalidSizeParam = newFailure(http.StatusBadRequest, KindValidation, "size must be positive")
	MissingUserID    = newFailure(http.StatusBadRequest, KindValidation, "user id header is required")
	ForbiddenError   = newFailure(http.StatusForbidden, KindForbidden, "You don't have the required permissions")
)

func newFailure(code int, kind Kind, msg string) *Failure {
	return &Failure{Code: code, Message: msg, Kind: kind}
}

func (e *Failure) Error() string {
	return e.Message
}

// BadRequest turns a decoding or parsing error into a validation failure. A nil err stays nil.
func BadRequest(err error) error {
	if err == nil {
		return nil
	}

	return newFailure(http.StatusBadRequest, KindValidation, err.Error())
}

func BadRequestFromString(msg string) error {
	return newFailure(http.StatusBadRequest, KindValidation, msg)
}

// Validation reports a broken business rule.
func Validation(msg string) error {
	return newFailure(http.StatusBadRequest, KindValidation, msg)
}

// UnknownState reports a classification filter value that is not recognised.
func UnknownState(value string) error {
	return newFailure(http.StatusBadRequest, KindUnknownState, fmt.Sprintf("Unknown state: %s", value))
}

// InternalError keeps err's message under a 500 code. A nil err stays nil.
func InternalError(err error) error {
	if err == nil {
		return nil
	}

	return newFailure(http.StatusInternalServerError, KindUnknown, err.Error())
}

func NotFound(msg string) error {
	return newFailure(http.StatusNotFound, KindNotFound, msg)
}

func Conflict(msg string) error {
	return newFailure(http.StatusConflict, KindConflict, msg)
}

func Forbidden(msg string) error {
	return newFailure(http.StatusForbidden, KindForbidden, msg)
}

func as(err error) (*Failure, bool) {
	var fail *Failure

	return fail, errors.As(err, &fail)
}

// GetCode returns the HTTP code of err, 500 for anything that is not a Failure.
func GetCode(err error) int {
	if fail, ok := as(err); ok {
		return fail.Code
	}

	return http.StatusInternalServerError
}

// GetKind returns the kind of err, KindUnknown for infrastructure errors.
func GetKind(err error) Kind {
	if fail, ok := as(err); ok {
		return fail.Kind
	}

	return KindUnknown
}
