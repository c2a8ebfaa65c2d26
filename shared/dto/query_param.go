package dto

import (
	"net/http"
	"net/url"
	"shareit/shared/constant"
	"shareit/shared/failure"
	"slices"
	"strconv"
	"strings"
)

const (
	SortDirAsc  = "ASC"
	SortDirDesc = "DESC"
)

// QueryParams describes one page of a listing. Offset, when set, takes precedence over Page
// only if Page is zero.
type QueryParams struct {
	Page    int    `json:"page"     validate:"omitempty"`
	Limit   int    `json:"limit"    validate:"omitempty"`
	Offset  int    `json:"offset"   validate:"omitempty,gte=0"`
	SortBy  string `json:"sort_by"  validate:"omitempty"`
	SortDir string `json:"sort_dir" validate:"omitempty,oneof=ASC DESC"`
	// ThenBy breaks ties in SortBy, in the same direction. Never read from a request.
	ThenBy  string `json:"-"`
}

// FromRequest reads page, limit, sort_by and sort_dir. Values that do not parse are ignored;
// with withDefaults, a missing page or limit falls back to the package defaults.
func (q *QueryParams) FromRequest(r *http.Request, withDefaults bool) {
	values := r.URL.Query()

	if page, ok := positive(values, constant.RequestParamPage); ok {
		q.Page = page
	}

	if limit, ok := positive(values, constant.RequestParamLimit); ok {
		q.Limit = limit
	}

	if sortBy := values.Get(constant.RequestParamSortBy); sortBy != "" {
		q.SortBy = sortBy
	}

	switch dir := strings.ToUpper(values.Get(constant.RequestParamSortDir)); dir {
	case SortDirAsc, SortDirDesc:
		q.SortDir = dir
	}

	if !withDefaults {
		return
	}

	if q.Page == 0 {
		q.Page = constant.DefaultValuePage
	}

	if q.Limit == 0 {
		q.Limit = constant.DefaultValueLimit
	}
}

// FromOffsetRequest reads the from (row offset) and size (row limit) parameters.
// Malformed values are reported rather than replaced.
func (q *QueryParams) FromOffsetRequest(r *http.Request) error {
	values := r.URL.Query()

	*q = QueryParams{Limit: constant.DefaultValueLimit}

	if raw := values.Get(constant.RequestParamFrom); raw != "" {
		from, err := strconv.Atoi(raw)
		if err != nil || from < 0 {
			return failure.InvalidFromParam
		}

		q.Offset = from
	}

	if raw := values.Get(constant.RequestParamSize); raw != "" {
		size, ok := positive(values, constant.RequestParamSize)
		if !ok {
			return failure.InvalidSizeParam
		}

		q.Limit = size
	}

	return nil
}

// AllowSortBy clears the sort when SortBy is not one of columns.
func (q *QueryParams) AllowSortBy(columns ...string) {
	if slices.Contains(columns, q.SortBy) {
		return
	}

	q.SortBy, q.SortDir = "", ""
}

func positive(values url.Values, key string) (int, bool) {
	n, err := strconv.Atoi(values.Get(key))
	if err != nil || n <= 0 {
		return 0, false
	}

	return n, true
}
