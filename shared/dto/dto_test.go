package dto_test

import (
	"net/http"
	"net/http/httptest"
	"reflect"
	"shareit/shared/constant"
	"shareit/shared/dto"
	"shareit/shared/failure"
	"shareit/shared/model"
	"shareit/shared/timezone"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNewMetadata(t *testing.T) {
	timezone.Init("UTC")

	createdAt := time.Date(2023, 1, 1, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name  string
		input model.Metadata
		want  dto.Metadata
	}{
		{
			name: "created and modified",
			input: model.Metadata{
				CreatedAt:  createdAt,
				ModifiedAt: createdAt.Add(24 * time.Hour),
				CreatedBy:  "3",
				ModifiedBy: "system",
			},
			want: dto.Metadata{
				CreatedAt:  "2023-01-01T12:00:00Z",
				ModifiedAt: "2023-01-02T12:00:00Z",
				CreatedBy:  "3",
				ModifiedBy: "system",
			},
		},
		{
			name:  "never modified",
			input: model.Metadata{CreatedAt: createdAt, CreatedBy: "3"},
			want:  dto.Metadata{CreatedAt: "2023-01-01T12:00:00Z", CreatedBy: "3"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := dto.NewMetadata(tt.input); got != tt.want {
				t.Errorf("expected %+v, got %+v", tt.want, got)
			}

			var fromModel dto.Metadata
			fromModel.FromModel(tt.input)

			if fromModel != tt.want {
				t.Errorf("FromModel: expected %+v, got %+v", tt.want, fromModel)
			}
		})
	}
}

func TestQueryParams_FromRequest(t *testing.T) {
	defaults := dto.QueryParams{Page: constant.DefaultValuePage, Limit: constant.DefaultValueLimit}

	tests := []struct {
		name         string
		query        string
		withDefaults bool
		expected     dto.QueryParams
	}{
		{
			name:     "all parameters",
			query:    "page=2&limit=20&sort_by=name&sort_dir=asc",
			expected: dto.QueryParams{Page: 2, Limit: 20, SortBy: "name", SortDir: dto.SortDirAsc},
		},
		{name: "nothing without defaults", query: "", expected: dto.QueryParams{}},
		{name: "nothing with defaults", query: "", withDefaults: true, expected: defaults},
		{name: "non numeric page", query: "page=invalid", withDefaults: true, expected: defaults},
		{name: "negative page", query: "page=-1", withDefaults: true, expected: defaults},
		{name: "zero page", query: "page=0", withDefaults: true, expected: defaults},
		{name: "negative limit", query: "limit=-10", withDefaults: true, expected: defaults},
		{name: "unknown sort direction", query: "sort_dir=sideways", withDefaults: true, expected: defaults},
		{
			name:         "partial with defaults",
			query:        "page=3&sort_by=email",
			withDefaults: true,
			expected:     dto.QueryParams{Page: 3, Limit: constant.DefaultValueLimit, SortBy: "email"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/users?"+tt.query, nil)

			var params dto.QueryParams
			params.FromRequest(req, tt.withDefaults)

			assert.Equal(t, tt.expected, params)
		})
	}
}

func TestQueryParams_FromOffsetRequest(t *testing.T) {
	tests := []struct {
		name        string
		query       string
		wantErr     error
		expectedOff int
		expectedLim int
	}{
		{name: "defaults", query: "", expectedOff: 0, expectedLim: constant.DefaultValueLimit},
		{name: "from and size", query: "from=20&size=5", expectedOff: 20, expectedLim: 5},
		{name: "negative from", query: "from=-1", wantErr: failure.InvalidFromParam},
		{name: "zero size", query: "size=0", wantErr: failure.InvalidSizeParam},
		{name: "non numeric size", query: "size=ten", wantErr: failure.InvalidSizeParam},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, err := http.NewRequest(http.MethodGet, "http://example.com/bookings?"+tt.query, nil)
			if err != nil {
				t.Fatalf("failed to create request: %v", err)
			}

			params := dto.QueryParams{}
			err = params.FromOffsetRequest(req)

			if tt.wantErr != nil {
				if err != tt.wantErr {
					t.Errorf("expected error %v, got %v", tt.wantErr, err)
				}

				return
			}

			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			if params.Offset != tt.expectedOff {
				t.Errorf("expected Offset to be %d, got %d", tt.expectedOff, params.Offset)
			}

			if params.Limit != tt.expectedLim {
				t.Errorf("expected Limit to be %d, got %d", tt.expectedLim, params.Limit)
			}
		})
	}
}

func TestQueryParams_AllowSortBy(t *testing.T) {
	params := dto.QueryParams{SortBy: "name; DROP TABLE users", SortDir: dto.SortDirAsc}
	params.AllowSortBy("name", "email")

	if params.SortBy != "" || params.SortDir != "" {
		t.Errorf("expected sort to be cleared, got %q %q", params.SortBy, params.SortDir)
	}

	params = dto.QueryParams{SortBy: "email", SortDir: dto.SortDirDesc}
	params.AllowSortBy("name", "email")

	if params.SortBy != "email" {
		t.Errorf("expected SortBy to be kept, got %q", params.SortBy)
	}
}

func TestFilter_StrictComparisons(t *testing.T) {
	now := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)

	group := dto.FilterGroup{
		Operator: dto.FilterGroupOperatorAnd,
		Filters: []any{
			dto.Filter{ArgName: "start_after", Field: "start_time", Table: "bookings", Value: now, Operator: dto.FilterOperatorGreater},
			dto.Filter{ArgName: "end_before", Field: "end_time", Table: "bookings", Value: now, Operator: dto.FilterOperatorLess},
		},
	}

	where, args := group.GetWhereClause()

	expected := "(bookings.start_time > :start_after AND bookings.end_time < :end_before)"
	if where != expected {
		t.Errorf("expected where %q, got %q", expected, where)
	}

	if len(args) != 2 || args["start_after"] != now || args["end_before"] != now {
		t.Errorf("unexpected args %v", args)
	}
}

func TestFilter_InExpandsSlice(t *testing.T) {
	filter := dto.Filter{ArgName: "item_ids", Field: "item_id", Table: "bookings", Value: []int64{3, 7}, Operator: dto.FilterOperatorIn}

	where, args := filter.GetWhereClause()

	if where != "bookings.item_id IN (:item_ids_0, :item_ids_1)" {
		t.Errorf("unexpected where %q", where)
	}

	if args["item_ids_0"] != int64(3) || args["item_ids_1"] != int64(7) {
		t.Errorf("unexpected args %v", args)
	}
}

func TestFilter_EdgeCases(t *testing.T) {
	tests := []struct {
		name      string
		filter    dto.Filter
		wantWhere string
		wantArgs  map[string]any
	}{
		{
			name:      "empty in matches nothing",
			filter:    dto.Filter{Field: "item_id", Table: "bookings", Value: []int64{}, Operator: dto.FilterOperatorIn},
			wantWhere: "FALSE",
			wantArgs:  map[string]any{},
		},
		{
			name:      "like escapes wildcards",
			filter:    dto.Filter{ArgName: "search", Field: "name", Value: "100%_off", Operator: dto.FilterOperatorLike},
			wantWhere: "LOWER(name) LIKE LOWER(:search)",
			wantArgs:  map[string]any{"search": `%100\%\_off%`},
		},
		{
			name:      "is null has no args",
			filter:    dto.Filter{Field: "request_id", Table: "items", Operator: dto.FilterIsNull},
			wantWhere: "items.request_id IS NULL",
			wantArgs:  map[string]any{},
		},
		{
			name:      "unknown operator renders nothing",
			filter:    dto.Filter{Field: "name", Value: "x", Operator: "between"},
			wantWhere: "",
			wantArgs:  map[string]any{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			where, args := tt.filter.GetWhereClause()

			if where != tt.wantWhere {
				t.Errorf("expected where %q, got %q", tt.wantWhere, where)
			}

			if !reflect.DeepEqual(args, tt.wantArgs) {
				t.Errorf("expected args %v, got %v", tt.wantArgs, args)
			}
		})
	}
}

func TestFilterGroup_SkipsEmptyClauses(t *testing.T) {
	group := dto.FilterGroup{
		Filters: []any{
			dto.Filter{Field: "name", Value: "x", Operator: "between"},
			dto.FilterGroup{},
			dto.Filter{Field: "owner_id", Table: "items", Value: int64(2), Operator: dto.FilterOperatorEq},
		},
	}

	where, _ := group.GetWhereClause()

	if where != "(items.owner_id = :owner_id)" {
		t.Errorf("unexpected where %q", where)
	}
}
