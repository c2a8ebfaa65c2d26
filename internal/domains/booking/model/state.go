package model

import (
	gDto "shareit/shared/dto"
	"shareit/shared/failure"
	"strings"
	"time"
)

// State is a listing filter over bookings, evaluated against a single "now".
type State string

const (
	StateAll      State = "ALL"
	StateCurrent  State = "CURRENT"
	StatePast     State = "PAST"
	StateFuture   State = "FUTURE"
	StateWaiting  State = "WAITING"
	StateRejected State = "REJECTED"
)

var states = []State{StateAll, StateCurrent, StatePast, StateFuture, StateWaiting, StateRejected}

// ParseState accepts a state name in any letter case. An empty value means ALL.
func ParseState(raw string) (State, error) {
	if strings.TrimSpace(raw) == "" {
		return StateAll, nil
	}

	candidate := State(strings.ToUpper(strings.TrimSpace(raw)))
	for _, state := range states {
		if state == candidate {
			return state, nil
		}
	}

	return "", failure.UnknownState(raw)
}

// Scope restricts a listing either to one booker or to a set of items.
type Scope struct {
	BookerID int64
	ItemIDs  []int64
}

func BookerScope(bookerID int64) Scope {
	return Scope{BookerID: bookerID}
}

func OwnerScope(itemIDs []int64) Scope {
	return Scope{ItemIDs: itemIDs}
}

func (s Scope) filter() gDto.Filter {
	if s.BookerID != 0 {
		return gDto.Filter{
			ArgName:  "scope_booker_id",
			Field:    FieldBookerID,
			Value:    s.BookerID,
			Operator: gDto.FilterOperatorEq,
			Table:    TableName,
		}
	}

	return gDto.Filter{
		ArgName:  "scope_item_id",
		Field:    FieldItemID,
		Value:    s.ItemIDs,
		Operator: gDto.FilterOperatorIn,
		Table:    TableName,
	}
}

// Filter renders the state and scope as a store filter.
// Matches is the in-memory form of the same predicate and the two must agree.
func (s State) Filter(scope Scope, now time.Time) gDto.FilterGroup {
	filters := []any{scope.filter()}

	switch s {
	case StateCurrent:
		filters = append(filters,
			gDto.Filter{ArgName: "state_start", Field: FieldStartTime, Value: now, Operator: gDto.FilterOperatorLessEq, Table: TableName},
			gDto.Filter{ArgName: "state_end", Field: FieldEndTime, Value: now, Operator: gDto.FilterOperatorGreaterEq, Table: TableName},
		)
	case StatePast:
		filters = append(filters,
			gDto.Filter{ArgName: "state_end", Field: FieldEndTime, Value: now, Operator: gDto.FilterOperatorLess, Table: TableName},
		)
	case StateFuture:
		filters = append(filters,
			gDto.Filter{ArgName: "state_start", Field: FieldStartTime, Value: now, Operator: gDto.FilterOperatorGreater, Table: TableName},
		)
	case StateWaiting:
		filters = append(filters,
			gDto.Filter{ArgName: "state_status", Field: FieldStatus, Value: StatusWaiting, Operator: gDto.FilterOperatorEq, Table: TableName},
		)
	case StateRejected:
		filters = append(filters,
			gDto.Filter{ArgName: "state_status", Field: FieldStatus, Value: StatusRejected, Operator: gDto.FilterOperatorEq, Table: TableName},
		)
	}

	return gDto.FilterGroup{
		Filters:  filters,
		Operator: gDto.FilterGroupOperatorAnd,
	}
}

// Matches reports whether b belongs to the state at instant now.
func (s State) Matches(b Booking, now time.Time) bool {
	switch s {
	case StateAll:
		return true
	case StateCurrent:
		return !b.StartTime.After(now) && !b.EndTime.Before(now)
	case StatePast:
		return b.EndTime.Before(now)
	case StateFuture:
		return b.StartTime.After(now)
	case StateWaiting:
		return b.Status == StatusWaiting
	case StateRejected:
		return b.Status == StatusRejected
	default:
		return false
	}
}
