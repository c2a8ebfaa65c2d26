package model_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"shareit/internal/domains/booking/model"
	"shareit/shared/failure"
)

func TestParseState(t *testing.T) {
	tests := []struct {
		raw     string
		want    model.State
		wantErr bool
	}{
		{raw: "", want: model.StateAll},
		{raw: "ALL", want: model.StateAll},
		{raw: "current", want: model.StateCurrent},
		{raw: "Past", want: model.StatePast},
		{raw: "FUTURE", want: model.StateFuture},
		{raw: "waiting", want: model.StateWaiting},
		{raw: "REJECTED", want: model.StateRejected},
		{raw: "UNSUPPORTED_STATUS", wantErr: true},
		{raw: "CANCELED", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			got, err := model.ParseState(tt.raw)

			if tt.wantErr {
				require.Error(t, err)
				assert.Equal(t, failure.KindUnknownState, failure.GetKind(err))
				assert.Equal(t, "Unknown state: "+tt.raw, err.Error())

				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestState_Matches(t *testing.T) {
	past := model.Booking{StartTime: now.Add(-2 * time.Hour), EndTime: now.Add(-time.Hour), Status: model.StatusApproved}
	current := model.Booking{StartTime: now.Add(-time.Hour), EndTime: now.Add(time.Hour), Status: model.StatusWaiting}
	future := model.Booking{StartTime: now.Add(time.Hour), EndTime: now.Add(2 * time.Hour), Status: model.StatusRejected}
	startsNow := model.Booking{StartTime: now, EndTime: now.Add(time.Hour), Status: model.StatusWaiting}
	endsNow := model.Booking{StartTime: now.Add(-time.Hour), EndTime: now, Status: model.StatusWaiting}

	tests := []struct {
		name    string
		booking model.Booking
		want    map[model.State]bool
	}{
		{
			name:    "past",
			booking: past,
			want:    map[model.State]bool{model.StatePast: true},
		},
		{
			name:    "current",
			booking: current,
			want:    map[model.State]bool{model.StateCurrent: true, model.StateWaiting: true},
		},
		{
			name:    "future",
			booking: future,
			want:    map[model.State]bool{model.StateFuture: true, model.StateRejected: true},
		},
		{
			name:    "start boundary is current",
			booking: startsNow,
			want:    map[model.State]bool{model.StateCurrent: true, model.StateWaiting: true},
		},
		{
			name:    "end boundary is current",
			booking: endsNow,
			want:    map[model.State]bool{model.StateCurrent: true, model.StateWaiting: true},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.True(t, model.StateAll.Matches(tt.booking, now))

			for _, state := range []model.State{model.StateCurrent, model.StatePast, model.StateFuture, model.StateWaiting, model.StateRejected} {
				assert.Equal(t, tt.want[state], state.Matches(tt.booking, now), "state %s", state)
			}
		})
	}
}

func TestState_TimePartition(t *testing.T) {
	temporal := []model.State{model.StateCurrent, model.StatePast, model.StateFuture}

	for offset := -3; offset <= 3; offset++ {
		for length := 1; length <= 3; length++ {
			start := now.Add(time.Duration(offset) * time.Hour)
			booking := model.Booking{StartTime: start, EndTime: start.Add(time.Duration(length) * time.Hour)}

			matched := 0
			for _, state := range temporal {
				if state.Matches(booking, now) {
					matched++
				}
			}

			assert.Equal(t, 1, matched, "booking %s..%s must fall in exactly one of CURRENT, PAST, FUTURE", booking.StartTime, booking.EndTime)
		}
	}
}

func TestState_Filter(t *testing.T) {
	tests := []struct {
		name      string
		state     model.State
		scope     model.Scope
		wantWhere string
		wantArgs  map[string]any
	}{
		{
			name:      "all for booker",
			state:     model.StateAll,
			scope:     model.BookerScope(4),
			wantWhere: "(bookings.booker_id = :scope_booker_id)",
			wantArgs:  map[string]any{"scope_booker_id": int64(4)},
		},
		{
			name:      "current for booker",
			state:     model.StateCurrent,
			scope:     model.BookerScope(4),
			wantWhere: "(bookings.booker_id = :scope_booker_id AND bookings.start_time <= :state_start AND bookings.end_time >= :state_end)",
			wantArgs:  map[string]any{"scope_booker_id": int64(4), "state_start": now, "state_end": now},
		},
		{
			name:      "past for owner",
			state:     model.StatePast,
			scope:     model.OwnerScope([]int64{1, 2}),
			wantWhere: "(bookings.item_id IN (:scope_item_id_0, :scope_item_id_1) AND bookings.end_time < :state_end)",
			wantArgs:  map[string]any{"scope_item_id_0": int64(1), "scope_item_id_1": int64(2), "state_end": now},
		},
		{
			name:      "future for booker",
			state:     model.StateFuture,
			scope:     model.BookerScope(4),
			wantWhere: "(bookings.booker_id = :scope_booker_id AND bookings.start_time > :state_start)",
			wantArgs:  map[string]any{"scope_booker_id": int64(4), "state_start": now},
		},
		{
			name:      "waiting for booker",
			state:     model.StateWaiting,
			scope:     model.BookerScope(4),
			wantWhere: "(bookings.booker_id = :scope_booker_id AND bookings.status = :state_status)",
			wantArgs:  map[string]any{"scope_booker_id": int64(4), "state_status": model.StatusWaiting},
		},
		{
			name:      "rejected for owner without items",
			state:     model.StateRejected,
			scope:     model.OwnerScope(nil),
			wantWhere: "(FALSE AND bookings.status = :state_status)",
			wantArgs:  map[string]any{"state_status": model.StatusRejected},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			filter := tt.state.Filter(tt.scope, now)

			where, args := filter.GetWhereClause()
			assert.Equal(t, tt.wantWhere, where)
			assert.Equal(t, tt.wantArgs, args)
		})
	}
}
