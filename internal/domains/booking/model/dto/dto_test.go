package dto_test

import (
	"shareit/internal/domains/booking/model"
	"shareit/internal/domains/booking/model/dto"
	"shareit/shared/failure"
	"shareit/shared/timezone"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestCreateBookingRequest_Interval(t *testing.T) {
	loc := timezone.GetLocation()

	tests := []struct {
		name      string
		req       dto.CreateBookingRequest
		wantStart time.Time
		wantEnd   time.Time
		wantErr   bool
	}{
		{
			name:      "local timestamps",
			req:       dto.CreateBookingRequest{ItemID: 1, Start: "2026-03-11T10:00:00", End: "2026-03-12T10:00:00"},
			wantStart: time.Date(2026, 3, 11, 10, 0, 0, 0, loc),
			wantEnd:   time.Date(2026, 3, 12, 10, 0, 0, 0, loc),
		},
		{
			name:      "rfc3339 timestamps",
			req:       dto.CreateBookingRequest{ItemID: 1, Start: "2026-03-11T10:00:00Z", End: "2026-03-11T12:30:00+02:00"},
			wantStart: time.Date(2026, 3, 11, 10, 0, 0, 0, time.UTC),
			wantEnd:   time.Date(2026, 3, 11, 10, 30, 0, 0, time.UTC),
		},
		{
			name:    "malformed start",
			req:     dto.CreateBookingRequest{ItemID: 1, Start: "11/03/2026", End: "2026-03-12T10:00:00"},
			wantErr: true,
		},
		{
			name:    "malformed end",
			req:     dto.CreateBookingRequest{ItemID: 1, Start: "2026-03-11T10:00:00", End: ""},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			start, end, err := tt.req.Interval()

			if tt.wantErr {
				assert.Equal(t, failure.KindValidation, failure.GetKind(err))

				return
			}

			assert.NoError(t, err)
			assert.True(t, tt.wantStart.Equal(start), "start %s", start)
			assert.True(t, tt.wantEnd.Equal(end), "end %s", end)
		})
	}
}

func TestBookingResponse_FromModel(t *testing.T) {
	loc := timezone.GetLocation()

	detail := model.BookingDetail{
		Booking: model.Booking{
			ID:        5,
			ItemID:    3,
			BookerID:  2,
			StartTime: time.Date(2026, 3, 11, 10, 0, 0, 0, loc),
			EndTime:   time.Date(2026, 3, 12, 10, 0, 0, 0, loc),
			Status:    model.StatusWaiting,
		},
		ItemName:   "Drill",
		OwnerID:    1,
		BookerName: "Bob",
	}

	res := dto.FromModels([]model.BookingDetail{detail})

	assert.Equal(t, []dto.BookingResponse{{
		ID:     5,
		Start:  "2026-03-11T10:00:00",
		End:    "2026-03-12T10:00:00",
		Status: model.StatusWaiting,
		Booker: dto.BookerResponse{ID: 2, Name: "Bob"},
		Item:   dto.BookedItemResponse{ID: 3, Name: "Drill"},
	}}, res)
}

func TestNewShortBookingResponse(t *testing.T) {
	assert.Nil(t, dto.NewShortBookingResponse(nil))

	loc := timezone.GetLocation()
	booking := model.Booking{
		ID:        9,
		BookerID:  4,
		StartTime: time.Date(2026, 3, 1, 8, 0, 0, 0, loc),
		EndTime:   time.Date(2026, 3, 2, 8, 0, 0, 0, loc),
		Status:    model.StatusApproved,
	}

	assert.Equal(t, &dto.ShortBookingResponse{
		ID:       9,
		BookerID: 4,
		Start:    "2026-03-01T08:00:00",
		End:      "2026-03-02T08:00:00",
		Status:   model.StatusApproved,
	}, dto.NewShortBookingResponse(&booking))
}

func TestNewBookingEvent(t *testing.T) {
	booking := model.Booking{ID: 5, ItemID: 3, BookerID: 2, Status: model.StatusRejected}

	event := dto.NewBookingEvent(dto.DecisionEventType(booking.Status), booking)

	assert.NotEmpty(t, event.EventID)
	assert.Equal(t, dto.EventBookingRejected, event.Type)
	assert.Equal(t, int64(5), event.BookingID)
	assert.Equal(t, int64(3), event.ItemID)
	assert.Equal(t, int64(2), event.BookerID)
	assert.Equal(t, dto.EventBookingApproved, dto.DecisionEventType(model.StatusApproved))
	assert.NotEqual(t, event.EventID, dto.NewBookingEvent(dto.EventBookingCreated, booking).EventID)
}
