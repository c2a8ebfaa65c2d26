package dto

import (
	"shareit/internal/domains/booking/model"
	"shareit/shared/constant"
	"shareit/shared/timezone"

	"github.com/google/uuid"
)

const (
	EventBookingCreated  = "booking.created"
	EventBookingApproved = "booking.approved"
	EventBookingRejected = "booking.rejected"
)

// BookingEvent is published after a booking is created or decided.
type BookingEvent struct {
	EventID    string       `json:"eventId"`
	Type       string       `json:"type"`
	BookingID  int64        `json:"bookingId"`
	ItemID     int64        `json:"itemId"`
	BookerID   int64        `json:"bookerId"`
	Status     model.Status `json:"status"`
	Start      string       `json:"start"`
	End        string       `json:"end"`
	OccurredAt string       `json:"occurredAt"`
}

func NewBookingEvent(eventType string, booking model.Booking) BookingEvent {
	return BookingEvent{
		EventID:    uuid.NewString(),
		Type:       eventType,
		BookingID:  booking.ID,
		ItemID:     booking.ItemID,
		BookerID:   booking.BookerID,
		Status:     booking.Status,
		Start:      timezone.Format(booking.StartTime, constant.LocalDateFormat),
		End:        timezone.Format(booking.EndTime, constant.LocalDateFormat),
		OccurredAt: timezone.Format(timezone.Now(), constant.DateFormat),
	}
}

func DecisionEventType(status model.Status) string {
	if status == model.StatusApproved {
		return EventBookingApproved
	}

	return EventBookingRejected
}
