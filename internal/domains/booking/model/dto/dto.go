package dto

import (
	"fmt"
	"shareit/internal/domains/booking/model"
	"shareit/shared/constant"
	"shareit/shared/failure"
	"shareit/shared/timezone"
	"shareit/shared/validator"
	"time"
)

type CreateBookingRequest struct {
	ItemID int64  `json:"itemId" validate:"required,gt=0"`
	Start  string `json:"start"  validate:"required,timestamp"`
	End    string `json:"end"    validate:"required,timestamp"`
}

// Interval parses start and end in the application timezone.
func (r *CreateBookingRequest) Interval() (start, end time.Time, err error) {
	start, err = validator.ParseTimestamp(r.Start, timezone.GetLocation())
	if err != nil {
		return start, end, failure.BadRequest(fmt.Errorf("start: %w", err))
	}

	end, err = validator.ParseTimestamp(r.End, timezone.GetLocation())
	if err != nil {
		return start, end, failure.BadRequest(fmt.Errorf("end: %w", err))
	}

	return start, end, nil
}

type BookerResponse struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

type BookedItemResponse struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

type BookingResponse struct {
	ID     int64              `json:"id"`
	Start  string             `json:"start"`
	End    string             `json:"end"`
	Status model.Status       `json:"status"`
	Booker BookerResponse     `json:"booker"`
	Item   BookedItemResponse `json:"item"`
}

func (r *BookingResponse) FromModel(model model.BookingDetail) {
	r.ID = model.ID
	r.Start = timezone.Format(model.StartTime, constant.LocalDateFormat)
	r.End = timezone.Format(model.EndTime, constant.LocalDateFormat)
	r.Status = model.Status
	r.Booker = BookerResponse{ID: model.BookerID, Name: model.BookerName}
	r.Item = BookedItemResponse{ID: model.ItemID, Name: model.ItemName}
}

func FromModels(models []model.BookingDetail) []BookingResponse {
	res := make([]BookingResponse, len(models))
	for i, mod := range models {
		res[i].FromModel(mod)
	}

	return res
}

// ShortBookingResponse is the booking summary attached to an item as its next or last booking.
type ShortBookingResponse struct {
	ID       int64        `json:"id"`
	BookerID int64        `json:"bookerId"`
	Start    string       `json:"start"`
	End      string       `json:"end"`
	Status   model.Status `json:"status"`
}

func NewShortBookingResponse(booking *model.Booking) *ShortBookingResponse {
	if booking == nil {
		return nil
	}

	return &ShortBookingResponse{
		ID:       booking.ID,
		BookerID: booking.BookerID,
		Start:    timezone.Format(booking.StartTime, constant.LocalDateFormat),
		End:      timezone.Format(booking.EndTime, constant.LocalDateFormat),
		Status:   booking.Status,
	}
}
