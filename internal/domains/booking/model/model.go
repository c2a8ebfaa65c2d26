package model

import (
	"fmt"
	itemModel "shareit/internal/domains/item/model"
	"shareit/shared/failure"
	"shareit/shared/model"
	"time"
)

const (
	TableName  = "bookings"
	EntityName = "booking"

	FieldID        = "id"
	FieldItemID    = "item_id"
	FieldBookerID  = "booker_id"
	FieldStartTime = "start_time"
	FieldEndTime   = "end_time"
	FieldStatus    = "status"
)

type Status string

const (
	StatusWaiting  Status = "WAITING"
	StatusApproved Status = "APPROVED"
	StatusRejected Status = "REJECTED"
	StatusCanceled Status = "CANCELED"
)

type Booking struct {
	ID        int64     `db:"id"         generated:"true"`
	ItemID    int64     `db:"item_id"`
	BookerID  int64     `db:"booker_id"`
	StartTime time.Time `db:"start_time"`
	EndTime   time.Time `db:"end_time"`
	Status    Status    `db:"status"`
	model.Metadata
}

// BookingDetail is a booking joined with the names and owner needed to render and authorize it.
type BookingDetail struct {
	Booking
	ItemName   string `db:"item_name"   table:"items" column:"name"`
	OwnerID    int64  `db:"owner_id"    table:"items" column:"owner_id"`
	BookerName string `db:"booker_name" table:"users" column:"name"`
}

func (BookingDetail) GetJoinQuery() string {
	return "JOIN items ON items.id = bookings.item_id JOIN users ON users.id = bookings.booker_id"
}

// NewBooking checks the creation rules in order and returns a WAITING booking of item for bookerID.
func NewBooking(bookerID int64, item itemModel.Item, start, end time.Time, meta model.Metadata) (Booking, error) {
	switch {
	case item.OwnerID == bookerID:
		return Booking{}, failure.Validation(fmt.Sprintf("owner cannot book own item: user %d owns item %d", bookerID, item.ID))
	case !item.Available:
		return Booking{}, failure.Validation(fmt.Sprintf("item not available for booking: item %d", item.ID))
	case start.Equal(end):
		return Booking{}, failure.Validation(fmt.Sprintf("start must differ from end: %s", start.Format(time.RFC3339)))
	case end.Before(start):
		return Booking{}, failure.Validation(fmt.Sprintf("end is before start: %s < %s", end.Format(time.RFC3339), start.Format(time.RFC3339)))
	}

	return Booking{
		ItemID:    item.ID,
		BookerID:  bookerID,
		StartTime: start,
		EndTime:   end,
		Status:    StatusWaiting,
		Metadata:  meta,
	}, nil
}

// Decide returns the status an owner decision moves the booking to.
// Only an already APPROVED booking refuses the decision; REJECTED may still be approved.
func (b Booking) Decide(approved bool) (Status, error) {
	if b.Status == StatusApproved {
		return b.Status, failure.Validation(fmt.Sprintf("booking already has this status: booking %d is %s", b.ID, b.Status))
	}

	if approved {
		return StatusApproved, nil
	}

	return StatusRejected, nil
}

// VisibleTo reports whether userID is the booker or the owner of the booked item.
func (b BookingDetail) VisibleTo(userID int64) bool {
	return b.BookerID == userID || b.OwnerID == userID
}
