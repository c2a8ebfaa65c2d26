package model

import "shareit/shared/model"

const (
	TableName  = "item_requests"
	EntityName = "item_request"

	FieldID          = "id"
	FieldRequestorID = "requestor_id"
)

type ItemRequest struct {
	ID          int64  `db:"id"           generated:"true"`
	Description string `db:"description"`
	RequestorID int64  `db:"requestor_id"`
	model.Metadata
}
