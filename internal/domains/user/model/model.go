package model

import "shareit/shared/model"

const (
	TableName  = "users"
	EntityName = "user"

	FieldID    = "id"
	FieldName  = "name"
	FieldEmail = "email"
)

type User struct {
	ID    int64  `db:"id"    generated:"true"`
	Name  string `db:"name"`
	Email string `db:"email"`
	model.Metadata
}
