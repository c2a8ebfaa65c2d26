package model

import "shareit/shared/model"

const (
	TableName  = "items"
	EntityName = "item"

	FieldID          = "id"
	FieldName        = "name"
	FieldDescription = "description"
	FieldAvailable   = "available"
	FieldOwnerID     = "owner_id"
	FieldRequestID   = "request_id"
)

const (
	CommentTableName  = "comments"
	CommentEntityName = "comment"

	FieldCommentID       = "id"
	FieldCommentItemID   = "item_id"
	FieldCommentAuthorID = "author_id"
)

type Item struct {
	ID          int64  `db:"id"          generated:"true"`
	Name        string `db:"name"`
	Description string `db:"description"`
	Available   bool   `db:"available"`
	OwnerID     int64  `db:"owner_id"`
	RequestID   *int64 `db:"request_id"`
	model.Metadata
}

type Comment struct {
	ID       int64  `db:"id"        generated:"true"`
	Text     string `db:"text"`
	ItemID   int64  `db:"item_id"`
	AuthorID int64  `db:"author_id"`
	model.Metadata
}

// CommentDetail is a comment joined with its author's name.
type CommentDetail struct {
	Comment
	AuthorName string `db:"author_name" table:"users" column:"name"`
}

func (CommentDetail) GetJoinQuery() string {
	return "JOIN users ON users.id = comments.author_id"
}
