package dto

import (
	bookingModel "shareit/internal/domains/booking/model"
	bookingDto "shareit/internal/domains/booking/model/dto"
	"shareit/internal/domains/item/model"
	"shareit/shared/constant"
	gModel "shareit/shared/model"
	"shareit/shared/timezone"
)

type CreateItemRequest struct {
	Name        string `json:"name"        validate:"required,notblank,max=255"`
	Description string `json:"description" validate:"required,notblank,max=1024"`
	Available   *bool  `json:"available"   validate:"required"`
	RequestID   *int64 `json:"requestId"   validate:"omitempty,gt=0"`
}

func (r *CreateItemRequest) ToModel(ownerID int64, actor string) model.Item {
	return model.Item{
		Name:        r.Name,
		Description: r.Description,
		Available:   *r.Available,
		OwnerID:     ownerID,
		RequestID:   r.RequestID,
		Metadata:    gModel.Created(actor),
	}
}

type UpdateItemRequest struct {
	Name        *string `db:"name"        json:"name,omitempty"        validate:"omitempty,notblank,max=255"`
	Description *string `db:"description" json:"description,omitempty" validate:"omitempty,notblank,max=1024"`
	Available   *bool   `db:"available"   json:"available,omitempty"`
}

// Apply copies the present fields onto item.
func (r *UpdateItemRequest) Apply(item *model.Item) {
	if r.Name != nil {
		item.Name = *r.Name
	}

	if r.Description != nil {
		item.Description = *r.Description
	}

	if r.Available != nil {
		item.Available = *r.Available
	}
}

type ItemResponse struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Available   bool   `json:"available"`
	OwnerID     int64  `json:"ownerId"`
	RequestID   *int64 `json:"requestId"`
}

func (r *ItemResponse) FromModel(model model.Item) {
	r.ID = model.ID
	r.Name = model.Name
	r.Description = model.Description
	r.Available = model.Available
	r.OwnerID = model.OwnerID
	r.RequestID = model.RequestID
}

func FromModels(models []model.Item) []ItemResponse {
	res := make([]ItemResponse, len(models))
	for i, mod := range models {
		res[i].FromModel(mod)
	}

	return res
}

// ItemDetailResponse is an item with its comments and, for the owner, its next and last bookings.
type ItemDetailResponse struct {
	ItemResponse
	LastBooking *bookingDto.ShortBookingResponse `json:"lastBooking"`
	NextBooking *bookingDto.ShortBookingResponse `json:"nextBooking"`
	Comments    []CommentResponse                `json:"comments"`
}

func NewItemDetailResponse(item model.Item, rollup bookingModel.Rollup, comments []model.CommentDetail) ItemDetailResponse {
	res := ItemDetailResponse{
		LastBooking: bookingDto.NewShortBookingResponse(rollup.Last),
		NextBooking: bookingDto.NewShortBookingResponse(rollup.Next),
		Comments:    CommentsFromModels(comments),
	}
	res.FromModel(item)

	return res
}

type CreateCommentRequest struct {
	Text string `json:"text" validate:"required,notblank,max=2048"`
}

func (r *CreateCommentRequest) ToModel(itemID, authorID int64, actor string) model.Comment {
	return model.Comment{
		Text:     r.Text,
		ItemID:   itemID,
		AuthorID: authorID,
		Metadata: gModel.Created(actor),
	}
}

type CommentResponse struct {
	ID         int64  `json:"id"`
	Text       string `json:"text"`
	AuthorName string `json:"authorName"`
	Created    string `json:"created"`
}

func (r *CommentResponse) FromModel(model model.CommentDetail) {
	r.ID = model.ID
	r.Text = model.Text
	r.AuthorName = model.AuthorName
	r.Created = timezone.Format(model.CreatedAt, constant.LocalDateFormat)
}

func CommentsFromModels(models []model.CommentDetail) []CommentResponse {
	res := make([]CommentResponse, len(models))
	for i, mod := range models {
		res[i].FromModel(mod)
	}

	return res
}
