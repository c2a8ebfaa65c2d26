package dto

import (
	itemModel "shareit/internal/domains/item/model"
	"shareit/internal/domains/request/model"
	"shareit/shared/constant"
	gModel "shareit/shared/model"
	"shareit/shared/timezone"
)

type CreateItemRequestRequest struct {
	Description string `json:"description" validate:"required,notblank,max=2048"`
}

func (r *CreateItemRequestRequest) ToModel(requestorID int64, actor string) model.ItemRequest {
	return model.ItemRequest{
		Description: r.Description,
		RequestorID: requestorID,
		Metadata:    gModel.Created(actor),
	}
}

// AnswerResponse is an item created in answer to a request.
type AnswerResponse struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Available   bool   `json:"available"`
	OwnerID     int64  `json:"ownerId"`
	RequestID   int64  `json:"requestId"`
}

type ItemRequestResponse struct {
	ID          int64            `json:"id"`
	Description string           `json:"description"`
	RequestorID int64            `json:"requestorId"`
	Created     string           `json:"created"`
	Items       []AnswerResponse `json:"items"`
}

func (r *ItemRequestResponse) FromModel(model model.ItemRequest, answers []itemModel.Item) {
	r.ID = model.ID
	r.Description = model.Description
	r.RequestorID = model.RequestorID
	r.Created = timezone.Format(model.CreatedAt, constant.LocalDateFormat)

	r.Items = make([]AnswerResponse, len(answers))
	for i, item := range answers {
		r.Items[i] = AnswerResponse{
			ID:          item.ID,
			Name:        item.Name,
			Description: item.Description,
			Available:   item.Available,
			OwnerID:     item.OwnerID,
			RequestID:   model.ID,
		}
	}
}
