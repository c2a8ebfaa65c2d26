package dto_test

import (
	"shareit/internal/domains/user/model"
	"shareit/internal/domains/user/model/dto"
	gModel "shareit/shared/model"
	"shareit/shared/validator"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCreateUserRequest_Validate(t *testing.T) {
	tests := []struct {
		name    string
		req     dto.CreateUserRequest
		wantErr bool
	}{
		{name: "valid", req: dto.CreateUserRequest{Name: "Ann", Email: "ann@example.com"}},
		{name: "blank name", req: dto.CreateUserRequest{Name: " ", Email: "ann@example.com"}, wantErr: true},
		{name: "invalid email", req: dto.CreateUserRequest{Name: "Ann", Email: "ann"}, wantErr: true},
		{name: "missing email", req: dto.CreateUserRequest{Name: "Ann"}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validator.ValidateStruct(&tt.req)

			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestCreateUserRequest_ToModel(t *testing.T) {
	req := dto.CreateUserRequest{Name: "Ann", Email: "ann@example.com"}

	user := req.ToModel("system")

	assert.Zero(t, user.ID)
	assert.Equal(t, "Ann", user.Name)
	assert.Equal(t, "ann@example.com", user.Email)
	assert.Equal(t, "system", user.CreatedBy)
	assert.Equal(t, user.CreatedAt, user.ModifiedAt)
}

func TestGetUsersResponse_FromModels(t *testing.T) {
	var res dto.GetUsersResponse

	res.FromModels([]model.User{
		{ID: 1, Name: "Ann", Email: "ann@example.com", Metadata: gModel.Metadata{CreatedBy: "system"}},
		{ID: 2, Name: "Bob", Email: "bob@example.com"},
	}, 21, 10)

	assert.Equal(t, 21, res.TotalData)
	assert.Equal(t, 3, res.TotalPage)
	assert.Len(t, res.Users, 2)
	assert.Equal(t, int64(1), res.Users[0].ID)
	assert.Equal(t, "system", res.Users[0].CreatedBy)
}
