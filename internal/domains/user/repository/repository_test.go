package repository_test

import (
	"shareit/internal/domains/user/repository"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEmailFilter(t *testing.T) {
	tests := []struct {
		name      string
		exceptID  int64
		wantWhere string
		wantArgs  map[string]any
	}{
		{
			name:      "any user",
			wantWhere: "(users.email = :email)",
			wantArgs:  map[string]any{"email": "ann@example.com"},
		},
		{
			name:      "other users",
			exceptID:  4,
			wantWhere: "(users.email = :email AND users.id != :except_id)",
			wantArgs:  map[string]any{"email": "ann@example.com", "except_id": int64(4)},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			filter := repository.EmailFilter("ann@example.com", tt.exceptID)

			where, args := filter.GetWhereClause()

			assert.Equal(t, tt.wantWhere, where)
			assert.Equal(t, tt.wantArgs, args)
		})
	}
}
