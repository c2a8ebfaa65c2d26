package helper_test

import (
	"io/fs"
	"shareit/helper"
	"shareit/migrations"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseAction(t *testing.T) {
	tests := []struct {
		raw     string
		want    helper.Action
		wantErr bool
	}{
		{raw: "up", want: helper.ActionUp},
		{raw: "down", want: helper.ActionDown},
		{raw: "step-up", want: helper.ActionStepUp},
		{raw: "drop", want: helper.ActionDrop},
		{raw: "sideways", wantErr: true},
		{raw: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			got, err := helper.ParseAction(tt.raw)
			if tt.wantErr {
				assert.ErrorIs(t, err, helper.ErrUnknownAction)

				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestEmbeddedMigrations(t *testing.T) {
	files, err := fs.Glob(migrations.Postgres, migrations.PostgresDir+"/*.sql")
	require.NoError(t, err)

	assert.Contains(t, files, "postgres/1_init.up.sql")
	assert.Contains(t, files, "postgres/1_init.down.sql")

	up, err := fs.ReadFile(migrations.Postgres, "postgres/1_init.up.sql")
	require.NoError(t, err)

	for _, table := range []string{"users", "item_requests", "items", "bookings", "comments"} {
		assert.Contains(t, string(up), "CREATE TABLE IF NOT EXISTS "+table+" (")
	}
}
