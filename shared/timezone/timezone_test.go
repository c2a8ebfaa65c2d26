package timezone_test

import (
	"shareit/shared/timezone"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestInit(t *testing.T) {
	defer timezone.Init("UTC")

	tests := []struct {
		name string
		tz   string
		want string
	}{
		{name: "named location", tz: "Europe/Moscow", want: "Europe/Moscow"},
		{name: "empty falls back to UTC", tz: "", want: "UTC"},
		{name: "unknown falls back to UTC", tz: "Mars/Olympus", want: "UTC"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			timezone.Init(tt.tz)

			assert.Equal(t, tt.want, timezone.GetLocation().String())
			assert.Equal(t, tt.want, timezone.Now().Location().String())
		})
	}
}

func TestSetClock(t *testing.T) {
	fixed := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)

	restore := timezone.SetClock(func() time.Time { return fixed })

	assert.True(t, fixed.Equal(timezone.Now()))

	restore()

	assert.False(t, fixed.Equal(timezone.Now()))
}

func TestParseAndFormat(t *testing.T) {
	timezone.Init("Europe/Moscow")
	defer timezone.Init("UTC")

	parsed, err := timezone.Parse("2006-01-02T15:04:05", "2026-03-11T10:00:00")

	assert.NoError(t, err)
	assert.Equal(t, time.Date(2026, 3, 11, 7, 0, 0, 0, time.UTC), parsed.UTC())
	assert.Equal(t, "2026-03-11T10:00:00", timezone.Format(parsed.UTC(), "2006-01-02T15:04:05"))

	_, err = timezone.Parse("2006-01-02T15:04:05", "tomorrow")
	assert.Error(t, err)
}
