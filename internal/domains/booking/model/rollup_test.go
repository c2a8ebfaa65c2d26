package model_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"shareit/internal/domains/booking/model"
)

func TestRollups(t *testing.T) {
	bookings := []model.Booking{
		{ID: 1, ItemID: 10, StartTime: now.Add(-5 * time.Hour), EndTime: now.Add(-4 * time.Hour), Status: model.StatusApproved},
		{ID: 2, ItemID: 10, StartTime: now.Add(-3 * time.Hour), EndTime: now.Add(-2 * time.Hour), Status: model.StatusRejected},
		{ID: 3, ItemID: 10, StartTime: now.Add(-time.Hour), EndTime: now.Add(time.Hour), Status: model.StatusApproved},
		{ID: 4, ItemID: 10, StartTime: now.Add(4 * time.Hour), EndTime: now.Add(5 * time.Hour), Status: model.StatusWaiting},
		{ID: 5, ItemID: 10, StartTime: now.Add(2 * time.Hour), EndTime: now.Add(3 * time.Hour), Status: model.StatusWaiting},
		{ID: 6, ItemID: 20, StartTime: now.Add(time.Hour), EndTime: now.Add(2 * time.Hour), Status: model.StatusWaiting},
	}

	rollups := model.Rollups(bookings, now)

	require.Contains(t, rollups, int64(10))
	require.NotNil(t, rollups[10].Next)
	require.NotNil(t, rollups[10].Last)
	assert.Equal(t, int64(5), rollups[10].Next.ID, "next is the earliest start after now")
	assert.Equal(t, int64(2), rollups[10].Last.ID, "last is the latest end before now, whatever its status")

	require.Contains(t, rollups, int64(20))
	assert.Equal(t, int64(6), rollups[20].Next.ID)
	assert.Nil(t, rollups[20].Last)

	assert.NotContains(t, rollups, int64(30))
}

func TestRollups_CurrentBookingIsNeither(t *testing.T) {
	rollups := model.Rollups([]model.Booking{
		{ID: 1, ItemID: 10, StartTime: now.Add(-time.Hour), EndTime: now.Add(time.Hour)},
	}, now)

	assert.Nil(t, rollups[10].Next)
	assert.Nil(t, rollups[10].Last)
}
