package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSlotCatalog(t *testing.T) {
	slots := SlotCatalog()

	// 8 morning half-hours (08:00..11:30) + 8 afternoon (13:30..17:00).
	assert.Len(t, slots, 16)
	assert.Equal(t, "08:00", slots[0])
	assert.Equal(t, "11:30", slots[7])
	assert.Equal(t, "13:30", slots[8])
	assert.Equal(t, "17:00", slots[15])

	assert.True(t, ValidSlot("09:00"))
	assert.True(t, ValidSlot("13:30"))
	assert.False(t, ValidSlot("12:00"), "lunch break is not bookable")
	assert.False(t, ValidSlot("9:00"))
	assert.False(t, ValidSlot(""))

	// Callers cannot poison the catalog.
	slots[0] = "00:00"
	assert.Equal(t, "08:00", SlotCatalog()[0])
}

func TestStatusMapping(t *testing.T) {
	assert.Equal(t, UIStatusPending, UIStatus(AppointmentStatusScheduled))
	assert.Equal(t, UIStatusCompleted, UIStatus(AppointmentStatusCompleted))
	assert.Equal(t, UIStatusCancelled, UIStatus(AppointmentStatusCancelled))
	assert.Equal(t, UIStatusPending, UIStatus("Something Else"))

	assert.Equal(t, AppointmentStatusScheduled, BackendStatus(UIStatusPending))
	assert.Equal(t, AppointmentStatusCompleted, BackendStatus(UIStatusCompleted))
	assert.Equal(t, AppointmentStatusCancelled, BackendStatus(UIStatusCancelled))
	assert.Equal(t, AppointmentStatusScheduled, BackendStatus("unknown"))
}

func TestNormalizeDate(t *testing.T) {
	for in, want := range map[string]string{
		"2025-03-01":           "2025-03-01",
		"2025-03-01T00:00:00Z": "2025-03-01",
		"01/03/2025":           "2025-03-01",
	} {
		got, err := NormalizeDate(in)
		assert.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}

	_, err := NormalizeDate("not-a-date")
	assert.Error(t, err)
}
