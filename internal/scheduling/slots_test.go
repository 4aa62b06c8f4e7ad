package scheduling

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func at(hour, min int) time.Time {
	return time.Date(2025, time.March, 3, hour, min, 0, 0, time.UTC) // a Monday
}

func TestGenerateSlotsHalfOpenWindow(t *testing.T) {
	slots, err := GenerateSlots("09:00", "10:00", 30, nil)
	assert.NoError(t, err)
	assert.Equal(t, []Slot{
		{Time: "09:00", Available: true},
		{Time: "09:30", Available: true},
	}, slots)
}

func TestGenerateSlotsMarksBookedTimes(t *testing.T) {
	slots, err := GenerateSlots("09:00", "10:00", 30, []time.Time{at(9, 30)})
	assert.NoError(t, err)
	assert.Equal(t, []Slot{
		{Time: "09:00", Available: true},
		{Time: "09:30", Available: false},
	}, slots)
}

func TestGenerateSlotsPointCheckIgnoresDuration(t *testing.T) {
	// A booking at 09:15 does not shadow the 09:00 or 09:30 slots; the
	// occupancy check is exact hour-and-minute only.
	slots, err := GenerateSlots("09:00", "10:00", 30, []time.Time{at(9, 15)})
	assert.NoError(t, err)
	assert.True(t, slots[0].Available)
	assert.True(t, slots[1].Available)
}

func TestGenerateSlotsUnevenDuration(t *testing.T) {
	slots, err := GenerateSlots("09:00", "10:00", 45, nil)
	assert.NoError(t, err)
	assert.Equal(t, []Slot{
		{Time: "09:00", Available: true},
		{Time: "09:45", Available: true},
	}, slots)
}

func TestGenerateSlotsInvalidConfiguration(t *testing.T) {
	cases := []struct {
		name       string
		start, end string
		duration   int
	}{
		{"start after end", "17:00", "09:00", 30},
		{"start equals end", "09:00", "09:00", 30},
		{"zero duration", "09:00", "17:00", 0},
		{"negative duration", "09:00", "17:00", -15},
		{"malformed start", "9am", "17:00", 30},
		{"malformed end", "09:00", "25:00", 30},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := GenerateSlots(tc.start, tc.end, tc.duration, nil)
			assert.ErrorIs(t, err, ErrInvalidWindow)
		})
	}
}

func TestGenerateSlotsIdempotent(t *testing.T) {
	booked := []time.Time{at(10, 0), at(14, 30)}
	first, err := GenerateSlots("09:00", "17:00", 30, booked)
	assert.NoError(t, err)
	second, err := GenerateSlots("09:00", "17:00", 30, booked)
	assert.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestHasConflictOverlappingIntervals(t *testing.T) {
	// Existing PENDING appointment at 10:15; a 30-minute request at 10:00
	// spans [10:00, 10:30) and must conflict.
	existing := []time.Time{at(10, 15)}
	assert.True(t, HasConflict(at(10, 0), 30, existing))
}

func TestHasConflictBoundaries(t *testing.T) {
	existing := []time.Time{at(10, 30)}
	// Interval [10:00, 10:30) is half-open: a start exactly at the end is fine.
	assert.False(t, HasConflict(at(10, 0), 30, existing))
	// A start exactly at the requested time conflicts.
	assert.True(t, HasConflict(at(10, 30), 30, existing))
	assert.False(t, HasConflict(at(9, 0), 30, nil))
}

func TestIsWorkingDay(t *testing.T) {
	days := []string{"Monday", "Wednesday", "Friday"}
	assert.True(t, IsWorkingDay(days, at(9, 0)))                     // Monday
	assert.False(t, IsWorkingDay(days, at(9, 0).AddDate(0, 0, 1)))   // Tuesday
	assert.False(t, IsWorkingDay(nil, at(9, 0)))
}

func TestAvailableNow(t *testing.T) {
	days := []string{"Monday"}

	assert.True(t, AvailableNow(days, "09:00", "17:00", at(12, 0)))
	// Inclusive on both ends.
	assert.True(t, AvailableNow(days, "09:00", "17:00", at(9, 0)))
	assert.True(t, AvailableNow(days, "09:00", "17:00", at(17, 0)))
	assert.False(t, AvailableNow(days, "09:00", "17:00", at(17, 1)))
	assert.False(t, AvailableNow(days, "09:00", "17:00", at(8, 59)))
	// Not a working day.
	assert.False(t, AvailableNow([]string{"Tuesday"}, "09:00", "17:00", at(12, 0)))
	// Missing window means not available.
	assert.False(t, AvailableNow(days, "", "17:00", at(12, 0)))
	assert.False(t, AvailableNow(days, "09:00", "", at(12, 0)))
}
