package calendar_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tolga/atcroster/internal/calendar"
)

func TestDateOf(t *testing.T) {
	tests := []struct {
		name      string
		year      int
		dayOfYear int
		expected  time.Time
		expectErr bool
	}{
		{"first day", 2026, 1, time.Date(2026, time.January, 1, 0, 0, 0, 0, time.UTC), false},
		{"last day non-leap", 2026, 365, time.Date(2026, time.December, 31, 0, 0, 0, 0, time.UTC), false},
		{"last day leap", 2028, 366, time.Date(2028, time.December, 31, 0, 0, 0, 0, time.UTC), false},
		{"mid year", 2026, 100, time.Date(2026, time.April, 10, 0, 0, 0, 0, time.UTC), false},
		{"zero", 2026, 0, time.Time{}, true},
		{"overflow non-leap", 2026, 366, time.Time{}, true},
		{"overflow leap", 2028, 367, time.Time{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			date, err := calendar.DateOf(tt.year, tt.dayOfYear)
			if tt.expectErr {
				assert.ErrorIs(t, err, calendar.ErrInvalidDay)
				return
			}
			require.NoError(t, err)
			assert.True(t, tt.expected.Equal(date))
		})
	}
}

func TestIsWeekend(t *testing.T) {
	tests := []struct {
		name     string
		date     time.Time
		expected bool
	}{
		{"monday", time.Date(2026, time.January, 5, 0, 0, 0, 0, time.UTC), false},
		{"friday", time.Date(2026, time.January, 9, 0, 0, 0, 0, time.UTC), false},
		{"saturday", time.Date(2026, time.January, 10, 0, 0, 0, 0, time.UTC), true},
		{"sunday", time.Date(2026, time.January, 11, 0, 0, 0, 0, time.UTC), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, calendar.IsWeekend(tt.date))
		})
	}
}

func TestISOWeekKey(t *testing.T) {
	// Jan 1 2027 is a Friday and belongs to ISO week 53 of 2026.
	isoYear, isoWeek := calendar.ISOWeekKey(time.Date(2027, time.January, 1, 0, 0, 0, 0, time.UTC))
	assert.Equal(t, 2026, isoYear)
	assert.Equal(t, 53, isoWeek)

	// Dec 31 2025 is a Wednesday and belongs to ISO week 1 of 2026.
	isoYear, isoWeek = calendar.ISOWeekKey(time.Date(2025, time.December, 31, 0, 0, 0, 0, time.UTC))
	assert.Equal(t, 2026, isoYear)
	assert.Equal(t, 1, isoWeek)
}

func TestRollingWindows(t *testing.T) {
	windows := calendar.RollingWindows(1, 10, 7)
	require.Len(t, windows, 4)
	assert.Equal(t, []int{1, 2, 3, 4, 5, 6, 7}, windows[0])
	assert.Equal(t, []int{4, 5, 6, 7, 8, 9, 10}, windows[3])

	assert.Nil(t, calendar.RollingWindows(1, 5, 7))
	assert.Nil(t, calendar.RollingWindows(1, 10, 0))
}

func TestConsecutiveWindows(t *testing.T) {
	windows := calendar.ConsecutiveWindows(1, 10, 4)
	require.Len(t, windows, 6)
	assert.Len(t, windows[0], 5)
	assert.Equal(t, []int{1, 2, 3, 4, 5}, windows[0])
}

func TestWeekGroups(t *testing.T) {
	groups, err := calendar.WeekGroups(2026, 1, 14)
	require.NoError(t, err)

	// 2026-01-01 is a Thursday, so the horizon spans ISO weeks 1 and 2 of 2026.
	week1 := groups[[2]int{2026, 1}]
	week2 := groups[[2]int{2026, 2}]
	assert.Equal(t, []int{1, 2, 3, 4}, week1)
	assert.Equal(t, []int{5, 6, 7, 8, 9, 10, 11}, week2)
}
