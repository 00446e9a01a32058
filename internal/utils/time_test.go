package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDateOnlyKeepsLocalCalendarDay(t *testing.T) {
	est := time.FixedZone("EST", -5*60*60)
	late := time.Date(2024, 3, 5, 23, 30, 0, 0, est)

	got := DateOnly(late)

	assert.Equal(t, time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC), got)
	assert.Equal(t, "2024-03-05", FormatDate(got))
}

func TestParseDate(t *testing.T) {
	d, err := ParseDate("2024-09-01")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 9, 1, 0, 0, 0, 0, time.UTC), d)

	d, err = ParseDate("2024-09-01T18:45:00+02:00")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 9, 1, 0, 0, 0, 0, time.UTC), d)

	_, err = ParseDate("yesterday")
	assert.Error(t, err)
}

func TestDaysBetween(t *testing.T) {
	today := time.Date(2024, 2, 27, 15, 0, 0, 0, time.UTC)

	assert.Equal(t, 3, DaysBetween(today, time.Date(2024, 3, 1, 1, 0, 0, 0, time.UTC)))
	assert.Equal(t, 0, DaysBetween(today, time.Date(2024, 2, 27, 23, 0, 0, 0, time.UTC)))
	assert.Equal(t, -1, DaysBetween(today, time.Date(2024, 2, 26, 23, 0, 0, 0, time.UTC)))
}
