package caldate

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLastDayOfMonth(t *testing.T) {
	assert.Equal(t, 31, LastDayOfMonth(2026, time.January))
	assert.Equal(t, 28, LastDayOfMonth(2026, time.February))
	assert.Equal(t, 29, LastDayOfMonth(2028, time.February))
	assert.Equal(t, 30, LastDayOfMonth(2026, time.April))
	assert.Equal(t, 31, LastDayOfMonth(2026, time.December))
}

func TestClampDay(t *testing.T) {
	assert.Equal(t, New(2026, time.February, 28), ClampDay(2026, time.February, 31))
	assert.Equal(t, New(2028, time.February, 29), ClampDay(2028, time.February, 30))
	assert.Equal(t, New(2026, time.March, 1), ClampDay(2026, time.March, 0))
	assert.Equal(t, New(2026, time.March, 15), ClampDay(2026, time.March, 15))
}

func TestParseAndFormat(t *testing.T) {
	d, err := Parse(" 2026-01-02 ")
	require.NoError(t, err)
	assert.Equal(t, New(2026, time.January, 2), d)
	assert.Equal(t, "2026-01-02", Format(d))

	_, err = Parse("2026-02-30")
	assert.Error(t, err)
}

func TestNormalizeKeepsWallClockDate(t *testing.T) {
	paris := time.FixedZone("CET", 3600)
	in := time.Date(2026, time.March, 3, 0, 30, 0, 0, paris)
	assert.Equal(t, New(2026, time.March, 3), Normalize(in))
}

func TestDaysBetween(t *testing.T) {
	assert.Equal(t, 3, DaysBetween(New(2026, time.January, 30), New(2026, time.February, 2)))
	assert.Equal(t, -1, DaysBetween(New(2026, time.January, 2), New(2026, time.January, 1)))
}

func TestWithin(t *testing.T) {
	from := New(2026, time.January, 1)
	to := New(2026, time.February, 1)

	assert.True(t, Within(from, from, to))
	assert.True(t, Within(New(2026, time.January, 31), from, to))
	assert.False(t, Within(to, from, to))
	assert.False(t, Within(New(2025, time.December, 31), from, to))
	assert.True(t, Within(New(2030, time.June, 1), from, time.Time{}))
}

func TestIsWeekend(t *testing.T) {
	weekend := []time.Weekday{time.Saturday, time.Sunday}
	assert.True(t, IsWeekend(New(2026, time.January, 3), weekend))
	assert.False(t, IsWeekend(New(2026, time.January, 2), weekend))
	assert.True(t, IsWeekend(New(2026, time.January, 2), []time.Weekday{time.Friday}))
}
