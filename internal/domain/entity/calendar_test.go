package entity

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseCalendarDate_PlainDate(t *testing.T) {
	got, err := ParseCalendarDate("2024-06-01", time.UTC)

	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC), got)
}

func TestParseCalendarDate_TimestampsOnSameDayAreEqual(t *testing.T) {
	morning, err := ParseCalendarDate("2024-06-01T08:00:00Z", time.UTC)
	require.NoError(t, err)
	evening, err := ParseCalendarDate("2024-06-01T23:59:59Z", time.UTC)
	require.NoError(t, err)
	plain, err := ParseCalendarDate("2024-06-01", time.UTC)
	require.NoError(t, err)

	assert.Equal(t, plain, morning)
	assert.Equal(t, plain, evening)
}

func TestParseCalendarDate_UsesLocation(t *testing.T) {
	jakarta := time.FixedZone("WIB", 7*60*60)

	// 20:00 UTC on May 31 is already June 1 in UTC+7.
	got, err := ParseCalendarDate("2024-05-31T20:00:00Z", jakarta)

	require.NoError(t, err)
	assert.Equal(t, "2024-06-01", FormatCalendarDate(got))
}

func TestParseCalendarDate_Invalid(t *testing.T) {
	for _, value := range []string{"", "   ", "01-06-2024", "2024-13-01", "tomorrow"} {
		_, err := ParseCalendarDate(value, time.UTC)
		assert.ErrorIs(t, err, ErrInvalidCalendarDate, value)
	}
}

func TestParseCalendarDate_NilLocationIsUTC(t *testing.T) {
	got, err := ParseCalendarDate("2024-06-01", nil)

	require.NoError(t, err)
	assert.Equal(t, time.UTC, got.Location())
}
