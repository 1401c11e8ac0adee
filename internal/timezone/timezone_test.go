package timezone

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocation_FallsBackToDefault(t *testing.T) {
	assert.Equal(t, DefaultTimezone, Location("Not/AZone").String())
	assert.Equal(t, "UTC", Location("UTC").String())
}

func TestStartOfDay(t *testing.T) {
	in := time.Date(2025, 3, 14, 17, 45, 12, 99, time.UTC)
	assert.Equal(t, time.Date(2025, 3, 14, 0, 0, 0, 0, time.UTC), StartOfDay(in))
}

func TestParseDate(t *testing.T) {
	loc := Location("Europe/Warsaw")

	got, err := ParseDate("2025-07-01", loc)
	require.NoError(t, err)
	assert.Equal(t, 0, got.Hour())
	assert.Equal(t, loc, got.Location())

	_, err = ParseDate("01/07/2025", loc)
	assert.Error(t, err)
}
