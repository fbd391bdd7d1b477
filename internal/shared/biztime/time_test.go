package biztime

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestYearTwoDigits(t *testing.T) {
	ts := time.Date(2026, 12, 31, 23, 30, 0, 0, time.UTC)
	assert.Equal(t, 26, YearTwoDigits(ts))

	require.NoError(t, Init("Asia/Tokyo"))
	defer func() { _ = Init("") }()
	assert.Equal(t, 27, YearTwoDigits(ts))
}

func TestSetClock(t *testing.T) {
	fixed := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	restore := SetClock(func() time.Time { return fixed })
	defer restore()

	assert.Equal(t, fixed, NowUTC())
	assert.Equal(t, fixed.UnixMilli(), NowMilli())
}

func TestInitRejectsUnknownZone(t *testing.T) {
	assert.Error(t, Init("Not/AZone"))
}
