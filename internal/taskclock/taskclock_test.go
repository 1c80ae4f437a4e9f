package taskclock

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func at(y int, m time.Month, d, hh, mm int) time.Time {
	return time.Date(y, m, d, hh, mm, 0, 0, time.Local)
}

func TestNormalizeWellOrderedPairUnchanged(t *testing.T) {
	start := at(2024, time.March, 15, 9, 0)
	end := at(2024, time.March, 15, 10, 30)

	gotStart, gotEnd, err := Normalize(start, end, RollForward)
	require.NoError(t, err)
	assert.True(t, gotStart.Equal(start))
	assert.True(t, gotEnd.Equal(end))
}

func TestNormalizeRollsMidnightCrossingForwardOneDay(t *testing.T) {
	start := at(2024, time.March, 15, 9, 0)
	end := at(2024, time.March, 15, 8, 30)

	_, gotEnd, err := Normalize(start, end, RollForward)
	require.NoError(t, err)
	assert.True(t, gotEnd.Equal(at(2024, time.March, 16, 8, 30)))
	assert.True(t, gotEnd.After(start))
}

func TestNormalizeEqualInstantsFail(t *testing.T) {
	start := at(2024, time.March, 15, 9, 0)

	_, _, err := Normalize(start, start, RollForward)
	assert.ErrorIs(t, err, ErrEndBeforeStart)
}

func TestNormalizeEndOnEarlierDateFails(t *testing.T) {
	start := at(2024, time.March, 15, 9, 0)
	end := at(2024, time.March, 14, 8, 0)

	// Different calendar dates: the rollover allowance does not apply.
	_, _, err := Normalize(start, end, RollForward)
	assert.ErrorIs(t, err, ErrEndBeforeStart)
}

func TestNormalizeRejectPolicyRefusesRollover(t *testing.T) {
	start := at(2024, time.March, 15, 9, 0)
	end := at(2024, time.March, 15, 8, 30)

	_, _, err := Normalize(start, end, Reject)
	assert.ErrorIs(t, err, ErrEndBeforeStart)
}

func TestNormalizeZeroInputFails(t *testing.T) {
	_, _, err := Normalize(time.Time{}, at(2024, time.March, 15, 9, 0), RollForward)
	assert.ErrorIs(t, err, ErrEndBeforeStart)
}

func TestCombineMergesDateAndClock(t *testing.T) {
	date := at(2024, time.March, 15, 0, 0)
	clock := at(1999, time.January, 1, 14, 45)

	got := Combine(date, clock)
	assert.True(t, got.Equal(at(2024, time.March, 15, 14, 45)))
}

func TestDefaultClockTruncatesToMinute(t *testing.T) {
	date := at(2024, time.March, 15, 0, 0)
	now := time.Date(2024, time.June, 1, 10, 20, 37, 500, time.Local)

	got := DefaultClock(date, now)
	assert.True(t, got.Equal(at(2024, time.March, 15, 10, 20)))
}

func TestDateKeyAndHourBucket(t *testing.T) {
	instant := at(2024, time.March, 5, 23, 59)
	assert.Equal(t, "2024-03-05", DateKey(instant))
	assert.Equal(t, 23, HourBucket(instant))
	assert.Equal(t, 0, HourBucket(at(2024, time.March, 5, 0, 10)))
}

func TestParseWire(t *testing.T) {
	got, ok := ParseWire("2024-03-15T09:30:00")
	require.True(t, ok)
	assert.True(t, got.Equal(at(2024, time.March, 15, 9, 30)))

	// Legacy space separator.
	got, ok = ParseWire("2024-03-15 09:30:00")
	require.True(t, ok)
	assert.True(t, got.Equal(at(2024, time.March, 15, 9, 30)))

	// Bare date parses to midnight.
	got, ok = ParseWire("2024-03-15")
	require.True(t, ok)
	assert.True(t, got.Equal(at(2024, time.March, 15, 0, 0)))
}

func TestParseWireClock(t *testing.T) {
	_, hasClock, ok := ParseWireClock("2024-03-15T09:30:00")
	require.True(t, ok)
	assert.True(t, hasClock)

	_, hasClock, ok = ParseWireClock("2024-03-15 09:30:00")
	require.True(t, ok)
	assert.True(t, hasClock)

	got, hasClock, ok := ParseWireClock("2024-03-15")
	require.True(t, ok)
	assert.False(t, hasClock)
	assert.True(t, got.Equal(at(2024, time.March, 15, 0, 0)))

	_, _, ok = ParseWireClock("not-a-date")
	assert.False(t, ok)
}

func TestParseWireMalformed(t *testing.T) {
	for _, s := range []string{"", "   ", "not-a-date", "15/03/2024", "2024-13-40T09:00:00"} {
		got, ok := ParseWire(s)
		assert.False(t, ok, "input %q", s)
		assert.True(t, got.IsZero())
	}
}

func TestFormatWireRoundTrip(t *testing.T) {
	instant := at(2024, time.March, 15, 8, 5)
	assert.Equal(t, "2024-03-15T08:05:00", FormatWire(instant))
	assert.Equal(t, "", FormatWire(time.Time{}))
}

func TestParseRolloverPolicy(t *testing.T) {
	p, ok := ParseRolloverPolicy("roll")
	assert.True(t, ok)
	assert.Equal(t, RollForward, p)

	p, ok = ParseRolloverPolicy("reject")
	assert.True(t, ok)
	assert.Equal(t, Reject, p)

	_, ok = ParseRolloverPolicy("sometimes")
	assert.False(t, ok)
}
