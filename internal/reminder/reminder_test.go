package reminder

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var end = time.Date(2024, time.March, 15, 10, 0, 0, 0, time.Local)

func TestResolveNoneNeverErrors(t *testing.T) {
	for _, now := range []time.Time{end.Add(-time.Hour), end, end.Add(time.Hour)} {
		trigger, err := Resolve(end, Selection{Kind: None}, now)
		require.NoError(t, err)
		assert.True(t, trigger.IsZero())
	}
}

func TestResolveFixedOffsetExact(t *testing.T) {
	now := end.Add(-45 * time.Minute)

	trigger, err := Resolve(end, Selection{Kind: FixedOffset, Offset: 30 * time.Minute}, now)
	require.NoError(t, err)
	assert.True(t, trigger.Equal(end.Add(-30*time.Minute)))
}

func TestResolveFixedOffsetInPast(t *testing.T) {
	now := end.Add(-23 * time.Hour)

	_, err := Resolve(end, Selection{Kind: FixedOffset, Offset: 24 * time.Hour}, now)
	assert.ErrorIs(t, err, ErrNotInFuture)
}

func TestResolveTriggerEqualToNowFails(t *testing.T) {
	now := end.Add(-30 * time.Minute)

	_, err := Resolve(end, Selection{Kind: FixedOffset, Offset: 30 * time.Minute}, now)
	assert.ErrorIs(t, err, ErrNotInFuture)
}

func TestResolveUnsupportedOffset(t *testing.T) {
	now := end.Add(-2 * time.Hour)

	_, err := Resolve(end, Selection{Kind: FixedOffset, Offset: 7 * time.Minute}, now)
	assert.ErrorIs(t, err, ErrUnknownOffset)
}

func TestResolveCustomInstant(t *testing.T) {
	now := end.Add(-2 * time.Hour)
	at := end.Add(-50 * time.Minute)

	trigger, err := Resolve(end, Selection{Kind: Custom, At: at}, now)
	require.NoError(t, err)
	assert.True(t, trigger.Equal(at))
}

func TestResolveCustomInstantInPast(t *testing.T) {
	now := end.Add(-time.Minute)

	_, err := Resolve(end, Selection{Kind: Custom, At: end.Add(-time.Hour)}, now)
	assert.ErrorIs(t, err, ErrNotInFuture)
}

func TestOffsetFromMinutes(t *testing.T) {
	for _, minutes := range []int{5, 15, 30, 60, 1440} {
		d, ok := OffsetFromMinutes(minutes)
		require.True(t, ok, "minutes %d", minutes)
		assert.Equal(t, time.Duration(minutes)*time.Minute, d)
	}

	_, ok := OffsetFromMinutes(45)
	assert.False(t, ok)
}
