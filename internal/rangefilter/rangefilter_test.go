package rangefilter

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tugasku/tugasku-server/internal/models"
	"github.com/tugasku/tugasku-server/internal/taskclock"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 10, 0, 0, 0, time.Local)
}

func task(id string, start time.Time, status string) models.Task {
	return models.Task{ID: id, StartTime: start, Status: status}
}

func TestFilterByRangeEmptyInput(t *testing.T) {
	res := FilterByRange(nil, day(2024, time.March, 1), day(2024, time.March, 31))
	assert.Empty(t, res.Matched)
	assert.Equal(t, 0, res.CompletedCount)
	assert.Equal(t, 0, res.PendingCount)
}

func TestFilterByRangeBoundariesInclusive(t *testing.T) {
	tasks := []models.Task{
		task("on-start", day(2024, time.March, 11), models.StatusPending),
		task("inside", day(2024, time.March, 13), models.StatusPending),
		task("on-end", day(2024, time.March, 17), models.StatusCompleted),
		task("before", day(2024, time.March, 10), models.StatusPending),
		task("after", day(2024, time.March, 18), models.StatusPending),
	}

	res := FilterByRange(tasks, day(2024, time.March, 11), day(2024, time.March, 17))
	require.Len(t, res.Matched, 3)
	assert.Equal(t, "on-start", res.Matched[0].ID)
	assert.Equal(t, "inside", res.Matched[1].ID)
	assert.Equal(t, "on-end", res.Matched[2].ID)
}

func TestFilterByRangeIgnoresTimeOfDay(t *testing.T) {
	late := time.Date(2024, time.March, 17, 23, 59, 59, 0, time.Local)
	tasks := []models.Task{task("late", late, models.StatusPending)}

	res := FilterByRange(tasks, day(2024, time.March, 11), day(2024, time.March, 17))
	assert.Len(t, res.Matched, 1)
}

func TestFilterByRangeCounts(t *testing.T) {
	tasks := []models.Task{
		task("a", day(2024, time.March, 12), models.StatusCompleted),
		task("b", day(2024, time.March, 13), models.StatusPending),
		task("c", day(2024, time.March, 14), models.StatusCompleted),
	}

	res := FilterByRange(tasks, day(2024, time.March, 11), day(2024, time.March, 17))
	assert.Equal(t, 2, res.CompletedCount)
	assert.Equal(t, 1, res.PendingCount)
}

func TestFilterByRangeSkipsUnparseableDates(t *testing.T) {
	tasks := []models.Task{
		task("good", day(2024, time.March, 12), models.StatusPending),
		task("bad", time.Time{}, models.StatusCompleted),
	}

	res := FilterByRange(tasks, day(2024, time.March, 11), day(2024, time.March, 17))
	require.Len(t, res.Matched, 1)
	assert.Equal(t, "good", res.Matched[0].ID)
	assert.Equal(t, 0, res.CompletedCount)
	assert.Equal(t, 1, res.PendingCount)
}

func TestFilterByRangePreservesInputOrder(t *testing.T) {
	tasks := []models.Task{
		task("later", day(2024, time.March, 16), models.StatusPending),
		task("earlier", day(2024, time.March, 12), models.StatusPending),
	}

	res := FilterByRange(tasks, day(2024, time.March, 11), day(2024, time.March, 17))
	require.Len(t, res.Matched, 2)
	assert.Equal(t, "later", res.Matched[0].ID)
	assert.Equal(t, "earlier", res.Matched[1].ID)
}

func TestFilterByRangeIdempotent(t *testing.T) {
	tasks := []models.Task{
		task("a", day(2024, time.March, 12), models.StatusCompleted),
		task("b", day(2024, time.March, 13), models.StatusPending),
	}

	first := FilterByRange(tasks, day(2024, time.March, 11), day(2024, time.March, 17))
	second := FilterByRange(tasks, day(2024, time.March, 11), day(2024, time.March, 17))
	assert.Equal(t, first, second)
}

func TestFilterByWeek(t *testing.T) {
	// Anchor on Friday 2024-03-15; the id week runs Mon 11 .. Sun 17.
	anchor := day(2024, time.March, 15)
	tasks := []models.Task{
		task("today", anchor, models.StatusCompleted),
		task("yesterday", day(2024, time.March, 14), models.StatusPending),
		task("two-days-ago", day(2024, time.March, 13), models.StatusPending),
		task("last-week", day(2024, time.March, 8), models.StatusCompleted),
	}

	res := FilterByWeek(tasks, anchor, taskclock.LocaleID)
	require.Len(t, res.Matched, 3)
	assert.Equal(t, 1, res.CompletedCount)
	assert.Equal(t, 2, res.PendingCount)
}

func TestFilterByDay(t *testing.T) {
	tasks := []models.Task{
		task("match", day(2024, time.March, 15), models.StatusPending),
		task("other", day(2024, time.March, 16), models.StatusPending),
	}

	res := FilterByDay(tasks, day(2024, time.March, 15))
	require.Len(t, res.Matched, 1)
	assert.Equal(t, "match", res.Matched[0].ID)
}
