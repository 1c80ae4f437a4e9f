package taskclock

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestFormatDateRelativeNames(t *testing.T) {
	now := at(2024, time.March, 15, 12, 0)

	assert.Equal(t, "Hari ini", FormatDate(at(2024, time.March, 15, 8, 0), now, LocaleID))
	assert.Equal(t, "Besok", FormatDate(at(2024, time.March, 16, 8, 0), now, LocaleID))
	assert.Equal(t, "Kemarin", FormatDate(at(2024, time.March, 14, 8, 0), now, LocaleID))

	assert.Equal(t, "Today", FormatDate(at(2024, time.March, 15, 8, 0), now, LocaleEN))
	assert.Equal(t, "Tomorrow", FormatDate(at(2024, time.March, 16, 8, 0), now, LocaleEN))
	assert.Equal(t, "Yesterday", FormatDate(at(2024, time.March, 14, 8, 0), now, LocaleEN))
}

func TestFormatDateAbsolute(t *testing.T) {
	now := at(2024, time.March, 15, 12, 0)
	instant := at(2024, time.January, 2, 8, 0)

	assert.Equal(t, "02 Januari 2024", FormatDate(instant, now, LocaleID))
	assert.Equal(t, "02 January 2024", FormatDate(instant, now, LocaleEN))
}

func TestFormatDateUnparseableRendersDash(t *testing.T) {
	now := at(2024, time.March, 15, 12, 0)
	assert.Equal(t, "-", FormatDate(time.Time{}, now, LocaleID))
	assert.Equal(t, "-", FormatClock(time.Time{}))
}

func TestFormatClock(t *testing.T) {
	assert.Equal(t, "09:05", FormatClock(at(2024, time.March, 15, 9, 5)))
}

func TestWeekRangeMondayFirst(t *testing.T) {
	// 2024-03-15 is a Friday.
	start, end := WeekRange(at(2024, time.March, 15, 18, 30), LocaleID)
	assert.Equal(t, "2024-03-11", DateKey(start)) // Monday
	assert.Equal(t, "2024-03-17", DateKey(end))   // Sunday
}

func TestWeekRangeSundayFirst(t *testing.T) {
	start, end := WeekRange(at(2024, time.March, 15, 18, 30), LocaleEN)
	assert.Equal(t, "2024-03-10", DateKey(start)) // Sunday
	assert.Equal(t, "2024-03-16", DateKey(end))   // Saturday
}

func TestWeekRangeOnWeekStartDay(t *testing.T) {
	// A Monday stays the start of its own week for the id locale.
	start, end := WeekRange(at(2024, time.March, 11, 0, 0), LocaleID)
	assert.Equal(t, "2024-03-11", DateKey(start))
	assert.Equal(t, "2024-03-17", DateKey(end))

	// For the en locale the same Monday belongs to the week that
	// begins the previous day.
	start, _ = WeekRange(at(2024, time.March, 11, 0, 0), LocaleEN)
	assert.Equal(t, "2024-03-10", DateKey(start))
}
