// Package rangefilter selects the tasks whose calendar date falls
// inside an inclusive day-granularity interval, the read-side math
// behind the calendar and history views.
package rangefilter

import (
	"time"

	"github.com/tugasku/tugasku-server/internal/models"
	"github.com/tugasku/tugasku-server/internal/taskclock"
)

type Result struct {
	Matched        []models.Task
	CompletedCount int
	PendingCount   int
}

// FilterByRange returns the tasks whose date key falls on or between
// the calendar dates of start and end, preserving input order, plus
// the completed/pending split of the matched set. Tasks with an
// unparseable (zero) start instant are skipped and counted nowhere;
// upstream data quality is not this function's problem to report.
func FilterByRange(tasks []models.Task, start, end time.Time) Result {
	from := taskclock.DateKey(start)
	to := taskclock.DateKey(end)

	var res Result
	for _, task := range tasks {
		if task.StartTime.IsZero() {
			continue
		}
		key := taskclock.DateKey(task.StartTime)
		if key < from || key > to {
			continue
		}
		res.Matched = append(res.Matched, task)
		if task.Status == models.StatusCompleted {
			res.CompletedCount++
		} else {
			res.PendingCount++
		}
	}
	return res
}

// FilterByDay is FilterByRange over a single calendar day.
func FilterByDay(tasks []models.Task, day time.Time) Result {
	return FilterByRange(tasks, day, day)
}

// FilterByWeek filters over the locale-dependent week containing t.
func FilterByWeek(tasks []models.Task, t time.Time, locale taskclock.Locale) Result {
	start, end := taskclock.WeekRange(t, locale)
	return FilterByRange(tasks, start, end)
}
