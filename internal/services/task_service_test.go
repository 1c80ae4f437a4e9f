package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tugasku/tugasku-server/internal/models"
	"github.com/tugasku/tugasku-server/internal/reminder"
)

type stubScheduler struct {
	handle string
	err    error
	calls  int
	last   reminder.ScheduleParams
}

func (s *stubScheduler) Schedule(_ context.Context, params reminder.ScheduleParams) (string, error) {
	s.calls++
	s.last = params
	if s.err != nil {
		return "", s.err
	}
	return s.handle, nil
}

func (s *stubScheduler) Cancel(context.Context, string) error { return nil }

func (s *stubScheduler) CancelByTask(context.Context, string) error { return nil }

func newTestTaskService(scheduler reminder.Scheduler) *taskServiceImpl {
	return &taskServiceImpl{
		logger:    zerolog.Nop(),
		scheduler: scheduler,
	}
}

func TestScheduleReminderResolverFailureIsAWarning(t *testing.T) {
	stub := &stubScheduler{}
	s := newTestTaskService(stub)

	task := &models.Task{
		ID:      "t1",
		UserID:  "u1",
		Title:   "Rapat tim",
		EndTime: time.Now().Add(2 * time.Hour),
	}
	sel := reminder.Selection{
		Kind: reminder.Custom,
		At:   time.Now().Add(-time.Hour),
	}

	result := &CreateTaskResult{Task: task}
	s.scheduleReminder(context.Background(), task, sel, result)

	assert.Equal(t, reminder.ErrNotInFuture.Error(), result.ReminderWarning)
	assert.Empty(t, result.ReminderHandle)
	assert.Zero(t, stub.calls, "resolver failure must not reach the scheduler")
}

func TestScheduleReminderSchedulerFailureIsAWarning(t *testing.T) {
	stub := &stubScheduler{err: errors.New("schedules table gone")}
	s := newTestTaskService(stub)

	task := &models.Task{
		ID:      "t1",
		UserID:  "u1",
		Title:   "Rapat tim",
		EndTime: time.Now().Add(2 * time.Hour),
	}
	sel := reminder.Selection{
		Kind:   reminder.FixedOffset,
		Offset: 30 * time.Minute,
	}

	result := &CreateTaskResult{Task: task}
	s.scheduleReminder(context.Background(), task, sel, result)

	assert.NotEmpty(t, result.ReminderWarning)
	assert.Empty(t, result.ReminderHandle)
	assert.Equal(t, 1, stub.calls)
}

func TestScheduleReminderSuccess(t *testing.T) {
	stub := &stubScheduler{handle: "h1"}
	s := newTestTaskService(stub)

	end := time.Now().Add(2 * time.Hour)
	task := &models.Task{
		ID:      "t1",
		UserID:  "u1",
		Title:   "Rapat tim",
		EndTime: end,
	}
	sel := reminder.Selection{
		Kind:   reminder.FixedOffset,
		Offset: 30 * time.Minute,
	}

	result := &CreateTaskResult{Task: task}
	s.scheduleReminder(context.Background(), task, sel, result)

	assert.Empty(t, result.ReminderWarning)
	assert.Equal(t, "h1", result.ReminderHandle)
	assert.Equal(t, "t1", stub.last.TaskID)
	assert.Equal(t, "u1", stub.last.UserID)
	assert.Equal(t, end.Add(-30*time.Minute), stub.last.TriggerAt)
}

func TestScheduleReminderNoneSelection(t *testing.T) {
	stub := &stubScheduler{}
	s := newTestTaskService(stub)

	task := &models.Task{
		ID:      "t1",
		UserID:  "u1",
		EndTime: time.Now().Add(2 * time.Hour),
	}

	result := &CreateTaskResult{Task: task}
	s.scheduleReminder(context.Background(), task, reminder.Selection{Kind: reminder.None}, result)

	assert.Empty(t, result.ReminderWarning)
	assert.Empty(t, result.ReminderHandle)
	assert.Zero(t, stub.calls)
}

func TestTransitionToCompleted(t *testing.T) {
	now := time.Now()

	t.Run("pending flips to completed", func(t *testing.T) {
		task := &models.Task{Status: models.StatusPending}
		require.NoError(t, transitionToCompleted(task, now))
		assert.Equal(t, models.StatusCompleted, task.Status)
		assert.Equal(t, now, task.UpdatedAt)
	})

	t.Run("completed stays completed", func(t *testing.T) {
		updatedAt := now.Add(-time.Hour)
		task := &models.Task{Status: models.StatusCompleted, UpdatedAt: updatedAt}
		assert.ErrorIs(t, transitionToCompleted(task, now), ErrTaskCompleted)
		assert.Equal(t, updatedAt, task.UpdatedAt)
	})
}
