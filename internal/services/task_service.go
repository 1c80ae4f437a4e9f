package services

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"

	"github.com/tugasku/tugasku-server/internal/models"
	"github.com/tugasku/tugasku-server/internal/rangefilter"
	"github.com/tugasku/tugasku-server/internal/reminder"
	"github.com/tugasku/tugasku-server/internal/taskclock"
)

type taskServiceImpl struct {
	logger    zerolog.Logger
	pgPool    *pgxpool.Pool
	scheduler reminder.Scheduler
	rollover  taskclock.RolloverPolicy
}

func NewTaskService(
	logger zerolog.Logger,
	pgPool *pgxpool.Pool,
	scheduler reminder.Scheduler,
	rollover taskclock.RolloverPolicy,
) TaskService {
	return &taskServiceImpl{
		logger:    logger,
		pgPool:    pgPool,
		scheduler: scheduler,
		rollover:  rollover,
	}
}

func (s *taskServiceImpl) CreateTask(ctx context.Context, params CreateTaskParams) (*CreateTaskResult, error) {
	start, end, err := taskclock.Normalize(params.StartTime, params.EndTime, s.rollover)
	if err != nil {
		s.logger.Error().
			Err(err).
			Time("start", params.StartTime).
			Time("end", params.EndTime).
			Msg("failed to normalize time window")
		return nil, &models.ValidationError{Field: "end_time", Message: err.Error()}
	}

	now := time.Now()
	task := &models.Task{
		UserID:       params.UserID,
		Title:        params.Title,
		Description:  params.Description,
		Priority:     params.Priority,
		Status:       models.StatusPending,
		StartTime:    start,
		EndTime:      end,
		Location:     params.Location,
		LocationName: params.LocationName,
		Photo:        params.Photo,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if task.Priority == "" {
		task.Priority = models.PriorityMedium
	}

	err = task.Validate()
	if err != nil {
		s.logger.Error().
			Err(err).
			Msg("task validation failed")
		return nil, err
	}

	taskUUID, err := uuid.NewV7()
	if err != nil {
		s.logger.Error().
			Err(err).
			Msg("failed to generate task uuid")
		return nil, err
	}
	task.ID = taskUUID.String()

	var location *string
	if task.Location != nil {
		str := task.Location.String()
		location = &str
	}

	const insertTaskQuery = `
INSERT INTO tasks (id,
                   user_id,
                   title,
                   description,
                   priority,
                   status,
                   start_time,
                   end_time,
                   location,
                   location_name,
                   photo,
                   created_at,
                   updated_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
`
	_, err = s.pgPool.Exec(
		ctx,
		insertTaskQuery,
		task.ID,
		task.UserID,
		task.Title,
		task.Description,
		task.Priority,
		task.Status,
		task.StartTime,
		task.EndTime,
		location,
		task.LocationName,
		task.Photo,
		task.CreatedAt,
		task.UpdatedAt,
	)
	if err != nil {
		s.logger.Error().
			Err(err).
			Msg("failed to insert task")
		return nil, err
	}
	s.logger.Debug().
		Str("task_id", task.ID).
		Msg("inserted task")

	result := &CreateTaskResult{Task: task}
	s.scheduleReminder(ctx, task, params.Reminder, result)

	s.logger.Info().
		Str("task_id", task.ID).
		Str("user_id", task.UserID).
		Msg("created task")
	return result, nil
}

// scheduleReminder resolves the selection and hands it to the
// scheduler. Any failure lands in the result as a warning: a reminder
// problem must never undo an already-saved task.
func (s *taskServiceImpl) scheduleReminder(
	ctx context.Context,
	task *models.Task,
	sel reminder.Selection,
	result *CreateTaskResult,
) {
	trigger, err := reminder.Resolve(task.EndTime, sel, time.Now())
	if err != nil {
		s.logger.Warn().
			Err(err).
			Str("task_id", task.ID).
			Msg("failed to resolve reminder")
		result.ReminderWarning = err.Error()
		return
	}
	if trigger.IsZero() {
		return
	}

	handle, err := s.scheduler.Schedule(ctx, reminder.ScheduleParams{
		TaskID:    task.ID,
		UserID:    task.UserID,
		Title:     "Pengingat: " + task.Title,
		Body:      "Tugas berakhir pada " + taskclock.FormatWire(task.EndTime),
		TriggerAt: trigger,
	})
	if err != nil {
		s.logger.Warn().
			Err(err).
			Str("task_id", task.ID).
			Msg("failed to schedule reminder")
		result.ReminderWarning = "failed to schedule reminder"
		return
	}
	result.ReminderHandle = handle
}

const selectTaskColumns = `
SELECT id,
       user_id,
       title,
       description,
       priority,
       status,
       start_time,
       end_time,
       location,
       location_name,
       photo,
       created_at,
       updated_at
FROM tasks
`

func scanTask(row pgx.Row) (*models.Task, error) {
	var (
		task     models.Task
		start    *time.Time
		end      *time.Time
		location *string
	)
	err := row.Scan(
		&task.ID,
		&task.UserID,
		&task.Title,
		&task.Description,
		&task.Priority,
		&task.Status,
		&start,
		&end,
		&location,
		&task.LocationName,
		&task.Photo,
		&task.CreatedAt,
		&task.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	// Legacy rows can miss timestamps or carry garbage locations;
	// both degrade to the zero value instead of failing the read.
	if start != nil {
		task.StartTime = *start
	}
	if end != nil {
		task.EndTime = *end
	}
	if location != nil {
		loc, err := models.ParseLocation(*location)
		if err == nil {
			task.Location = loc
		}
	}
	return &task, nil
}

func (s *taskServiceImpl) GetTaskByID(ctx context.Context, taskID, userID string) (*models.Task, error) {
	const selectTaskByIDQuery = selectTaskColumns + `
WHERE id = $1 AND user_id = $2
`
	task, err := scanTask(s.pgPool.QueryRow(
		ctx,
		selectTaskByIDQuery,
		taskID,
		userID,
	))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			s.logger.Warn().
				Str("task_id", taskID).
				Str("user_id", userID).
				Msg("task not found")
			return nil, ErrTaskNotFound
		}

		s.logger.Error().
			Err(err).
			Str("task_id", taskID).
			Msg("failed to select task by id")
		return nil, err
	}

	return task, nil
}

func (s *taskServiceImpl) GetTasks(ctx context.Context, params GetTasksParams) ([]models.Task, error) {
	if params.Status != "" && !models.ValidStatus(params.Status) {
		return nil, ErrInvalidTaskStatus
	}

	const selectTasksByUserQuery = selectTaskColumns + `
WHERE user_id = $1 AND ($2 = '' OR status = $2)
ORDER BY start_time
`
	rows, err := s.pgPool.Query(
		ctx,
		selectTasksByUserQuery,
		params.UserID,
		params.Status,
	)
	if err != nil {
		s.logger.Error().
			Err(err).
			Str("user_id", params.UserID).
			Msg("failed to select tasks by user id")
		return nil, err
	}
	defer rows.Close()

	var tasks []models.Task
	for rows.Next() {
		task, err := scanTask(rows)
		if err != nil {
			s.logger.Error().
				Err(err).
				Msg("failed to scan task")
			return nil, err
		}
		tasks = append(tasks, *task)
	}

	err = rows.Err()
	if err != nil {
		s.logger.Error().
			Err(err).
			Msg("failed to iterate over rows")
		return nil, err
	}
	s.logger.Debug().
		Int("count", len(tasks)).
		Str("user_id", params.UserID).
		Msg("selected tasks by user id")

	switch {
	case params.Date != nil:
		tasks = rangefilter.FilterByDay(tasks, *params.Date).Matched
	case params.Start != nil && params.End != nil:
		tasks = rangefilter.FilterByRange(tasks, *params.Start, *params.End).Matched
	}

	return tasks, nil
}

func (s *taskServiceImpl) GetWeekSummary(ctx context.Context, params WeekSummaryParams) (*WeekSummary, error) {
	tasks, err := s.GetTasks(ctx, GetTasksParams{UserID: params.UserID})
	if err != nil {
		return nil, err
	}

	start, end := taskclock.WeekRange(params.At, params.Locale)
	res := rangefilter.FilterByRange(tasks, start, end)

	s.logger.Debug().
		Str("user_id", params.UserID).
		Str("week_start", taskclock.DateKey(start)).
		Int("matched", len(res.Matched)).
		Msg("built week summary")

	return &WeekSummary{
		WeekStart:      start,
		WeekEnd:        end,
		Tasks:          res.Matched,
		CompletedCount: res.CompletedCount,
		PendingCount:   res.PendingCount,
	}, nil
}

func (s *taskServiceImpl) UpdateTask(ctx context.Context, params UpdateTaskParams) (*models.Task, error) {
	task, err := s.GetTaskByID(ctx, params.ID, params.UserID)
	if err != nil {
		return nil, err
	}
	if task.Status == models.StatusCompleted {
		s.logger.Warn().
			Str("task_id", task.ID).
			Msg("completed task cannot be edited")
		return nil, ErrTaskCompleted
	}

	if params.Title != nil {
		task.Title = *params.Title
	}
	if params.Description != nil {
		task.Description = *params.Description
	}
	if params.Priority != nil {
		task.Priority = *params.Priority
	}

	if params.StartTime != nil || params.EndTime != nil {
		start, end := task.StartTime, task.EndTime
		if params.StartTime != nil {
			start = *params.StartTime
		}
		if params.EndTime != nil {
			end = *params.EndTime
		}
		start, end, err = taskclock.Normalize(start, end, s.rollover)
		if err != nil {
			return nil, &models.ValidationError{Field: "end_time", Message: err.Error()}
		}
		task.StartTime, task.EndTime = start, end
	}

	if params.Location != nil {
		task.Location = params.Location
	}
	if params.LocationName != nil {
		task.LocationName = *params.LocationName
	}
	if params.Photo != nil {
		task.Photo = *params.Photo
	}

	err = task.Validate()
	if err != nil {
		s.logger.Error().
			Err(err).
			Str("task_id", task.ID).
			Msg("task validation failed")
		return nil, err
	}

	task.UpdatedAt = time.Now()

	var location *string
	if task.Location != nil {
		str := task.Location.String()
		location = &str
	}

	const updateTaskQuery = `
UPDATE tasks
SET title = $1,
    description = $2,
    priority = $3,
    start_time = $4,
    end_time = $5,
    location = $6,
    location_name = $7,
    photo = $8,
    updated_at = $9
WHERE id = $10 AND user_id = $11
`
	_, err = s.pgPool.Exec(
		ctx,
		updateTaskQuery,
		task.Title,
		task.Description,
		task.Priority,
		task.StartTime,
		task.EndTime,
		location,
		task.LocationName,
		task.Photo,
		task.UpdatedAt,
		task.ID,
		task.UserID,
	)
	if err != nil {
		s.logger.Error().
			Err(err).
			Str("task_id", task.ID).
			Msg("failed to update task")
		return nil, err
	}
	s.logger.Info().
		Str("task_id", task.ID).
		Str("user_id", task.UserID).
		Msg("updated task")
	return task, nil
}

// transitionToCompleted flips a pending task to completed, the only
// status transition that exists. An already-completed task stays
// untouched.
func transitionToCompleted(task *models.Task, now time.Time) error {
	if task.Status == models.StatusCompleted {
		return ErrTaskCompleted
	}
	task.Status = models.StatusCompleted
	task.UpdatedAt = now
	return nil
}

func (s *taskServiceImpl) CompleteTask(ctx context.Context, taskID, userID string) (*models.Task, error) {
	task, err := s.GetTaskByID(ctx, taskID, userID)
	if err != nil {
		return nil, err
	}

	err = transitionToCompleted(task, time.Now())
	if err != nil {
		return nil, err
	}

	const completeTaskQuery = `
UPDATE tasks
SET status = $1,
    updated_at = $2
WHERE id = $3 AND user_id = $4 AND status = $5
`
	tag, err := s.pgPool.Exec(
		ctx,
		completeTaskQuery,
		task.Status,
		task.UpdatedAt,
		task.ID,
		task.UserID,
		models.StatusPending,
	)
	if err != nil {
		s.logger.Error().
			Err(err).
			Str("task_id", task.ID).
			Msg("failed to complete task")
		return nil, err
	}
	if tag.RowsAffected() == 0 {
		return nil, ErrTaskCompleted
	}
	s.logger.Info().
		Str("task_id", task.ID).
		Str("user_id", task.UserID).
		Msg("completed task")
	return task, nil
}

func (s *taskServiceImpl) DeleteTask(ctx context.Context, taskID, userID string) error {
	const deleteTaskQuery = `
DELETE FROM tasks
WHERE id = $1 AND user_id = $2
`
	tag, err := s.pgPool.Exec(
		ctx,
		deleteTaskQuery,
		taskID,
		userID,
	)
	if err != nil {
		s.logger.Error().
			Err(err).
			Str("task_id", taskID).
			Msg("failed to delete task")
		return err
	}
	if tag.RowsAffected() == 0 {
		s.logger.Warn().
			Str("task_id", taskID).
			Str("user_id", userID).
			Msg("task not found")
		return ErrTaskNotFound
	}

	// Best effort: a leftover schedule only produces a stale
	// notification, it must not fail the delete.
	err = s.scheduler.CancelByTask(ctx, taskID)
	if err != nil {
		s.logger.Warn().
			Err(err).
			Str("task_id", taskID).
			Msg("failed to cancel pending reminder")
	}

	s.logger.Info().
		Str("task_id", taskID).
		Str("user_id", userID).
		Msg("deleted task")
	return nil
}
