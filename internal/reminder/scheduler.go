package reminder

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
)

var ErrScheduleNotFound = errors.New("schedule not found")

// Scheduler is the local-notification collaborator: it accepts a
// payload plus a trigger instant and hands back an opaque handle that
// can cancel the delivery later.
type Scheduler interface {
	Schedule(ctx context.Context, params ScheduleParams) (string, error)
	Cancel(ctx context.Context, handle string) error
	// CancelByTask drops every undelivered schedule for a task. Used
	// when a task is deleted before its reminder fires.
	CancelByTask(ctx context.Context, taskID string) error
}

type ScheduleParams struct {
	TaskID    string
	UserID    string
	Title     string
	Body      string
	TriggerAt time.Time
}

type pgScheduler struct {
	logger zerolog.Logger
	pgPool *pgxpool.Pool
}

func NewPostgresScheduler(logger zerolog.Logger, pgPool *pgxpool.Pool) Scheduler {
	return &pgScheduler{
		logger: logger,
		pgPool: pgPool,
	}
}

func (s *pgScheduler) Schedule(ctx context.Context, params ScheduleParams) (string, error) {
	handleUUID, err := uuid.NewV7()
	if err != nil {
		s.logger.Error().
			Err(err).
			Msg("failed to generate schedule uuid")
		return "", err
	}
	handle := handleUUID.String()

	const insertScheduleQuery = `
INSERT INTO reminder_schedules (id,
                                task_id,
                                user_id,
                                title,
                                body,
                                trigger_at,
                                created_at)
VALUES ($1, $2, $3, $4, $5, $6, $7)
`
	_, err = s.pgPool.Exec(
		ctx,
		insertScheduleQuery,
		handle,
		params.TaskID,
		params.UserID,
		params.Title,
		params.Body,
		params.TriggerAt,
		time.Now(),
	)
	if err != nil {
		s.logger.Error().
			Err(err).
			Str("task_id", params.TaskID).
			Msg("failed to insert schedule")
		return "", err
	}
	s.logger.Debug().
		Str("handle", handle).
		Str("task_id", params.TaskID).
		Time("trigger_at", params.TriggerAt).
		Msg("scheduled reminder")

	return handle, nil
}

func (s *pgScheduler) Cancel(ctx context.Context, handle string) error {
	const deleteScheduleQuery = `
DELETE FROM reminder_schedules
WHERE id = $1 AND delivered_at IS NULL
`
	tag, err := s.pgPool.Exec(
		ctx,
		deleteScheduleQuery,
		handle,
	)
	if err != nil {
		s.logger.Error().
			Err(err).
			Str("handle", handle).
			Msg("failed to cancel schedule")
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrScheduleNotFound
	}
	s.logger.Debug().
		Str("handle", handle).
		Msg("cancelled schedule")

	return nil
}

func (s *pgScheduler) CancelByTask(ctx context.Context, taskID string) error {
	const deleteSchedulesByTaskQuery = `
DELETE FROM reminder_schedules
WHERE task_id = $1 AND delivered_at IS NULL
`
	tag, err := s.pgPool.Exec(
		ctx,
		deleteSchedulesByTaskQuery,
		taskID,
	)
	if err != nil {
		s.logger.Error().
			Err(err).
			Str("task_id", taskID).
			Msg("failed to cancel schedules by task id")
		return err
	}
	s.logger.Debug().
		Str("task_id", taskID).
		Int64("affected", tag.RowsAffected()).
		Msg("cancelled schedules by task id")

	return nil
}
