package reminder

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
)

// Worker periodically delivers due schedules by materializing them as
// notification rows. Delivery and the schedule update happen in one
// transaction so a crash never double-delivers.
type Worker struct {
	logger   zerolog.Logger
	pgPool   *pgxpool.Pool
	interval time.Duration

	// onDelivered is invoked once per affected user after a
	// successful delivery pass, so caches keyed by user can be
	// invalidated. May be nil.
	onDelivered func(ctx context.Context, userID string)
}

func NewWorker(
	logger zerolog.Logger,
	pgPool *pgxpool.Pool,
	interval time.Duration,
	onDelivered func(ctx context.Context, userID string),
) *Worker {
	return &Worker{
		logger:      logger,
		pgPool:      pgPool,
		interval:    interval,
		onDelivered: onDelivered,
	}
}

// Run blocks until ctx is cancelled.
func (w *Worker) Run(ctx context.Context) {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	w.logger.Info().
		Dur("interval", w.interval).
		Msg("reminder worker started")

	for {
		select {
		case <-ctx.Done():
			w.logger.Info().Msg("reminder worker stopped")
			return
		case <-ticker.C:
			err := w.deliverDue(ctx)
			if err != nil {
				w.logger.Error().
					Err(err).
					Msg("failed to deliver due reminders")
			}
		}
	}
}

func (w *Worker) deliverDue(ctx context.Context) error {
	now := time.Now()

	tx, err := w.pgPool.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	const markDeliveredQuery = `
UPDATE reminder_schedules
SET delivered_at = $1
WHERE trigger_at <= $1 AND delivered_at IS NULL
RETURNING id, task_id, user_id, title, body
`
	rows, err := tx.Query(
		ctx,
		markDeliveredQuery,
		now,
	)
	if err != nil {
		return err
	}

	type due struct {
		handle string
		taskID string
		userID string
		title  string
		body   string
	}
	var delivered []due
	for rows.Next() {
		var d due
		err = rows.Scan(
			&d.handle,
			&d.taskID,
			&d.userID,
			&d.title,
			&d.body,
		)
		if err != nil {
			rows.Close()
			return err
		}
		delivered = append(delivered, d)
	}
	rows.Close()

	err = rows.Err()
	if err != nil {
		return err
	}

	if len(delivered) == 0 {
		return tx.Commit(ctx)
	}

	const insertNotificationQuery = `
INSERT INTO notifications (id, user_id, task_id, title, message, is_read, created_at)
VALUES ($1, $2, $3, $4, $5, FALSE, $6)
`
	users := make(map[string]struct{}, len(delivered))
	for _, d := range delivered {
		notificationUUID, err := uuid.NewV7()
		if err != nil {
			return err
		}

		_, err = tx.Exec(
			ctx,
			insertNotificationQuery,
			notificationUUID.String(),
			d.userID,
			d.taskID,
			d.title,
			d.body,
			now,
		)
		if err != nil {
			return err
		}
		users[d.userID] = struct{}{}

		w.logger.Debug().
			Str("handle", d.handle).
			Str("task_id", d.taskID).
			Msg("delivered reminder")
	}

	err = tx.Commit(ctx)
	if err != nil {
		return err
	}

	if w.onDelivered != nil {
		for userID := range users {
			w.onDelivered(ctx, userID)
		}
	}

	w.logger.Info().
		Int("count", len(delivered)).
		Msg("delivered due reminders")
	return nil
}
