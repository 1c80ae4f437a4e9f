package app

import (
	"context"

	"github.com/tugasku/tugasku-server/internal/config"
	"github.com/tugasku/tugasku-server/internal/reminder"
)

// StartReminderWorker runs the background delivery loop and returns a
// stop function for the shutdown path.
func StartReminderWorker() func() {
	cfg := config.Global().Reminders

	worker := reminder.NewWorker(
		globalLogger,
		globalPostgresPool,
		cfg.WorkerInterval,
		globalNotificationService.InvalidateUnreadCount,
	)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		defer close(done)
		worker.Run(ctx)
	}()

	globalLogger.Info().
		Dur("interval", cfg.WorkerInterval).
		Msg("started reminder worker")

	return func() {
		cancel()
		<-done
		globalLogger.Info().Msg("stopped reminder worker")
	}
}
