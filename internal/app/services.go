package app

import (
	"github.com/tugasku/tugasku-server/internal/config"
	"github.com/tugasku/tugasku-server/internal/reminder"
	"github.com/tugasku/tugasku-server/internal/services"
	"github.com/tugasku/tugasku-server/internal/taskclock"
)

var (
	globalAuthService         services.AuthService
	globalSessionService      services.SessionService
	globalTaskService         services.TaskService
	globalNotificationService services.NotificationService
	globalUserService         services.UserService
	globalFileService         services.FileService
)

func MustInitServices() {
	cfg := config.Global()

	rollover, ok := taskclock.ParseRolloverPolicy(cfg.Reminders.EndRollover)
	if !ok {
		globalLogger.Error().
			Str("policy", cfg.Reminders.EndRollover).
			Msg("unknown end rollover policy")
		panic("unknown end rollover policy: " + cfg.Reminders.EndRollover)
	}

	globalAuthService = services.NewAuthService(
		globalLogger,
		globalPostgresPool,
		cfg.JWT.Issuer,
		[]byte(cfg.JWT.SigningKey),
		cfg.JWT.AccessTokenTTL,
		cfg.JWT.RefreshTokenTTL,
	)
	globalSessionService = services.NewSessionService(globalLogger, globalPostgresPool)
	globalTaskService = services.NewTaskService(
		globalLogger,
		globalPostgresPool,
		reminder.NewPostgresScheduler(globalLogger, globalPostgresPool),
		rollover,
	)
	globalNotificationService = services.NewNotificationService(
		globalLogger,
		globalPostgresPool,
		globalRedisClient,
	)
	globalUserService = services.NewUserService(globalLogger, globalPostgresPool)
	globalFileService = services.NewFileService(
		globalLogger,
		cfg.Uploads.Dir,
		cfg.Uploads.MaxSizeMB,
	)

	globalLogger.Info().Msg("initialized services")
}
