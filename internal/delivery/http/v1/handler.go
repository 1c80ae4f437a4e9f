package v1

import (
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/tugasku/tugasku-server/internal/services"
	"github.com/tugasku/tugasku-server/internal/taskclock"
)

type Handler interface {
	HandleLogin(c *gin.Context)
	HandleRefresh(c *gin.Context)
	HandleRegister(c *gin.Context)
	HandleLogout(c *gin.Context)
	HandleAuthMiddleware(c *gin.Context)

	HandleCreateTask(c *gin.Context)
	HandleGetTasks(c *gin.Context)
	HandleGetTask(c *gin.Context)
	HandleGetWeekSummary(c *gin.Context)
	HandleUpdateTask(c *gin.Context)
	HandleCompleteTask(c *gin.Context)
	HandleDeleteTask(c *gin.Context)

	HandleGetNotifications(c *gin.Context)
	HandleGetUnreadCount(c *gin.Context)
	HandleMarkNotificationRead(c *gin.Context)
	HandleMarkAllNotificationsRead(c *gin.Context)

	HandleUploadFile(c *gin.Context)
	HandleGetFile(c *gin.Context)

	HandleGetProfile(c *gin.Context)
	HandleUpdateProfile(c *gin.Context)
}

type handlerImpl struct {
	logger        zerolog.Logger
	auth          services.AuthService
	sessions      services.SessionService
	tasks         services.TaskService
	notifications services.NotificationService
	users         services.UserService
	files         services.FileService
}

func New(
	logger zerolog.Logger,
	authService services.AuthService,
	sessionService services.SessionService,
	taskService services.TaskService,
	notificationService services.NotificationService,
	userService services.UserService,
	fileService services.FileService,
) Handler {
	return &handlerImpl{
		logger:        logger,
		auth:          authService,
		sessions:      sessionService,
		tasks:         taskService,
		notifications: notificationService,
		users:         userService,
		files:         fileService,
	}
}

// localeFromQuery reads the display locale, falling back to the
// Indonesian default.
func localeFromQuery(c *gin.Context) taskclock.Locale {
	switch c.Query("locale") {
	case string(taskclock.LocaleEN):
		return taskclock.LocaleEN
	default:
		return taskclock.DefaultLocale
	}
}
