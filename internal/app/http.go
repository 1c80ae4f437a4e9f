package app

import (
	"context"
	"errors"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"

	"github.com/tugasku/tugasku-server/internal/config"
	v1 "github.com/tugasku/tugasku-server/internal/delivery/http/v1"
)

func MustListenAndServeHTTP() {
	cfg := config.Global()
	if cfg.Env != config.EnvLocal {
		gin.SetMode(gin.ReleaseMode)
	}

	httpCfg := cfg.HTTP

	router := gin.New()
	router.Use(gin.Logger())
	router.Use(gin.Recovery())
	registerRoutes(router)

	server := &http.Server{
		Addr:    net.JoinHostPort(httpCfg.Host, httpCfg.Port),
		Handler: router,
	}

	go func() {
		globalLogger.Info().
			Str("host", httpCfg.Host).
			Str("port", httpCfg.Port).
			Msg("setting up http server")
		err := server.ListenAndServe()
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			globalLogger.Error().
				Err(err).
				Msg("failed to listen and serve http")
			panic(err)
		}
	}()

	// Wait for the interrupt signal to gracefully
	// shut down the server with a timeout of 5 seconds.
	quit := make(chan os.Signal, 1)
	// kill (no params) by default sends syscall.SIGTERM
	// kill -2 is syscall.SIGINT
	// kill -9 is syscall.SIGKILL but can't be caught, so don't need to add it
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	globalLogger.Info().
		Msg("shutting down http server")

	ctx, cancel := context.WithTimeout(context.Background(), httpCfg.ShutdownTimeout)
	defer cancel()

	err := server.Shutdown(ctx)
	if err != nil {
		globalLogger.Error().
			Err(err).
			Msg("failed to shutdown http server")
		panic(err)
	}
	globalLogger.Info().Msg("shut down http server")
}

func registerRoutes(router gin.IRouter) {
	v1Handler := v1.New(
		globalLogger,
		globalAuthService,
		globalSessionService,
		globalTaskService,
		globalNotificationService,
		globalUserService,
		globalFileService,
	)
	router = router.Group("/api/v1")

	authRouter := router.Group("/auth")
	authRouter.POST("/login", v1Handler.HandleLogin)
	authRouter.POST("/refresh", v1Handler.HandleRefresh)
	authRouter.POST("/register", v1Handler.HandleRegister)
	authRouter.POST("/logout", v1Handler.HandleAuthMiddleware, v1Handler.HandleLogout)

	tasksRouter := router.Group("/tasks", v1Handler.HandleAuthMiddleware)
	tasksRouter.POST("", v1Handler.HandleCreateTask)
	tasksRouter.GET("", v1Handler.HandleGetTasks)
	tasksRouter.GET("/summary", v1Handler.HandleGetWeekSummary)
	tasksRouter.GET("/:id", v1Handler.HandleGetTask)
	tasksRouter.PUT("/:id", v1Handler.HandleUpdateTask)
	tasksRouter.PATCH("/:id/status", v1Handler.HandleCompleteTask)
	tasksRouter.DELETE("/:id", v1Handler.HandleDeleteTask)

	notificationsRouter := router.Group("/notifications", v1Handler.HandleAuthMiddleware)
	notificationsRouter.GET("", v1Handler.HandleGetNotifications)
	notificationsRouter.GET("/unread-count", v1Handler.HandleGetUnreadCount)
	notificationsRouter.PUT("/:id/read", v1Handler.HandleMarkNotificationRead)
	notificationsRouter.PUT("/read-all", v1Handler.HandleMarkAllNotificationsRead)

	filesRouter := router.Group("/files")
	filesRouter.POST("", v1Handler.HandleAuthMiddleware, v1Handler.HandleUploadFile)
	filesRouter.GET("/:name", v1Handler.HandleGetFile)

	usersRouter := router.Group("/users", v1Handler.HandleAuthMiddleware)
	usersRouter.GET("/me", v1Handler.HandleGetProfile)
	usersRouter.PUT("/me", v1Handler.HandleUpdateProfile)
}
