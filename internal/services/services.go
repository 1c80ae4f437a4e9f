package services

import (
	"context"
	"errors"
	"io"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/tugasku/tugasku-server/internal/models"
	"github.com/tugasku/tugasku-server/internal/reminder"
	"github.com/tugasku/tugasku-server/internal/taskclock"
)

var (
	ErrUserNotFound         = errors.New("user not found")
	ErrUserAlreadyExists    = errors.New("user already exists")
	ErrUserPasswordMismatch = errors.New("user password mismatch")
	ErrSessionNotFound      = errors.New("session not found")
	ErrSessionExpired       = errors.New("session expired")

	ErrTaskNotFound      = errors.New("task not found")
	ErrTaskCompleted     = errors.New("task already completed")
	ErrInvalidTaskStatus = errors.New("invalid task status")

	ErrNotificationNotFound = errors.New("notification not found")

	ErrFileTooLarge = errors.New("file too large")
)

type AuthService interface {
	// Login authenticates the user by email and password.
	//
	// It deletes all sessions with the same user ID and creates
	// a new session and generates a new JWT token pair.
	//
	// It returns ErrUserNotFound if the user with the given
	// email doesn't exist or ErrUserPasswordMismatch if the
	// given password doesn't match the user's password.
	Login(ctx context.Context, params LoginParams) (*LoginResult, error)

	// Refresh updates the session with the given refresh token.
	//
	// It returns ErrSessionNotFound if the session with the
	// given refresh token doesn't exist or ErrSessionExpired
	// if the session is expired.
	Refresh(ctx context.Context, params RefreshParams) (*LoginResult, error)

	// Register a user with the given email and password.
	//
	// It hashes the password, generates a unique ID and creates a
	// session with the given fingerprint and a fresh JWT token pair.
	//
	// It returns ErrUserAlreadyExists if the user
	// with the given email already exists.
	Register(ctx context.Context, params RegisterParams) (*LoginResult, error)

	// Logout invalidates all sessions with the given user ID.
	Logout(ctx context.Context, userID string) error

	// ParseJWTToken parses the given JWT token and returns the registered
	// claims or jwt.ErrTokenExpired if the token is expired.
	ParseJWTToken(token string) (*jwt.RegisteredClaims, error)
}

type SessionService interface {
	GetSessionByID(ctx context.Context, sessionID string) (*models.Session, error)
}

type TaskService interface {
	// CreateTask normalizes and validates the time window, persists
	// the task and, when requested, resolves and schedules a
	// reminder. A reminder that fails to resolve never fails the
	// create; the result carries the warning instead.
	CreateTask(ctx context.Context, params CreateTaskParams) (*CreateTaskResult, error)

	GetTaskByID(ctx context.Context, taskID, userID string) (*models.Task, error)

	// GetTasks lists the user's tasks, optionally narrowed by
	// status, a single day, or an inclusive date range.
	GetTasks(ctx context.Context, params GetTasksParams) ([]models.Task, error)

	// GetWeekSummary reports the week's tasks with their
	// completed/pending split, the numbers behind the history
	// dashboard. The week bounds depend on the locale.
	GetWeekSummary(ctx context.Context, params WeekSummaryParams) (*WeekSummary, error)

	// UpdateTask edits a pending task. Completed tasks are frozen
	// and return ErrTaskCompleted.
	UpdateTask(ctx context.Context, params UpdateTaskParams) (*models.Task, error)

	// CompleteTask flips a pending task to completed. That is the
	// only status transition that exists.
	CompleteTask(ctx context.Context, taskID, userID string) (*models.Task, error)

	// DeleteTask removes the task and attempts to cancel any
	// pending reminder. A failed cancel is logged, not fatal.
	DeleteTask(ctx context.Context, taskID, userID string) error
}

type NotificationService interface {
	GetNotificationsByUser(ctx context.Context, userID string) ([]models.Notification, error)

	// GetUnreadCount is cached per user; the cache is invalidated
	// whenever a notification for that user is written or read.
	GetUnreadCount(ctx context.Context, userID string) (int, error)

	MarkRead(ctx context.Context, notificationID, userID string) error
	MarkAllRead(ctx context.Context, userID string) error

	InvalidateUnreadCount(ctx context.Context, userID string)
}

type UserService interface {
	GetUserByID(ctx context.Context, userID string) (*models.User, error)
	UpdateProfile(ctx context.Context, params UpdateProfileParams) (*models.User, error)
}

type FileService interface {
	// Save stores an uploaded file under a server-assigned name and
	// returns that name for the client to reference as a photo.
	Save(ctx context.Context, originalName string, size int64, src io.Reader) (string, error)

	// Path resolves a stored name to a file path, refusing names
	// that escape the upload directory.
	Path(name string) (string, error)
}

type LoginParams struct {
	Email       string
	Password    string
	Fingerprint string
}

type RegisterParams struct {
	Email       string
	Password    string
	Name        string
	Phone       string
	Fingerprint string
}

type LoginResult struct {
	UserID                string
	SessionID             string
	AccessToken           string
	AccessTokenExpiresAt  time.Time
	RefreshToken          string
	RefreshTokenExpiresAt time.Time
}

type RefreshParams struct {
	RefreshToken string
	Fingerprint  string
}

type CreateTaskParams struct {
	UserID       string
	Title        string
	Description  string
	Priority     string
	StartTime    time.Time
	EndTime      time.Time
	Location     *models.Location
	LocationName string
	Photo        string
	Reminder     reminder.Selection
}

type CreateTaskResult struct {
	Task *models.Task
	// ReminderHandle is set when a reminder was scheduled.
	ReminderHandle string
	// ReminderWarning carries the resolver error message when the
	// selection could not produce a future trigger.
	ReminderWarning string
}

type GetTasksParams struct {
	UserID string
	Status string
	Date   *time.Time
	Start  *time.Time
	End    *time.Time
}

type WeekSummaryParams struct {
	UserID string
	At     time.Time
	Locale taskclock.Locale
}

type WeekSummary struct {
	WeekStart      time.Time
	WeekEnd        time.Time
	Tasks          []models.Task
	CompletedCount int
	PendingCount   int
}

type UpdateTaskParams struct {
	ID           string
	UserID       string
	Title        *string
	Description  *string
	Priority     *string
	StartTime    *time.Time
	EndTime      *time.Time
	Location     *models.Location
	LocationName *string
	Photo        *string
}

type UpdateProfileParams struct {
	UserID    string
	Name      *string
	Phone     *string
	Gender    *string
	BirthDate *time.Time
	Photo     *string
}
