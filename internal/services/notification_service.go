package services

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/tugasku/tugasku-server/internal/models"
)

const unreadCountCacheTTL = 5 * time.Minute

type notificationServiceImpl struct {
	logger zerolog.Logger
	pgPool *pgxpool.Pool
	cache  *redis.Client
}

func NewNotificationService(
	logger zerolog.Logger,
	pgPool *pgxpool.Pool,
	cache *redis.Client,
) NotificationService {
	return &notificationServiceImpl{
		logger: logger,
		pgPool: pgPool,
		cache:  cache,
	}
}

func unreadCountCacheKey(userID string) string {
	return "notifications:unread:" + userID
}

func (s *notificationServiceImpl) GetNotificationsByUser(ctx context.Context, userID string) ([]models.Notification, error) {
	const selectNotificationsByUserQuery = `
SELECT id,
       task_id,
       title,
       message,
       is_read,
       created_at
FROM notifications
WHERE user_id = $1
ORDER BY created_at DESC
`
	rows, err := s.pgPool.Query(
		ctx,
		selectNotificationsByUserQuery,
		userID,
	)
	if err != nil {
		s.logger.Error().
			Err(err).
			Str("user_id", userID).
			Msg("failed to select notifications by user id")
		return nil, err
	}
	defer rows.Close()

	var notifications []models.Notification
	for rows.Next() {
		notification := models.Notification{UserID: userID}
		err = rows.Scan(
			&notification.ID,
			&notification.TaskID,
			&notification.Title,
			&notification.Message,
			&notification.IsRead,
			&notification.CreatedAt,
		)
		if err != nil {
			s.logger.Error().
				Err(err).
				Msg("failed to scan notification")
			return nil, err
		}
		notifications = append(notifications, notification)
	}

	err = rows.Err()
	if err != nil {
		s.logger.Error().
			Err(err).
			Msg("failed to iterate over rows")
		return nil, err
	}
	s.logger.Debug().
		Int("count", len(notifications)).
		Str("user_id", userID).
		Msg("selected notifications by user id")

	return notifications, nil
}

func (s *notificationServiceImpl) GetUnreadCount(ctx context.Context, userID string) (int, error) {
	key := unreadCountCacheKey(userID)

	cached, err := s.cache.Get(ctx, key).Result()
	if err == nil {
		count, parseErr := strconv.Atoi(cached)
		if parseErr == nil {
			s.logger.Debug().
				Str("user_id", userID).
				Int("count", count).
				Msg("unread count cache hit")
			return count, nil
		}
	} else if !errors.Is(err, redis.Nil) {
		// Cache trouble is not worth failing the request over.
		s.logger.Warn().
			Err(err).
			Msg("failed to read unread count cache")
	}

	const countUnreadQuery = `
SELECT COUNT(*)
FROM notifications
WHERE user_id = $1 AND is_read = FALSE
`
	var count int
	err = s.pgPool.QueryRow(
		ctx,
		countUnreadQuery,
		userID,
	).Scan(&count)
	if err != nil {
		s.logger.Error().
			Err(err).
			Str("user_id", userID).
			Msg("failed to count unread notifications")
		return 0, err
	}

	err = s.cache.Set(ctx, key, strconv.Itoa(count), unreadCountCacheTTL).Err()
	if err != nil {
		s.logger.Warn().
			Err(err).
			Msg("failed to write unread count cache")
	}

	return count, nil
}

func (s *notificationServiceImpl) MarkRead(ctx context.Context, notificationID, userID string) error {
	const markReadQuery = `
UPDATE notifications
SET is_read = TRUE
WHERE id = $1 AND user_id = $2
`
	tag, err := s.pgPool.Exec(
		ctx,
		markReadQuery,
		notificationID,
		userID,
	)
	if err != nil {
		s.logger.Error().
			Err(err).
			Str("notification_id", notificationID).
			Msg("failed to mark notification read")
		return err
	}
	if tag.RowsAffected() == 0 {
		s.logger.Warn().
			Str("notification_id", notificationID).
			Str("user_id", userID).
			Msg("notification not found")
		return ErrNotificationNotFound
	}

	s.InvalidateUnreadCount(ctx, userID)

	s.logger.Info().
		Str("notification_id", notificationID).
		Str("user_id", userID).
		Msg("marked notification read")
	return nil
}

func (s *notificationServiceImpl) MarkAllRead(ctx context.Context, userID string) error {
	const markAllReadQuery = `
UPDATE notifications
SET is_read = TRUE
WHERE user_id = $1 AND is_read = FALSE
`
	tag, err := s.pgPool.Exec(
		ctx,
		markAllReadQuery,
		userID,
	)
	if err != nil {
		s.logger.Error().
			Err(err).
			Str("user_id", userID).
			Msg("failed to mark all notifications read")
		return err
	}

	s.InvalidateUnreadCount(ctx, userID)

	s.logger.Info().
		Str("user_id", userID).
		Int64("affected", tag.RowsAffected()).
		Msg("marked all notifications read")
	return nil
}

func (s *notificationServiceImpl) InvalidateUnreadCount(ctx context.Context, userID string) {
	err := s.cache.Del(ctx, unreadCountCacheKey(userID)).Err()
	if err != nil {
		s.logger.Warn().
			Err(err).
			Str("user_id", userID).
			Msg("failed to invalidate unread count cache")
	}
}
