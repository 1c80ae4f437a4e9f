package v1

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/tugasku/tugasku-server/internal/models"
	"github.com/tugasku/tugasku-server/internal/services"
	"github.com/tugasku/tugasku-server/internal/taskclock"
)

type notificationResponse struct {
	ID        string `json:"id"`
	TaskID    string `json:"task_id,omitempty"`
	Title     string `json:"title"`
	Message   string `json:"message"`
	IsRead    bool   `json:"is_read"`
	CreatedAt string `json:"created_at"`
}

func newNotificationResponse(n *models.Notification) notificationResponse {
	return notificationResponse{
		ID:        n.ID,
		TaskID:    n.TaskID,
		Title:     n.Title,
		Message:   n.Message,
		IsRead:    n.IsRead,
		CreatedAt: taskclock.FormatWire(n.CreatedAt),
	}
}

func (h *handlerImpl) HandleGetNotifications(c *gin.Context) {
	userID, ok := h.mustUserID(c)
	if !ok {
		return
	}

	notifications, err := h.notifications.GetNotificationsByUser(c, userID)
	if err != nil {
		h.logger.Error().
			Err(err).
			Msg("failed to get notifications")
		abort(c, newStatusTextError(http.StatusInternalServerError))
		return
	}

	response := make([]notificationResponse, len(notifications))
	for i := range notifications {
		response[i] = newNotificationResponse(&notifications[i])
	}

	c.JSON(http.StatusOK, response)
}

func (h *handlerImpl) HandleGetUnreadCount(c *gin.Context) {
	userID, ok := h.mustUserID(c)
	if !ok {
		return
	}

	count, err := h.notifications.GetUnreadCount(c, userID)
	if err != nil {
		h.logger.Error().
			Err(err).
			Msg("failed to get unread count")
		abort(c, newStatusTextError(http.StatusInternalServerError))
		return
	}

	c.JSON(http.StatusOK, gin.H{"count": count})
}

func (h *handlerImpl) HandleMarkNotificationRead(c *gin.Context) {
	userID, ok := h.mustUserID(c)
	if !ok {
		return
	}

	notificationID := c.Param("id")
	if notificationID == "" {
		abort(c, newBadRequestError("no notification id provided"))
		return
	}

	err := h.notifications.MarkRead(c, notificationID, userID)
	if err != nil {
		if errors.Is(err, services.ErrNotificationNotFound) {
			abort(c, newNotFoundError(services.ErrNotificationNotFound.Error()))
			return
		}

		h.logger.Error().
			Err(err).
			Msg("failed to mark notification read")
		abort(c, newStatusTextError(http.StatusInternalServerError))
		return
	}

	c.Status(http.StatusNoContent)
}

func (h *handlerImpl) HandleMarkAllNotificationsRead(c *gin.Context) {
	userID, ok := h.mustUserID(c)
	if !ok {
		return
	}

	err := h.notifications.MarkAllRead(c, userID)
	if err != nil {
		h.logger.Error().
			Err(err).
			Msg("failed to mark all notifications read")
		abort(c, newStatusTextError(http.StatusInternalServerError))
		return
	}

	c.Status(http.StatusNoContent)
}
