package v1

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tugasku/tugasku-server/internal/models"
	"github.com/tugasku/tugasku-server/internal/reminder"
	"github.com/tugasku/tugasku-server/internal/taskclock"
)

func TestReminderRequestToSelection(t *testing.T) {
	t.Run("empty kind means none", func(t *testing.T) {
		sel, err := (&reminderRequest{}).toSelection()
		require.NoError(t, err)
		assert.Equal(t, reminder.None, sel.Kind)
	})

	t.Run("offset minutes map to a duration", func(t *testing.T) {
		sel, err := (&reminderRequest{Kind: "offset", OffsetMinutes: 30}).toSelection()
		require.NoError(t, err)
		assert.Equal(t, reminder.FixedOffset, sel.Kind)
		assert.Equal(t, 30*time.Minute, sel.Offset)
	})

	t.Run("unsupported offset is rejected", func(t *testing.T) {
		_, err := (&reminderRequest{Kind: "offset", OffsetMinutes: 45}).toSelection()
		assert.ErrorIs(t, err, reminder.ErrUnknownOffset)
	})

	t.Run("custom kind parses the wire timestamp", func(t *testing.T) {
		sel, err := (&reminderRequest{Kind: "custom", At: "2024-03-15T09:30:00"}).toSelection()
		require.NoError(t, err)
		assert.Equal(t, reminder.Custom, sel.Kind)
		assert.Equal(t, time.Date(2024, 3, 15, 9, 30, 0, 0, time.Local), sel.At)
	})

	t.Run("unparseable custom timestamp is rejected", func(t *testing.T) {
		_, err := (&reminderRequest{Kind: "custom", At: "tomorrow"}).toSelection()
		assert.Error(t, err)
	})

	t.Run("unknown kind is rejected", func(t *testing.T) {
		_, err := (&reminderRequest{Kind: "snooze"}).toSelection()
		assert.Error(t, err)
	})
}

func TestParseTaskTime(t *testing.T) {
	now := time.Date(2024, 6, 1, 9, 41, 30, 0, time.Local)

	t.Run("full timestamp kept as is", func(t *testing.T) {
		got, ok := parseTaskTime("2024-03-15T14:00:00", now)
		require.True(t, ok)
		assert.Equal(t, time.Date(2024, 3, 15, 14, 0, 0, 0, time.Local), got)
	})

	t.Run("bare date gets the current minute as its clock", func(t *testing.T) {
		got, ok := parseTaskTime("2024-03-15", now)
		require.True(t, ok)
		assert.Equal(t, time.Date(2024, 3, 15, 9, 41, 0, 0, time.Local), got)
	})

	t.Run("malformed input fails", func(t *testing.T) {
		_, ok := parseTaskTime("besok", now)
		assert.False(t, ok)
	})
}

func TestHandleGetTasksOneSidedRange(t *testing.T) {
	gin.SetMode(gin.TestMode)
	h := &handlerImpl{logger: zerolog.Nop()}

	for _, query := range []string{"start=2024-03-01", "end=2024-03-07"} {
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = httptest.NewRequest(http.MethodGet, "/api/v1/tasks?"+query, nil)
		c.Set(userIDCtxKey, "u1")

		h.HandleGetTasks(c)
		assert.Equal(t, http.StatusBadRequest, w.Code, "query %q", query)
	}
}

func TestNewTaskResponse(t *testing.T) {
	start := time.Date(2024, 3, 15, 9, 0, 0, 0, time.Local)
	end := time.Date(2024, 3, 15, 10, 30, 0, 0, time.Local)
	task := &models.Task{
		ID:        "t1",
		UserID:    "u1",
		Title:     "Rapat tim",
		Priority:  models.PriorityHigh,
		Status:    models.StatusPending,
		StartTime: start,
		EndTime:   end,
		Location:  &models.Location{Latitude: -6.2, Longitude: 106.8},
	}

	resp := newTaskResponse(task, taskclock.LocaleID)
	assert.Equal(t, "2024-03-15T09:00:00", resp.StartTime)
	assert.Equal(t, "2024-03-15T10:30:00", resp.EndTime)
	assert.Equal(t, "2024-03-15", resp.DateKey)
	assert.Equal(t, 9, resp.Hour)
	assert.Equal(t, "09:00", resp.StartDisplay)
	assert.Equal(t, "10:30", resp.EndDisplay)
	assert.Equal(t, "-6.2,106.8", resp.Location)
}

func TestNewTaskResponseUnparseableTimes(t *testing.T) {
	task := &models.Task{ID: "t2", UserID: "u1", Title: "Tanpa jadwal"}

	resp := newTaskResponse(task, taskclock.LocaleID)
	assert.Empty(t, resp.StartTime)
	assert.Empty(t, resp.DateKey)
	assert.Equal(t, taskclock.Unparseable, resp.DateDisplay)
	assert.Equal(t, taskclock.Unparseable, resp.StartDisplay)
}
