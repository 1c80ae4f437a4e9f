package v1

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/tugasku/tugasku-server/internal/models"
	"github.com/tugasku/tugasku-server/internal/reminder"
	"github.com/tugasku/tugasku-server/internal/services"
	"github.com/tugasku/tugasku-server/internal/taskclock"
)

type taskResponse struct {
	ID           string `json:"id"`
	Title        string `json:"title"`
	Description  string `json:"description"`
	Priority     string `json:"priority"`
	Status       string `json:"status"`
	StartTime    string `json:"start_time"`
	EndTime      string `json:"end_time"`
	DateKey      string `json:"date_key,omitempty"`
	Hour         int    `json:"hour"`
	DateDisplay  string `json:"date_display"`
	StartDisplay string `json:"start_display"`
	EndDisplay   string `json:"end_display"`
	Location     string `json:"location,omitempty"`
	LocationName string `json:"location_name,omitempty"`
	Photo        string `json:"photo,omitempty"`
	UserID       string `json:"user_id"`
}

func newTaskResponse(task *models.Task, locale taskclock.Locale) taskResponse {
	now := time.Now()
	resp := taskResponse{
		ID:           task.ID,
		Title:        task.Title,
		Description:  task.Description,
		Priority:     task.Priority,
		Status:       task.Status,
		StartTime:    taskclock.FormatWire(task.StartTime),
		EndTime:      taskclock.FormatWire(task.EndTime),
		DateDisplay:  taskclock.FormatDate(task.StartTime, now, locale),
		StartDisplay: taskclock.FormatClock(task.StartTime),
		EndDisplay:   taskclock.FormatClock(task.EndTime),
		LocationName: task.LocationName,
		Photo:        task.Photo,
		UserID:       task.UserID,
	}
	if !task.StartTime.IsZero() {
		resp.DateKey = taskclock.DateKey(task.StartTime)
		resp.Hour = taskclock.HourBucket(task.StartTime)
	}
	if task.Location != nil {
		resp.Location = task.Location.String()
	}
	return resp
}

type reminderRequest struct {
	// Kind is "none", "offset" or "custom".
	Kind          string `json:"kind"`
	OffsetMinutes int    `json:"offset_minutes,omitempty"`
	At            string `json:"at,omitempty"`
}

func (r *reminderRequest) toSelection() (reminder.Selection, error) {
	switch r.Kind {
	case "", "none":
		return reminder.Selection{Kind: reminder.None}, nil
	case "offset":
		offset, ok := reminder.OffsetFromMinutes(r.OffsetMinutes)
		if !ok {
			return reminder.Selection{}, reminder.ErrUnknownOffset
		}
		return reminder.Selection{Kind: reminder.FixedOffset, Offset: offset}, nil
	case "custom":
		at, ok := taskclock.ParseWire(r.At)
		if !ok {
			return reminder.Selection{}, errors.New("unparseable reminder time")
		}
		return reminder.Selection{Kind: reminder.Custom, At: at}, nil
	}
	return reminder.Selection{}, errors.New("unknown reminder kind")
}

// parseTaskTime parses a task boundary timestamp. A date-only input
// gets its time of day defaulted to the current moment, truncated to
// the minute.
func parseTaskTime(s string, now time.Time) (time.Time, bool) {
	t, hasClock, ok := taskclock.ParseWireClock(s)
	if !ok {
		return time.Time{}, false
	}
	if !hasClock {
		t = taskclock.DefaultClock(t, now)
	}
	return t, true
}

type createTaskRequest struct {
	Title        string           `json:"title" binding:"required,max=255"`
	Description  string           `json:"description" binding:"required"`
	Priority     string           `json:"priority,omitempty"`
	StartTime    string           `json:"start_time" binding:"required"`
	EndTime      string           `json:"end_time" binding:"required"`
	Location     string           `json:"location,omitempty"`
	LocationName string           `json:"location_name,omitempty"`
	Photo        string           `json:"photo,omitempty"`
	Reminder     *reminderRequest `json:"reminder,omitempty"`
}

func (h *handlerImpl) HandleCreateTask(c *gin.Context) {
	userID, ok := h.mustUserID(c)
	if !ok {
		return
	}

	var req createTaskRequest
	err := c.ShouldBindJSON(&req)
	if err != nil {
		h.logger.Error().
			Err(err).
			Msg("failed to bind json")
		abort(c, newBadRequestError(errInvalidRequestBody.Error()))
		return
	}

	now := time.Now()
	start, ok := parseTaskTime(req.StartTime, now)
	if !ok {
		abort(c, newBadRequestError("unparseable start time"))
		return
	}
	end, ok := parseTaskTime(req.EndTime, now)
	if !ok {
		abort(c, newBadRequestError("unparseable end time"))
		return
	}

	var location *models.Location
	if req.Location != "" {
		location, err = models.ParseLocation(req.Location)
		if err != nil {
			abort(c, newBadRequestError(err.Error()))
			return
		}
	}

	selection := reminder.Selection{Kind: reminder.None}
	if req.Reminder != nil {
		selection, err = req.Reminder.toSelection()
		if err != nil {
			abort(c, newBadRequestError(err.Error()))
			return
		}
	}

	result, err := h.tasks.CreateTask(c, services.CreateTaskParams{
		UserID:       userID,
		Title:        req.Title,
		Description:  req.Description,
		Priority:     req.Priority,
		StartTime:    start,
		EndTime:      end,
		Location:     location,
		LocationName: req.LocationName,
		Photo:        req.Photo,
		Reminder:     selection,
	})
	if err != nil {
		var vErr *models.ValidationError
		if errors.As(err, &vErr) {
			abort(c, newBadRequestError(vErr.Message))
			return
		}

		h.logger.Error().
			Err(err).
			Msg("failed to create task")
		abort(c, newStatusTextError(http.StatusInternalServerError))
		return
	}

	locale := localeFromQuery(c)
	response := gin.H{"task": newTaskResponse(result.Task, locale)}
	if result.ReminderWarning != "" {
		response["reminder_warning"] = result.ReminderWarning
	}

	h.logger.Info().Msg("created task")
	c.JSON(http.StatusCreated, response)
}

func (h *handlerImpl) HandleGetTasks(c *gin.Context) {
	userID, ok := h.mustUserID(c)
	if !ok {
		return
	}

	params := services.GetTasksParams{
		UserID: userID,
		Status: c.Query("status"),
	}

	if date := c.Query("date"); date != "" {
		day, ok := taskclock.ParseWire(date)
		if !ok {
			abort(c, newBadRequestError("unparseable date"))
			return
		}
		params.Date = &day
	}
	startStr, endStr := c.Query("start"), c.Query("end")
	if (startStr == "") != (endStr == "") {
		abort(c, newBadRequestError("start and end must be supplied together"))
		return
	}
	if startStr != "" {
		start, ok := taskclock.ParseWire(startStr)
		if !ok {
			abort(c, newBadRequestError("unparseable start date"))
			return
		}
		end, ok := taskclock.ParseWire(endStr)
		if !ok {
			abort(c, newBadRequestError("unparseable end date"))
			return
		}
		params.Start, params.End = &start, &end
	}

	tasks, err := h.tasks.GetTasks(c, params)
	if err != nil {
		if errors.Is(err, services.ErrInvalidTaskStatus) {
			abort(c, newBadRequestError(services.ErrInvalidTaskStatus.Error()))
			return
		}

		h.logger.Error().
			Err(err).
			Msg("failed to get tasks")
		abort(c, newStatusTextError(http.StatusInternalServerError))
		return
	}

	locale := localeFromQuery(c)
	response := make([]taskResponse, len(tasks))
	for i := range tasks {
		response[i] = newTaskResponse(&tasks[i], locale)
	}

	h.logger.Info().Msg("fetched tasks")
	c.JSON(http.StatusOK, response)
}

func (h *handlerImpl) HandleGetTask(c *gin.Context) {
	userID, ok := h.mustUserID(c)
	if !ok {
		return
	}

	taskID := c.Param("id")
	if taskID == "" {
		abort(c, newBadRequestError("no task id provided"))
		return
	}

	task, err := h.tasks.GetTaskByID(c, taskID, userID)
	if err != nil {
		if errors.Is(err, services.ErrTaskNotFound) {
			abort(c, newNotFoundError(services.ErrTaskNotFound.Error()))
			return
		}

		h.logger.Error().
			Err(err).
			Msg("failed to get task")
		abort(c, newStatusTextError(http.StatusInternalServerError))
		return
	}

	c.JSON(http.StatusOK, newTaskResponse(task, localeFromQuery(c)))
}

type weekSummaryResponse struct {
	WeekStart      string         `json:"week_start"`
	WeekEnd        string         `json:"week_end"`
	CompletedCount int            `json:"completed_count"`
	PendingCount   int            `json:"pending_count"`
	Tasks          []taskResponse `json:"tasks"`
}

func (h *handlerImpl) HandleGetWeekSummary(c *gin.Context) {
	userID, ok := h.mustUserID(c)
	if !ok {
		return
	}

	at := time.Now()
	if atStr := c.Query("at"); atStr != "" {
		parsed, ok := taskclock.ParseWire(atStr)
		if !ok {
			abort(c, newBadRequestError("unparseable date"))
			return
		}
		at = parsed
	}
	locale := localeFromQuery(c)

	summary, err := h.tasks.GetWeekSummary(c, services.WeekSummaryParams{
		UserID: userID,
		At:     at,
		Locale: locale,
	})
	if err != nil {
		h.logger.Error().
			Err(err).
			Msg("failed to get week summary")
		abort(c, newStatusTextError(http.StatusInternalServerError))
		return
	}

	response := weekSummaryResponse{
		WeekStart:      taskclock.DateKey(summary.WeekStart),
		WeekEnd:        taskclock.DateKey(summary.WeekEnd),
		CompletedCount: summary.CompletedCount,
		PendingCount:   summary.PendingCount,
		Tasks:          make([]taskResponse, len(summary.Tasks)),
	}
	for i := range summary.Tasks {
		response.Tasks[i] = newTaskResponse(&summary.Tasks[i], locale)
	}

	c.JSON(http.StatusOK, response)
}

type updateTaskRequest struct {
	Title        *string `json:"title,omitempty"`
	Description  *string `json:"description,omitempty"`
	Priority     *string `json:"priority,omitempty"`
	StartTime    *string `json:"start_time,omitempty"`
	EndTime      *string `json:"end_time,omitempty"`
	Location     *string `json:"location,omitempty"`
	LocationName *string `json:"location_name,omitempty"`
	Photo        *string `json:"photo,omitempty"`
}

func (h *handlerImpl) HandleUpdateTask(c *gin.Context) {
	userID, ok := h.mustUserID(c)
	if !ok {
		return
	}

	taskID := c.Param("id")
	if taskID == "" {
		abort(c, newBadRequestError("no task id provided"))
		return
	}

	var req updateTaskRequest
	err := c.ShouldBindJSON(&req)
	if err != nil {
		h.logger.Error().
			Err(err).
			Msg("failed to bind json")
		abort(c, newBadRequestError(errInvalidRequestBody.Error()))
		return
	}

	params := services.UpdateTaskParams{
		ID:           taskID,
		UserID:       userID,
		Title:        req.Title,
		Description:  req.Description,
		Priority:     req.Priority,
		LocationName: req.LocationName,
		Photo:        req.Photo,
	}

	now := time.Now()
	if req.StartTime != nil {
		start, ok := parseTaskTime(*req.StartTime, now)
		if !ok {
			abort(c, newBadRequestError("unparseable start time"))
			return
		}
		params.StartTime = &start
	}
	if req.EndTime != nil {
		end, ok := parseTaskTime(*req.EndTime, now)
		if !ok {
			abort(c, newBadRequestError("unparseable end time"))
			return
		}
		params.EndTime = &end
	}
	if req.Location != nil {
		location, err := models.ParseLocation(*req.Location)
		if err != nil {
			abort(c, newBadRequestError(err.Error()))
			return
		}
		params.Location = location
	}

	task, err := h.tasks.UpdateTask(c, params)
	if err != nil {
		var vErr *models.ValidationError
		switch {
		case errors.As(err, &vErr):
			abort(c, newBadRequestError(vErr.Message))
		case errors.Is(err, services.ErrTaskNotFound):
			abort(c, newNotFoundError(services.ErrTaskNotFound.Error()))
		case errors.Is(err, services.ErrTaskCompleted):
			abort(c, newConflictError(services.ErrTaskCompleted.Error()))
		default:
			h.logger.Error().
				Err(err).
				Msg("failed to update task")
			abort(c, newStatusTextError(http.StatusInternalServerError))
		}
		return
	}

	h.logger.Info().Msg("updated task")
	c.JSON(http.StatusOK, newTaskResponse(task, localeFromQuery(c)))
}

func (h *handlerImpl) HandleCompleteTask(c *gin.Context) {
	userID, ok := h.mustUserID(c)
	if !ok {
		return
	}

	taskID := c.Param("id")
	if taskID == "" {
		abort(c, newBadRequestError("no task id provided"))
		return
	}

	task, err := h.tasks.CompleteTask(c, taskID, userID)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrTaskNotFound):
			abort(c, newNotFoundError(services.ErrTaskNotFound.Error()))
		case errors.Is(err, services.ErrTaskCompleted):
			abort(c, newConflictError(services.ErrTaskCompleted.Error()))
		default:
			h.logger.Error().
				Err(err).
				Msg("failed to complete task")
			abort(c, newStatusTextError(http.StatusInternalServerError))
		}
		return
	}

	h.logger.Info().Msg("completed task")
	c.JSON(http.StatusOK, newTaskResponse(task, localeFromQuery(c)))
}

func (h *handlerImpl) HandleDeleteTask(c *gin.Context) {
	userID, ok := h.mustUserID(c)
	if !ok {
		return
	}

	taskID := c.Param("id")
	if taskID == "" {
		abort(c, newBadRequestError("no task id provided"))
		return
	}

	err := h.tasks.DeleteTask(c, taskID, userID)
	if err != nil {
		if errors.Is(err, services.ErrTaskNotFound) {
			abort(c, newNotFoundError(services.ErrTaskNotFound.Error()))
			return
		}

		h.logger.Error().
			Err(err).
			Msg("failed to delete task")
		abort(c, newStatusTextError(http.StatusInternalServerError))
		return
	}

	h.logger.Info().Msg("deleted task")
	c.Status(http.StatusNoContent)
}
