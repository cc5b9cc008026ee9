package v1

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/mkravets/go-task-api/internal/models"
	"github.com/mkravets/go-task-api/internal/services"
)

type taskResponse struct {
	ID          int64     `json:"id"`
	OwnerID     string    `json:"owner_id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Status      string    `json:"status"`
	Priority    int       `json:"priority"`
	CreatedAt   time.Time `json:"created_at"`
}

func newTaskResponse(task *models.Task) taskResponse {
	return taskResponse{
		ID:          task.ID,
		OwnerID:     task.UserID,
		Title:       task.Title,
		Description: task.Description,
		Status:      task.Status,
		Priority:    task.Priority,
		CreatedAt:   task.CreatedAt,
	}
}

func newTaskListResponse(tasks []*models.Task) []taskResponse {
	resp := make([]taskResponse, 0, len(tasks))
	for _, task := range tasks {
		resp = append(resp, newTaskResponse(task))
	}
	return resp
}

type createTaskRequest struct {
	Title       string  `json:"title" binding:"required,max=255"`
	Description *string `json:"description,omitempty"`
	Status      *string `json:"status,omitempty"`
	Priority    *int    `json:"priority,omitempty"`
}

func (h *handlerImpl) HandleCreateTask(c *gin.Context) {
	userID, ok := getStringFromContext(c, userIDCtxKey)
	if !ok {
		h.logger.Error().Msg("no user id found in context")
		abort(c, newStatusTextError(http.StatusUnauthorized))
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

	params := services.CreateTaskParams{
		UserID:   userID,
		Title:    req.Title,
		Priority: req.Priority,
	}
	if req.Description != nil {
		params.Description = *req.Description
	}
	if req.Status != nil {
		params.Status = *req.Status
	}

	task, err := h.tasks.CreateTask(c, params)
	if err != nil {
		h.logger.Error().
			Err(err).
			Msg("failed to create task")
		switch {
		case errors.Is(err, services.ErrInvalidTaskStatus):
			abort(c, newBadRequestError(services.ErrInvalidTaskStatus.Error()))
		default:
			abort(c, newStatusTextError(http.StatusInternalServerError))
		}
		return
	}

	c.JSON(http.StatusCreated, newTaskResponse(task))
}

type listTasksRequest struct {
	Skip      int    `form:"skip"`
	Limit     int    `form:"limit"`
	SortBy    string `form:"sort_by"`
	SortOrder string `form:"sort_order"`
	Search    string `form:"search"`
	Status    string `form:"status"`
}

func (h *handlerImpl) HandleListTasks(c *gin.Context) {
	userID, ok := getStringFromContext(c, userIDCtxKey)
	if !ok {
		h.logger.Error().Msg("no user id found in context")
		abort(c, newStatusTextError(http.StatusUnauthorized))
		return
	}

	var req listTasksRequest
	err := c.ShouldBindQuery(&req)
	if err != nil {
		h.logger.Error().
			Err(err).
			Msg("failed to bind query")
		abort(c, newBadRequestError(errInvalidRequestBody.Error()))
		return
	}

	tasks, err := h.tasks.ListTasks(c, services.ListTasksParams{
		UserID:    userID,
		Skip:      req.Skip,
		Limit:     req.Limit,
		SortBy:    req.SortBy,
		SortOrder: req.SortOrder,
		Search:    req.Search,
		Status:    req.Status,
	})
	if err != nil {
		h.logger.Error().
			Err(err).
			Msg("failed to list tasks")
		abort(c, newStatusTextError(http.StatusInternalServerError))
		return
	}

	c.JSON(http.StatusOK, newTaskListResponse(tasks))
}

func (h *handlerImpl) HandleTopPriorityTasks(c *gin.Context) {
	userID, ok := getStringFromContext(c, userIDCtxKey)
	if !ok {
		h.logger.Error().Msg("no user id found in context")
		abort(c, newStatusTextError(http.StatusUnauthorized))
		return
	}

	n := h.topPriorityDefault
	if raw := c.Query("n"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			h.logger.Error().
				Err(err).
				Str("n", raw).
				Msg("invalid n parameter")
			abort(c, newBadRequestError("n must be an integer"))
			return
		}
		n = parsed
	}

	tasks, err := h.tasks.TopPriorityTasks(c, userID, n)
	if err != nil {
		h.logger.Error().
			Err(err).
			Msg("failed to list top priority tasks")
		abort(c, newStatusTextError(http.StatusInternalServerError))
		return
	}

	c.JSON(http.StatusOK, newTaskListResponse(tasks))
}
