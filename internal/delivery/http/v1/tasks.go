package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/adanyl0v/go-todo-app/internal/services"
)

type createTaskRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

func (h *handlerImpl) HandleCreateTask(c *gin.Context) {
	userID, ok := h.ownerID(c)
	if !ok {
		return
	}

	var req createTaskRequest
	err := c.ShouldBindJSON(&req)
	if err != nil {
		h.logger.Error().
			Err(err).
			Msg("failed to bind json")
		abort(c, newBadRequestError(msgInvalidRequestBody))
		return
	}

	task, err := h.tasks.CreateTask(c.Request.Context(), services.CreateTaskParams{
		UserID:      userID,
		Title:       req.Title,
		Description: req.Description,
	})
	if err != nil {
		h.logger.Error().
			Err(err).
			Str("user_id", userID).
			Msg("failed to create task")
		h.abortWithServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, response{
		Success: true,
		Message: "Todo created successfully",
		Data:    task,
	})
}

func (h *handlerImpl) HandleGetTasks(c *gin.Context) {
	userID, ok := h.ownerID(c)
	if !ok {
		return
	}

	tasks, err := h.tasks.GetTasksByUserID(c.Request.Context(), userID)
	if err != nil {
		h.logger.Error().
			Err(err).
			Str("user_id", userID).
			Msg("failed to get tasks")
		h.abortWithServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, response{
		Success: true,
		Message: "Fetched all todos successfully",
		Data:    tasks,
	})
}

type updateTaskRequest struct {
	Title       *string `json:"title,omitempty"`
	Description *string `json:"description,omitempty"`
	IsCompleted *bool   `json:"isCompleted,omitempty"`
}

func (h *handlerImpl) HandleUpdateTask(c *gin.Context) {
	userID, ok := h.ownerID(c)
	if !ok {
		return
	}

	var req updateTaskRequest
	err := c.ShouldBindJSON(&req)
	if err != nil {
		h.logger.Error().
			Err(err).
			Msg("failed to bind json")
		abort(c, newBadRequestError(msgInvalidRequestBody))
		return
	}

	taskID := c.Param("id")
	task, err := h.tasks.UpdateTask(c.Request.Context(), services.UpdateTaskParams{
		ID:          taskID,
		UserID:      userID,
		Title:       req.Title,
		Description: req.Description,
		IsCompleted: req.IsCompleted,
	})
	if err != nil {
		h.logger.Error().
			Err(err).
			Str("task_id", taskID).
			Msg("failed to update task")
		h.abortWithServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, response{
		Success: true,
		Message: "Todo updated successfully",
		Data:    task,
	})
}

type setTaskCompletedRequest struct {
	IsCompleted *bool `json:"isCompleted"`
}

func (h *handlerImpl) HandleSetTaskCompleted(c *gin.Context) {
	userID, ok := h.ownerID(c)
	if !ok {
		return
	}

	var req setTaskCompletedRequest
	err := c.ShouldBindJSON(&req)
	if err != nil {
		h.logger.Error().
			Err(err).
			Msg("failed to bind json")
		abort(c, newBadRequestError(msgInvalidRequestBody))
		return
	}
	if req.IsCompleted == nil {
		h.logger.Error().Msg("no completion flag provided")
		abort(c, newBadRequestError(msgInvalidRequestBody))
		return
	}

	taskID := c.Param("id")
	task, err := h.tasks.SetTaskCompleted(c.Request.Context(), services.SetTaskCompletedParams{
		ID:          taskID,
		UserID:      userID,
		IsCompleted: *req.IsCompleted,
	})
	if err != nil {
		h.logger.Error().
			Err(err).
			Str("task_id", taskID).
			Msg("failed to update task status")
		h.abortWithServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, response{
		Success: true,
		Message: "Todo isCompleted updated successfully",
		Data:    task,
	})
}

func (h *handlerImpl) HandleDeleteTask(c *gin.Context) {
	userID, ok := h.ownerID(c)
	if !ok {
		return
	}

	taskID := c.Param("id")
	err := h.tasks.DeleteTask(c.Request.Context(), services.DeleteTaskParams{
		ID:     taskID,
		UserID: userID,
	})
	if err != nil {
		h.logger.Error().
			Err(err).
			Str("task_id", taskID).
			Msg("failed to delete task")
		h.abortWithServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, response{
		Success: true,
		Message: "Todo deleted successfully",
	})
}
