package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	apperrors "actlog/internal/errors"
	"actlog/internal/model"
	"actlog/internal/service"
)

// QuickTaskHandler handles quick task endpoints.
type QuickTaskHandler struct {
	taskService service.QuickTaskService
}

// NewQuickTaskHandler creates a new quick task handler.
func NewQuickTaskHandler(taskService service.QuickTaskService) *QuickTaskHandler {
	return &QuickTaskHandler{taskService: taskService}
}

// CreateQuickTaskRequest is the body of a new quick task.
type CreateQuickTaskRequest struct {
	Task string `json:"task" validate:"required"`
}

// CreateQuickTaskResponse echoes the stored task.
type CreateQuickTaskResponse struct {
	Message string           `json:"message"`
	Task    *model.QuickTask `json:"task"`
}

// List godoc
// @Summary List the caller's quick tasks
// @Tags quick-tasks
// @Produce json
// @Security BearerAuth
// @Success 200 {array} model.QuickTask
// @Failure 401 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /quick-tasks [get]
func (h *QuickTaskHandler) List(c echo.Context) error {
	user, err := CurrentUser(c)
	if err != nil {
		return err
	}
	tasks, err := h.taskService.List(c.Request().Context(), user)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, tasks)
}

// Create godoc
// @Summary Add a quick task
// @Tags quick-tasks
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body CreateQuickTaskRequest true "Task"
// @Success 201 {object} CreateQuickTaskResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /quick-tasks [post]
func (h *QuickTaskHandler) Create(c echo.Context) error {
	user, err := CurrentUser(c)
	if err != nil {
		return err
	}

	var req CreateQuickTaskRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	task, err := h.taskService.Add(c.Request().Context(), user, req.Task)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, CreateQuickTaskResponse{
		Message: "Quick task added",
		Task:    task,
	})
}

// Delete godoc
// @Summary Delete one of the caller's quick tasks
// @Tags quick-tasks
// @Produce json
// @Security BearerAuth
// @Param id path int true "Task id"
// @Success 200 {object} MessageResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /quick-tasks/{id} [delete]
func (h *QuickTaskHandler) Delete(c echo.Context) error {
	user, err := CurrentUser(c)
	if err != nil {
		return err
	}

	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		return apperrors.ErrInvalidID
	}

	if err := h.taskService.Delete(c.Request().Context(), user, uint(id)); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, MessageResponse{Message: "Quick task deleted"})
}
