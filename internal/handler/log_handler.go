package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	apperrors "actlog/internal/errors"
	"actlog/internal/model"
	"actlog/internal/service"
)

// LogHandler handles activity log endpoints.
type LogHandler struct {
	logService service.LogService
}

// NewLogHandler creates a new log handler.
func NewLogHandler(logService service.LogService) *LogHandler {
	return &LogHandler{logService: logService}
}

// CreateLogRequest is a log submission. Timestamp is optional RFC 3339.
type CreateLogRequest struct {
	Activity  string `json:"activity" validate:"required"`
	DeviceID  string `json:"deviceId" validate:"max=255"`
	Timestamp string `json:"timestamp"`
}

// CreateLogResponse echoes the stored entry.
type CreateLogResponse struct {
	Message string          `json:"message"`
	Log     *model.LogEntry `json:"log"`
}

// Create godoc
// @Summary Record an activity
// @Tags logs
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body CreateLogRequest true "Activity"
// @Success 200 {object} CreateLogResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /logs [post]
func (h *LogHandler) Create(c echo.Context) error {
	user, err := CurrentUser(c)
	if err != nil {
		return err
	}

	var req CreateLogRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	entry, err := h.logService.Append(c.Request().Context(), user, service.AppendLogInput{
		Activity:  req.Activity,
		DeviceID:  req.DeviceID,
		Timestamp: req.Timestamp,
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, CreateLogResponse{
		Message: "Activity logged successfully",
		Log:     entry,
	})
}

// ListByUser godoc
// @Summary List a user's logs, newest first
// @Tags logs
// @Produce json
// @Security BearerAuth
// @Param username path string true "Owner username"
// @Param deviceId query string false "Device filter"
// @Param limit query int false "Page size (default 100, max 1000)"
// @Param offset query int false "Entries to skip"
// @Success 200 {array} model.LogEntry
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /logs/user/{username} [get]
func (h *LogHandler) ListByUser(c echo.Context) error {
	user, err := CurrentUser(c)
	if err != nil {
		return err
	}
	page, err := pageFromQuery(c)
	if err != nil {
		return err
	}

	entries, err := h.logService.ListUserLogs(c.Request().Context(), user, c.Param("username"), c.QueryParam("deviceId"), page)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, entries)
}

// ListByDevice godoc
// @Summary List logs recorded for a device
// @Description Admins see every owner's entries; other users only their own.
// @Tags logs
// @Produce json
// @Security BearerAuth
// @Param deviceId path string true "Device id"
// @Param limit query int false "Page size (default 100, max 1000)"
// @Param offset query int false "Entries to skip"
// @Success 200 {array} model.LogEntry
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /logs/device/{deviceId} [get]
func (h *LogHandler) ListByDevice(c echo.Context) error {
	user, err := CurrentUser(c)
	if err != nil {
		return err
	}
	page, err := pageFromQuery(c)
	if err != nil {
		return err
	}

	entries, err := h.logService.ListDeviceLogs(c.Request().Context(), user, c.Param("deviceId"), page)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, entries)
}

// ListAll godoc
// @Summary List every user's logs
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param deviceId query string false "Device filter"
// @Param limit query int false "Page size (default 100, max 1000)"
// @Param offset query int false "Entries to skip"
// @Success 200 {array} model.LogEntry
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /admin/logs [get]
func (h *LogHandler) ListAll(c echo.Context) error {
	user, err := CurrentUser(c)
	if err != nil {
		return err
	}
	page, err := pageFromQuery(c)
	if err != nil {
		return err
	}

	entries, err := h.logService.ListAllLogs(c.Request().Context(), user, c.QueryParam("deviceId"), page)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, entries)
}

func pageFromQuery(c echo.Context) (service.Page, error) {
	var page service.Page
	var err error
	if v := c.QueryParam("limit"); v != "" {
		if page.Limit, err = strconv.Atoi(v); err != nil || page.Limit < 1 {
			return service.Page{}, apperrors.ErrInvalidPagination
		}
	}
	if v := c.QueryParam("offset"); v != "" {
		if page.Offset, err = strconv.Atoi(v); err != nil || page.Offset < 0 {
			return service.Page{}, apperrors.ErrInvalidPagination
		}
	}
	return page, nil
}
