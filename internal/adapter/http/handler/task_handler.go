package handler

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"taskboard/internal/adapter/http/helper"
	"taskboard/internal/adapter/http/middleware"
	"taskboard/internal/adapter/telemetry"
	"taskboard/internal/core/model/request"
	"taskboard/internal/core/port"
)

type TaskHandler struct {
	service port.TaskService
	metrics *telemetry.AppMetrics
}

func NewTaskHandler(service port.TaskService, metrics *telemetry.AppMetrics) *TaskHandler {
	return &TaskHandler{service: service, metrics: metrics}
}

// Create handles POST /tasks.
func (h *TaskHandler) Create(c *gin.Context) {
	params, err := helper.BindJSON[request.CreateTaskRequest](c)
	if err != nil {
		helper.SendBadRequestError(c, "invalid request body")
		return
	}

	task, err := h.service.Create(c.Request.Context(), middleware.CurrentUserID(c), &params)
	h.metrics.RecordTaskOperation("create", err)
	if err != nil {
		helper.SendDomainError(c, err)
		return
	}

	helper.SendSuccess(c, http.StatusCreated, task)
}

// Search handles GET /tasks. Filters are conjunctive; absent parameters do
// not filter. The completed parameter must parse as a boolean so that
// completed=false filters instead of being dropped.
func (h *TaskHandler) Search(c *gin.Context) {
	params, err := searchParams(c)
	if err != nil {
		helper.SendBadRequestError(c, err.Error())
		return
	}

	page, err := h.service.SearchTasks(c.Request.Context(), middleware.CurrentUserID(c), params)
	h.metrics.RecordTaskOperation("search", err)
	if err != nil {
		helper.SendDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, page)
}

func searchParams(c *gin.Context) (*request.SearchTasksRequest, error) {
	params := &request.SearchTasksRequest{
		Page:        1,
		Size:        10,
		Title:       c.Query("title"),
		Description: c.Query("description"),
	}

	if raw := c.Query("page"); raw != "" {
		page, err := strconv.Atoi(raw)
		if err != nil {
			return nil, fmt.Errorf("invalid query parameter: page")
		}
		params.Page = page
	}

	if raw := c.Query("size"); raw != "" {
		size, err := strconv.Atoi(raw)
		if err != nil {
			return nil, fmt.Errorf("invalid query parameter: size")
		}
		params.Size = size
	}

	if raw := c.Query("completed"); raw != "" {
		completed, err := strconv.ParseBool(raw)
		if err != nil {
			return nil, fmt.Errorf("invalid query parameter: completed")
		}
		params.Completed = &completed
	}

	return params, nil
}
