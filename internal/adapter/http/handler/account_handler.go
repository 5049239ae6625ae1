package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"taskboard/internal/adapter/http/helper"
	"taskboard/internal/adapter/http/middleware"
	"taskboard/internal/adapter/telemetry"
	"taskboard/internal/core/model/request"
	"taskboard/internal/core/port"
)

type AccountHandler struct {
	service port.AccountService
	metrics *telemetry.AppMetrics
}

func NewAccountHandler(service port.AccountService, metrics *telemetry.AppMetrics) *AccountHandler {
	return &AccountHandler{service: service, metrics: metrics}
}

// Register handles POST /users.
func (h *AccountHandler) Register(c *gin.Context) {
	params, err := helper.BindJSON[request.RegisterRequest](c)
	if err != nil {
		helper.SendBadRequestError(c, "invalid request body")
		return
	}

	user, err := h.service.Register(c.Request.Context(), &params)
	h.metrics.RecordAccountOperation("register", err)
	if err != nil {
		helper.SendDomainError(c, err)
		return
	}

	helper.SendSuccess(c, http.StatusCreated, user)
}

// Login handles POST /users/login.
func (h *AccountHandler) Login(c *gin.Context) {
	params, err := helper.BindJSON[request.LoginRequest](c)
	if err != nil {
		helper.SendBadRequestError(c, "invalid request body")
		return
	}

	token, err := h.service.Login(c.Request.Context(), &params)
	h.metrics.RecordAccountOperation("login", err)
	if err != nil {
		helper.SendDomainError(c, err)
		return
	}

	helper.SendSuccess(c, http.StatusOK, token)
}

// Current handles GET /users/current.
func (h *AccountHandler) Current(c *gin.Context) {
	user, err := h.service.Get(c.Request.Context(), middleware.CurrentUsername(c))
	h.metrics.RecordAccountOperation("get", err)
	if err != nil {
		helper.SendDomainError(c, err)
		return
	}

	helper.SendSuccess(c, http.StatusOK, user)
}

// Update handles PATCH /users/current. The target account is always the
// authenticated user, whatever the body says.
func (h *AccountHandler) Update(c *gin.Context) {
	params, err := helper.BindJSON[request.UpdateUserRequest](c)
	if err != nil {
		helper.SendBadRequestError(c, "invalid request body")
		return
	}

	params.Username = middleware.CurrentUsername(c)

	user, err := h.service.Update(c.Request.Context(), &params)
	h.metrics.RecordAccountOperation("update", err)
	if err != nil {
		helper.SendDomainError(c, err)
		return
	}

	helper.SendSuccess(c, http.StatusOK, user)
}

// Logout handles DELETE /users/logout.
func (h *AccountHandler) Logout(c *gin.Context) {
	result, err := h.service.Logout(c.Request.Context(), middleware.CurrentUsername(c))
	h.metrics.RecordAccountOperation("logout", err)
	if err != nil {
		helper.SendDomainError(c, err)
		return
	}

	helper.SendSuccess(c, http.StatusOK, result)
}
