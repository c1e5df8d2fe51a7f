package handlers

import (
	"net/http"

	domainerrors "cling-reminder.backend/internal/domain/errors"
	"cling-reminder.backend/internal/interfaces/http/middleware"
	"cling-reminder.backend/internal/interfaces/http/response"
	"github.com/gin-gonic/gin"
)

// DashboardHandler serves per-user summary data
type DashboardHandler struct {
	authUsecase AuthService
}

// NewDashboardHandler creates a new dashboard handler
func NewDashboardHandler(authUsecase AuthService) *DashboardHandler {
	return &DashboardHandler{authUsecase: authUsecase}
}

// UserInfo returns the authenticated user's dashboard summary
// GET /api/dashboard/userinfo
func (h *DashboardHandler) UserInfo(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.Error(c, domainerrors.Unauthorized("Unauthorized"))
		return
	}

	info, err := h.authUsecase.GetUserInfo(c.Request.Context(), userID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, info)
}
