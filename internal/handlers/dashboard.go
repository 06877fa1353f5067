package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/nshimizu0918/taskboard/internal/dto"
	apierrors "github.com/nshimizu0918/taskboard/internal/errors"
	"github.com/nshimizu0918/taskboard/internal/middleware"
	"github.com/nshimizu0918/taskboard/internal/services"
)

// DashboardHandler serves the home dashboard.
type DashboardHandler struct {
	dashboardService *services.DashboardService
}

// NewDashboardHandler creates a new DashboardHandler.
func NewDashboardHandler(dashboardService *services.DashboardService) *DashboardHandler {
	return &DashboardHandler{
		dashboardService: dashboardService,
	}
}

// GetDashboard returns the summary figures and chart series for the current
// user's visible tasks.
func (h *DashboardHandler) GetDashboard(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	dashboard, err := h.dashboardService.Build(userID, time.Now())
	if err != nil {
		apierrors.InternalError(c, "Failed to build dashboard")
		return
	}

	c.JSON(http.StatusOK, dto.ToDashboardDTO(*dashboard))
}
