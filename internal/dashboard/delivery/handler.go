package delivery

import (
	"net/http"

	"genprd-backend/internal/dashboard/usecase"
	"genprd-backend/pkg/apperror"
	"genprd-backend/pkg/logger"

	"github.com/gin-gonic/gin"
)

type DashboardHandler struct {
	dashboardUsecase usecase.DashboardUsecase
}

func NewDashboardHandler(dashboardUsecase usecase.DashboardUsecase) *DashboardHandler {
	return &DashboardHandler{dashboardUsecase: dashboardUsecase}
}

func (h *DashboardHandler) Summary(c *gin.Context) {
	summary, err := h.dashboardUsecase.Summary(c.GetString("userID"))
	if err != nil {
		status := apperror.Status(err)
		if status == http.StatusInternalServerError {
			logger.Log.WithError(err).Error("dashboard request failed")
		}
		c.JSON(status, gin.H{"status": "error", "message": apperror.Message(err)})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "success", "data": summary})
}
