package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yourusername/quiz-api/internal/service"
)

// StatsHandler отдает сводку панели администратора
type StatsHandler struct {
	statsService *service.StatsService
}

func NewStatsHandler(statsService *service.StatsService) *StatsHandler {
	return &StatsHandler{statsService: statsService}
}

// GetDashboardStats обрабатывает GET /api/admin/stats?year
func (h *StatsHandler) GetDashboardStats(c *gin.Context) {
	year, err := queryInt(c, "year")
	if err != nil {
		handleError(c, "StatsHandler", err)
		return
	}

	stats, err := h.statsService.GetDashboardStats(c.Request.Context(), year)
	if err != nil {
		handleError(c, "StatsHandler", err)
		return
	}
	c.JSON(http.StatusOK, stats)
}
