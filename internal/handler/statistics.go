package handler

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"connplanner/internal/service"
)

type StatisticsHandler struct {
	Service *service.StatisticsService
	Logger  *zap.Logger
}

func (h *StatisticsHandler) Register(r *gin.Engine) {
	r.GET("/api/statistics/performance", h.performance)
}

// @Summary Performance snapshot
// @Tags statistics
// @Success 200 {object} apiResponse
// @Router /api/statistics/performance [get]
func (h *StatisticsHandler) performance(c *gin.Context) {
	snap, err := h.Service.Snapshot(c.Request.Context())
	if err != nil {
		if h.Logger != nil {
			h.Logger.Warn("statistics snapshot failed", zap.Error(err))
		}
		writeServiceError(c, err)
		return
	}
	Ok(c, snap, nil)
}
