package handler

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"connplanner/internal/service"
)

type ActivityHandler struct {
	Service *service.ActivityService
	Logger  *zap.Logger
}

func (h *ActivityHandler) Register(r *gin.Engine) {
	r.GET("/api/activity", h.list)
}

// @Summary List recent activity
// @Tags activity
// @Param entity_type query string false "filter by entity type"
// @Param limit query int false "limit"
// @Param offset query int false "offset"
// @Success 200 {object} apiResponse
// @Router /api/activity [get]
func (h *ActivityHandler) list(c *gin.Context) {
	limit := intQuery(c, "limit", 50)
	offset := intQuery(c, "offset", 0)
	items, err := h.Service.List(c.Request.Context(), strQuery(c, "entity_type"), limit, offset)
	if err != nil {
		if h.Logger != nil {
			h.Logger.Warn("list activity failed", zap.Error(err))
		}
		writeServiceError(c, err)
		return
	}
	Ok(c, items, nil)
}
