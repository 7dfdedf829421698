package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"connplanner/internal/service"
)

type PlannerHandler struct {
	Service *service.PlannerService
	Logger  *zap.Logger
}

func (h *PlannerHandler) Register(r *gin.Engine) {
	group := r.Group("/api/planners")
	group.GET("", h.list)
	group.GET("/search", h.search)
	group.GET("/:id", h.get)
	group.POST("", h.create)
	group.PUT("/:id", h.update)
	group.DELETE("/:id", h.remove)

	group.POST("/:id/funds", h.addFund)
	group.DELETE("/:id/funds/:fundId", h.removeFund)
	group.POST("/:id/sources", h.addSource)

	sources := r.Group("/api/planner-sources")
	sources.DELETE("/:id", h.removeSource)
	sources.POST("/:id/runs", h.addRun)
	sources.POST("/:id/reports", h.addReport)

	r.DELETE("/api/planner-runs/:id", h.removeRun)
	r.DELETE("/api/planner-reports/:id", h.removeReport)
}

// @Summary List planners
// @Tags planners
// @Param status query string false "filter by status"
// @Param page query int false "page index"
// @Param size query int false "page size"
// @Success 200 {object} apiResponse
// @Router /api/planners [get]
func (h *PlannerHandler) list(c *gin.Context) {
	page, size := pageQuery(c)
	result, err := h.Service.FindAll(c.Request.Context(), strQuery(c, "status"), page, size)
	if err != nil {
		h.fail(c, "list planners failed", err)
		return
	}
	Ok(c, result, nil)
}

// @Summary Search planners
// @Tags planners
// @Param query query string false "name substring"
// @Param status query string false "filter by status"
// @Param page query int false "page index"
// @Param size query int false "page size"
// @Success 200 {object} apiResponse
// @Router /api/planners/search [get]
func (h *PlannerHandler) search(c *gin.Context) {
	page, size := pageQuery(c)
	result, err := h.Service.Search(c.Request.Context(), strQuery(c, "query"), strQuery(c, "status"), page, size)
	if err != nil {
		h.fail(c, "search planners failed", err)
		return
	}
	Ok(c, result, nil)
}

// @Summary Get planner
// @Tags planners
// @Param id path int true "planner id"
// @Success 200 {object} apiResponse
// @Router /api/planners/{id} [get]
func (h *PlannerHandler) get(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	planner, err := h.Service.FindByID(c.Request.Context(), id)
	if err != nil {
		h.fail(c, "get planner failed", err)
		return
	}
	Ok(c, planner, nil)
}

// @Summary Create planner
// @Tags planners
// @Param body body service.PlannerInput true "planner"
// @Success 200 {object} apiResponse
// @Router /api/planners [post]
func (h *PlannerHandler) create(c *gin.Context) {
	var in service.PlannerInput
	if err := c.ShouldBindJSON(&in); err != nil {
		Error(c, http.StatusBadRequest, err.Error(), nil)
		return
	}
	planner, err := h.Service.Create(c.Request.Context(), in)
	if err != nil {
		h.fail(c, "create planner failed", err)
		return
	}
	Ok(c, planner, nil)
}

// @Summary Update planner
// @Tags planners
// @Param id path int true "planner id"
// @Param body body service.PlannerInput true "planner"
// @Success 200 {object} apiResponse
// @Router /api/planners/{id} [put]
func (h *PlannerHandler) update(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	var in service.PlannerInput
	if err := c.ShouldBindJSON(&in); err != nil {
		Error(c, http.StatusBadRequest, err.Error(), nil)
		return
	}
	planner, err := h.Service.Update(c.Request.Context(), id, in)
	if err != nil {
		h.fail(c, "update planner failed", err)
		return
	}
	Ok(c, planner, nil)
}

// @Summary Delete planner
// @Tags planners
// @Param id path int true "planner id"
// @Success 200 {object} apiResponse
// @Router /api/planners/{id} [delete]
func (h *PlannerHandler) remove(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	if err := h.Service.Delete(c.Request.Context(), id); err != nil {
		h.fail(c, "delete planner failed", err)
		return
	}
	Ok(c, gin.H{"deleted": id}, nil)
}

// @Summary Link fund to planner
// @Tags planners
// @Param id path int true "planner id"
// @Param body body service.PlannerFundInput true "fund link"
// @Success 200 {object} apiResponse
// @Router /api/planners/{id}/funds [post]
func (h *PlannerHandler) addFund(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	var in service.PlannerFundInput
	if err := c.ShouldBindJSON(&in); err != nil {
		Error(c, http.StatusBadRequest, err.Error(), nil)
		return
	}
	planner, err := h.Service.AddFund(c.Request.Context(), id, in)
	if err != nil {
		h.fail(c, "add planner fund failed", err)
		return
	}
	Ok(c, planner, nil)
}

// @Summary Unlink fund from planner
// @Tags planners
// @Param id path int true "planner id"
// @Param fundId path int true "fund id"
// @Success 200 {object} apiResponse
// @Router /api/planners/{id}/funds/{fundId} [delete]
func (h *PlannerHandler) removeFund(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	fundID, ok := idParam(c, "fundId")
	if !ok {
		return
	}
	if err := h.Service.RemoveFund(c.Request.Context(), id, fundID); err != nil {
		h.fail(c, "remove planner fund failed", err)
		return
	}
	Ok(c, gin.H{"deleted": fundID}, nil)
}

// @Summary Add source to planner
// @Tags planners
// @Param id path int true "planner id"
// @Param body body service.PlannerSourceInput true "source"
// @Success 200 {object} apiResponse
// @Router /api/planners/{id}/sources [post]
func (h *PlannerHandler) addSource(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	var in service.PlannerSourceInput
	if err := c.ShouldBindJSON(&in); err != nil {
		Error(c, http.StatusBadRequest, err.Error(), nil)
		return
	}
	planner, err := h.Service.AddSource(c.Request.Context(), id, in)
	if err != nil {
		h.fail(c, "add planner source failed", err)
		return
	}
	Ok(c, planner, nil)
}

// @Summary Remove planner source
// @Tags planners
// @Param id path int true "source id"
// @Success 200 {object} apiResponse
// @Router /api/planner-sources/{id} [delete]
func (h *PlannerHandler) removeSource(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	if err := h.Service.RemoveSource(c.Request.Context(), id); err != nil {
		h.fail(c, "remove planner source failed", err)
		return
	}
	Ok(c, gin.H{"deleted": id}, nil)
}

// @Summary Add run to source
// @Tags planners
// @Param id path int true "source id"
// @Param body body service.PlannerRunInput true "run"
// @Success 200 {object} apiResponse
// @Router /api/planner-sources/{id}/runs [post]
func (h *PlannerHandler) addRun(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	var in service.PlannerRunInput
	if err := c.ShouldBindJSON(&in); err != nil {
		Error(c, http.StatusBadRequest, err.Error(), nil)
		return
	}
	planner, err := h.Service.AddRun(c.Request.Context(), id, in)
	if err != nil {
		h.fail(c, "add planner run failed", err)
		return
	}
	Ok(c, planner, nil)
}

// @Summary Remove planner run
// @Tags planners
// @Param id path int true "run id"
// @Success 200 {object} apiResponse
// @Router /api/planner-runs/{id} [delete]
func (h *PlannerHandler) removeRun(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	if err := h.Service.RemoveRun(c.Request.Context(), id); err != nil {
		h.fail(c, "remove planner run failed", err)
		return
	}
	Ok(c, gin.H{"deleted": id}, nil)
}

// @Summary Add report to source
// @Tags planners
// @Param id path int true "source id"
// @Param body body service.PlannerReportInput true "report"
// @Success 200 {object} apiResponse
// @Router /api/planner-sources/{id}/reports [post]
func (h *PlannerHandler) addReport(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	var in service.PlannerReportInput
	if err := c.ShouldBindJSON(&in); err != nil {
		Error(c, http.StatusBadRequest, err.Error(), nil)
		return
	}
	planner, err := h.Service.AddReport(c.Request.Context(), id, in)
	if err != nil {
		h.fail(c, "add planner report failed", err)
		return
	}
	Ok(c, planner, nil)
}

// @Summary Remove planner report
// @Tags planners
// @Param id path int true "report id"
// @Success 200 {object} apiResponse
// @Router /api/planner-reports/{id} [delete]
func (h *PlannerHandler) removeReport(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	if err := h.Service.RemoveReport(c.Request.Context(), id); err != nil {
		h.fail(c, "remove planner report failed", err)
		return
	}
	Ok(c, gin.H{"deleted": id}, nil)
}

func (h *PlannerHandler) fail(c *gin.Context, msg string, err error) {
	if h.Logger != nil {
		h.Logger.Warn(msg, zap.Error(err))
	}
	writeServiceError(c, err)
}
