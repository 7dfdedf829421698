package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"connplanner/internal/service"
)

type MasterDataHandler struct {
	Service *service.MasterDataService
	Logger  *zap.Logger
}

func (h *MasterDataHandler) Register(r *gin.Engine) {
	group := r.Group("/api/master-data")

	group.GET("/source-names", h.listSourceNames)
	group.POST("/source-names", h.createSourceName)
	group.DELETE("/source-names/:id", h.deleteSourceName)

	group.GET("/run-names", h.listRunNames)
	group.POST("/run-names", h.createRunName)
	group.DELETE("/run-names/:id", h.deleteRunName)

	group.GET("/report-types", h.listReportTypes)
	group.POST("/report-types", h.createReportType)
	group.DELETE("/report-types/:id", h.deleteReportType)

	group.GET("/report-names", h.listReportNames)
	group.POST("/report-names", h.createReportName)
	group.DELETE("/report-names/:id", h.deleteReportName)

	group.GET("/funds", h.listFunds)
	group.POST("/funds", h.createFund)
	group.DELETE("/funds/:id", h.deleteFund)
	group.POST("/funds/:id/aliases", h.createFundAlias)
	group.DELETE("/fund-aliases/:id", h.deleteFundAlias)
}

// @Summary List source names
// @Tags master-data
// @Success 200 {object} apiResponse
// @Router /api/master-data/source-names [get]
func (h *MasterDataHandler) listSourceNames(c *gin.Context) {
	items, err := h.Service.ListSourceNames(c.Request.Context())
	if err != nil {
		h.fail(c, "list source names failed", err)
		return
	}
	Ok(c, items, nil)
}

// @Summary Create source name
// @Tags master-data
// @Param body body service.MasterDataInput true "source name"
// @Success 200 {object} apiResponse
// @Router /api/master-data/source-names [post]
func (h *MasterDataHandler) createSourceName(c *gin.Context) {
	in, ok := h.bindInput(c)
	if !ok {
		return
	}
	item, err := h.Service.CreateSourceName(c.Request.Context(), in)
	if err != nil {
		h.fail(c, "create source name failed", err)
		return
	}
	Ok(c, item, nil)
}

// @Summary Delete source name
// @Tags master-data
// @Param id path int true "source name id"
// @Success 200 {object} apiResponse
// @Router /api/master-data/source-names/{id} [delete]
func (h *MasterDataHandler) deleteSourceName(c *gin.Context) {
	h.deleteByID(c, h.Service.DeleteSourceName, "delete source name failed")
}

// @Summary List run names
// @Tags master-data
// @Success 200 {object} apiResponse
// @Router /api/master-data/run-names [get]
func (h *MasterDataHandler) listRunNames(c *gin.Context) {
	items, err := h.Service.ListRunNames(c.Request.Context())
	if err != nil {
		h.fail(c, "list run names failed", err)
		return
	}
	Ok(c, items, nil)
}

// @Summary Create run name
// @Tags master-data
// @Param body body service.MasterDataInput true "run name"
// @Success 200 {object} apiResponse
// @Router /api/master-data/run-names [post]
func (h *MasterDataHandler) createRunName(c *gin.Context) {
	in, ok := h.bindInput(c)
	if !ok {
		return
	}
	item, err := h.Service.CreateRunName(c.Request.Context(), in)
	if err != nil {
		h.fail(c, "create run name failed", err)
		return
	}
	Ok(c, item, nil)
}

// @Summary Delete run name
// @Tags master-data
// @Param id path int true "run name id"
// @Success 200 {object} apiResponse
// @Router /api/master-data/run-names/{id} [delete]
func (h *MasterDataHandler) deleteRunName(c *gin.Context) {
	h.deleteByID(c, h.Service.DeleteRunName, "delete run name failed")
}

// @Summary List report types
// @Tags master-data
// @Success 200 {object} apiResponse
// @Router /api/master-data/report-types [get]
func (h *MasterDataHandler) listReportTypes(c *gin.Context) {
	items, err := h.Service.ListReportTypes(c.Request.Context())
	if err != nil {
		h.fail(c, "list report types failed", err)
		return
	}
	Ok(c, items, nil)
}

// @Summary Create report type
// @Tags master-data
// @Param body body service.MasterDataInput true "report type"
// @Success 200 {object} apiResponse
// @Router /api/master-data/report-types [post]
func (h *MasterDataHandler) createReportType(c *gin.Context) {
	in, ok := h.bindInput(c)
	if !ok {
		return
	}
	item, err := h.Service.CreateReportType(c.Request.Context(), in)
	if err != nil {
		h.fail(c, "create report type failed", err)
		return
	}
	Ok(c, item, nil)
}

// @Summary Delete report type
// @Tags master-data
// @Param id path int true "report type id"
// @Success 200 {object} apiResponse
// @Router /api/master-data/report-types/{id} [delete]
func (h *MasterDataHandler) deleteReportType(c *gin.Context) {
	h.deleteByID(c, h.Service.DeleteReportType, "delete report type failed")
}

// @Summary List report names
// @Tags master-data
// @Param report_type_id query int false "filter by report type"
// @Success 200 {object} apiResponse
// @Router /api/master-data/report-names [get]
func (h *MasterDataHandler) listReportNames(c *gin.Context) {
	typeID := intQuery(c, "report_type_id", 0)
	var items any
	var err error
	if typeID > 0 {
		items, err = h.Service.ListReportNamesByType(c.Request.Context(), uint64(typeID))
	} else {
		items, err = h.Service.ListReportNames(c.Request.Context())
	}
	if err != nil {
		h.fail(c, "list report names failed", err)
		return
	}
	Ok(c, items, nil)
}

// @Summary Create report name
// @Tags master-data
// @Param body body service.MasterDataInput true "report name"
// @Success 200 {object} apiResponse
// @Router /api/master-data/report-names [post]
func (h *MasterDataHandler) createReportName(c *gin.Context) {
	in, ok := h.bindInput(c)
	if !ok {
		return
	}
	item, err := h.Service.CreateReportName(c.Request.Context(), in)
	if err != nil {
		h.fail(c, "create report name failed", err)
		return
	}
	Ok(c, item, nil)
}

// @Summary Delete report name
// @Tags master-data
// @Param id path int true "report name id"
// @Success 200 {object} apiResponse
// @Router /api/master-data/report-names/{id} [delete]
func (h *MasterDataHandler) deleteReportName(c *gin.Context) {
	h.deleteByID(c, h.Service.DeleteReportName, "delete report name failed")
}

// @Summary List funds with aliases
// @Tags master-data
// @Success 200 {object} apiResponse
// @Router /api/master-data/funds [get]
func (h *MasterDataHandler) listFunds(c *gin.Context) {
	items, err := h.Service.ListFunds(c.Request.Context())
	if err != nil {
		h.fail(c, "list funds failed", err)
		return
	}
	Ok(c, items, nil)
}

// @Summary Create fund
// @Tags master-data
// @Param body body service.MasterDataInput true "fund"
// @Success 200 {object} apiResponse
// @Router /api/master-data/funds [post]
func (h *MasterDataHandler) createFund(c *gin.Context) {
	in, ok := h.bindInput(c)
	if !ok {
		return
	}
	item, err := h.Service.CreateFund(c.Request.Context(), in)
	if err != nil {
		h.fail(c, "create fund failed", err)
		return
	}
	Ok(c, item, nil)
}

// @Summary Delete fund and its aliases
// @Tags master-data
// @Param id path int true "fund id"
// @Success 200 {object} apiResponse
// @Router /api/master-data/funds/{id} [delete]
func (h *MasterDataHandler) deleteFund(c *gin.Context) {
	h.deleteByID(c, h.Service.DeleteFund, "delete fund failed")
}

// @Summary Create fund alias
// @Tags master-data
// @Param id path int true "fund id"
// @Param body body service.MasterDataInput true "alias"
// @Success 200 {object} apiResponse
// @Router /api/master-data/funds/{id}/aliases [post]
func (h *MasterDataHandler) createFundAlias(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	in, ok := h.bindInput(c)
	if !ok {
		return
	}
	item, err := h.Service.CreateFundAlias(c.Request.Context(), id, in)
	if err != nil {
		h.fail(c, "create fund alias failed", err)
		return
	}
	Ok(c, item, nil)
}

// @Summary Delete fund alias
// @Tags master-data
// @Param id path int true "alias id"
// @Success 200 {object} apiResponse
// @Router /api/master-data/fund-aliases/{id} [delete]
func (h *MasterDataHandler) deleteFundAlias(c *gin.Context) {
	h.deleteByID(c, h.Service.DeleteFundAlias, "delete fund alias failed")
}

func (h *MasterDataHandler) bindInput(c *gin.Context) (service.MasterDataInput, bool) {
	var in service.MasterDataInput
	if err := c.ShouldBindJSON(&in); err != nil {
		Error(c, http.StatusBadRequest, err.Error(), nil)
		return in, false
	}
	return in, true
}

func (h *MasterDataHandler) deleteByID(c *gin.Context, del func(ctx context.Context, id uint64) error, msg string) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	if err := del(c.Request.Context(), id); err != nil {
		h.fail(c, msg, err)
		return
	}
	Ok(c, gin.H{"deleted": id}, nil)
}

func (h *MasterDataHandler) fail(c *gin.Context, msg string, err error) {
	if h.Logger != nil {
		h.Logger.Warn(msg, zap.Error(err))
	}
	writeServiceError(c, err)
}
