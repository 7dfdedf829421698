package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"connplanner/internal/service"
)

type ConnectionHandler struct {
	Service *service.ConnectionService
	Logger  *zap.Logger
}

func (h *ConnectionHandler) Register(r *gin.Engine) {
	group := r.Group("/api/connections")
	group.GET("", h.list)
	group.GET("/:id", h.get)
	group.POST("", h.create)
	group.PUT("/:id", h.update)
	group.DELETE("/:id", h.remove)
	group.POST("/:id/copy", h.copy)
}

// @Summary List connections
// @Tags connections
// @Param search query string false "filter by name"
// @Param page query int false "page index"
// @Param size query int false "page size"
// @Success 200 {object} apiResponse
// @Router /api/connections [get]
func (h *ConnectionHandler) list(c *gin.Context) {
	page, size := pageQuery(c)
	result, err := h.Service.FindAll(c.Request.Context(), strQuery(c, "search"), page, size)
	if err != nil {
		h.fail(c, "list connections failed", err)
		return
	}
	Ok(c, result, nil)
}

// @Summary Get connection
// @Tags connections
// @Param id path int true "connection id"
// @Success 200 {object} apiResponse
// @Router /api/connections/{id} [get]
func (h *ConnectionHandler) get(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	conn, err := h.Service.FindByID(c.Request.Context(), id)
	if err != nil {
		h.fail(c, "get connection failed", err)
		return
	}
	Ok(c, conn, nil)
}

// @Summary Create connection
// @Tags connections
// @Param body body service.ConnectionInput true "connection"
// @Success 200 {object} apiResponse
// @Router /api/connections [post]
func (h *ConnectionHandler) create(c *gin.Context) {
	var in service.ConnectionInput
	if err := c.ShouldBindJSON(&in); err != nil {
		Error(c, http.StatusBadRequest, err.Error(), nil)
		return
	}
	conn, err := h.Service.Create(c.Request.Context(), in)
	if err != nil {
		h.fail(c, "create connection failed", err)
		return
	}
	Ok(c, conn, nil)
}

// @Summary Update connection
// @Tags connections
// @Param id path int true "connection id"
// @Param body body service.ConnectionInput true "connection"
// @Success 200 {object} apiResponse
// @Router /api/connections/{id} [put]
func (h *ConnectionHandler) update(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	var in service.ConnectionInput
	if err := c.ShouldBindJSON(&in); err != nil {
		Error(c, http.StatusBadRequest, err.Error(), nil)
		return
	}
	conn, err := h.Service.Update(c.Request.Context(), id, in)
	if err != nil {
		h.fail(c, "update connection failed", err)
		return
	}
	Ok(c, conn, nil)
}

// @Summary Delete connection
// @Tags connections
// @Param id path int true "connection id"
// @Success 200 {object} apiResponse
// @Router /api/connections/{id} [delete]
func (h *ConnectionHandler) remove(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	if err := h.Service.Delete(c.Request.Context(), id); err != nil {
		h.fail(c, "delete connection failed", err)
		return
	}
	Ok(c, gin.H{"deleted": id}, nil)
}

// @Summary Copy connection
// @Tags connections
// @Param id path int true "connection id"
// @Success 200 {object} apiResponse
// @Router /api/connections/{id}/copy [post]
func (h *ConnectionHandler) copy(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	conn, err := h.Service.Copy(c.Request.Context(), id)
	if err != nil {
		h.fail(c, "copy connection failed", err)
		return
	}
	Ok(c, conn, nil)
}

func (h *ConnectionHandler) fail(c *gin.Context, msg string, err error) {
	if h.Logger != nil {
		h.Logger.Warn(msg, zap.Error(err))
	}
	writeServiceError(c, err)
}
