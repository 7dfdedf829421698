package handler

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"connplanner/internal/service"
)

type apiResponse struct {
	Code    int            `json:"code"`
	Message string         `json:"message"`
	Data    any            `json:"data,omitempty"`
	Meta    map[string]any `json:"meta,omitempty"`
}

func Ok(c *gin.Context, data any, meta map[string]any) {
	c.JSON(http.StatusOK, apiResponse{
		Code:    0,
		Message: "ok",
		Data:    data,
		Meta:    meta,
	})
}

func Error(c *gin.Context, status int, message string, meta map[string]any) {
	c.JSON(status, apiResponse{
		Code:    status,
		Message: message,
		Meta:    meta,
	})
}

// writeServiceError maps the service error taxonomy onto HTTP statuses.
// Unknown errors come back as an opaque 500 so internals never leak.
func writeServiceError(c *gin.Context, err error) {
	var nf *service.NotFoundError
	if errors.As(err, &nf) {
		Error(c, http.StatusNotFound, nf.Error(), nil)
		return
	}
	var dup *service.DuplicateNameError
	if errors.As(err, &dup) {
		Error(c, http.StatusBadRequest, dup.Error(), nil)
		return
	}
	var assoc *service.DuplicateAssociationError
	if errors.As(err, &assoc) {
		Error(c, http.StatusBadRequest, assoc.Error(), nil)
		return
	}
	var inv *service.InvalidInputError
	if errors.As(err, &inv) {
		Error(c, http.StatusBadRequest, inv.Error(), nil)
		return
	}
	if errors.Is(err, service.ErrImmutableField) {
		Error(c, http.StatusBadRequest, service.ErrImmutableField.Error(), nil)
		return
	}
	if errors.Is(err, service.ErrConflict) {
		Error(c, http.StatusConflict, service.ErrConflict.Error(), nil)
		return
	}
	Error(c, http.StatusInternalServerError, "internal error", nil)
}

func idParam(c *gin.Context, key string) (uint64, bool) {
	id, err := strconv.ParseUint(c.Param(key), 10, 64)
	if err != nil || id == 0 {
		Error(c, http.StatusBadRequest, "invalid "+key, nil)
		return 0, false
	}
	return id, true
}

func intQuery(c *gin.Context, key string, def int) int {
	raw := strings.TrimSpace(c.Query(key))
	if raw == "" {
		return def
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return def
	}
	return value
}

func strQuery(c *gin.Context, key string) string {
	return strings.TrimSpace(c.Query(key))
}

func pageQuery(c *gin.Context) (page, size int) {
	return intQuery(c, "page", 0), intQuery(c, "size", 20)
}
