// Package controllers wires the gin HTTP surface to the services. Each
// controller holds its service; services return sentinel errors and the
// helpers here translate them to status codes.
package controllers

import (
	"errors"
	"net/http"
	"strconv"

	"hms-backend/services"
	"hms-backend/utils"

	"github.com/gin-gonic/gin"
)

// respondServiceError maps the service error taxonomy onto HTTP codes.
// Validation messages are passed through so the client sees which
// precondition failed.
func respondServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrValidation):
		utils.JSONError(c, http.StatusBadRequest, err.Error())
	case errors.Is(err, services.ErrNotFound):
		utils.JSONError(c, http.StatusNotFound, "not found")
	case errors.Is(err, services.ErrConflict), errors.Is(err, services.ErrInvalidTransition):
		utils.JSONError(c, http.StatusConflict, err.Error())
	case errors.Is(err, services.ErrUnavailable):
		utils.JSONError(c, http.StatusServiceUnavailable, "storage unavailable, please retry")
	default:
		utils.JSONError(c, http.StatusInternalServerError, "internal error")
	}
}

func parseIDParam(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 32)
	if err != nil || id == 0 {
		utils.JSONError(c, http.StatusBadRequest, "invalid id")
		return 0, false
	}
	return uint(id), true
}

// currentUsername returns the authenticated admin's username, if any.
func currentUsername(c *gin.Context) string {
	if v, ok := c.Get("username"); ok {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return ""
}
