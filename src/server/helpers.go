package server

import (
	"net/http"
	"strconv"

	"stock-dashboard/src/helpers"

	"github.com/gin-gonic/gin"
)

const (
	defaultListLimit = 50
	maxListLimit     = 500
)

// -----------------------------------------------------------------------------

// parseLimit reads a positive integer query parameter, clamped to maxListLimit.
func parseLimit(c *gin.Context, key string, fallback int) (int, error) {
	raw := c.Query(key)
	if raw == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n <= 0 {
		return 0, helpers.NewValidationError("%s must be a positive integer, got %q", key, raw)
	}
	if n > maxListLimit {
		n = maxListLimit
	}
	return n, nil
}

// -----------------------------------------------------------------------------

// bindJSON decodes the request body into dst, wrapping failures as validation errors.
func bindJSON(c *gin.Context, dst interface{}) error {
	if err := c.ShouldBindJSON(dst); err != nil {
		return helpers.NewValidationError("invalid request body: %v", err)
	}
	return nil
}

// -----------------------------------------------------------------------------

// respondError maps validation errors to 400 and everything else to 500.
func (s *DashboardServer) respondError(c *gin.Context, err error) {
	if helpers.IsValidation(err) {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	s.Logger.Error("Request %s %s failed: %v", c.Request.Method, c.Request.URL.Path, err)
	c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
}
