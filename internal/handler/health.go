package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Health godoc
// @Summary      Health check
// @Description  Returns service health and the last upstream refresh error, if any
// @Tags         health
// @Produce      json
// @Success      200  {object}  map[string]string
// @Router       /health [get]
func (h *Handler) Health(c *gin.Context) {
	resp := gin.H{"status": "healthy"}
	if h.signals != nil {
		if err := h.signals.LastError(); err != nil {
			resp["status"] = "degraded"
			resp["last_refresh_error"] = err.Error()
		}
	}
	c.JSON(http.StatusOK, resp)
}
