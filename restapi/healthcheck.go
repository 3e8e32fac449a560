package restapi

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

func (h *Handler) healthcheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"uptime":  int64(time.Since(h.startedAt).Seconds()),
		"version": h.version,
	})
}
