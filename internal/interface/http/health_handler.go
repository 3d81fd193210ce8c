package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type HealthHandler struct {
	AppName string
}

func NewHealthHandler(appName string) *HealthHandler {
	return &HealthHandler{AppName: appName}
}

// Root GET /
func (h *HealthHandler) Root(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"message": h.AppName + " API is running..."})
}

// Health GET /api/health
func (h *HealthHandler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "Server is running!"})
}
