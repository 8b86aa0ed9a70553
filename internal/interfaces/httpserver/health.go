package httpserver

import (
	"github.com/gin-gonic/gin"

	"inboxassist/internal/interfaces/httpserver/response"
)

const (
	HealthVersion = "1.0.0"
	ServiceName   = "inboxassist"
)

// healthCheck handles health check requests
// @Summary Health Check
// @Description Check if the API is healthy
// @Tags Health
// @Produce json
// @Success 200 {object} response.Resp "API is healthy"
// @Router /health [get]
func (srv *HTTPServer) healthCheck(c *gin.Context) {
	response.OK(c, gin.H{
		"status":  "healthy",
		"version": HealthVersion,
		"service": ServiceName,
	})
}
