package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/hashlens/hashlens/models"
)

// maxHealthyStreams is the stream count above which health degrades; each
// stream can hold a Chrome process, so a pile-up means trouble.
const maxHealthyStreams = 8

// Health returns a handler for GET /api/v1/health.
func Health(startTime time.Time) gin.HandlerFunc {
	return func(c *gin.Context) {
		active := ActiveStreams()
		status := "healthy"
		if active > maxHealthyStreams {
			status = "degraded"
		}

		c.JSON(http.StatusOK, models.HealthResponse{
			Status:        status,
			Uptime:        time.Since(startTime).Round(time.Second).String(),
			ActiveStreams: active,
			Version:       "0.1.0",
		})
	}
}
