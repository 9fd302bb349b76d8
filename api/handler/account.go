package handler

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/hashlens/hashlens/graph"
)

// Account returns a handler for GET /api/v1/profile.
//
// Proxies the graph API business-account lookup and returns the upstream
// JSON verbatim. Upstream failures collapse to a generic 500 so API
// credentials never leak through error bodies.
func Account(gc *graph.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		raw, err := gc.AccountInfo(c.Request.Context())
		if err != nil {
			slog.Error("account info proxy failed", "error", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Something went wrong"})
			return
		}
		c.Data(http.StatusOK, "application/json", raw)
	}
}
