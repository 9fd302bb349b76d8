package models

// HealthResponse is the response for GET /api/v1/health.
type HealthResponse struct {
	Status        string `json:"status"` // "healthy" or "degraded"
	Uptime        string `json:"uptime"`
	ActiveStreams int    `json:"active_streams"`
	Version       string `json:"version"`
}

// APIResponse is the generic envelope for non-streaming JSON endpoints
// (auth and rate-limit rejections, profile proxy failures).
type APIResponse struct {
	Success bool         `json:"success"`
	Error   *ErrorDetail `json:"error,omitempty"`
}
