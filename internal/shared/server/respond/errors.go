package respond

import (
	"github.com/gin-gonic/gin"

	"dmappex-backend/internal/shared/telemetry"
)

// ErrorResponse is the error envelope returned to clients. Detail is either a
// message string or a list of field errors.
type ErrorResponse struct {
	Detail interface{} `json:"detail"`
}

// FieldError describes one rejected part of a request body.
type FieldError struct {
	Loc  []string `json:"loc"`
	Msg  string   `json:"msg"`
	Type string   `json:"type"`
}

// Error sends an error response and aborts the chain.
func Error(c *gin.Context, status int, detail interface{}) {
	fields := map[string]any{
		"status":     status,
		"path":       c.Request.URL.Path,
		"method":     c.Request.Method,
		"request_id": c.GetString("requestId"),
	}
	if msg, ok := detail.(string); ok {
		fields["detail"] = msg
	}
	telemetry.Error("http.error", fields)

	c.AbortWithStatusJSON(status, ErrorResponse{Detail: detail})
}
