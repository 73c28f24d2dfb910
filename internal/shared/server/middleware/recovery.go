package middleware

import (
	"fmt"
	"io"
	"net/http"
	"runtime/debug"

	"github.com/gin-gonic/gin"

	"dmappex-backend/internal/shared/server/respond"
	"dmappex-backend/internal/shared/telemetry"
)

// Recovery turns a handler panic into a 500 {"detail": ...} body. gin detects
// broken client connections and skips the response for those.
func Recovery() gin.HandlerFunc {
	return gin.CustomRecoveryWithWriter(io.Discard, func(c *gin.Context, rec any) {
		telemetry.Error("http.panic", map[string]any{
			"request_id": RequestIDFromContext(c),
			"route":      c.FullPath(),
			"method":     c.Request.Method,
			"panic":      fmt.Sprint(rec),
			"stack":      string(debug.Stack()),
		})
		respond.Error(c, http.StatusInternalServerError, "Internal Server Error")
	})
}
