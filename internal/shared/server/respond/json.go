package respond

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// MessageResponse is the body of informational endpoints such as the root banner.
type MessageResponse struct {
	Message string `json:"message"`
}

// OK writes payload with 200 OK.
func OK(c *gin.Context, payload any) {
	c.JSON(http.StatusOK, payload)
}

// Message writes {"message": msg} with 200 OK.
func Message(c *gin.Context, msg string) {
	OK(c, MessageResponse{Message: msg})
}
