package response

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// ErrorBody is the JSON shape for every failed request. Message is always
// human-readable; internal error text never reaches clients.
type ErrorBody struct {
	Status    int    `json:"status"`
	Message   string `json:"message"`
	Details   any    `json:"details,omitempty"`
	RequestID string `json:"request_id,omitempty"`
}

// Error writes a JSON error body and aborts the request.
// Successful responses carry the entity itself, so there is no
// corresponding success envelope.
func Error(c *gin.Context, status int, message string, details any) {
	if status == 0 {
		status = http.StatusInternalServerError
	}
	c.AbortWithStatusJSON(status, ErrorBody{
		Status:    status,
		Message:   message,
		Details:   details,
		RequestID: c.GetString("request_id"),
	})
}
