package response

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// UserBody is the public view of a user record.
type UserBody struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

// APIResponse is the JSON body every auth endpoint writes.
type APIResponse struct {
	Message   string      `json:"message"`
	Token     string      `json:"token,omitempty"`
	ExpiresAt string      `json:"expires_at,omitempty"`
	User      *UserBody   `json:"user,omitempty"`
	Details   interface{} `json:"details,omitempty"`
	RequestID string      `json:"request_id,omitempty"`
}

// Success writes body with status and stamps the request id.
func Success(ctx *gin.Context, status int, body APIResponse) APIResponse {
	if status == 0 {
		status = http.StatusOK
	}
	body.RequestID = ctx.GetString("request_id")
	ctx.JSON(status, body)
	return body
}

// Error writes a failure body and aborts the handler chain.
func Error(ctx *gin.Context, status int, message string, details interface{}) APIResponse {
	if status == 0 {
		status = http.StatusBadRequest
	}
	body := APIResponse{
		Message:   message,
		Details:   details,
		RequestID: ctx.GetString("request_id"),
	}
	ctx.AbortWithStatusJSON(status, body)
	return body
}

// PanicBody is written when a handler panics.
type PanicBody struct {
	Error string `json:"error"`
}
