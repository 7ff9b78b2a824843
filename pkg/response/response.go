package response

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

const (
	StatusSuccess = "success"
	StatusError   = "error"
)

// APIResponse is the envelope every endpoint writes.
type APIResponse[T any] struct {
	Status    string     `json:"status"`
	RequestID string     `json:"request_id,omitempty"`
	Timestamp time.Time  `json:"timestamp"`
	Message   string     `json:"message,omitempty"`
	Data      T          `json:"data"`
	Error     *ErrorBody `json:"error,omitempty"`
}

// ErrorBody carries a machine-readable code next to the human message.
type ErrorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Details any    `json:"details,omitempty"`
}

// Success writes a success envelope and returns it.
func Success[T any](c *gin.Context, status int, data T, message string) APIResponse[T] {
	if status == 0 {
		status = http.StatusOK
	}
	resp := APIResponse[T]{
		Status:    StatusSuccess,
		RequestID: c.GetString("request_id"),
		Timestamp: time.Now().UTC(),
		Message:   message,
		Data:      data,
	}
	c.JSON(status, resp)
	return resp
}

// Error writes an error envelope and aborts the handler chain.
func Error(c *gin.Context, status int, code, message string, details any) APIResponse[any] {
	if status == 0 {
		status = http.StatusBadRequest
	}
	resp := APIResponse[any]{
		Status:    StatusError,
		RequestID: c.GetString("request_id"),
		Timestamp: time.Now().UTC(),
		Error:     &ErrorBody{Code: code, Message: message, Details: details},
	}
	c.AbortWithStatusJSON(status, resp)
	return resp
}
