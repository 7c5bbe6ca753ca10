package helpers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

func RespondWithError(c *gin.Context, statusCode int, customMessage string) {
	c.JSON(statusCode, ErrorResponse{
		Error:   http.StatusText(statusCode),
		Message: customMessage,
	})
}

// RespondWithFieldErrors reports a validation failure with per-field detail.
func RespondWithFieldErrors(c *gin.Context, fieldErrors map[string][]string) {
	c.JSON(http.StatusBadRequest, gin.H{
		"error":       http.StatusText(http.StatusBadRequest),
		"message":     "Validation failed.",
		"fieldErrors": fieldErrors,
	})
}
