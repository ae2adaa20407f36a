package response

import (
	"net/http"

	"storeadmin-be/internal/apperr"
	"storeadmin-be/internal/logger"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Body is the envelope every endpoint answers with.
type Body struct {
	StatusCode int    `json:"statusCode"`
	Message    string `json:"message"`
	Data       any    `json:"data,omitempty"`
}

func JSON(c *gin.Context, status int, message string, data any) {
	c.JSON(status, Body{
		StatusCode: status,
		Message:    message,
		Data:       data,
	})
}

func OK(c *gin.Context, message string, data any) {
	JSON(c, http.StatusOK, message, data)
}

func Created(c *gin.Context, message string, data any) {
	JSON(c, http.StatusCreated, message, data)
}

// Error maps an application error onto the envelope. Unclassified errors
// become a generic 500 so internals never leak to the caller.
func Error(c *gin.Context, err error) {
	status := statusFor(apperr.KindOf(err))

	message := err.Error()
	if status == http.StatusInternalServerError {
		logger.FromCtx(c.Request.Context()).Error("request failed",
			zap.String("path", c.Request.URL.Path),
			zap.Error(err),
		)
		message = "Internal server error"
	}

	c.JSON(status, Body{
		StatusCode: status,
		Message:    message,
	})
}

func statusFor(kind apperr.Kind) int {
	switch kind {
	case apperr.KindInvalidRequest, apperr.KindInsufficientStock:
		return http.StatusBadRequest
	case apperr.KindUnauthorized:
		return http.StatusUnauthorized
	case apperr.KindForbidden:
		return http.StatusForbidden
	case apperr.KindNotFound:
		return http.StatusNotFound
	case apperr.KindConflict:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}
