package server

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	invoicedomain "github.com/invoicely/invoicely/internal/invoice/domain"
	"gorm.io/gorm"
)

var (
	ErrRateLimited = errors.New("rate_limited")
)

type errorPayload struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Details any    `json:"details,omitempty"`
}

type errorResponse struct {
	Error errorPayload `json:"error"`
}

// ErrorHandlingMiddleware maps errors recorded on the context to the wire
// taxonomy. Every error response carries a stable machine-readable code;
// unexpected failures surface as a deliberately generic internal error.
func ErrorHandlingMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if c.Writer.Written() {
			return
		}

		lastErr := c.Errors.Last()
		if lastErr == nil {
			return
		}

		status, payload := mapError(lastErr.Err)
		c.AbortWithStatusJSON(status, errorResponse{Error: payload})
	}
}

func AbortWithError(c *gin.Context, err error) {
	if err == nil {
		return
	}
	_ = c.Error(err)
	c.Abort()
}

func mapError(err error) (int, errorPayload) {
	var vErr *invoicedomain.ValidationErrors
	if errors.As(err, &vErr) && vErr != nil {
		return http.StatusBadRequest, errorPayload{
			Code:    "VALIDATION_ERROR",
			Message: "Invalid invoice data",
			Details: vErr.Errors,
		}
	}

	switch {
	case errors.Is(err, invoicedomain.ErrNotFound),
		errors.Is(err, gorm.ErrRecordNotFound):
		return http.StatusNotFound, errorPayload{
			Code:    "NOT_FOUND",
			Message: "Invoice not found",
		}
	case errors.Is(err, invoicedomain.ErrUnauthorized):
		return http.StatusUnauthorized, errorPayload{
			Code:    "UNAUTHORIZED",
			Message: "Missing or invalid edit token",
		}
	case errors.Is(err, ErrRateLimited):
		return http.StatusTooManyRequests, errorPayload{
			Code:    "RATE_LIMIT_EXCEEDED",
			Message: "Too many requests",
		}
	default:
		return http.StatusInternalServerError, errorPayload{
			Code:    "INTERNAL_ERROR",
			Message: "An unexpected error occurred",
		}
	}
}
