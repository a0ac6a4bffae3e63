package middleware

import (
	"errors"
	"net/http"

	"go-talent-marketplace/internal/delivery/http/response"
	"go-talent-marketplace/pkg/apperror"
	"go-talent-marketplace/pkg/logger"

	"github.com/gin-gonic/gin"
)

// ErrorHandler maps errors attached to the gin context onto the standard
// JSON envelope. Anything that is not an AppError is logged server-side and
// reported as a generic 500 so internals never leak to clients.
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) > 0 {
			err := c.Errors.Last().Err
			var appErr *apperror.AppError
			if errors.As(err, &appErr) {
				response.Error(c, appErr.Code, appErr.Message, nil)
			} else {
				logger.Log.Error("unhandled error", "error", err, "path", c.FullPath())
				response.Error(c, http.StatusInternalServerError, "An unexpected error occurred. Please try again later.", nil)
			}
		}
	}
}
