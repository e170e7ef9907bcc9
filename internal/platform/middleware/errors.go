// Package middleware provides the gin middleware shared across routes: the
// error boundary, the session helpers, and the auth guards.
package middleware

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mhodge11/chatty-backend/internal/apperror"
)

// ErrorBoundary converts any error a handler aborted with into the
// `{message, statusCode, status}` response. Errors that are not part of the
// taxonomy map to a generic 500 so internal detail never leaks.
func ErrorBoundary() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		last := c.Errors.Last()
		if last == nil || c.Writer.Written() {
			return
		}

		var appErr *apperror.Error
		if errors.As(last.Err, &appErr) {
			c.JSON(appErr.StatusCode, appErr.Serialize())
			return
		}

		slog.Error("unhandled error", "method", c.Request.Method, "path", c.Request.URL.Path, "error", last.Err)
		internal := apperror.NewInternal("Something went wrong. Try again later.")
		c.JSON(http.StatusInternalServerError, internal.Serialize())
	}
}

// Abort records an error for the boundary and stops the handler chain.
func Abort(c *gin.Context, err error) {
	_ = c.Error(err)
	c.Abort()
}
