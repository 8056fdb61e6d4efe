package middleware

import (
	"errors"   // Error inspection
	"net/http" // HTTP status codes

	"contact_manager/internal/apperror" // Typed errors

	"github.com/gin-gonic/gin"   // Gin web framework
	"github.com/sirupsen/logrus" // Logrus for structured logging
)

// ErrorHandler turns the last error recorded with c.Error into the JSON error
// envelope. It is the only place where errors become status codes.
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next() // Run the handlers first

		last := c.Errors.Last()
		if last == nil || c.Writer.Written() {
			return
		}
		err := last.Err

		var verr *apperror.ValidationError
		if errors.As(err, &verr) && len(verr.Fields) > 0 {
			c.JSON(http.StatusBadRequest, gin.H{"errors": verr.Fields}) // Field-level detail
			return
		}
		var coded apperror.StatusCoder
		if errors.As(err, &coded) {
			c.JSON(coded.StatusCode(), gin.H{"errors": coded.Error()})
			return
		}

		// Anything else is unexpected; keep the detail in the logs only
		logrus.WithFields(logrus.Fields{
			"method": c.Request.Method,
			"path":   c.Request.URL.Path,
			"error":  err.Error(),
		}).Error("Request failed")
		c.JSON(http.StatusInternalServerError, gin.H{"errors": "Internal server error"})
	}
}
