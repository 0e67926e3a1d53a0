package handlers

import (
	"errors"
	"net/http"

	"github.com/apex/log"
	"github.com/gin-gonic/gin"

	"launcher/core"
)

// statusFor maps an error to the HTTP status clients see.
func statusFor(err error) int {
	switch core.KindOf(err) {
	case core.KindValidation:
		return http.StatusBadRequest
	case core.KindNotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

// respondError aborts with {"error": message}. Only the client-safe message of
// a LauncherError is returned; the underlying cause goes to the log.
func respondError(c *gin.Context, err error) {
	status := statusFor(err)

	message := "internal server error"
	var le *core.LauncherError
	if errors.As(err, &le) {
		message = le.Message
	}

	if status == http.StatusInternalServerError {
		log.WithError(err).WithFields(log.Fields{
			"method": c.Request.Method,
			"path":   c.FullPath(),
		}).Error("request failed")
	}

	c.AbortWithStatusJSON(status, gin.H{"error": message})
}

func badRequest(c *gin.Context, message string) {
	c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": message})
}
