package ui

import (
	"net/http"

	"ilmakase/internal/errors"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

// statusForCode maps application error codes to HTTP statuses.
func statusForCode(code string) int {
	switch code {
	case errors.CodeValidationError, errors.CodeInsufficientRecords:
		return http.StatusBadRequest
	case errors.CodeUnauthenticated:
		return http.StatusUnauthorized
	case errors.CodeQuotaExceeded:
		return http.StatusForbidden
	case errors.CodeNotFound:
		return http.StatusNotFound
	case errors.CodeUpstreamRateLimited:
		return http.StatusTooManyRequests
	default:
		return http.StatusInternalServerError
	}
}

// respondError writes the error as JSON with its mapped status. Server
// faults are logged with their cause; client faults only surface the
// message.
func respondError(c *gin.Context, err error) {
	code := errors.GetCode(err)
	status := statusForCode(code)

	message := err.Error()
	if status >= http.StatusInternalServerError {
		log.Error().Err(err).Str("path", c.Request.URL.Path).Msg("Request failed")
		message = "internal server error"
	}

	c.JSON(status, gin.H{
		"error": message,
		"code":  code,
	})
}
