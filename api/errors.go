package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/poiesic/rightsdesk/core"
	"github.com/poiesic/rightsdesk/library"
	"github.com/poiesic/rightsdesk/scenario"
	"github.com/poiesic/rightsdesk/storage"
)

var (
	// ErrInvalidID is returned for path IDs that are not unsigned integers.
	ErrInvalidID = errors.New("invalid id")

	// ErrComponentRequired is returned when NewServer is missing a dependency.
	ErrComponentRequired = errors.New("server component required")
)

// statusFor maps a domain error to an HTTP status code.
func statusFor(err error) int {
	switch {
	case errors.Is(err, storage.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, library.ErrTemplateLocked):
		return http.StatusForbidden
	case errors.Is(err, library.ErrReferenceRequired),
		errors.Is(err, library.ErrNotPremium),
		errors.Is(err, scenario.ErrUnknownStep),
		errors.Is(err, scenario.ErrPhaseOutOfRange),
		errors.Is(err, core.ErrInvalidKind),
		errors.Is(err, ErrInvalidID):
		return http.StatusBadRequest
	case errors.Is(err, library.ErrPaymentFailed):
		return http.StatusPaymentRequired
	default:
		return http.StatusInternalServerError
	}
}

func (s *Server) fail(c *gin.Context, err error) {
	status := statusFor(err)
	if status == http.StatusInternalServerError {
		s.logger.Error("request failed", "method", c.Request.Method, "path", c.FullPath(), "err", err)
		c.JSON(status, gin.H{"error": "internal error"})
		return
	}
	c.JSON(status, gin.H{"error": err.Error()})
}
