package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/hoteldesk/chat-admin/src/services"
	"github.com/rs/zerolog/log"
)

// writeError maps service errors onto the HTTP taxonomy. Store failures
// are logged but the response never carries the raw store error.
func writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrCustomerNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "customer not found"})
	case errors.Is(err, services.ErrValidation):
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
	case errors.Is(err, services.ErrUnauthenticated):
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthenticated"})
	default:
		log.Error().Err(err).Str("path", c.Request.URL.Path).Msg("store error")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "store unavailable"})
	}
}
