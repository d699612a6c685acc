// backend-go/internal/api/handlers/respond.go
package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/pantryplan/backend-go/internal/domain"
	"github.com/pantryplan/backend-go/internal/storage"
)

// respondError maps service errors onto HTTP statuses. Ownership mismatches
// surface as ErrNotFound so responses never reveal rows owned by other users.
// Anything unrecognized logs the detail and answers with a generic 500.
func respondError(c *gin.Context, err error, area string) {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
	case errors.Is(err, domain.ErrEmailTaken):
		c.JSON(http.StatusConflict, gin.H{"error": "email already registered"})
	case errors.Is(err, domain.ErrAlreadyJoined):
		c.JSON(http.StatusConflict, gin.H{"error": "challenge already joined"})
	case errors.Is(err, domain.ErrInvalidCredentials):
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid email or password"})
	case errors.Is(err, storage.ErrDisabled):
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "object storage not configured"})
	default:
		log.Error().Err(err).Msg(area)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	}
}

// pathUUID parses a UUID path parameter, answering 400 itself on failure.
func pathUUID(c *gin.Context, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid " + name})
		return uuid.Nil, false
	}

	return id, true
}
