package handlers

import (
	"errors"
	"net/http"

	"github.com/ecclesiahq/church_ledger_app/internal/apperrors"
	"github.com/gin-gonic/gin"
)

// respondWithError maps the application error taxonomy onto HTTP statuses.
// Store failures surface as 500 with an "outcome unknown" hint so clients
// know to re-query before retrying a mutation.
func respondWithError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, apperrors.ErrValidation):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, apperrors.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, apperrors.ErrDuplicate):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, apperrors.ErrConflict):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, apperrors.ErrForbidden):
		c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
	case errors.Is(err, apperrors.ErrStore):
		c.JSON(http.StatusInternalServerError, gin.H{"error": "store failure, outcome unknown; re-query before retrying"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	}
}
