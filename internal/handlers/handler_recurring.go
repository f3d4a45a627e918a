package handlers

import (
	"log/slog"
	"net/http"
	"time"

	portssvc "github.com/ecclesiahq/church_ledger_app/internal/core/ports/services"
	"github.com/ecclesiahq/church_ledger_app/internal/dto"
	"github.com/ecclesiahq/church_ledger_app/internal/middleware"
	"github.com/gin-gonic/gin"
)

// recurringHandler handles recurring definition endpoints.
type recurringHandler struct {
	recurringService portssvc.RecurringSvcFacade
	now              func() time.Time
}

func newRecurringHandler(recurringService portssvc.RecurringSvcFacade, now func() time.Time) *recurringHandler {
	if now == nil {
		now = time.Now
	}
	return &recurringHandler{recurringService: recurringService, now: now}
}

// createRecurring godoc
// @Summary Create a recurring definition
// @Description Persists the definition and eagerly materializes its first occurrence
// @Tags recurring
// @Accept json
// @Produce json
// @Param churchID path string true "Church ID"
// @Param definition body dto.CreateRecurringRequest true "Definition details"
// @Success 201 {object} dto.CreateRecurringResponse
// @Failure 400 {object} map[string]string "Invalid request or failed validation"
// @Security BearerAuth
// @Router /churches/{churchID}/recurring [post]
func (h *recurringHandler) createRecurring(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.CreateRecurringRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for createRecurring", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	def, occurrence, err := h.recurringService.CreateRecurring(c.Request.Context(), c.Param("churchID"), req, userID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.CreateRecurringResponse{
		Definition:      dto.ToRecurringDefinitionResponse(def),
		FirstOccurrence: dto.ToObligationResponse(occurrence, h.now()),
	})
}

// renewRecurring godoc
// @Summary Renew a recurring definition
// @Description Materializes the next occurrence using the roll-to-next-month rule
// @Tags recurring
// @Produce json
// @Param churchID path string true "Church ID"
// @Param recurringDefID path string true "Definition ID"
// @Success 201 {object} dto.ObligationResponse
// @Failure 404 {object} map[string]string "Definition not found"
// @Failure 409 {object} map[string]string "Definition inactive or expired"
// @Security BearerAuth
// @Router /churches/{churchID}/recurring/{recurringDefID}/renew [post]
func (h *recurringHandler) renewRecurring(c *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	occurrence, err := h.recurringService.Renew(c.Request.Context(), c.Param("churchID"), c.Param("recurringDefID"), userID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToObligationResponse(occurrence, h.now()))
}

// deactivateRecurring godoc
// @Summary Deactivate a recurring definition
// @Description Stops the definition from producing occurrences or report projections
// @Tags recurring
// @Produce json
// @Param churchID path string true "Church ID"
// @Param recurringDefID path string true "Definition ID"
// @Success 204
// @Failure 404 {object} map[string]string "Definition not found"
// @Security BearerAuth
// @Router /churches/{churchID}/recurring/{recurringDefID} [delete]
func (h *recurringHandler) deactivateRecurring(c *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	if err := h.recurringService.Deactivate(c.Request.Context(), c.Param("churchID"), c.Param("recurringDefID"), userID); err != nil {
		respondWithError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// getRecurring godoc
// @Summary Get one recurring definition
// @Tags recurring
// @Produce json
// @Param churchID path string true "Church ID"
// @Param recurringDefID path string true "Definition ID"
// @Success 200 {object} dto.RecurringDefinitionResponse
// @Failure 404 {object} map[string]string "Definition not found"
// @Security BearerAuth
// @Router /churches/{churchID}/recurring/{recurringDefID} [get]
func (h *recurringHandler) getRecurring(c *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	def, err := h.recurringService.GetDefinitionByID(c.Request.Context(), c.Param("churchID"), c.Param("recurringDefID"), userID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToRecurringDefinitionResponse(def))
}

// listRecurring godoc
// @Summary List recurring definitions
// @Tags recurring
// @Produce json
// @Param churchID path string true "Church ID"
// @Param activeOnly query bool false "Drop deactivated definitions"
// @Success 200 {object} dto.ListRecurringResponse
// @Security BearerAuth
// @Router /churches/{churchID}/recurring [get]
func (h *recurringHandler) listRecurring(c *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	activeOnly := c.Query("activeOnly") == "true"
	resp, err := h.recurringService.ListDefinitions(c.Request.Context(), c.Param("churchID"), userID, activeOnly)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// registerRecurringRoutes registers recurring definition routes
func registerRecurringRoutes(group *gin.RouterGroup, recurringService portssvc.RecurringSvcFacade, now func() time.Time) {
	recurringHandler := newRecurringHandler(recurringService, now)

	recurring := group.Group("/recurring")
	{
		recurring.POST("", recurringHandler.createRecurring)
		recurring.GET("", recurringHandler.listRecurring)
		recurring.GET("/:recurringDefID", recurringHandler.getRecurring)
		recurring.POST("/:recurringDefID/renew", recurringHandler.renewRecurring)
		recurring.DELETE("/:recurringDefID", recurringHandler.deactivateRecurring)
	}
}
