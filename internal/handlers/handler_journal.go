package handlers

import (
	"log/slog"
	"net/http"

	portssvc "github.com/ecclesiahq/church_ledger_app/internal/core/ports/services"
	"github.com/ecclesiahq/church_ledger_app/internal/dto"
	"github.com/ecclesiahq/church_ledger_app/internal/middleware"
	"github.com/gin-gonic/gin"
)

// journalHandler handles HTTP requests for journal entries.
type journalHandler struct {
	journalService portssvc.JournalSvcFacade
}

func newJournalHandler(journalService portssvc.JournalSvcFacade) *journalHandler {
	return &journalHandler{journalService: journalService}
}

// postEntry godoc
// @Summary Post a journal entry
// @Description Creates one balanced debit/credit entry; the journal is append-only
// @Tags journal
// @Accept json
// @Produce json
// @Param churchID path string true "Church ID"
// @Param entry body dto.PostEntryRequest true "Entry details"
// @Success 201 {object} dto.JournalEntryResponse
// @Failure 400 {object} map[string]string "Invalid request or failed validation"
// @Security BearerAuth
// @Router /churches/{churchID}/journal-entries [post]
func (h *journalHandler) postEntry(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.PostEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for postEntry", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	entry, err := h.journalService.PostEntry(c.Request.Context(), c.Param("churchID"), req, userID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	logger.Info("Journal entry posted", slog.String("entry_id", entry.EntryID))
	c.JSON(http.StatusCreated, dto.ToJournalEntryResponse(entry))
}

// getEntry godoc
// @Summary Get a journal entry
// @Tags journal
// @Produce json
// @Param churchID path string true "Church ID"
// @Param entryID path string true "Entry ID"
// @Success 200 {object} dto.JournalEntryResponse
// @Failure 404 {object} map[string]string "Entry not found"
// @Security BearerAuth
// @Router /churches/{churchID}/journal-entries/{entryID} [get]
func (h *journalHandler) getEntry(c *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	entry, err := h.journalService.GetEntryByID(c.Request.Context(), c.Param("churchID"), c.Param("entryID"), userID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToJournalEntryResponse(entry))
}

// listEntries godoc
// @Summary List journal entries
// @Description Lists entries for a church, newest first, optionally windowed by date or account
// @Tags journal
// @Produce json
// @Param churchID path string true "Church ID"
// @Param from query string false "From date (RFC 3339)"
// @Param to query string false "To date (RFC 3339)"
// @Param accountCode query string false "Matches either side of the entry"
// @Param limit query int false "Max rows"
// @Success 200 {object} dto.ListEntriesResponse
// @Security BearerAuth
// @Router /churches/{churchID}/journal-entries [get]
func (h *journalHandler) listEntries(c *gin.Context) {
	var params dto.ListEntriesParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters"})
		return
	}

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	resp, err := h.journalService.ListEntries(c.Request.Context(), c.Param("churchID"), userID, params)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// registerJournalRoutes registers journal specific routes
func registerJournalRoutes(group *gin.RouterGroup, journalService portssvc.JournalSvcFacade) {
	journalHandler := newJournalHandler(journalService)

	entries := group.Group("/journal-entries")
	{
		entries.POST("", journalHandler.postEntry)
		entries.GET("", journalHandler.listEntries)
		entries.GET("/:entryID", journalHandler.getEntry)
	}
}
