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

// obligationHandler handles the receivable/payable lifecycle endpoints.
type obligationHandler struct {
	obligationService portssvc.ObligationSvcFacade
	now               func() time.Time
}

func newObligationHandler(obligationService portssvc.ObligationSvcFacade, now func() time.Time) *obligationHandler {
	if now == nil {
		now = time.Now
	}
	return &obligationHandler{obligationService: obligationService, now: now}
}

// createObligation godoc
// @Summary Create a receivable or payable
// @Description Records a single direct-entry obligation; no journal entry is posted until settlement
// @Tags obligations
// @Accept json
// @Produce json
// @Param churchID path string true "Church ID"
// @Param obligation body dto.CreateObligationRequest true "Obligation details"
// @Success 201 {object} dto.ObligationResponse
// @Failure 400 {object} map[string]string "Invalid request or failed validation"
// @Security BearerAuth
// @Router /churches/{churchID}/obligations [post]
func (h *obligationHandler) createObligation(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.CreateObligationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for createObligation", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	obligation, err := h.obligationService.CreateObligation(c.Request.Context(), c.Param("churchID"), req, userID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToObligationResponse(obligation, h.now()))
}

// splitInstallments godoc
// @Summary Split a charge into installments
// @Description Splits one total into N dated obligations sharing a batch id; due dates advance by calendar month
// @Tags obligations
// @Accept json
// @Produce json
// @Param churchID path string true "Church ID"
// @Param split body dto.SplitInstallmentsRequest true "Split details"
// @Success 201 {object} dto.ListObligationsResponse
// @Failure 400 {object} map[string]string "Invalid request or failed validation"
// @Security BearerAuth
// @Router /churches/{churchID}/obligations/installments [post]
func (h *obligationHandler) splitInstallments(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.SplitInstallmentsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for splitInstallments", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	installments, err := h.obligationService.SplitIntoInstallments(c.Request.Context(), c.Param("churchID"), req, userID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ListObligationsResponse{Obligations: dto.ToObligationResponses(installments, h.now())})
}

// settle godoc
// @Summary Settle one obligation
// @Description Marks the obligation paid and posts the paired journal entry as one unit
// @Tags obligations
// @Accept json
// @Produce json
// @Param churchID path string true "Church ID"
// @Param obligationID path string true "Obligation ID"
// @Param settlement body dto.SettleRequest true "Settlement details"
// @Success 200 {object} dto.ObligationResponse
// @Failure 404 {object} map[string]string "Obligation not found"
// @Failure 409 {object} map[string]string "Already settled"
// @Security BearerAuth
// @Router /churches/{churchID}/obligations/{obligationID}/settle [post]
func (h *obligationHandler) settle(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.SettleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for settle", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	obligation, err := h.obligationService.Settle(c.Request.Context(), c.Param("churchID"), c.Param("obligationID"), req, userID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToObligationResponse(obligation, h.now()))
}

// settleBatch godoc
// @Summary Settle a batch of obligations
// @Description Applies the same settlement to every id; not atomic, outcomes are reported per id
// @Tags obligations
// @Accept json
// @Produce json
// @Param churchID path string true "Church ID"
// @Param batch body dto.SettleManyRequest true "Batch details"
// @Success 200 {object} dto.SettleManyResponse
// @Failure 400 {object} map[string]string "Invalid request format"
// @Security BearerAuth
// @Router /churches/{churchID}/obligations/settle-batch [post]
func (h *obligationHandler) settleBatch(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.SettleManyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for settleBatch", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	resp, err := h.obligationService.SettleMany(c.Request.Context(), c.Param("churchID"), req, userID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// cancelObligation godoc
// @Summary Cancel an unsettled obligation
// @Description Deletes the record; installments fan out to the whole unsettled sibling batch
// @Tags obligations
// @Produce json
// @Param churchID path string true "Church ID"
// @Param obligationID path string true "Obligation ID"
// @Success 204
// @Failure 404 {object} map[string]string "Obligation not found"
// @Failure 409 {object} map[string]string "Already settled"
// @Security BearerAuth
// @Router /churches/{churchID}/obligations/{obligationID} [delete]
func (h *obligationHandler) cancelObligation(c *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	if err := h.obligationService.Cancel(c.Request.Context(), c.Param("churchID"), c.Param("obligationID"), userID); err != nil {
		respondWithError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// getObligation godoc
// @Summary Get one obligation
// @Tags obligations
// @Produce json
// @Param churchID path string true "Church ID"
// @Param obligationID path string true "Obligation ID"
// @Success 200 {object} dto.ObligationResponse
// @Failure 404 {object} map[string]string "Obligation not found"
// @Security BearerAuth
// @Router /churches/{churchID}/obligations/{obligationID} [get]
func (h *obligationHandler) getObligation(c *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	obligation, err := h.obligationService.GetObligationByID(c.Request.Context(), c.Param("churchID"), c.Param("obligationID"), userID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToObligationResponse(obligation, h.now()))
}

// listObligations godoc
// @Summary List obligations
// @Description Lists obligations ordered by due date; OPEN/OVERDUE filtering is derived at read time
// @Tags obligations
// @Produce json
// @Param churchID path string true "Church ID"
// @Param status query string false "OPEN, OVERDUE or PAID"
// @Param counterpartyID query string false "Counterparty filter"
// @Param isPayable query bool false "Payables only / receivables only"
// @Success 200 {object} dto.ListObligationsResponse
// @Security BearerAuth
// @Router /churches/{churchID}/obligations [get]
func (h *obligationHandler) listObligations(c *gin.Context) {
	var params dto.ListObligationsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters"})
		return
	}

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	resp, err := h.obligationService.ListObligations(c.Request.Context(), c.Param("churchID"), userID, params)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// registerObligationRoutes registers receivable/payable lifecycle routes
func registerObligationRoutes(group *gin.RouterGroup, obligationService portssvc.ObligationSvcFacade, now func() time.Time) {
	obligationHandler := newObligationHandler(obligationService, now)

	obligations := group.Group("/obligations")
	{
		obligations.POST("", obligationHandler.createObligation)
		obligations.GET("", obligationHandler.listObligations)
		obligations.POST("/installments", obligationHandler.splitInstallments)
		obligations.POST("/settle-batch", obligationHandler.settleBatch)
		obligations.GET("/:obligationID", obligationHandler.getObligation)
		obligations.POST("/:obligationID/settle", obligationHandler.settle)
		obligations.DELETE("/:obligationID", obligationHandler.cancelObligation)
	}
}
