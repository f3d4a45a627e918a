package handlers

import (
	"log/slog"
	"net/http"

	portssvc "github.com/ecclesiahq/church_ledger_app/internal/core/ports/services"
	"github.com/ecclesiahq/church_ledger_app/internal/dto"
	"github.com/ecclesiahq/church_ledger_app/internal/middleware"
	"github.com/gin-gonic/gin"
)

// churchHandler handles church (tenant) management requests.
type churchHandler struct {
	churchService portssvc.ChurchSvcFacade
}

func newChurchHandler(churchService portssvc.ChurchSvcFacade) *churchHandler {
	return &churchHandler{churchService: churchService}
}

// createChurch godoc
// @Summary Create a church
// @Description Creates a church with the authenticated user as admin
// @Tags churches
// @Accept json
// @Produce json
// @Param church body dto.CreateChurchRequest true "Church details"
// @Success 201 {object} dto.ChurchResponse
// @Failure 400 {object} map[string]string "Invalid request format"
// @Security BearerAuth
// @Router /churches [post]
func (h *churchHandler) createChurch(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.CreateChurchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for createChurch", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	church, err := h.churchService.CreateChurch(c.Request.Context(), req, userID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToChurchResponse(church))
}

// listChurches godoc
// @Summary List the authenticated user's churches
// @Tags churches
// @Produce json
// @Success 200 {array} dto.ChurchResponse
// @Security BearerAuth
// @Router /churches [get]
func (h *churchHandler) listChurches(c *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	churches, err := h.churchService.ListChurches(c.Request.Context(), userID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	responses := make([]dto.ChurchResponse, len(churches))
	for i := range churches {
		responses[i] = dto.ToChurchResponse(&churches[i])
	}
	c.JSON(http.StatusOK, responses)
}

// getChurch godoc
// @Summary Get one church
// @Tags churches
// @Produce json
// @Param churchID path string true "Church ID"
// @Success 200 {object} dto.ChurchResponse
// @Failure 404 {object} map[string]string "Church not found"
// @Security BearerAuth
// @Router /churches/{churchID} [get]
func (h *churchHandler) getChurch(c *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	church, err := h.churchService.GetChurchByID(c.Request.Context(), c.Param("churchID"), userID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToChurchResponse(church))
}

// addMember godoc
// @Summary Add a member to a church
// @Description Adds a user with a role; requires the admin role
// @Tags churches
// @Accept json
// @Produce json
// @Param churchID path string true "Church ID"
// @Param member body dto.AddChurchMemberRequest true "Member details"
// @Success 204
// @Failure 400 {object} map[string]string "Invalid request format"
// @Failure 403 {object} map[string]string "Requires admin role"
// @Failure 409 {object} map[string]string "Already a member"
// @Security BearerAuth
// @Router /churches/{churchID}/members [post]
func (h *churchHandler) addMember(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.AddChurchMemberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for addMember", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	if err := h.churchService.AddMember(c.Request.Context(), c.Param("churchID"), req, userID); err != nil {
		respondWithError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// registerChurchRoutes registers church management routes plus the
// church-scoped ledger routes.
func registerChurchRoutes(group *gin.RouterGroup, services *portssvc.ServiceProvider) {
	churchHandler := newChurchHandler(services.ChurchSvc)

	churches := group.Group("/churches")
	{
		churches.POST("", churchHandler.createChurch)
		churches.GET("", churchHandler.listChurches)
		churches.GET("/:churchID", churchHandler.getChurch)
		churches.POST("/:churchID/members", churchHandler.addMember)

		scoped := churches.Group("/:churchID")
		registerAccountRoutes(scoped, services.AccountSvc)
		registerJournalRoutes(scoped, services.JournalSvc)
		registerObligationRoutes(scoped, services.ObligationSvc, services.Now)
		registerRecurringRoutes(scoped, services.RecurringSvc, services.Now)
		registerReportRoutes(scoped, services.ReportSvc)
	}
}
