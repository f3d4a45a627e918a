package handlers

import (
	"net/http"

	portssvc "github.com/ecclesiahq/church_ledger_app/internal/core/ports/services"
	"github.com/ecclesiahq/church_ledger_app/internal/dto"
	"github.com/gin-gonic/gin"
)

// accountHandler serves the seeded chart of accounts.
type accountHandler struct {
	accountService portssvc.AccountSvcFacade
}

func newAccountHandler(accountService portssvc.AccountSvcFacade) *accountHandler {
	return &accountHandler{accountService: accountService}
}

// listAccounts godoc
// @Summary List the chart of accounts
// @Tags accounts
// @Produce json
// @Param churchID path string true "Church ID"
// @Success 200 {object} dto.ListAccountsResponse
// @Security BearerAuth
// @Router /churches/{churchID}/accounts [get]
func (h *accountHandler) listAccounts(c *gin.Context) {
	accounts, err := h.accountService.ListAccounts(c.Request.Context())
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ListAccountsResponse{Accounts: dto.ToAccountResponses(accounts)})
}

// getAccount godoc
// @Summary Get one account by code
// @Tags accounts
// @Produce json
// @Param churchID path string true "Church ID"
// @Param code path string true "Account code"
// @Success 200 {object} dto.AccountResponse
// @Failure 404 {object} map[string]string "Account not found"
// @Security BearerAuth
// @Router /churches/{churchID}/accounts/{code} [get]
func (h *accountHandler) getAccount(c *gin.Context) {
	account, err := h.accountService.GetAccountByCode(c.Request.Context(), c.Param("code"))
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToAccountResponse(account))
}

// registerAccountRoutes registers chart-of-accounts routes
func registerAccountRoutes(group *gin.RouterGroup, accountService portssvc.AccountSvcFacade) {
	accountHandler := newAccountHandler(accountService)

	accounts := group.Group("/accounts")
	{
		accounts.GET("", accountHandler.listAccounts)
		accounts.GET("/:code", accountHandler.getAccount)
	}
}
