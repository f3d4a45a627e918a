package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	oauth2v2 "google.golang.org/api/oauth2/v2"
	"google.golang.org/api/option"

	portssvc "github.com/ecclesiahq/church_ledger_app/internal/core/ports/services"
	"github.com/ecclesiahq/church_ledger_app/internal/dto"
	"github.com/ecclesiahq/church_ledger_app/internal/middleware"
	"github.com/ecclesiahq/church_ledger_app/internal/platform/config"
	"github.com/ecclesiahq/church_ledger_app/internal/utils"
)

const oauthStateCookie = "oauth_state"

// googleOAuthHandler implements Google sign-in as an alternate login path.
type googleOAuthHandler struct {
	userService portssvc.UserSvcFacade
	cfg         *config.Config
	oauthConfig *oauth2.Config
}

func newGoogleOAuthHandler(userService portssvc.UserSvcFacade, cfg *config.Config) *googleOAuthHandler {
	return &googleOAuthHandler{
		userService: userService,
		cfg:         cfg,
		oauthConfig: &oauth2.Config{
			ClientID:     cfg.GoogleClientID,
			ClientSecret: cfg.GoogleClientSecret,
			RedirectURL:  cfg.GoogleRedirectURL,
			Scopes:       []string{"openid", "email", "profile"},
			Endpoint:     google.Endpoint,
		},
	}
}

// redirectToGoogle godoc
// @Summary Start Google sign-in
// @Description Redirects the browser to Google's consent screen
// @Tags auth
// @Success 307
// @Failure 503 {object} map[string]string "Google OAuth not configured"
// @Router /auth/google/login [get]
func (h *googleOAuthHandler) redirectToGoogle(c *gin.Context) {
	if h.cfg.GoogleClientID == "" {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Google sign-in is not configured"})
		return
	}

	state := uuid.NewString()
	c.SetCookie(oauthStateCookie, state, 300, "/", "", h.cfg.IsProduction, true)
	c.Redirect(http.StatusTemporaryRedirect, h.oauthConfig.AuthCodeURL(state))
}

// handleGoogleCallback godoc
// @Summary Google sign-in callback
// @Description Exchanges the authorization code, resolves the user and returns a bearer token
// @Tags auth
// @Produce json
// @Param state query string true "Anti-forgery state"
// @Param code query string true "Authorization code"
// @Success 200 {object} dto.LoginResponse
// @Failure 400 {object} map[string]string "State mismatch or missing code"
// @Failure 502 {object} map[string]string "Google exchange failed"
// @Router /auth/google/callback [get]
func (h *googleOAuthHandler) handleGoogleCallback(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	ctx := c.Request.Context()

	expectedState, err := c.Cookie(oauthStateCookie)
	if err != nil || expectedState == "" || c.Query("state") != expectedState {
		logger.Warn("OAuth state mismatch")
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid oauth state"})
		return
	}
	c.SetCookie(oauthStateCookie, "", -1, "/", "", h.cfg.IsProduction, true)

	code := c.Query("code")
	if code == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Authorization code is required"})
		return
	}

	token, err := h.oauthConfig.Exchange(ctx, code)
	if err != nil {
		logger.Error("Failed to exchange authorization code with Google", slog.String("error", err.Error()))
		c.JSON(http.StatusBadGateway, gin.H{"error": "Failed to exchange authorization code"})
		return
	}

	oauthSvc, err := oauth2v2.NewService(ctx, option.WithTokenSource(h.oauthConfig.TokenSource(ctx, token)))
	if err != nil {
		logger.Error("Failed to build Google oauth2 service", slog.String("error", err.Error()))
		c.JSON(http.StatusBadGateway, gin.H{"error": "Failed to query Google profile"})
		return
	}
	userinfo, err := oauthSvc.Userinfo.Get().Context(ctx).Do()
	if err != nil {
		logger.Error("Failed to fetch Google userinfo", slog.String("error", err.Error()))
		c.JSON(http.StatusBadGateway, gin.H{"error": "Failed to query Google profile"})
		return
	}

	user, err := h.userService.FindOrCreateOAuthUser(ctx, userinfo.Email, userinfo.Name)
	if err != nil {
		respondWithError(c, err)
		return
	}

	jwtToken, err := utils.GenerateJWT(user.UserID, h.cfg.JWTSecret, h.cfg.JWTExpiryDuration, h.cfg.JWTIssuer)
	if err != nil {
		logger.Error("Failed to generate JWT after Google sign-in", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to issue token"})
		return
	}

	logger.Info("User signed in via Google", slog.String("user_id", user.UserID))
	c.JSON(http.StatusOK, dto.LoginResponse{Token: jwtToken, UserID: user.UserID})
}
