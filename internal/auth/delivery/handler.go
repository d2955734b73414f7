package delivery

import (
	"encoding/json"
	"net/http"
	"net/url"
	"strings"

	authdto "genprd-backend/internal/auth/dto"
	"genprd-backend/internal/auth/usecase"
	"genprd-backend/pkg/apperror"
	"genprd-backend/pkg/config"
	"genprd-backend/pkg/googleauth"
	"genprd-backend/pkg/logger"

	"github.com/gin-gonic/gin"
)

// OAuth state values. The state round-trips through Google unchanged, so it
// carries the platform hint the callback needs to rebuild the exact redirect
// URI used at initiation.
const (
	stateWeb             = "web"
	stateMobile          = "mobile"
	stateAndroidEmulator = "android_emulator"
)

type AuthHandler struct {
	authUsecase usecase.AuthUsecase
	cfg         *config.Config
}

func NewAuthHandler(authUsecase usecase.AuthUsecase, cfg *config.Config) *AuthHandler {
	return &AuthHandler{authUsecase: authUsecase, cfg: cfg}
}

func (h *AuthHandler) Register(c *gin.Context) {
	var req authdto.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": apperror.ErrValidation.Error()})
		return
	}

	pair, err := h.authUsecase.Register(&req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"status": "success", "data": pair})
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req authdto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": apperror.ErrValidation.Error()})
		return
	}

	pair, err := h.authUsecase.Login(&req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "success", "data": pair})
}

// WebGoogleLogin starts the browser OAuth flow.
func (h *AuthHandler) WebGoogleLogin(c *gin.Context) {
	redirectURI := h.cfg.BaseURL + "/api/auth/web/google/callback"
	c.Redirect(http.StatusFound, h.authUsecase.GoogleAuthURL(redirectURI, stateWeb))
}

// WebGoogleCallback completes the browser flow. Every outcome is a redirect
// back to the frontend; a raw error body would strand the browser here.
func (h *AuthHandler) WebGoogleCallback(c *gin.Context) {
	code := c.Query("code")
	if code == "" {
		c.Redirect(http.StatusFound, h.cfg.FrontendURL+"/login?error=no_code")
		return
	}

	redirectURI := h.cfg.BaseURL + "/api/auth/web/google/callback"
	pair, err := h.authUsecase.OAuthLogin(c.Request.Context(), code, redirectURI)
	if err != nil {
		logger.Log.WithError(err).Warn("web google callback failed")
		c.Redirect(http.StatusFound, h.cfg.FrontendURL+"/login?error=auth_failed")
		return
	}

	userJSON, err := json.Marshal(pair.User)
	if err != nil {
		c.Redirect(http.StatusFound, h.cfg.FrontendURL+"/login?error=server_error")
		return
	}

	target, err := url.Parse(h.cfg.FrontendURL + "/auth/callback")
	if err != nil {
		c.Redirect(http.StatusFound, h.cfg.FrontendURL+"/login?error=server_error")
		return
	}
	query := target.Query()
	query.Set("token", pair.AccessToken)
	query.Set("refresh_token", pair.RefreshToken)
	query.Set("user", string(userJSON))
	target.RawQuery = query.Encode()

	c.Redirect(http.StatusFound, target.String())
}

// MobileGoogleLogin starts the mobile OAuth flow. The Android emulator
// cannot resolve localhost to the host machine, so a platform hint swaps in
// the emulator loopback host when building the callback URI.
func (h *AuthHandler) MobileGoogleLogin(c *gin.Context) {
	state := stateMobile
	if c.Query("platform") == stateAndroidEmulator ||
		strings.Contains(c.GetHeader("User-Agent"), "Android") {
		state = stateAndroidEmulator
	}

	c.Redirect(http.StatusFound, h.authUsecase.GoogleAuthURL(h.mobileRedirectURI(state), state))
}

// MobileGoogleCallback completes the mobile flow and returns tokens as JSON.
func (h *AuthHandler) MobileGoogleCallback(c *gin.Context) {
	code := c.Query("code")
	if code == "" {
		c.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": "no authorization code received"})
		return
	}

	// The exchange must present the identical redirect URI the code was
	// issued for; the state carries the platform hint to rebuild it.
	redirectURI := h.mobileRedirectURI(c.Query("state"))
	pair, err := h.authUsecase.OAuthLogin(c.Request.Context(), code, redirectURI)
	if err != nil {
		logger.Log.WithError(err).Warn("mobile google callback failed")
		c.JSON(http.StatusUnauthorized, gin.H{"status": "error", "message": "authentication failed"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":        "success",
		"access_token":  pair.AccessToken,
		"refresh_token": pair.RefreshToken,
		"user":          pair.User,
	})
}

func (h *AuthHandler) mobileRedirectURI(state string) string {
	base := h.cfg.BaseURL
	if state == stateAndroidEmulator {
		base = googleauth.EmulatorHost(base)
	}
	return base + "/api/auth/mobile/google/callback"
}

// VerifyGoogleToken authenticates clients that performed Google sign-in
// natively and hold a provider-issued ID token.
func (h *AuthHandler) VerifyGoogleToken(c *gin.Context) {
	var req authdto.GoogleTokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": "ID token is required"})
		return
	}

	pair, err := h.authUsecase.VerifyGoogleToken(c.Request.Context(), req.IDToken)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":        "success",
		"access_token":  pair.AccessToken,
		"refresh_token": pair.RefreshToken,
		"user":          pair.User,
	})
}

func (h *AuthHandler) RefreshToken(c *gin.Context) {
	var req authdto.RefreshTokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": apperror.ErrValidation.Error()})
		return
	}

	accessToken, err := h.authUsecase.RefreshAccessToken(req.RefreshToken)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "success", "access_token": accessToken})
}

func (h *AuthHandler) Logout(c *gin.Context) {
	if err := h.authUsecase.Logout(c.GetString("userID")); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "success", "message": "logout successful"})
}

// ForgotPassword answers identically whether or not the email is registered.
func (h *AuthHandler) ForgotPassword(c *gin.Context) {
	var req authdto.ForgotPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": apperror.ErrValidation.Error()})
		return
	}

	resetToken, err := h.authUsecase.RequestPasswordReset(req.Email)
	if err != nil {
		respondError(c, err)
		return
	}

	response := gin.H{
		"status":  "success",
		"message": "if the email is registered, a reset link has been sent",
	}
	// Token delivery is out-of-band in production; development returns it
	// inline so the flow can be exercised without an email service.
	if !h.cfg.IsProduction() && resetToken != "" {
		response["reset_token"] = resetToken
	}
	c.JSON(http.StatusOK, response)
}

func (h *AuthHandler) ResetPassword(c *gin.Context) {
	var req authdto.ResetPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": apperror.ErrValidation.Error()})
		return
	}

	if err := h.authUsecase.ResetPassword(req.Token, req.NewPassword); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "success", "message": "password updated"})
}

func (h *AuthHandler) GetProfile(c *gin.Context) {
	user, err := h.authUsecase.GetProfile(c.GetString("userID"))
	if err != nil {
		respondError(c, err)
		return
	}

	data := user.PublicView()
	data["member_since"] = user.CreatedAt.Format("January 2006")
	c.JSON(http.StatusOK, gin.H{"status": "success", "data": data})
}

func (h *AuthHandler) UpdateProfile(c *gin.Context) {
	var req authdto.UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": apperror.ErrValidation.Error()})
		return
	}

	user, err := h.authUsecase.UpdateProfile(c.GetString("userID"), req.Name)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "success", "message": "profile updated", "data": user.PublicView()})
}

func (h *AuthHandler) UpdateFCMToken(c *gin.Context) {
	var req authdto.UpdateFCMTokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": apperror.ErrValidation.Error()})
		return
	}

	if err := h.authUsecase.UpdateFCMToken(c.GetString("userID"), req.FCMToken); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "success", "message": "FCM token updated"})
}

func respondError(c *gin.Context, err error) {
	status := apperror.Status(err)
	if status == http.StatusInternalServerError {
		logger.Log.WithError(err).Error("auth request failed")
	}
	c.JSON(status, gin.H{"status": "error", "message": apperror.Message(err)})
}
