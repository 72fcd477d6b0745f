package handlers

import (
	"encoding/json"
	"net/http"
	"net/url"

	"jobportal_backend/internal/middleware"
	"jobportal_backend/internal/services"
	"jobportal_backend/internal/services/dto"
	"jobportal_backend/pkg/apperrors"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type AuthHandler struct {
	*BaseHandler
	authService  services.AuthService
	otpLimiter   *middleware.RateLimiter
	resetLimiter *middleware.RateLimiter
	frontendURL  string
}

func NewAuthHandler(
	base *BaseHandler,
	authService services.AuthService,
	otpLimiter *middleware.RateLimiter,
	resetLimiter *middleware.RateLimiter,
	frontendURL string,
) *AuthHandler {
	return &AuthHandler{
		BaseHandler:  base,
		authService:  authService,
		otpLimiter:   otpLimiter,
		resetLimiter: resetLimiter,
		frontendURL:  frontendURL,
	}
}

func (h *AuthHandler) RegisterRoutes(rg *gin.RouterGroup) {
	auth := rg.Group("/auth")
	{
		auth.POST("/register", h.Register)
		auth.POST("/login", h.Login)

		auth.POST("/send-email-otp", h.otpLimiter.Middleware(), h.RequestEmailOTP)
		auth.POST("/verify-email-otp", h.VerifyEmailOTP)
		auth.POST("/send-phone-otp", h.otpLimiter.Middleware(), h.RequestPhoneOTP)
		auth.POST("/verify-phone-otp", h.VerifyPhoneOTP)

		auth.POST("/forgot-password", h.resetLimiter.Middleware(), h.RequestPasswordReset)
		auth.POST("/reset-password", h.ResetPassword)

		// OAuth routes are always registered; without client credentials
		// they answer 501.
		auth.GET("/google", h.GoogleLogin)
		auth.GET("/google/callback", h.GoogleCallback)
	}

	me := rg.Group("/auth")
	me.Use(middleware.AuthMiddleware())
	{
		me.GET("/me", h.Me)
	}
}

func (h *AuthHandler) Register(c *gin.Context) {
	var req dto.RegisterRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	resp, err := h.authService.Register(&req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	resp, err := h.authService.Login(&req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *AuthHandler) RequestEmailOTP(c *gin.Context) {
	var req dto.EmailOTPRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	if err := h.authService.RequestEmailOTP(req.Email); err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "OTP sent to your email"})
}

func (h *AuthHandler) VerifyEmailOTP(c *gin.Context) {
	var req dto.VerifyEmailOTPRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	resp, err := h.authService.VerifyEmailOTP(&req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *AuthHandler) RequestPhoneOTP(c *gin.Context) {
	var req dto.PhoneOTPRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	if err := h.authService.RequestPhoneOTP(req.Phone); err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "OTP sent to your phone"})
}

func (h *AuthHandler) VerifyPhoneOTP(c *gin.Context) {
	var req dto.VerifyPhoneOTPRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	resp, err := h.authService.VerifyPhoneOTP(&req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *AuthHandler) RequestPasswordReset(c *gin.Context) {
	var req dto.PasswordResetRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	if err := h.authService.RequestPasswordReset(req.Email); err != nil {
		h.HandleServiceError(c, err)
		return
	}
	// Same answer whether or not the email exists.
	c.JSON(http.StatusOK, gin.H{"message": "If that email is registered, a reset link has been sent"})
}

func (h *AuthHandler) ResetPassword(c *gin.Context) {
	var req dto.PasswordResetConfirm
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	if err := h.authService.ResetPassword(&req); err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Password has been reset"})
}

func (h *AuthHandler) Me(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	user, err := h.authService.Me(userID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, user)
}

// GoogleLogin redirects the browser to Google's consent screen.
func (h *AuthHandler) GoogleLogin(c *gin.Context) {
	loginURL, err := h.authService.GoogleLoginURL(uuid.NewString())
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.Redirect(http.StatusTemporaryRedirect, loginURL)
}

// GoogleCallback finishes the code exchange and hands the session token to
// the frontend via redirect, carrying the same payload as a login response.
func (h *AuthHandler) GoogleCallback(c *gin.Context) {
	resp, err := h.authService.LoginWithGoogle(c.Request.Context(), c.Query("code"))
	if err != nil {
		var appErr *apperrors.AppError
		if apperrors.As(err, &appErr) && appErr.Code == apperrors.CodeNotConfigured {
			h.HandleServiceError(c, err)
			return
		}
		c.Redirect(http.StatusTemporaryRedirect, h.frontendURL+"/login?error=oauth_failed")
		return
	}

	userJSON, err := json.Marshal(resp.User)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	q := url.Values{
		"token": {resp.Token},
		"user":  {string(userJSON)},
	}
	c.Redirect(http.StatusTemporaryRedirect, h.frontendURL+"/auth/callback?"+q.Encode())
}
