package auth

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"photoshare/internal/config"
	"photoshare/internal/pkg/response"
)

// Handler manages the HTTP surface of authentication.
type Handler struct {
	service *Service
	cfg     *config.Config
	photos  PhotoCounter
}

func NewHandler(service *Service, cfg *config.Config, photos PhotoCounter) *Handler {
	return &Handler{
		service: service,
		cfg:     cfg,
		photos:  photos,
	}
}

func (h *Handler) RegisterPublicRoutes(v1 *gin.RouterGroup) {
	authGroup := v1.Group("/auth")
	{
		authGroup.POST("/signup", h.Signup)
		authGroup.POST("/login", h.Login)
		// Logout must stay reachable with dead credentials: a client whose
		// tokens are already blacklisted or expired still needs its cookies
		// cleared, so the route does not sit behind session resolution.
		authGroup.POST("/logout", h.Logout)
	}
}

func (h *Handler) RegisterProtectedRoutes(protected *gin.RouterGroup) {
	protected.GET("/users/me", h.GetMe)
}

func (h *Handler) Signup(c *gin.Context) {
	var req SignupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body", err.Error())
		return
	}

	user, token, err := h.service.Signup(c.Request.Context(), req)
	if err != nil {
		if errors.Is(err, ErrEmailAlreadyExists) {
			response.Error(c, http.StatusConflict, "EMAIL_EXISTS", "This email is already registered")
			return
		}
		response.Error(c, http.StatusInternalServerError, "SIGNUP_FAILED", "Failed to create account")
		return
	}

	response.Success(c, http.StatusCreated, gin.H{
		"user":         toUserResponse(user),
		"access_token": token,
		"token_type":   "bearer",
	})
}

func (h *Handler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body", err.Error())
		return
	}

	user, tokens, err := h.service.Login(c.Request.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, ErrInvalidCredentials):
			response.Error(c, http.StatusUnauthorized, "INVALID_CREDENTIALS", "Email or password is incorrect")
		case errors.Is(err, ErrAccountDisabled):
			response.Error(c, http.StatusLocked, "ACCOUNT_DISABLED", "This account has been deactivated")
		default:
			response.Error(c, http.StatusInternalServerError, "LOGIN_FAILED", "Failed to login")
		}
		return
	}

	SetSessionCookies(c, h.cfg, &UserView{Username: user.Username, Staff: user.IsStaff()}, tokens.AccessToken, tokens.RefreshToken)

	response.Success(c, http.StatusOK, gin.H{
		"user":          toUserResponse(user),
		"access_token":  tokens.AccessToken,
		"refresh_token": tokens.RefreshToken,
		"token_type":    tokens.TokenType,
	})
}

// Logout blacklists whatever session credentials the request carries and
// clears the cookies either way.
func (h *Handler) Logout(c *gin.Context) {
	access, _ := c.Cookie(CookieAccessToken)
	if access == "" {
		access = c.GetHeader("Authorization")
	}
	refresh, _ := c.Cookie(CookieRefreshToken)

	err := h.service.Logout(c.Request.Context(), access, refresh)
	ClearSessionCookies(c, h.cfg)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "LOGOUT_FAILED", "Failed to revoke session")
		return
	}

	response.Success(c, http.StatusOK, gin.H{
		"message": "Logged out successfully",
	})
}

func (h *Handler) GetMe(c *gin.Context) {
	userID := c.GetInt64("user_id")

	user, err := h.service.CurrentUser(c.Request.Context(), userID)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			response.Error(c, http.StatusNotFound, "NOT_FOUND", "User not found")
			return
		}
		response.Error(c, http.StatusInternalServerError, "PROFILE_FAILED", "Failed to load profile")
		return
	}

	profile := toUserResponse(user)
	if h.photos != nil {
		if count, err := h.photos.CountByOwner(c.Request.Context(), user.ID); err == nil {
			profile.PhotosCount = &count
		}
	}

	response.Success(c, http.StatusOK, gin.H{
		"user": profile,
	})
}
