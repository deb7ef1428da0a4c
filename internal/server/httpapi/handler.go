// Package httpapi exposes the authentication service over HTTP using
// gin. Handlers stay thin: they bind the request, call the service and
// translate errors to status codes.
package httpapi

import (
	"context"
	"errors"
	"net/http"

	"github.com/campushub/backend/internal/common"
	"github.com/campushub/backend/internal/logging"
	"github.com/campushub/backend/internal/server/models"
	"github.com/campushub/backend/internal/server/services"
	"github.com/gin-gonic/gin"
)

// AuthProvider is the slice of AuthService the HTTP layer depends on.
type AuthProvider interface {
	Login(ctx context.Context, email, password string) (*services.LoginResult, error)
	Authenticate(ctx context.Context, bearerToken string) (*models.User, error)
	AuthenticateRefreshContext(ctx context.Context, bearerToken string) (*models.User, error)
	GrantAccessToken(ctx context.Context, user *models.User, refreshToken string) (*services.TokenPair, error)
	Logout(ctx context.Context, userID, refreshToken string) error
	RevokeAllSessions(ctx context.Context, userID string) error
	RenewPassword(ctx context.Context, userID, newPassword string) error
}

type Handler struct {
	auth   AuthProvider
	logger logging.Logger
}

func NewHandler(auth AuthProvider, logger logging.Logger) *Handler {
	return &Handler{auth: auth, logger: logger}
}

type loginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type renewPasswordRequest struct {
	Password string `json:"password" binding:"required,min=6"`
}

type userResponse struct {
	ID                       string `json:"id"`
	Name                     string `json:"name"`
	Email                    string `json:"email"`
	Role                     string `json:"role"`
	IsDefaultPasswordChanged bool   `json:"isDefaultPasswordChanged"`
	IsEmailVerified          bool   `json:"isEmailVerified"`
}

type tokenPairResponse struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}

func toUserResponse(u *models.User) userResponse {
	return userResponse{
		ID:                       u.ID,
		Name:                     u.Name,
		Email:                    u.Email,
		Role:                     u.Role,
		IsDefaultPasswordChanged: u.Settings.IsDefaultPasswordChanged,
		IsEmailVerified:          u.Settings.IsEmailVerified,
	}
}

// writeError maps service errors to HTTP statuses. Everything
// authentication-related collapses into a generic 401 so callers cannot
// probe which check failed; the password gate is the one distinct case.
func (h *Handler) writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, common.ErrorDefaultPasswordNotChanged):
		c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "default password not changed"})
	case errors.Is(err, common.ErrorUnauthorized),
		errors.Is(err, common.ErrInvalidToken),
		errors.Is(err, common.ErrTokenExpired),
		errors.Is(err, common.ErrTokenTypeMismatch),
		errors.Is(err, common.ErrorNotFound):
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
	default:
		h.logger.Error(c.Request.Context(), "internal error", "path", c.FullPath(), "error", err.Error())
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}

// Login handles POST /auth/login.
func (h *Handler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "email and password are required"})
		return
	}

	res, err := h.auth.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		h.writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"user":         toUserResponse(res.User),
		"accessToken":  res.Tokens.AccessToken,
		"refreshToken": res.Tokens.RefreshToken,
	})
}

// Me handles GET /auth/me.
func (h *Handler) Me(c *gin.Context) {
	user := currentUser(c)
	c.JSON(http.StatusOK, gin.H{"user": toUserResponse(user)})
}

// GrantAccessToken handles POST /auth/access-token. The caller presents
// its access token as the bearer (expiry aside, identity still has to
// match) and the refresh token in a dedicated header.
func (h *Handler) GrantAccessToken(c *gin.Context) {
	user := currentUser(c)

	refreshToken := c.GetHeader(common.RefreshTokenHeaderName)
	if refreshToken == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	pair, err := h.auth.GrantAccessToken(c.Request.Context(), user, refreshToken)
	if err != nil {
		h.writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, tokenPairResponse{
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
	})
}

// Logout handles POST /auth/logout.
func (h *Handler) Logout(c *gin.Context) {
	user := currentUser(c)

	refreshToken := c.GetHeader(common.RefreshTokenHeaderName)
	if refreshToken == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	if err := h.auth.Logout(c.Request.Context(), user.ID, refreshToken); err != nil {
		h.writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "logged out"})
}

// RevokeAllSessions handles POST /auth/sessions/revoke.
func (h *Handler) RevokeAllSessions(c *gin.Context) {
	user := currentUser(c)

	if err := h.auth.RevokeAllSessions(c.Request.Context(), user.ID); err != nil {
		h.writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "sessions revoked"})
}

// RenewPassword handles POST /auth/renew-password.
func (h *Handler) RenewPassword(c *gin.Context) {
	user := currentUser(c)

	var req renewPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "password of at least 6 characters is required"})
		return
	}

	if err := h.auth.RenewPassword(c.Request.Context(), user.ID, req.Password); err != nil {
		h.writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "password updated"})
}
