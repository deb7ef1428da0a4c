package httpapi

import (
	"net/http"
	"strings"

	"github.com/campushub/backend/internal/common"
	"github.com/campushub/backend/internal/server/models"
	"github.com/gin-gonic/gin"
)

const userContextKey = "currentUser"

// bearerToken extracts the token from an "Authorization: Bearer <jwt>"
// header. Empty string means the header is absent or malformed.
func bearerToken(c *gin.Context) string {
	header := c.GetHeader(common.AuthorizationHeaderName)
	const prefix = "Bearer "
	if !strings.HasPrefix(header, prefix) {
		return ""
	}
	return strings.TrimSpace(strings.TrimPrefix(header, prefix))
}

// RequireAuth admits only requests whose bearer token passes the full
// access guard, including the default-password gate.
func (h *Handler) RequireAuth(c *gin.Context) {
	token := bearerToken(c)
	if token == "" {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	user, err := h.auth.Authenticate(c.Request.Context(), token)
	if err != nil {
		h.writeError(c, err)
		return
	}

	c.Set(userContextKey, user)
	c.Next()
}

// RequireRefreshContext admits requests on the weaker guard that skips
// the default-password gate. Used where a fresh account must still be
// able to act: rotating tokens, changing its password, logging out.
func (h *Handler) RequireRefreshContext(c *gin.Context) {
	token := bearerToken(c)
	if token == "" {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	user, err := h.auth.AuthenticateRefreshContext(c.Request.Context(), token)
	if err != nil {
		h.writeError(c, err)
		return
	}

	c.Set(userContextKey, user)
	c.Next()
}

func currentUser(c *gin.Context) *models.User {
	return c.MustGet(userContextKey).(*models.User)
}
