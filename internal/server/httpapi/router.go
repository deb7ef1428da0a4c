package httpapi

import "github.com/gin-gonic/gin"

// NewRouter wires the auth endpoints onto a gin engine.
func NewRouter(h *Handler) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())

	auth := router.Group("/auth")
	{
		auth.POST("/login", h.Login)
		auth.GET("/me", h.RequireAuth, h.Me)
		auth.POST("/access-token", h.RequireRefreshContext, h.GrantAccessToken)
		auth.POST("/logout", h.RequireRefreshContext, h.Logout)
		auth.POST("/sessions/revoke", h.RequireAuth, h.RevokeAllSessions)
		auth.POST("/renew-password", h.RequireRefreshContext, h.RenewPassword)
	}

	return router
}
