package middleware

import (
	"fmt"
	"net/http"

	"github.com/fundvault/fundvault/backend/go-services/internal/config"
	"github.com/fundvault/fundvault/backend/go-services/internal/sessions"
	"github.com/fundvault/fundvault/backend/go-services/internal/tokens"
	"github.com/gin-gonic/gin"
)

// AdminKey is the context key under which the authenticated admin is stored.
const AdminKey = "admin"

// RequireAdmin returns a Gin middleware that accepts either the session
// cookie set by /auth/login or an 'Authorization: Bearer' access token.
// On success the session is stored in the request context under AdminKey.
func RequireAdmin(cfg *config.Config, sessionsSvc *sessions.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		// session cookie first
		if token, err := c.Cookie(cfg.Session.CookieName); err == nil && token != "" && sessionsSvc != nil {
			sess, err := sessionsSvc.Validate(c.Request.Context(), token)
			if err == nil && sess != nil {
				c.Set(AdminKey, sess)
				c.Next()
				return
			}
		}

		// fall back to bearer access token
		auth := c.GetHeader("Authorization")
		if auth != "" {
			var raw string
			if n, _ := fmt.Sscanf(auth, "Bearer %s", &raw); n == 1 {
				if black, err := sessions.IsAccessTokenBlacklisted(c.Request.Context(), raw); err == nil && !black {
					id, name, err := tokens.ParseAccessToken(cfg, raw)
					if err == nil {
						c.Set(AdminKey, &sessions.Session{UserID: id, Name: name})
						c.Next()
						return
					}
				}
			}
		}

		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"success": false, "error": "authentication required"})
	}
}
