package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/iamdominic/portfolio-backend/internal/auth"
	"github.com/iamdominic/portfolio-backend/internal/auth/domain"
	"github.com/iamdominic/portfolio-backend/internal/auth/service"
)

// SessionCookie names the cookie carrying the admin session id.
const SessionCookie = "admin_session"

// RequireAdmin admits a request carrying either a live admin session cookie
// or a Bearer ID token that passes the admin email gate.
func RequireAdmin(sessions *service.SessionService) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()

		if sid, err := c.Cookie(SessionCookie); err == nil && sid != "" {
			id, err := sessions.Current(ctx, sid)
			if err != nil {
				c.AbortWithStatusJSON(http.StatusServiceUnavailable, gin.H{"ok": false, "error": "session store unavailable"})
				return
			}
			if id != nil {
				admit(c, *id)
				return
			}
		}

		token := extractToken(c)
		if token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"ok": false, "error": "missing authorization token"})
			return
		}

		id, err := sessions.Authorize(ctx, token)
		switch {
		case errors.Is(err, domain.ErrUnauthorizedEmail):
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"ok": false, "error": "Unauthorized email address"})
			return
		case err != nil:
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"ok": false, "error": "invalid token"})
			return
		}
		admit(c, id)
	}
}

func admit(c *gin.Context, id domain.Identity) {
	c.Set(auth.CtxFirebaseUID, id.UID)
	c.Set(auth.CtxAdminEmail, id.Email)
	c.Next()
}

// extractToken extracts the Bearer token from the Authorization header
func extractToken(c *gin.Context) string {
	bearerToken := c.GetHeader("Authorization")
	if token, ok := strings.CutPrefix(bearerToken, "Bearer "); ok {
		return strings.TrimSpace(token)
	}
	return ""
}
