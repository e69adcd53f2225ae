package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/iamdominic/portfolio-backend/internal/auth/domain"
	"github.com/iamdominic/portfolio-backend/internal/auth/middleware"
)

// SignIn exchanges a provider ID token for an admin session cookie.
func (h *Handler) SignIn(c *gin.Context) {
	var req signInReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "id_token is required"})
		return
	}

	previous, _ := c.Cookie(middleware.SessionCookie)
	sess, err := h.sessions.SignIn(c.Request.Context(), req.IDToken, previous)
	if err != nil {
		h.clearCookie(c)
		switch {
		case errors.Is(err, domain.ErrUnauthorizedEmail):
			c.JSON(http.StatusForbidden, gin.H{"ok": false, "error": "Unauthorized email address"})
		case errors.Is(err, domain.ErrInvalidToken):
			c.JSON(http.StatusUnauthorized, gin.H{"ok": false, "error": "invalid token"})
		default:
			c.JSON(http.StatusServiceUnavailable, gin.H{"ok": false, "error": "Failed to sign in"})
		}
		return
	}

	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(middleware.SessionCookie, sess.ID, int(h.ttl.Seconds()), "/", "", h.secureCookie, true)
	c.JSON(http.StatusOK, gin.H{"ok": true, "user": sess.Identity, "expires_at": sess.ExpiresAt})
}

// Current reports the signed-in admin, or a null user when signed out.
func (h *Handler) Current(c *gin.Context) {
	sid, _ := c.Cookie(middleware.SessionCookie)
	id, err := h.sessions.Current(c.Request.Context(), sid)
	if err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"ok": false, "error": "session store unavailable"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "user": id})
}

func (h *Handler) SignOut(c *gin.Context) {
	sid, _ := c.Cookie(middleware.SessionCookie)
	if err := h.sessions.SignOut(c.Request.Context(), sid); err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"ok": false, "error": "Failed to sign out"})
		return
	}
	h.clearCookie(c)
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

func (h *Handler) clearCookie(c *gin.Context) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(middleware.SessionCookie, "", -1, "/", "", h.secureCookie, true)
}
