package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iamdominic/portfolio-backend/internal/auth"
	"github.com/iamdominic/portfolio-backend/internal/auth/domain"
	"github.com/iamdominic/portfolio-backend/internal/auth/repository"
	"github.com/iamdominic/portfolio-backend/internal/auth/service"
)

type stubVerifier map[string]domain.Identity

func (s stubVerifier) Verify(_ context.Context, token string) (domain.Identity, error) {
	if id, ok := s[token]; ok {
		return id, nil
	}
	return domain.Identity{}, domain.ErrInvalidToken
}

func (stubVerifier) Revoke(context.Context, string) error { return nil }

func setup(t *testing.T) (*gin.Engine, *service.SessionService) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	svc := service.NewSessionService(stubVerifier{
		"good":  {UID: "u1", Email: "admin@example.com"},
		"other": {UID: "u2", Email: "intruder@example.com"},
	}, auth.NewAdminGate("admin@example.com"), repository.NewMemorySessionRepository(), time.Hour)

	r := gin.New()
	r.GET("/admin", RequireAdmin(svc), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true, "email": auth.AdminEmail(c)})
	})
	return r, svc
}

func TestRequireAdmin(t *testing.T) {
	r, svc := setup(t)
	sess, err := svc.SignIn(context.Background(), "good", "")
	require.NoError(t, err)

	tests := []struct {
		name   string
		header string
		cookie string
		want   int
	}{
		{name: "no credentials", want: http.StatusUnauthorized},
		{name: "bearer admin", header: "Bearer good", want: http.StatusOK},
		{name: "bearer other email", header: "Bearer other", want: http.StatusForbidden},
		{name: "bearer garbage", header: "Bearer nope", want: http.StatusUnauthorized},
		{name: "basic scheme", header: "Basic good", want: http.StatusUnauthorized},
		{name: "session cookie", cookie: sess.ID, want: http.StatusOK},
		{name: "stale cookie falls back to bearer", cookie: "stale", header: "Bearer good", want: http.StatusOK},
		{name: "stale cookie alone", cookie: "stale", want: http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/admin", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			if tt.cookie != "" {
				req.AddCookie(&http.Cookie{Name: SessionCookie, Value: tt.cookie})
			}
			rr := httptest.NewRecorder()
			r.ServeHTTP(rr, req)

			assert.Equal(t, tt.want, rr.Code)
			if tt.want == http.StatusOK {
				assert.Contains(t, rr.Body.String(), "admin@example.com")
			}
		})
	}
}
