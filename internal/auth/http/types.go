package http

import (
	"time"

	"github.com/iamdominic/portfolio-backend/internal/auth/service"
)

// Handler serves the admin session endpoints.
type Handler struct {
	sessions     *service.SessionService
	ttl          time.Duration
	secureCookie bool
}

func New(sessions *service.SessionService, ttl time.Duration, secureCookie bool) *Handler {
	return &Handler{
		sessions:     sessions,
		ttl:          ttl,
		secureCookie: secureCookie,
	}
}

type signInReq struct {
	IDToken string `json:"id_token" binding:"required"`
}
