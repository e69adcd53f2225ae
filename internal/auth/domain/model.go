package domain

import (
	"errors"
	"time"
)

var (
	ErrUnauthorizedEmail = errors.New("unauthorized email address")
	ErrInvalidToken      = errors.New("invalid identity token")
	ErrNoSession         = errors.New("no admin session")
)

// Identity is the signed-in user as reported by the identity provider.
type Identity struct {
	UID   string `json:"uid"`
	Email string `json:"email"`
}

// Session is a server-side admin session. It only exists for an identity
// that passed the admin email gate.
type Session struct {
	ID        string    `json:"id"`
	Identity  Identity  `json:"identity"`
	CreatedAt time.Time `json:"created_at"`
	ExpiresAt time.Time `json:"expires_at"`
}
