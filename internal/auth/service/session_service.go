package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/iamdominic/portfolio-backend/internal/auth"
	"github.com/iamdominic/portfolio-backend/internal/auth/domain"
	"github.com/iamdominic/portfolio-backend/internal/auth/repository"
	"github.com/iamdominic/portfolio-backend/internal/platform/logger"
)

// SessionService turns provider identities into admin sessions. Only the
// configured admin email ever gets a session.
type SessionService struct {
	verifier auth.Verifier
	gate     auth.AdminGate
	sessions repository.SessionRepository
	ttl      time.Duration
	now      func() time.Time
}

func NewSessionService(verifier auth.Verifier, gate auth.AdminGate, sessions repository.SessionRepository, ttl time.Duration) *SessionService {
	return &SessionService{
		verifier: verifier,
		gate:     gate,
		sessions: sessions,
		ttl:      ttl,
		now:      time.Now,
	}
}

// SignIn verifies idToken and opens an admin session. Any previous session
// is dropped first. A verified identity with another email is signed out at
// the provider straight away and gets domain.ErrUnauthorizedEmail.
func (s *SessionService) SignIn(ctx context.Context, idToken, previousSessionID string) (*domain.Session, error) {
	log := logger.FromContext(ctx)

	if previousSessionID != "" {
		if err := s.sessions.Delete(ctx, previousSessionID); err != nil {
			log.Warn("drop previous session failed", zap.String("operation", "sign_in"), zap.Error(err))
		}
	}

	id, err := s.Authorize(ctx, idToken)
	if err != nil {
		return nil, err
	}

	now := s.now()
	sess := domain.Session{
		ID:        uuid.NewString(),
		Identity:  id,
		CreatedAt: now,
		ExpiresAt: now.Add(s.ttl),
	}
	if err := s.sessions.Save(ctx, sess); err != nil {
		log.Error("save session failed", zap.String("operation", "sign_in"), zap.Error(err))
		return nil, err
	}

	log.Info("admin signed in", zap.String("operation", "sign_in"), zap.String("uid", id.UID))
	return &sess, nil
}

// Authorize verifies idToken and applies the admin gate without opening a
// session. It is the per-request path for Bearer tokens.
func (s *SessionService) Authorize(ctx context.Context, idToken string) (domain.Identity, error) {
	log := logger.FromContext(ctx)

	id, err := s.verifier.Verify(ctx, idToken)
	if err != nil {
		log.Info("token rejected", zap.String("operation", "authorize"), zap.Error(err))
		if !errors.Is(err, domain.ErrInvalidToken) {
			return domain.Identity{}, errors.Join(domain.ErrInvalidToken, err)
		}
		return domain.Identity{}, err
	}

	if err := s.gate.Check(id); err != nil {
		log.Warn("unauthorized email signed in",
			zap.String("operation", "authorize"),
			zap.String("uid", id.UID),
			zap.String("email", id.Email))
		if rerr := s.verifier.Revoke(ctx, id.UID); rerr != nil {
			log.Error("revoke after rejected sign-in failed", zap.String("uid", id.UID), zap.Error(rerr))
		}
		return domain.Identity{}, err
	}

	return id, nil
}

// SignOut ends the session and signs the identity out at the provider.
// Signing out without a session is a no-op.
func (s *SessionService) SignOut(ctx context.Context, sessionID string) error {
	sess, err := s.sessions.Get(ctx, sessionID)
	if errors.Is(err, domain.ErrNoSession) {
		return nil
	}
	if err != nil {
		return err
	}

	if err := s.sessions.Delete(ctx, sessionID); err != nil {
		return err
	}
	if err := s.verifier.Revoke(ctx, sess.Identity.UID); err != nil {
		logger.FromContext(ctx).Warn("revoke on sign-out failed",
			zap.String("operation", "sign_out"), zap.String("uid", sess.Identity.UID), zap.Error(err))
	}

	logger.FromContext(ctx).Info("admin signed out", zap.String("operation", "sign_out"), zap.String("uid", sess.Identity.UID))
	return nil
}

// Current returns the signed-in admin for sessionID, or nil when signed out.
func (s *SessionService) Current(ctx context.Context, sessionID string) (*domain.Identity, error) {
	if sessionID == "" {
		return nil, nil
	}

	sess, err := s.sessions.Get(ctx, sessionID)
	if errors.Is(err, domain.ErrNoSession) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &sess.Identity, nil
}
