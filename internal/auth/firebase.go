package auth

import (
	"context"
	"fmt"
	"strings"

	fbauth "firebase.google.com/go/v4/auth"

	"github.com/iamdominic/portfolio-backend/internal/auth/domain"
)

// Verifier is the identity provider seen by the session service.
type Verifier interface {
	Verify(ctx context.Context, idToken string) (domain.Identity, error)
	Revoke(ctx context.Context, uid string) error
}

// tokenClient is the subset of *fbauth.Client the verifier uses.
type tokenClient interface {
	VerifyIDTokenAndCheckRevoked(ctx context.Context, idToken string) (*fbauth.Token, error)
	RevokeRefreshTokens(ctx context.Context, uid string) error
}

// FirebaseVerifier checks Firebase ID tokens with the Admin SDK.
type FirebaseVerifier struct {
	client tokenClient
}

func NewFirebaseVerifier(client *fbauth.Client) *FirebaseVerifier {
	return &FirebaseVerifier{client: client}
}

// Verify rejects tokens issued before the user's last revocation, so a
// signed-out admin's ID token stops working immediately.
func (v *FirebaseVerifier) Verify(ctx context.Context, idToken string) (domain.Identity, error) {
	token, err := v.client.VerifyIDTokenAndCheckRevoked(ctx, strings.TrimSpace(idToken))
	if err != nil {
		return domain.Identity{}, fmt.Errorf("%w: %v", domain.ErrInvalidToken, err)
	}

	email, _ := token.Claims["email"].(string)
	return domain.Identity{UID: token.UID, Email: email}, nil
}

// Revoke invalidates every refresh token of uid, signing the user out of all
// clients.
func (v *FirebaseVerifier) Revoke(ctx context.Context, uid string) error {
	if err := v.client.RevokeRefreshTokens(ctx, uid); err != nil {
		return fmt.Errorf("revoke refresh tokens: %w", err)
	}
	return nil
}
