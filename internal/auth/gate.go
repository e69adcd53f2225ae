package auth

import "github.com/iamdominic/portfolio-backend/internal/auth/domain"

// AdminGate admits exactly one configured email address. The comparison is
// exact: no case folding and no trimming of the identity's email.
type AdminGate struct {
	email string
}

func NewAdminGate(email string) AdminGate {
	return AdminGate{email: email}
}

func (g AdminGate) Check(id domain.Identity) error {
	if g.email == "" || id.Email != g.email {
		return domain.ErrUnauthorizedEmail
	}
	return nil
}
