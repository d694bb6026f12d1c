package service

import (
	"crypto/subtle"

	"github.com/teamsite/content-api/internal/core/domain"
)

// AuthGate validates the single shared write secret. Stateless; every
// mutating operation consults it before touching any store.
type AuthGate struct {
	secret []byte
}

func NewAuthGate(secret string) *AuthGate {
	return &AuthGate{secret: []byte(secret)}
}

// Authorize returns domain.ErrInvalidToken when the token is missing or does
// not match the configured secret. An unconfigured secret rejects everything.
func (g *AuthGate) Authorize(token string) error {
	if len(g.secret) == 0 || token == "" {
		return domain.ErrInvalidToken
	}
	if subtle.ConstantTimeCompare(g.secret, []byte(token)) != 1 {
		return domain.ErrInvalidToken
	}
	return nil
}
