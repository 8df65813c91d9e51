// Package session owns the session-token lifecycle: the cookie that carries
// the token, the verifier that proves a session against the identity
// provider, and the refresher that exchanges stored refresh tokens for new
// access tokens.
package session

import (
	"context"

	"sessiongate/internal/identity"
	dErrors "sessiongate/pkg/domain-errors"
)

// UserFetcher is the slice of the identity gateway the verifier needs.
type UserFetcher interface {
	GetUser(ctx context.Context, accessToken string) (*identity.User, error)
}

// Verifier answers "is this session currently valid, and who is the user?".
// It is the only place authorization is actually proven; the claims decoded
// by the request middleware are display data and must never gate a
// privileged mutation.
type Verifier struct {
	identity UserFetcher
}

func NewVerifier(identity UserFetcher) *Verifier {
	return &Verifier{identity: identity}
}

// Verify proves the token against the identity provider and returns the
// provider's user record. An empty token fails immediately with no network
// call. A provider 401, or a record without an email, fails with the
// provider's message (or a generic fallback).
func (v *Verifier) Verify(ctx context.Context, token string) (*identity.User, error) {
	if token == "" {
		return nil, dErrors.New(dErrors.CodeUnauthorized, "session token not present")
	}
	user, err := v.identity.GetUser(ctx, token)
	if err != nil {
		msg := dErrors.MessageOf(err)
		if msg == "" {
			msg = "session could not be verified"
		}
		return nil, dErrors.Wrap(err, dErrors.CodeUnauthorized, msg)
	}
	if user.Email == "" {
		return nil, dErrors.New(dErrors.CodeUnauthorized, "session could not be verified")
	}
	return user, nil
}
