package session

import (
	"context"
	"log/slog"

	"sessiongate/internal/identity"
	dErrors "sessiongate/pkg/domain-errors"
	"sessiongate/pkg/requestcontext"
)

// SessionVerifier proves a session before a refresh is attempted.
type SessionVerifier interface {
	Verify(ctx context.Context, token string) (*identity.User, error)
}

// TokenExchanger is the slice of the identity gateway the refresher needs.
type TokenExchanger interface {
	Refresh(ctx context.Context, refreshToken string) (*identity.Session, error)
}

// TokenStore is the slice of the user store the refresher needs.
type TokenStore interface {
	RefreshToken(ctx context.Context, externalID string) (string, error)
	UpdateRefreshToken(ctx context.Context, externalID string, token *string) error
}

// Refresher runs the token refresh flow: prove the session, load the stored
// refresh token by the user's stable id, exchange it at the provider, and
// persist the replacement.
//
// Concurrent refreshes for the same user are not serialized here. The
// provider enforces single-use refresh tokens, so of two racing attempts one
// wins and the loser surfaces a refresh failure; the stored token follows
// last-writer-wins.
type Refresher struct {
	verifier SessionVerifier
	identity TokenExchanger
	store    TokenStore
	log      *slog.Logger
}

func NewRefresher(verifier SessionVerifier, identity TokenExchanger, store TokenStore, log *slog.Logger) *Refresher {
	return &Refresher{verifier: verifier, identity: identity, store: store, log: log}
}

// Refresh exchanges the stored refresh token for a new access token and
// returns it. The caller is responsible for re-issuing the session cookie.
//
// The session must still verify before a refresh is attempted: the refresh
// token lookup is keyed by the stable user id, which only the verifier
// supplies. A provider that rejects the access token outright therefore also
// blocks refresh through this path.
func (r *Refresher) Refresh(ctx context.Context, accessToken string) (string, error) {
	user, err := r.verifier.Verify(ctx, accessToken)
	if err != nil {
		return "", dErrors.Wrap(err, dErrors.CodeUnauthorized, "Unauthorized Session")
	}

	previous, err := r.store.RefreshToken(ctx, user.ID)
	if err != nil {
		return "", dErrors.Wrap(err, dErrors.CodeUnauthorized, "no refresh token on record")
	}

	sess, err := r.identity.Refresh(ctx, previous)
	if err != nil {
		return "", err
	}
	if sess.AccessToken == "" || sess.RefreshToken == "" {
		return "", dErrors.New(dErrors.CodeInternal, "token exchange returned no tokens")
	}

	// The old refresh token is consumed at this point. A failed write leaves
	// the slot stale and the next refresh will fail; that is surfaced then,
	// not now, so the caller still gets the access token it paid for.
	if err := r.store.UpdateRefreshToken(ctx, user.ID, &sess.RefreshToken); err != nil {
		r.log.ErrorContext(ctx, "failed to persist rotated refresh token",
			"error", err,
			"user_id", user.ID,
			"request_id", requestcontext.RequestID(ctx),
		)
	}

	return sess.AccessToken, nil
}
