package httptransport

import (
	"context"

	"sessiongate/internal/identity"
	"sessiongate/internal/token"
	dErrors "sessiongate/pkg/domain-errors"
	"sessiongate/pkg/requestcontext"
)

// reauthenticate gates destructive account mutations: the caller must hold a
// session that still verifies AND re-enter the current password, and the
// email the provider vouches for on that password must match the session's
// claimed email. A stolen but still-valid access token fails here.
func (h *Handler) reauthenticate(ctx context.Context, password string) (*identity.User, error) {
	tok := requestcontext.Token(ctx)
	user, err := h.verifier.Verify(ctx, tok)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeUnauthorized, "Unauthorized Session")
	}

	claimedEmail := requestcontext.User(ctx).Email
	sess, err := h.identity.Login(ctx, claimedEmail, password)
	if err != nil {
		return nil, err
	}

	claims := token.Decode(sess.AccessToken)
	if claims == nil || token.Email(claims) != claimedEmail {
		return nil, dErrors.New(dErrors.CodeUnauthorized, "Unauthorized Request")
	}
	return user, nil
}
