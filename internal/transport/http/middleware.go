package httptransport

import (
	"net/http"
	"time"

	"github.com/google/uuid"

	"sessiongate/internal/session"
	"sessiongate/internal/token"
	"sessiongate/pkg/requestcontext"
)

// RequestID assigns every request a uuid and echoes it back in a header.
func RequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get("X-Request-Id")
		if id == "" {
			id = uuid.NewString()
		}
		w.Header().Set("X-Request-Id", id)
		ctx := requestcontext.WithRequestID(r.Context(), id)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// SessionContext runs once per request, before any handler. It parses the
// session cookie and decodes the token claims into the request identity.
// The claims are unverified display data; no provider call happens here.
// Handlers that mutate anything privileged must go through the session
// verifier instead.
func SessionContext(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := requestcontext.WithTime(r.Context(), time.Now())

		ident := requestcontext.Identity{}
		if tok := session.TokenFromRequest(r); tok != "" {
			ctx = requestcontext.WithToken(ctx, tok)
			if claims := token.Decode(tok); claims != nil {
				ident = requestcontext.Identity{
					Authenticated: true,
					Sub:           token.Sub(claims),
					Email:         token.Email(claims),
					Exp:           token.Exp(claims),
				}
			}
		}
		ctx = requestcontext.WithIdentity(ctx, ident)

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
