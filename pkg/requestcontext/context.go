// Package requestcontext provides HTTP-independent context accessors for request-scoped values.
//
// Context keys and getter/setter functions live here so that values set by
// middleware can be consumed by services without importing net/http.
//
// Usage in services (read values):
//
//	tok := requestcontext.Token(ctx)
//	requestID := requestcontext.RequestID(ctx)
//
// Usage in middleware (set values):
//
//	ctx = requestcontext.WithToken(ctx, tok)
//	ctx = requestcontext.WithIdentity(ctx, ident)
//
// Usage in tests (inject values):
//
//	ctx = requestcontext.WithTime(ctx, fixedTime)
package requestcontext

import (
	"context"
	"time"
)

// Identity is the per-request identity derived from the session cookie. The
// fields come from unverified token claims: they are display data, never
// authorization proof. Authorization proof comes from the session verifier.
type Identity struct {
	Authenticated bool
	Sub           string
	Email         string
	Exp           int64
}

// Context key types (unexported for encapsulation).
type (
	tokenKey       struct{}
	identityKey    struct{}
	requestIDKey   struct{}
	requestTimeKey struct{}
)

// Exported context keys for tests that need context.WithValue directly.
var (
	ContextKeyToken       = tokenKey{}
	ContextKeyIdentity    = identityKey{}
	ContextKeyRequestID   = requestIDKey{}
	ContextKeyRequestTime = requestTimeKey{}
)

// Token retrieves the raw session token from the context. Empty when the
// request carried no session cookie.
func Token(ctx context.Context) string {
	if tok, ok := ctx.Value(ContextKeyToken).(string); ok {
		return tok
	}
	return ""
}

// WithToken injects the raw session token into the context.
func WithToken(ctx context.Context, token string) context.Context {
	return context.WithValue(ctx, ContextKeyToken, token)
}

// User retrieves the request identity from the context. Returns an
// unauthenticated identity when none was set.
func User(ctx context.Context) Identity {
	if ident, ok := ctx.Value(ContextKeyIdentity).(Identity); ok {
		return ident
	}
	return Identity{}
}

// WithIdentity injects the request identity into the context.
func WithIdentity(ctx context.Context, ident Identity) context.Context {
	return context.WithValue(ctx, ContextKeyIdentity, ident)
}

// RequestID retrieves the request ID from the context.
func RequestID(ctx context.Context) string {
	if reqID, ok := ctx.Value(ContextKeyRequestID).(string); ok {
		return reqID
	}
	return ""
}

// WithRequestID injects a request ID into the context.
func WithRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, ContextKeyRequestID, requestID)
}

// Now retrieves the request-scoped time from context.
// Falls back to time.Now() for non-HTTP contexts (workers, tests).
func Now(ctx context.Context) time.Time {
	if t, ok := ctx.Value(ContextKeyRequestTime).(time.Time); ok {
		return t
	}
	return time.Now()
}

// WithTime injects a specific time into a context. Useful for tests that
// don't run the full HTTP middleware chain.
func WithTime(ctx context.Context, t time.Time) context.Context {
	return context.WithValue(ctx, ContextKeyRequestTime, t)
}
