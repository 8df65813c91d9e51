package httptransport

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/golang-jwt/jwt/v5"

	"sessiongate/internal/audit"
	"sessiongate/internal/session"
	"sessiongate/internal/token"
	"sessiongate/internal/userdb"
	dErrors "sessiongate/pkg/domain-errors"
	"sessiongate/pkg/platform/sentinel"
	"sessiongate/pkg/requestcontext"
)

const vendorIdentity = "identity"

func decodeBody(r *http.Request, into any) error {
	if err := json.NewDecoder(r.Body).Decode(into); err != nil {
		return dErrors.Wrap(err, dErrors.CodeBadRequest, "invalid request body")
	}
	return nil
}

// userPayload is the display shape the UI reads after a session is issued.
func userPayload(claims jwt.MapClaims) map[string]any {
	return map[string]any{
		"authenticated": true,
		"id":            token.Sub(claims),
		"email":         token.Email(claims),
		"authExpires":   token.Exp(claims),
	}
}

// saveRefreshToken stores the rotated refresh token, creating the user record
// when the provisioning hook has not run yet. Failures are logged, never
// surfaced: a session that cannot be refreshed later is still a session now.
func (h *Handler) saveRefreshToken(ctx context.Context, sub, refreshToken string) {
	err := h.users.UpdateRefreshToken(ctx, sub, &refreshToken)
	if errors.Is(err, sentinel.ErrNotFound) {
		err = h.users.Create(ctx, &userdb.User{
			ExternalID:           sub,
			RefreshToken:         &refreshToken,
			NotifyProductUpdates: true,
			NotifyProductOffers:  true,
		})
	}
	if err != nil {
		h.log.ErrorContext(ctx, "failed to save refresh token",
			"error", err,
			"user_id", sub,
			"request_id", requestcontext.RequestID(ctx),
		)
	}
}

func (h *Handler) signupUser(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := decodeBody(r, &req); err != nil {
		h.invalid(w, "invalid request body")
		return
	}
	if req.Email == "" || req.Password == "" {
		h.invalid(w, "email and password are required")
		return
	}

	user, err := h.identity.Signup(r.Context(), req.Email, req.Password)
	if err != nil {
		h.upstreamFail(w, r, "signupUser", vendorIdentity, err)
		return
	}

	h.metrics.Signups.Inc()
	h.audit.Emit(r.Context(), audit.Event{
		Action:  audit.ActionSignup,
		Subject: user.ID,
		Email:   user.Email,
	})
	h.ok(w, map[string]any{"email": user.Email})
}

func (h *Handler) confirmUser(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Token string `json:"token"`
	}
	if err := decodeBody(r, &req); err != nil {
		h.invalid(w, "invalid request body")
		return
	}
	if req.Token == "" {
		h.invalid(w, "confirmation token is required")
		return
	}

	sess, err := h.identity.ConfirmSignup(r.Context(), req.Token)
	if err != nil {
		h.upstreamFail(w, r, "confirmUser", vendorIdentity, err)
		return
	}
	claims := token.Decode(sess.AccessToken)
	if sess.AccessToken == "" || claims == nil {
		h.failMessage(w, r, "confirmUser",
			dErrors.New(dErrors.CodeInternal, "confirmation response missing access token"),
			"Unable to Confirm Account")
		return
	}

	sub := token.Sub(claims)
	h.saveRefreshToken(r.Context(), sub, sess.RefreshToken)
	session.SetCookie(w, sess.AccessToken)

	h.audit.Emit(r.Context(), audit.Event{
		Action:  audit.ActionSignupConfirmed,
		Subject: sub,
		Email:   token.Email(claims),
	})
	h.ok(w, map[string]any{"user": userPayload(claims)})
}

func (h *Handler) loginUser(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := decodeBody(r, &req); err != nil {
		h.invalid(w, "invalid request body")
		return
	}
	if req.Email == "" || req.Password == "" {
		h.invalid(w, "email and password are required")
		return
	}

	sess, err := h.identity.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		h.metrics.LoginFailures.Inc()
		h.fail(w, r, "loginUser", err)
		return
	}
	claims := token.Decode(sess.AccessToken)
	if sess.AccessToken == "" || claims == nil {
		h.metrics.LoginFailures.Inc()
		h.failMessage(w, r, "loginUser",
			dErrors.New(dErrors.CodeInternal, "login response missing access token"),
			"Account not found or password is invalid.")
		return
	}

	sub := token.Sub(claims)
	h.saveRefreshToken(r.Context(), sub, sess.RefreshToken)
	session.SetCookie(w, sess.AccessToken)

	h.metrics.Logins.Inc()
	h.audit.Emit(r.Context(), audit.Event{
		Action:  audit.ActionLogin,
		Subject: sub,
		Email:   token.Email(claims),
	})
	h.ok(w, map[string]any{"user": userPayload(claims)})
}

// logoutUser revokes the provider session and clears the stored refresh
// token. Both steps are best effort: the cookie is cleared regardless.
func (h *Handler) logoutUser(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	tok := requestcontext.Token(ctx)

	if err := h.identity.Logout(ctx, tok); err != nil {
		h.log.WarnContext(ctx, "provider logout failed", "error", err)
	}

	ident := requestcontext.User(ctx)
	if ident.Sub != "" {
		if err := h.users.UpdateRefreshToken(ctx, ident.Sub, nil); err != nil {
			h.log.WarnContext(ctx, "failed to clear stored refresh token",
				"error", err, "user_id", ident.Sub)
		}
	}

	session.ClearCookie(w)
	h.audit.Emit(ctx, audit.Event{
		Action:  audit.ActionLogout,
		Subject: ident.Sub,
		Email:   ident.Email,
	})
	h.ok(w, nil)
}

// refreshToken exchanges the stored refresh token for a new access token.
// The access token normally arrives via the session cookie; a body token is
// accepted for endpoint-to-endpoint calls, in which case no cookie is
// re-issued (the caller owns cookie handling).
func (h *Handler) refreshToken(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	tok := requestcontext.Token(ctx)
	fromCookie := tok != ""
	if !fromCookie {
		var req struct {
			Token string `json:"token"`
		}
		if err := decodeBody(r, &req); err == nil {
			tok = req.Token
		}
	}

	newToken, err := h.refresher.Refresh(ctx, tok)
	if err != nil {
		h.metrics.RefreshFailures.Inc()
		h.fail(w, r, "refreshToken", err)
		return
	}

	if fromCookie {
		session.SetCookie(w, newToken)
	}

	h.metrics.TokenRefreshes.Inc()
	claims := token.Decode(newToken)
	h.audit.Emit(ctx, audit.Event{
		Action:  audit.ActionTokenRefresh,
		Subject: token.Sub(claims),
	})
	h.ok(w, map[string]any{"token": newToken})
}
