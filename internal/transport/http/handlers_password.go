package httptransport

import (
	"net/http"

	"sessiongate/internal/audit"
	"sessiongate/internal/identity"
	"sessiongate/internal/session"
	dErrors "sessiongate/pkg/domain-errors"
	"sessiongate/pkg/requestcontext"
)

func (h *Handler) passwordRecoveryRequest(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email string `json:"email"`
	}
	if err := decodeBody(r, &req); err != nil {
		h.invalid(w, "invalid request body")
		return
	}
	if req.Email == "" {
		h.invalid(w, "email is required")
		return
	}

	if err := h.identity.RecoverPassword(r.Context(), req.Email); err != nil {
		h.upstreamFail(w, r, "passwordRecoveryRequest", vendorIdentity, err)
		return
	}
	h.ok(w, nil)
}

// passwordRecoveryVerify exchanges the emailed recovery token for a session
// so the (logged-out) user can reach resetPassword.
func (h *Handler) passwordRecoveryVerify(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Token string `json:"token"`
	}
	if err := decodeBody(r, &req); err != nil {
		h.invalid(w, "invalid request body")
		return
	}
	if req.Token == "" {
		h.invalid(w, "recovery token is required")
		return
	}

	sess, err := h.identity.VerifyRecovery(r.Context(), req.Token)
	if err != nil {
		h.upstreamFail(w, r, "passwordRecoveryVerify", vendorIdentity, err)
		return
	}
	if sess.AccessToken == "" {
		h.failMessage(w, r, "passwordRecoveryVerify",
			dErrors.New(dErrors.CodeInternal, "recovery response missing access token"),
			"Invalid password reset token.")
		return
	}

	session.SetCookie(w, sess.AccessToken)
	h.ok(w, nil)
}

// resetPassword completes the recovery loop. The session came from a
// recovery token rather than a password, so there is no password to re-enter;
// the gate is a live session whose verified email matches the claims.
func (h *Handler) resetPassword(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	var req struct {
		NewPassword string `json:"newPassword"`
	}
	if err := decodeBody(r, &req); err != nil {
		h.invalid(w, "invalid request body")
		return
	}
	if req.NewPassword == "" {
		h.invalid(w, "newPassword is required")
		return
	}

	tok := requestcontext.Token(ctx)
	user, err := h.verifier.Verify(ctx, tok)
	if err != nil {
		h.failMessage(w, r, "resetPassword", err, "Unauthorized Session")
		return
	}
	if user.Email != requestcontext.User(ctx).Email {
		h.failMessage(w, r, "resetPassword",
			dErrors.New(dErrors.CodeUnauthorized, "session email mismatch"),
			"Unauthorized User")
		return
	}

	updated, err := h.identity.UpdateUser(ctx, tok, identity.UserUpdate{Password: req.NewPassword})
	if err != nil {
		msg := "Unsuccessful Request"
		if dErrors.Is(err, dErrors.CodeBadRequest) {
			msg = systemErrorMessage
		}
		h.failMessage(w, r, "resetPassword", err, msg)
		return
	}
	if !passwordChanged(updated) {
		h.failMessage(w, r, "resetPassword",
			dErrors.New(dErrors.CodeInternal, "update response missing email"),
			"Unsuccessful Request")
		return
	}

	h.audit.Emit(ctx, audit.Event{
		Action:  audit.ActionPasswordReset,
		Subject: user.ID,
		Email:   updated.Email,
	})
	h.ok(w, map[string]any{"accountEmail": updated.Email})
}

// updatePassword changes the password for a logged-in user. Requires
// re-authentication with the current password.
func (h *Handler) updatePassword(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	var req struct {
		CurrentPassword string `json:"currentPassword"`
		NewPassword     string `json:"newPassword"`
	}
	if err := decodeBody(r, &req); err != nil {
		h.invalid(w, "invalid request body")
		return
	}
	if req.CurrentPassword == "" || req.NewPassword == "" {
		h.invalid(w, "currentPassword and newPassword are required")
		return
	}

	user, err := h.reauthenticate(ctx, req.CurrentPassword)
	if err != nil {
		h.fail(w, r, "updatePassword", err)
		return
	}

	tok := requestcontext.Token(ctx)
	updated, err := h.identity.UpdateUser(ctx, tok, identity.UserUpdate{Password: req.NewPassword})
	if err != nil {
		h.upstreamFail(w, r, "updatePassword", vendorIdentity, err)
		return
	}
	if !passwordChanged(updated) {
		h.failMessage(w, r, "updatePassword",
			dErrors.New(dErrors.CodeInternal, "update response missing email"),
			systemErrorMessage)
		return
	}

	h.audit.Emit(ctx, audit.Event{
		Action:  audit.ActionPasswordChange,
		Subject: user.ID,
		Email:   updated.Email,
	})
	h.ok(w, map[string]any{"accountEmail": updated.Email})
}
