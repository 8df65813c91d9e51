package httptransport

import (
	"net/http"

	"sessiongate/internal/audit"
	"sessiongate/internal/identity"
	"sessiongate/internal/session"
	dErrors "sessiongate/pkg/domain-errors"
	"sessiongate/pkg/requestcontext"
)

// updateEmailRequest starts an email change. The provider only records the
// pending address and emails a confirmation token to it; nothing switches
// until updateEmailConfirm.
func (h *Handler) updateEmailRequest(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	var req struct {
		NewEmail string `json:"newEmail"`
		Password string `json:"password"`
	}
	if err := decodeBody(r, &req); err != nil {
		h.invalid(w, "invalid request body")
		return
	}
	if req.NewEmail == "" || req.Password == "" {
		h.invalid(w, "newEmail and password are required")
		return
	}

	user, err := h.reauthenticate(ctx, req.Password)
	if err != nil {
		h.fail(w, r, "updateEmailRequest", err)
		return
	}

	tok := requestcontext.Token(ctx)
	updated, err := h.identity.UpdateUser(ctx, tok, identity.UserUpdate{Email: req.NewEmail})
	if err != nil {
		h.upstreamFail(w, r, "updateEmailRequest", vendorIdentity, err)
		return
	}
	if !emailChangeRequested(updated, req.NewEmail, requestcontext.Now(ctx)) {
		h.failMessage(w, r, "updateEmailRequest",
			dErrors.New(dErrors.CodeInternal, "update response missing pending email"),
			"Unable to update email - please try again.")
		return
	}

	h.audit.Emit(ctx, audit.Event{
		Action:  audit.ActionEmailChange,
		Subject: user.ID,
		Email:   user.Email,
		Detail:  "requested",
	})
	h.ok(w, map[string]any{
		"pendingEmail":      updated.NewEmail,
		"emailChangeSentAt": updated.EmailChangeSentAt,
	})
}

// updateEmailConfirm applies a pending email change, then propagates the new
// address to billing (best effort) and re-issues the session cookie via the
// refresh flow so the claims the UI displays catch up. A failed refresh
// downgrades to success with jwtUpdated:false; the change itself stuck.
func (h *Handler) updateEmailConfirm(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	var req struct {
		UpdateToken string `json:"updateToken"`
	}
	if err := decodeBody(r, &req); err != nil {
		h.invalid(w, "invalid request body")
		return
	}
	if req.UpdateToken == "" {
		h.invalid(w, "updateToken is required")
		return
	}

	tok := requestcontext.Token(ctx)
	user, err := h.verifier.Verify(ctx, tok)
	if err != nil {
		h.fail(w, r, "updateEmailConfirm", err)
		return
	}

	updated, err := h.identity.ConfirmEmailChange(ctx, tok, req.UpdateToken)
	if err != nil {
		h.upstreamFail(w, r, "updateEmailConfirm", vendorIdentity, err)
		return
	}
	if !emailChangeConfirmed(updated) {
		h.failMessage(w, r, "updateEmailConfirm",
			dErrors.New(dErrors.CodeInternal, "pending email still present after confirm"),
			"Unable to update email address.")
		return
	}

	h.propagateBillingEmail(r, user.ID, updated.Email)

	h.audit.Emit(ctx, audit.Event{
		Action:  audit.ActionEmailChange,
		Subject: user.ID,
		Email:   updated.Email,
		Detail:  "confirmed",
	})

	newToken, err := h.refresher.Refresh(ctx, tok)
	if err != nil {
		h.log.WarnContext(ctx, "post-email-change refresh failed", "error", err, "user_id", user.ID)
		h.ok(w, map[string]any{"jwtUpdated": false})
		return
	}
	session.SetCookie(w, newToken)
	h.ok(w, map[string]any{"jwtUpdated": true, "newEmail": updated.Email})
}

func (h *Handler) propagateBillingEmail(r *http.Request, sub, email string) {
	ctx := r.Context()
	customerID, err := h.users.BillingCustomerID(ctx, sub)
	if err != nil {
		h.log.WarnContext(ctx, "no billing customer for email propagation", "error", err, "user_id", sub)
		return
	}
	if err := h.billing.UpdateCustomerEmail(ctx, customerID, email); err != nil {
		h.metrics.UpstreamErrors.WithLabelValues("billing").Inc()
		h.log.WarnContext(ctx, "billing customer email update failed", "error", err, "user_id", sub)
	}
}
