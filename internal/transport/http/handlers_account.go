package httptransport

import (
	"net/http"

	"golang.org/x/sync/errgroup"

	"sessiongate/internal/audit"
	"sessiongate/internal/session"
	dErrors "sessiongate/pkg/domain-errors"
	"sessiongate/pkg/requestcontext"
)

// deleteUser removes the account everywhere: identity provider first (the
// authoritative record), then billing customer and the local user row in
// parallel. The follow-up deletions are best effort; a leftover billing
// customer is reconciled out-of-band, not by failing the request.
func (h *Handler) deleteUser(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	var req struct {
		Password string `json:"password"`
	}
	if err := decodeBody(r, &req); err != nil {
		h.invalid(w, "invalid request body")
		return
	}
	if req.Password == "" {
		h.invalid(w, "password is required")
		return
	}

	user, err := h.reauthenticate(ctx, req.Password)
	if err != nil {
		h.fail(w, r, "deleteUser", err)
		return
	}

	// The customer id lives on the row we are about to delete; grab it first.
	customerID, custErr := h.users.BillingCustomerID(ctx, user.ID)

	if err := h.identity.AdminDeleteUser(ctx, user.ID); err != nil {
		h.metrics.UpstreamErrors.WithLabelValues(vendorIdentity).Inc()
		h.failMessage(w, r, "deleteUser", err, "Unable to delete account - please try again.")
		return
	}

	g := new(errgroup.Group)
	g.Go(func() error {
		if custErr != nil {
			h.log.WarnContext(ctx, "no billing customer on record for deletion",
				"error", custErr, "user_id", user.ID)
			return nil
		}
		if err := h.billing.DeleteCustomer(ctx, customerID); err != nil {
			h.metrics.UpstreamErrors.WithLabelValues("billing").Inc()
			return dErrors.Wrap(err, dErrors.CodeOf(err), "delete billing customer")
		}
		return nil
	})
	g.Go(func() error {
		if err := h.users.Delete(ctx, user.ID); err != nil {
			return dErrors.Wrap(err, dErrors.CodeInternal, "delete user record")
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		h.log.ErrorContext(ctx, "account cleanup incomplete", "error", err, "user_id", user.ID)
	}

	session.ClearCookie(w)
	h.metrics.AccountDeletes.Inc()
	h.audit.Emit(ctx, audit.Event{
		Action:  audit.ActionDelete,
		Subject: user.ID,
		Email:   user.Email,
	})
	h.ok(w, nil)
}

// updateNotifications stores the user's email notification preferences.
func (h *Handler) updateNotifications(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	var req struct {
		NotifyProductUpdates *bool `json:"notifyProductUpdates"`
		NotifyProductOffers  *bool `json:"notifyProductOffers"`
	}
	if err := decodeBody(r, &req); err != nil {
		h.invalid(w, "invalid request body")
		return
	}
	if req.NotifyProductUpdates == nil || req.NotifyProductOffers == nil {
		h.invalid(w, "notifyProductUpdates and notifyProductOffers are required")
		return
	}

	user, err := h.verifier.Verify(ctx, requestcontext.Token(ctx))
	if err != nil {
		h.failMessage(w, r, "updateNotifications", err, "Unauthorized Session")
		return
	}

	err = h.users.UpdateNotificationPrefs(ctx, user.ID, *req.NotifyProductUpdates, *req.NotifyProductOffers)
	if err != nil {
		h.failMessage(w, r, "updateNotifications", err, "Unsuccessful Request")
		return
	}
	h.ok(w, map[string]any{
		"notifyProductUpdates": *req.NotifyProductUpdates,
		"notifyProductOffers":  *req.NotifyProductOffers,
	})
}
