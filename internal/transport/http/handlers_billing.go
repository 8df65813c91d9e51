package httptransport

import (
	"net/http"

	dErrors "sessiongate/pkg/domain-errors"
	"sessiongate/pkg/requestcontext"
)

// manageBilling hands the user a billing portal link for their stored
// customer id.
func (h *Handler) manageBilling(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	user, err := h.verifier.Verify(ctx, requestcontext.Token(ctx))
	if err != nil {
		h.failMessage(w, r, "manageBilling", err, "Unauthorized Session")
		return
	}

	customerID, err := h.users.BillingCustomerID(ctx, user.ID)
	if err != nil {
		h.failMessage(w, r, "manageBilling", err, "Unsuccessful Request")
		return
	}

	link, err := h.billing.PortalLink(ctx, customerID, h.siteURL+"/account")
	if err != nil {
		h.metrics.UpstreamErrors.WithLabelValues("billing").Inc()
		h.failMessage(w, r, "manageBilling", err, "Unsuccessful Request")
		return
	}
	h.ok(w, map[string]any{"link": link})
}

// retrievePlan resolves the user's active plan into a display label.
func (h *Handler) retrievePlan(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	user, err := h.verifier.Verify(ctx, requestcontext.Token(ctx))
	if err != nil {
		h.failMessage(w, r, "retrievePlan", err, "Unauthorized Session")
		return
	}

	customerID, err := h.users.BillingCustomerID(ctx, user.ID)
	if err != nil {
		h.failMessage(w, r, "retrievePlan", err, "Unsuccessful Request")
		return
	}

	plan, err := h.plans.ActivePlan(ctx, customerID)
	if err != nil {
		h.metrics.UpstreamErrors.WithLabelValues("billing").Inc()
		h.failMessage(w, r, "retrievePlan", err, planErrorMessage(err))
		return
	}
	h.ok(w, map[string]any{"plan": plan.Label})
}

// planErrorMessage passes through the lookup's own not-found wording and
// hides everything else.
func planErrorMessage(err error) string {
	if dErrors.Is(err, dErrors.CodeNotFound) {
		return dErrors.MessageOf(err)
	}
	return "Unsuccessful Request"
}
