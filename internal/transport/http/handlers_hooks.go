package httptransport

import (
	"encoding/json"
	"io"
	"net/http"
	"strings"

	"github.com/stripe/stripe-go/v82"
	"github.com/stripe/stripe-go/v82/webhook"

	"sessiongate/internal/audit"
	"sessiongate/internal/userdb"
	dErrors "sessiongate/pkg/domain-errors"
)

// identitySignup is invoked by the identity provider after a user confirms
// their signup. It provisions the account: billing customer, default (free)
// subscription, and the local user record linking the two ids. The response
// grants the provider-side role for the default plan.
//
// This endpoint talks to the provider, not the UI, so it uses real HTTP
// status codes instead of the always-200 envelope.
func (h *Handler) identitySignup(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	var req struct {
		User *struct {
			ID    string `json:"id"`
			Email string `json:"email"`
		} `json:"user"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.User == nil || req.User.ID == "" {
		// Not a provider-triggered user event.
		w.WriteHeader(http.StatusBadRequest)
		return
	}

	customerID, err := h.billing.CreateCustomer(ctx, req.User.Email)
	if err != nil {
		h.metrics.UpstreamErrors.WithLabelValues("billing").Inc()
		h.hookError(w, r, "identitySignup", "Unable to create billing customer.", err)
		return
	}

	if _, err := h.billing.CreateSubscription(ctx, customerID, h.defaultPriceID); err != nil {
		h.metrics.UpstreamErrors.WithLabelValues("billing").Inc()
		h.hookError(w, r, "identitySignup", "Unable to create billing subscription.", err)
		return
	}

	err = h.users.Create(ctx, &userdb.User{
		ExternalID:           req.User.ID,
		BillingCustomerID:    customerID,
		NotifyProductUpdates: true,
		NotifyProductOffers:  true,
	})
	if err != nil {
		h.hookError(w, r, "identitySignup", "Unable to complete database update.", err)
		return
	}

	h.audit.Emit(ctx, audit.Event{
		Action:  audit.ActionProvisioned,
		Subject: req.User.ID,
		Email:   req.User.Email,
	})

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_ = json.NewEncoder(w).Encode(map[string]any{
		"statusMessage": "success",
		"app_metadata":  map[string]any{"roles": []string{"free"}},
	})
}

// subscriptionChange is invoked by the billing provider when a customer's
// subscription changes. It maps the customer id back to the account, grants
// the provider-side role derived from the new plan, and drops the cached
// plan label. The role is the first word of the price nickname, lowercased:
// a "Pro plan monthly" price grants the "pro" role.
func (h *Handler) subscriptionChange(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	payload, err := io.ReadAll(r.Body)
	if err != nil {
		h.hookError(w, r, "subscriptionChange", "Unable to read webhook payload.", err)
		return
	}

	event, err := h.webhookEvent(payload, r.Header.Get("Stripe-Signature"))
	if err != nil {
		h.hookError(w, r, "subscriptionChange", "Invalid webhook payload.", err)
		return
	}
	if event.Type != stripe.EventTypeCustomerSubscriptionUpdated {
		h.hookError(w, r, "subscriptionChange", "Incorrect billing event type.",
			dErrors.Newf(dErrors.CodeBadRequest, "unexpected event type %s", event.Type))
		return
	}

	var sub stripe.Subscription
	if event.Data == nil || json.Unmarshal(event.Data.Raw, &sub) != nil || sub.Customer == nil {
		h.hookError(w, r, "subscriptionChange", "No billing subscription available.",
			dErrors.New(dErrors.CodeBadRequest, "event carries no subscription"))
		return
	}

	role := planRole(&sub)
	if role == "" {
		h.hookError(w, r, "subscriptionChange", "Unable to retrieve plan name.",
			dErrors.New(dErrors.CodeBadRequest, "price nickname missing"))
		return
	}

	user, err := h.users.FindByBillingCustomerID(ctx, sub.Customer.ID)
	if err != nil {
		h.hookError(w, r, "subscriptionChange", "Unable to match billing customer to an account.", err)
		return
	}

	if err := h.identity.AdminUpdateUserRole(ctx, user.ExternalID, role); err != nil {
		h.metrics.UpstreamErrors.WithLabelValues(vendorIdentity).Inc()
		h.hookError(w, r, "subscriptionChange", "Unable to update account role.", err)
		return
	}

	h.plans.Invalidate(ctx, sub.Customer.ID)

	h.audit.Emit(ctx, audit.Event{
		Action:  audit.ActionPlanChange,
		Subject: user.ExternalID,
		Detail:  role,
	})

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_ = json.NewEncoder(w).Encode(map[string]any{
		"statusMessage": "success",
		"received":      true,
	})
}

// webhookEvent authenticates and decodes a billing webhook delivery. Without
// a configured secret the payload is trusted as-is (dev only).
func (h *Handler) webhookEvent(payload []byte, signature string) (stripe.Event, error) {
	if h.webhookSecret != "" {
		return webhook.ConstructEvent(payload, signature, h.webhookSecret)
	}
	var event stripe.Event
	if err := json.Unmarshal(payload, &event); err != nil {
		return stripe.Event{}, dErrors.Wrap(err, dErrors.CodeBadRequest, "malformed webhook payload")
	}
	return event, nil
}

// planRole derives the identity role from the subscription's price nickname.
func planRole(sub *stripe.Subscription) string {
	if sub.Items == nil || len(sub.Items.Data) == 0 || sub.Items.Data[0].Price == nil {
		return ""
	}
	fields := strings.Fields(sub.Items.Data[0].Price.Nickname)
	if len(fields) == 0 {
		return ""
	}
	return strings.ToLower(fields[0])
}

func (h *Handler) hookError(w http.ResponseWriter, r *http.Request, endpoint, msg string, err error) {
	h.logFailure(r, endpoint, err)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusBadRequest)
	_ = json.NewEncoder(w).Encode(map[string]any{
		"statusMessage": "error",
		"error":         msg,
	})
}
