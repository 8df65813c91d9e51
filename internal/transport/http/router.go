// Package httptransport is the thin HTTP layer. Handlers are fixed pipelines:
// authorize when required, call one or two gateway operations, translate the
// result into the response envelope, optionally mutate the session cookie.
package httptransport

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"sessiongate/internal/audit"
	"sessiongate/internal/billing"
	"sessiongate/internal/identity"
	"sessiongate/internal/platform/metrics"
	"sessiongate/internal/userdb"
)

//go:generate mockgen -source=router.go -destination=mocks/handler-mocks.go -package=mocks

// IdentityService is the slice of the identity gateway handlers depend on.
type IdentityService interface {
	Signup(ctx context.Context, email, password string) (*identity.User, error)
	ConfirmSignup(ctx context.Context, confirmationToken string) (*identity.Session, error)
	VerifyRecovery(ctx context.Context, recoveryToken string) (*identity.Session, error)
	Login(ctx context.Context, email, password string) (*identity.Session, error)
	RecoverPassword(ctx context.Context, email string) error
	UpdateUser(ctx context.Context, accessToken string, update identity.UserUpdate) (*identity.User, error)
	ConfirmEmailChange(ctx context.Context, accessToken, emailChangeToken string) (*identity.User, error)
	Logout(ctx context.Context, accessToken string) error
	AdminUpdateUserRole(ctx context.Context, sub, role string) error
	AdminDeleteUser(ctx context.Context, sub string) error
}

// SessionVerifier proves a session and identifies its user.
type SessionVerifier interface {
	Verify(ctx context.Context, token string) (*identity.User, error)
}

// TokenRefresher runs the refresh flow and returns the new access token.
type TokenRefresher interface {
	Refresh(ctx context.Context, accessToken string) (string, error)
}

// UserStore is the slice of the user record store handlers depend on.
type UserStore interface {
	Create(ctx context.Context, user *userdb.User) error
	FindByBillingCustomerID(ctx context.Context, customerID string) (*userdb.User, error)
	Delete(ctx context.Context, externalID string) error
	UpdateRefreshToken(ctx context.Context, externalID string, token *string) error
	BillingCustomerID(ctx context.Context, externalID string) (string, error)
	UpdateNotificationPrefs(ctx context.Context, externalID string, productUpdates, productOffers bool) error
}

// BillingService is the slice of the billing gateway handlers depend on.
type BillingService interface {
	CreateCustomer(ctx context.Context, email string) (string, error)
	DeleteCustomer(ctx context.Context, customerID string) error
	UpdateCustomerEmail(ctx context.Context, customerID, email string) error
	CreateSubscription(ctx context.Context, customerID, priceID string) (string, error)
	PortalLink(ctx context.Context, customerID, returnURL string) (string, error)
}

// PlanSource resolves the active plan label, possibly through a cache, and
// drops cached entries when the subscription changes underneath them.
type PlanSource interface {
	ActivePlan(ctx context.Context, customerID string) (*billing.Plan, error)
	Invalidate(ctx context.Context, customerID string)
}

// HealthChecker reports readiness of an optional backing service.
type HealthChecker interface {
	Health(ctx context.Context) error
}

// Handler carries the dependencies shared by all endpoints.
type Handler struct {
	identity  IdentityService
	verifier  SessionVerifier
	refresher TokenRefresher
	users     UserStore
	billing   BillingService
	plans     PlanSource
	audit     *audit.Publisher
	metrics   *metrics.Metrics
	log       *slog.Logger
	health    HealthChecker

	siteURL        string
	defaultPriceID string
	webhookSecret  string
}

// HandlerConfig collects the handler wiring so NewHandler stays readable.
type HandlerConfig struct {
	Identity  IdentityService
	Verifier  SessionVerifier
	Refresher TokenRefresher
	Users     UserStore
	Billing   BillingService
	Plans     PlanSource
	Audit     *audit.Publisher
	Metrics   *metrics.Metrics
	Log       *slog.Logger

	// Health is optional; when set, /healthz reports its failures as 503.
	Health HealthChecker

	SiteURL        string
	DefaultPriceID string

	// WebhookSecret verifies billing webhook signatures; empty skips
	// verification.
	WebhookSecret string
}

func NewHandler(cfg HandlerConfig) *Handler {
	return &Handler{
		identity:       cfg.Identity,
		verifier:       cfg.Verifier,
		refresher:      cfg.Refresher,
		users:          cfg.Users,
		billing:        cfg.Billing,
		plans:          cfg.Plans,
		audit:          cfg.Audit,
		metrics:        cfg.Metrics,
		log:            cfg.Log,
		health:         cfg.Health,
		siteURL:        cfg.SiteURL,
		defaultPriceID: cfg.DefaultPriceID,
		webhookSecret:  cfg.WebhookSecret,
	}
}

// NewRouter wires every endpoint behind the request middleware.
func NewRouter(h *Handler) http.Handler {
	r := chi.NewRouter()
	r.Use(RequestID)
	r.Use(SessionContext)

	r.Post("/signup", h.signupUser)
	r.Post("/confirm", h.confirmUser)
	r.Post("/login", h.loginUser)
	r.Post("/logout", h.logoutUser)
	r.Post("/refreshToken", h.refreshToken)

	r.Post("/passwordRecoveryRequest", h.passwordRecoveryRequest)
	r.Post("/passwordRecoveryVerify", h.passwordRecoveryVerify)
	r.Post("/resetPassword", h.resetPassword)
	r.Post("/updatePassword", h.updatePassword)

	r.Post("/updateEmailRequest", h.updateEmailRequest)
	r.Post("/updateEmailConfirm", h.updateEmailConfirm)

	r.Post("/updateNotifications", h.updateNotifications)
	r.Post("/deleteUser", h.deleteUser)

	r.Get("/manageBilling", h.manageBilling)
	r.Get("/retrievePlan", h.retrievePlan)

	r.Post("/hooks/identitySignup", h.identitySignup)
	r.Post("/hooks/subscriptionChange", h.subscriptionChange)

	r.Get("/healthz", h.healthz)
	r.Handle("/metrics", promhttp.Handler())

	return r
}

// healthz answers readiness probes. A configured backing service that stops
// responding turns the probe into a 503.
func (h *Handler) healthz(w http.ResponseWriter, r *http.Request) {
	if h.health != nil {
		if err := h.health.Health(r.Context()); err != nil {
			h.log.WarnContext(r.Context(), "health check failed", "error", err)
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
	}
	w.WriteHeader(http.StatusOK)
}
