package httptransport

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"sessiongate/internal/audit"
	"sessiongate/internal/platform/metrics"
	"sessiongate/internal/transport/http/mocks"
	"sessiongate/pkg/testutil"
)

type handlerMocks struct {
	identity  *mocks.MockIdentityService
	verifier  *mocks.MockSessionVerifier
	refresher *mocks.MockTokenRefresher
	users     *mocks.MockUserStore
	billing   *mocks.MockBillingService
	plans     *mocks.MockPlanSource
	sink      *audit.MemorySink
}

func newTestRouter(t *testing.T) (*handlerMocks, http.Handler) {
	return newTestRouterWith(t, nil)
}

// newTestRouterWith lets a test adjust the handler config, for endpoints that
// change behavior on optional wiring (webhook secret, health checker).
func newTestRouterWith(t *testing.T, adjust func(*HandlerConfig)) (*handlerMocks, http.Handler) {
	t.Helper()
	ctrl := gomock.NewController(t)

	m := &handlerMocks{
		identity:  mocks.NewMockIdentityService(ctrl),
		verifier:  mocks.NewMockSessionVerifier(ctrl),
		refresher: mocks.NewMockTokenRefresher(ctrl),
		users:     mocks.NewMockUserStore(ctrl),
		billing:   mocks.NewMockBillingService(ctrl),
		plans:     mocks.NewMockPlanSource(ctrl),
		sink:      audit.NewMemorySink(),
	}
	log := slog.New(slog.DiscardHandler)
	cfg := HandlerConfig{
		Identity:       m.identity,
		Verifier:       m.verifier,
		Refresher:      m.refresher,
		Users:          m.users,
		Billing:        m.billing,
		Plans:          m.plans,
		Audit:          audit.NewPublisher(m.sink, log),
		Metrics:        metrics.New(prometheus.NewRegistry()),
		Log:            log,
		SiteURL:        "https://app.example.com",
		DefaultPriceID: "price_free",
	}
	if adjust != nil {
		adjust(&cfg)
	}
	return m, NewRouter(NewHandler(cfg))
}

// doRequest runs one request through the full middleware chain and decodes
// the JSON body.
func doRequest(t *testing.T, router http.Handler, method, path, body, cookieToken string) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()

	var reader *strings.Reader
	if body == "" {
		reader = strings.NewReader("{}")
	} else {
		reader = strings.NewReader(body)
	}
	r := httptest.NewRequest(method, path, reader)
	r.Header.Set("Content-Type", "application/json")
	if cookieToken != "" {
		r.Header.Set("Cookie", "id_jwt="+cookieToken)
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, r)

	decoded := map[string]any{}
	if rec.Body.Len() > 0 {
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &decoded))
	}
	return rec, decoded
}

// sessionToken builds a well-formed session token for the canonical test
// user.
func sessionToken(sub, email string) string {
	return testutil.Token(map[string]any{
		"sub":   sub,
		"email": email,
		"exp":   float64(9999999999),
	})
}

func mustJSON(t *testing.T, v any) string {
	t.Helper()
	buf, err := json.Marshal(v)
	require.NoError(t, err)
	return string(buf)
}
