package httptransport

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"sessiongate/internal/audit"
	"sessiongate/internal/identity"
	dErrors "sessiongate/pkg/domain-errors"
)

func TestDeleteUser(t *testing.T) {
	access := sessionToken("u1", "a@b.com")

	expectReauth := func(m *handlerMocks) {
		m.verifier.EXPECT().Verify(gomock.Any(), access).
			Return(&identity.User{ID: "u1", Email: "a@b.com"}, nil)
		m.identity.EXPECT().Login(gomock.Any(), "a@b.com", "hunter22").
			Return(&identity.Session{AccessToken: sessionToken("u1", "a@b.com")}, nil)
	}

	t.Run("deletes identity, billing customer, and user record", func(t *testing.T) {
		m, router := newTestRouter(t)
		expectReauth(m)
		m.users.EXPECT().BillingCustomerID(gomock.Any(), "u1").Return("cus_1", nil)
		m.identity.EXPECT().AdminDeleteUser(gomock.Any(), "u1").Return(nil)
		m.billing.EXPECT().DeleteCustomer(gomock.Any(), "cus_1").Return(nil)
		m.users.EXPECT().Delete(gomock.Any(), "u1").Return(nil)

		rec, body := doRequest(t, router, http.MethodPost, "/deleteUser",
			`{"password":"hunter22"}`, access)

		assert.Equal(t, "success", body["statusMessage"])
		assert.Contains(t, rec.Header().Get("Set-Cookie"), "Max-Age=0")

		events := m.sink.Events()
		require.Len(t, events, 1)
		assert.Equal(t, audit.ActionDelete, events[0].Action)
		assert.Equal(t, "u1", events[0].Subject)
	})

	t.Run("wrong password deletes nothing", func(t *testing.T) {
		m, router := newTestRouter(t)
		m.verifier.EXPECT().Verify(gomock.Any(), access).
			Return(&identity.User{ID: "u1", Email: "a@b.com"}, nil)
		m.identity.EXPECT().Login(gomock.Any(), "a@b.com", "wrong").
			Return(nil, dErrors.New(dErrors.CodeBadRequest, "No user found with this email, or password invalid."))
		m.identity.EXPECT().AdminDeleteUser(gomock.Any(), gomock.Any()).Times(0)
		m.billing.EXPECT().DeleteCustomer(gomock.Any(), gomock.Any()).Times(0)
		m.users.EXPECT().Delete(gomock.Any(), gomock.Any()).Times(0)

		_, body := doRequest(t, router, http.MethodPost, "/deleteUser",
			`{"password":"wrong"}`, access)

		assert.Equal(t, "error", body["statusMessage"])
		assert.Equal(t, "Unauthorized, please double-check password.", body["error"])
	})

	t.Run("identity deletion failure stops the cleanup", func(t *testing.T) {
		m, router := newTestRouter(t)
		expectReauth(m)
		m.users.EXPECT().BillingCustomerID(gomock.Any(), "u1").Return("cus_1", nil)
		m.identity.EXPECT().AdminDeleteUser(gomock.Any(), "u1").
			Return(dErrors.New(dErrors.CodeUnavailable, "Bad Gateway"))
		m.billing.EXPECT().DeleteCustomer(gomock.Any(), gomock.Any()).Times(0)
		m.users.EXPECT().Delete(gomock.Any(), gomock.Any()).Times(0)

		rec, body := doRequest(t, router, http.MethodPost, "/deleteUser",
			`{"password":"hunter22"}`, access)

		assert.Equal(t, "error", body["statusMessage"])
		assert.Equal(t, "Unable to delete account - please try again.", body["error"])
		assert.Empty(t, rec.Header().Get("Set-Cookie"))
	})

	t.Run("missing billing customer still deletes the rest", func(t *testing.T) {
		m, router := newTestRouter(t)
		expectReauth(m)
		m.users.EXPECT().BillingCustomerID(gomock.Any(), "u1").
			Return("", dErrors.New(dErrors.CodeNotFound, "user record not found"))
		m.identity.EXPECT().AdminDeleteUser(gomock.Any(), "u1").Return(nil)
		m.billing.EXPECT().DeleteCustomer(gomock.Any(), gomock.Any()).Times(0)
		m.users.EXPECT().Delete(gomock.Any(), "u1").Return(nil)

		_, body := doRequest(t, router, http.MethodPost, "/deleteUser",
			`{"password":"hunter22"}`, access)

		assert.Equal(t, "success", body["statusMessage"])
	})
}

func TestUpdateNotifications(t *testing.T) {
	access := sessionToken("u1", "a@b.com")

	t.Run("success echoes the stored preferences", func(t *testing.T) {
		m, router := newTestRouter(t)
		m.verifier.EXPECT().Verify(gomock.Any(), access).
			Return(&identity.User{ID: "u1", Email: "a@b.com"}, nil)
		m.users.EXPECT().
			UpdateNotificationPrefs(gomock.Any(), "u1", true, false).
			Return(nil)

		_, body := doRequest(t, router, http.MethodPost, "/updateNotifications",
			`{"notifyProductUpdates":true,"notifyProductOffers":false}`, access)

		assert.Equal(t, "success", body["statusMessage"])
		assert.Equal(t, true, body["notifyProductUpdates"])
		assert.Equal(t, false, body["notifyProductOffers"])
	})

	t.Run("both flags are required", func(t *testing.T) {
		_, router := newTestRouter(t)

		_, body := doRequest(t, router, http.MethodPost, "/updateNotifications",
			`{"notifyProductUpdates":true}`, access)

		assert.Equal(t, "error", body["statusMessage"])
		assert.Equal(t, "notifyProductUpdates and notifyProductOffers are required", body["error"])
	})

	t.Run("unverifiable session", func(t *testing.T) {
		m, router := newTestRouter(t)
		m.verifier.EXPECT().Verify(gomock.Any(), access).
			Return(nil, dErrors.New(dErrors.CodeUnauthorized, "session could not be verified"))

		_, body := doRequest(t, router, http.MethodPost, "/updateNotifications",
			`{"notifyProductUpdates":true,"notifyProductOffers":true}`, access)

		assert.Equal(t, "error", body["statusMessage"])
		assert.Equal(t, "Unauthorized Session", body["error"])
	})
}
