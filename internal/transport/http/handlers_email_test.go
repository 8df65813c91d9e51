package httptransport

import (
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"sessiongate/internal/identity"
	dErrors "sessiongate/pkg/domain-errors"
)

func TestUpdateEmailRequest(t *testing.T) {
	access := sessionToken("u1", "a@b.com")

	t.Run("success reports the pending address", func(t *testing.T) {
		m, router := newTestRouter(t)
		sentAt := time.Now().UTC()
		m.verifier.EXPECT().Verify(gomock.Any(), access).
			Return(&identity.User{ID: "u1", Email: "a@b.com"}, nil)
		m.identity.EXPECT().Login(gomock.Any(), "a@b.com", "hunter22").
			Return(&identity.Session{AccessToken: sessionToken("u1", "a@b.com")}, nil)
		m.identity.EXPECT().
			UpdateUser(gomock.Any(), access, identity.UserUpdate{Email: "next@b.com"}).
			Return(&identity.User{
				ID:                "u1",
				Email:             "a@b.com",
				NewEmail:          "next@b.com",
				EmailChangeSentAt: sentAt,
			}, nil)

		_, body := doRequest(t, router, http.MethodPost, "/updateEmailRequest",
			`{"newEmail":"next@b.com","password":"hunter22"}`, access)

		assert.Equal(t, "success", body["statusMessage"])
		assert.Equal(t, "next@b.com", body["pendingEmail"])
		assert.NotEmpty(t, body["emailChangeSentAt"])
	})

	t.Run("stale change timestamp means no email went out", func(t *testing.T) {
		m, router := newTestRouter(t)
		m.verifier.EXPECT().Verify(gomock.Any(), access).
			Return(&identity.User{ID: "u1", Email: "a@b.com"}, nil)
		m.identity.EXPECT().Login(gomock.Any(), "a@b.com", "hunter22").
			Return(&identity.Session{AccessToken: sessionToken("u1", "a@b.com")}, nil)
		m.identity.EXPECT().
			UpdateUser(gomock.Any(), access, gomock.Any()).
			Return(&identity.User{
				ID:                "u1",
				Email:             "a@b.com",
				NewEmail:          "next@b.com",
				EmailChangeSentAt: time.Now().Add(-5 * time.Minute),
			}, nil)

		_, body := doRequest(t, router, http.MethodPost, "/updateEmailRequest",
			`{"newEmail":"next@b.com","password":"hunter22"}`, access)

		assert.Equal(t, "error", body["statusMessage"])
		assert.Equal(t, "Unable to update email - please try again.", body["error"])
	})

	t.Run("wrong password is remapped", func(t *testing.T) {
		m, router := newTestRouter(t)
		m.verifier.EXPECT().Verify(gomock.Any(), access).
			Return(&identity.User{ID: "u1", Email: "a@b.com"}, nil)
		m.identity.EXPECT().Login(gomock.Any(), "a@b.com", "wrong").
			Return(nil, dErrors.New(dErrors.CodeBadRequest, "No user found with this email, or password invalid."))
		m.identity.EXPECT().UpdateUser(gomock.Any(), gomock.Any(), gomock.Any()).Times(0)

		_, body := doRequest(t, router, http.MethodPost, "/updateEmailRequest",
			`{"newEmail":"next@b.com","password":"wrong"}`, access)

		assert.Equal(t, "error", body["statusMessage"])
		assert.Equal(t, "Please double-check current password.", body["error"])
	})
}

func TestUpdateEmailConfirm(t *testing.T) {
	access := sessionToken("u1", "a@b.com")
	confirmed := &identity.User{
		ID:                "u1",
		Email:             "next@b.com",
		EmailChangeSentAt: time.Now().Add(-time.Minute),
	}

	t.Run("success refreshes the session and updates billing", func(t *testing.T) {
		m, router := newTestRouter(t)
		newToken := sessionToken("u1", "next@b.com")
		m.verifier.EXPECT().Verify(gomock.Any(), access).
			Return(&identity.User{ID: "u1", Email: "a@b.com"}, nil)
		m.identity.EXPECT().ConfirmEmailChange(gomock.Any(), access, "change-tok").
			Return(confirmed, nil)
		m.users.EXPECT().BillingCustomerID(gomock.Any(), "u1").Return("cus_1", nil)
		m.billing.EXPECT().UpdateCustomerEmail(gomock.Any(), "cus_1", "next@b.com").Return(nil)
		m.refresher.EXPECT().Refresh(gomock.Any(), access).Return(newToken, nil)

		rec, body := doRequest(t, router, http.MethodPost, "/updateEmailConfirm",
			`{"updateToken":"change-tok"}`, access)

		assert.Equal(t, "success", body["statusMessage"])
		assert.Equal(t, true, body["jwtUpdated"])
		assert.Equal(t, "next@b.com", body["newEmail"])
		assert.Contains(t, rec.Header().Get("Set-Cookie"), "id_jwt="+newToken)
	})

	t.Run("failed refresh still reports the applied change", func(t *testing.T) {
		m, router := newTestRouter(t)
		m.verifier.EXPECT().Verify(gomock.Any(), access).
			Return(&identity.User{ID: "u1", Email: "a@b.com"}, nil)
		m.identity.EXPECT().ConfirmEmailChange(gomock.Any(), access, "change-tok").
			Return(confirmed, nil)
		m.users.EXPECT().BillingCustomerID(gomock.Any(), "u1").Return("cus_1", nil)
		m.billing.EXPECT().UpdateCustomerEmail(gomock.Any(), "cus_1", "next@b.com").Return(nil)
		m.refresher.EXPECT().Refresh(gomock.Any(), access).
			Return("", dErrors.New(dErrors.CodeBadRequest, "Invalid Refresh Token"))

		rec, body := doRequest(t, router, http.MethodPost, "/updateEmailConfirm",
			`{"updateToken":"change-tok"}`, access)

		assert.Equal(t, "success", body["statusMessage"])
		assert.Equal(t, false, body["jwtUpdated"])
		assert.Empty(t, rec.Header().Get("Set-Cookie"))
	})

	t.Run("billing propagation failure does not block", func(t *testing.T) {
		m, router := newTestRouter(t)
		newToken := sessionToken("u1", "next@b.com")
		m.verifier.EXPECT().Verify(gomock.Any(), access).
			Return(&identity.User{ID: "u1", Email: "a@b.com"}, nil)
		m.identity.EXPECT().ConfirmEmailChange(gomock.Any(), access, "change-tok").
			Return(confirmed, nil)
		m.users.EXPECT().BillingCustomerID(gomock.Any(), "u1").Return("cus_1", nil)
		m.billing.EXPECT().UpdateCustomerEmail(gomock.Any(), "cus_1", "next@b.com").
			Return(dErrors.New(dErrors.CodeUnavailable, "Bad Gateway"))
		m.refresher.EXPECT().Refresh(gomock.Any(), access).Return(newToken, nil)

		_, body := doRequest(t, router, http.MethodPost, "/updateEmailConfirm",
			`{"updateToken":"change-tok"}`, access)

		assert.Equal(t, "success", body["statusMessage"])
		assert.Equal(t, true, body["jwtUpdated"])
	})

	t.Run("pending email still present means nothing changed", func(t *testing.T) {
		m, router := newTestRouter(t)
		m.verifier.EXPECT().Verify(gomock.Any(), access).
			Return(&identity.User{ID: "u1", Email: "a@b.com"}, nil)
		m.identity.EXPECT().ConfirmEmailChange(gomock.Any(), access, "change-tok").
			Return(&identity.User{
				ID:                "u1",
				Email:             "a@b.com",
				NewEmail:          "next@b.com",
				EmailChangeSentAt: time.Now(),
			}, nil)

		_, body := doRequest(t, router, http.MethodPost, "/updateEmailConfirm",
			`{"updateToken":"change-tok"}`, access)

		assert.Equal(t, "error", body["statusMessage"])
		assert.Equal(t, "Unable to update email address.", body["error"])
	})

	t.Run("bad change token is remapped", func(t *testing.T) {
		m, router := newTestRouter(t)
		m.verifier.EXPECT().Verify(gomock.Any(), access).
			Return(&identity.User{ID: "u1", Email: "a@b.com"}, nil)
		m.identity.EXPECT().ConfirmEmailChange(gomock.Any(), access, "bogus").
			Return(nil, dErrors.New(dErrors.CodeBadRequest, "Bad Request"))

		_, body := doRequest(t, router, http.MethodPost, "/updateEmailConfirm",
			`{"updateToken":"bogus"}`, access)

		assert.Equal(t, "error", body["statusMessage"])
		assert.Equal(t, "Unable to confirm email update token.", body["error"])
	})
}
