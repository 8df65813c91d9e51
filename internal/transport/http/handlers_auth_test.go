package httptransport

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"sessiongate/internal/audit"
	"sessiongate/internal/identity"
	"sessiongate/internal/userdb"
	dErrors "sessiongate/pkg/domain-errors"
	"sessiongate/pkg/platform/sentinel"
)

func TestSignupUser(t *testing.T) {
	t.Run("success returns the registered email", func(t *testing.T) {
		m, router := newTestRouter(t)
		m.identity.EXPECT().
			Signup(gomock.Any(), "new@example.com", "hunter22").
			Return(&identity.User{ID: "u1", Email: "new@example.com"}, nil)

		rec, body := doRequest(t, router, http.MethodPost, "/signup",
			`{"email":"new@example.com","password":"hunter22"}`, "")

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "success", body["statusMessage"])
		assert.Equal(t, "new@example.com", body["email"])

		events := m.sink.Events()
		require.Len(t, events, 1)
		assert.Equal(t, audit.ActionSignup, events[0].Action)
		assert.Equal(t, "u1", events[0].Subject)
	})

	t.Run("duplicate account is remapped", func(t *testing.T) {
		m, router := newTestRouter(t)
		m.identity.EXPECT().
			Signup(gomock.Any(), "taken@example.com", "hunter22").
			Return(nil, dErrors.New(dErrors.CodeBadRequest, "Bad Request"))

		rec, body := doRequest(t, router, http.MethodPost, "/signup",
			`{"email":"taken@example.com","password":"hunter22"}`, "")

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "error", body["statusMessage"])
		assert.Equal(t, "An account for this email already exists.", body["error"])
	})

	t.Run("missing fields never reach the provider", func(t *testing.T) {
		_, router := newTestRouter(t)

		_, body := doRequest(t, router, http.MethodPost, "/signup", `{"email":"a@b.com"}`, "")

		assert.Equal(t, "error", body["statusMessage"])
		assert.Equal(t, "email and password are required", body["error"])
	})
}

func TestConfirmUser(t *testing.T) {
	t.Run("success saves refresh token and sets the cookie", func(t *testing.T) {
		m, router := newTestRouter(t)
		access := sessionToken("u1", "new@example.com")
		m.identity.EXPECT().
			ConfirmSignup(gomock.Any(), "confirm-tok-1").
			Return(&identity.Session{AccessToken: access, RefreshToken: "rt-1"}, nil)

		var saved *string
		m.users.EXPECT().
			UpdateRefreshToken(gomock.Any(), "u1", gomock.Any()).
			DoAndReturn(func(_ any, _ string, tok *string) error {
				saved = tok
				return nil
			})

		rec, body := doRequest(t, router, http.MethodPost, "/confirm",
			`{"token":"confirm-tok-1"}`, "")

		assert.Equal(t, "success", body["statusMessage"])
		user, ok := body["user"].(map[string]any)
		require.True(t, ok)
		assert.Equal(t, true, user["authenticated"])
		assert.Equal(t, "u1", user["id"])
		assert.Equal(t, "new@example.com", user["email"])
		assert.Equal(t, float64(9999999999), user["authExpires"])

		require.NotNil(t, saved)
		assert.Equal(t, "rt-1", *saved)
		assert.Contains(t, rec.Header().Get("Set-Cookie"), "id_jwt="+access)
	})

	t.Run("unknown user record is created on first session", func(t *testing.T) {
		m, router := newTestRouter(t)
		access := sessionToken("u2", "late@example.com")
		m.identity.EXPECT().
			ConfirmSignup(gomock.Any(), "confirm-tok-2").
			Return(&identity.Session{AccessToken: access, RefreshToken: "rt-2"}, nil)
		m.users.EXPECT().
			UpdateRefreshToken(gomock.Any(), "u2", gomock.Any()).
			Return(fmt.Errorf("user record: %w", sentinel.ErrNotFound))
		m.users.EXPECT().
			Create(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ any, u *userdb.User) error {
				assert.Equal(t, "u2", u.ExternalID)
				assert.True(t, u.NotifyProductUpdates)
				assert.True(t, u.NotifyProductOffers)
				return nil
			})

		_, body := doRequest(t, router, http.MethodPost, "/confirm",
			`{"token":"confirm-tok-2"}`, "")

		assert.Equal(t, "success", body["statusMessage"])
	})

	t.Run("stale token is remapped", func(t *testing.T) {
		m, router := newTestRouter(t)
		m.identity.EXPECT().
			ConfirmSignup(gomock.Any(), "stale").
			Return(nil, dErrors.New(dErrors.CodeBadRequest, "Bad Request"))

		_, body := doRequest(t, router, http.MethodPost, "/confirm", `{"token":"stale"}`, "")

		assert.Equal(t, "error", body["statusMessage"])
		assert.Equal(t, "Unable to Confirm Account", body["error"])
	})

	t.Run("session without a decodable token fails", func(t *testing.T) {
		m, router := newTestRouter(t)
		m.identity.EXPECT().
			ConfirmSignup(gomock.Any(), "odd").
			Return(&identity.Session{AccessToken: "not-a-jwt"}, nil)

		rec, body := doRequest(t, router, http.MethodPost, "/confirm", `{"token":"odd"}`, "")

		assert.Equal(t, "error", body["statusMessage"])
		assert.Equal(t, "Unable to Confirm Account", body["error"])
		assert.Empty(t, rec.Header().Get("Set-Cookie"))
	})
}

func TestLoginUser(t *testing.T) {
	t.Run("success issues the session cookie", func(t *testing.T) {
		m, router := newTestRouter(t)
		access := sessionToken("u1", "a@b.com")
		m.identity.EXPECT().
			Login(gomock.Any(), "a@b.com", "hunter22").
			Return(&identity.Session{AccessToken: access, RefreshToken: "rt-1"}, nil)
		m.users.EXPECT().
			UpdateRefreshToken(gomock.Any(), "u1", gomock.Any()).
			Return(nil)

		rec, body := doRequest(t, router, http.MethodPost, "/login",
			`{"email":"a@b.com","password":"hunter22"}`, "")

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "success", body["statusMessage"])
		user := body["user"].(map[string]any)
		assert.Equal(t, "a@b.com", user["email"])
		assert.Contains(t, rec.Header().Get("Set-Cookie"), "id_jwt="+access)

		events := m.sink.Events()
		require.Len(t, events, 1)
		assert.Equal(t, audit.ActionLogin, events[0].Action)
	})

	t.Run("wrong password is remapped and sets no cookie", func(t *testing.T) {
		m, router := newTestRouter(t)
		m.identity.EXPECT().
			Login(gomock.Any(), "a@b.com", "wrong").
			Return(nil, dErrors.New(dErrors.CodeBadRequest, "No user found with this email, or password invalid."))

		rec, body := doRequest(t, router, http.MethodPost, "/login",
			`{"email":"a@b.com","password":"wrong"}`, "")

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "error", body["statusMessage"])
		assert.Equal(t, "Account not found or password is invalid.", body["error"])
		assert.Empty(t, rec.Header().Get("Set-Cookie"))
		assert.Empty(t, m.sink.Events())
	})
}

func TestLogoutUser(t *testing.T) {
	t.Run("revokes, clears stored token, expires cookie", func(t *testing.T) {
		m, router := newTestRouter(t)
		access := sessionToken("u1", "a@b.com")
		m.identity.EXPECT().Logout(gomock.Any(), access).Return(nil)
		m.users.EXPECT().UpdateRefreshToken(gomock.Any(), "u1", gomock.Nil()).Return(nil)

		rec, body := doRequest(t, router, http.MethodPost, "/logout", "", access)

		assert.Equal(t, "success", body["statusMessage"])
		assert.Contains(t, rec.Header().Get("Set-Cookie"), "id_jwt=")
		assert.Contains(t, rec.Header().Get("Set-Cookie"), "Max-Age=0")
	})

	t.Run("provider failure still clears the cookie", func(t *testing.T) {
		m, router := newTestRouter(t)
		access := sessionToken("u1", "a@b.com")
		m.identity.EXPECT().Logout(gomock.Any(), access).
			Return(dErrors.New(dErrors.CodeUnavailable, "identity provider unreachable"))
		m.users.EXPECT().UpdateRefreshToken(gomock.Any(), "u1", gomock.Nil()).Return(nil)

		rec, body := doRequest(t, router, http.MethodPost, "/logout", "", access)

		assert.Equal(t, "success", body["statusMessage"])
		assert.Contains(t, rec.Header().Get("Set-Cookie"), "Max-Age=0")
	})
}

func TestRefreshToken(t *testing.T) {
	t.Run("cookie session gets a fresh cookie", func(t *testing.T) {
		m, router := newTestRouter(t)
		oldToken := sessionToken("u1", "a@b.com")
		newToken := sessionToken("u1", "a@b.com") + "x"
		m.refresher.EXPECT().Refresh(gomock.Any(), oldToken).Return(newToken, nil)

		rec, body := doRequest(t, router, http.MethodPost, "/refreshToken", "", oldToken)

		assert.Equal(t, "success", body["statusMessage"])
		assert.Equal(t, newToken, body["token"])
		assert.Contains(t, rec.Header().Get("Set-Cookie"), "id_jwt="+newToken)
	})

	t.Run("body token skips the cookie", func(t *testing.T) {
		m, router := newTestRouter(t)
		oldToken := sessionToken("u1", "a@b.com")
		m.refresher.EXPECT().Refresh(gomock.Any(), oldToken).Return("renewed", nil)

		rec, body := doRequest(t, router, http.MethodPost, "/refreshToken",
			mustJSON(t, map[string]string{"token": oldToken}), "")

		assert.Equal(t, "success", body["statusMessage"])
		assert.Equal(t, "renewed", body["token"])
		assert.Empty(t, rec.Header().Get("Set-Cookie"))
	})

	t.Run("rejected refresh token is remapped", func(t *testing.T) {
		m, router := newTestRouter(t)
		oldToken := sessionToken("u1", "a@b.com")
		m.refresher.EXPECT().Refresh(gomock.Any(), oldToken).
			Return("", dErrors.New(dErrors.CodeBadRequest, "Invalid Refresh Token"))

		rec, body := doRequest(t, router, http.MethodPost, "/refreshToken", "", oldToken)

		assert.Equal(t, "error", body["statusMessage"])
		assert.Equal(t, "Unable to renew tokens.", body["error"])
		assert.Empty(t, rec.Header().Get("Set-Cookie"))
	})
}
