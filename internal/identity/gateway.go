// Package identity is a thin HTTP client for the JWT-issuing identity
// provider. It exposes the provider's operations behind a narrow contract
// and translates provider failures into domain errors; it never interprets
// business meaning (that stays in the session and transport layers).
package identity

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	dErrors "sessiongate/pkg/domain-errors"
)

// Session is the token pair the provider issues on login, signup
// confirmation, recovery verification, and refresh.
type Session struct {
	AccessToken  string `json:"access_token"`
	TokenType    string `json:"token_type"`
	ExpiresIn    int    `json:"expires_in"`
	RefreshToken string `json:"refresh_token"`
}

// User mirrors the provider's user record. Success for several update
// operations is only detectable through field presence on this record, so
// the optional fields matter (see the predicates in the transport layer).
type User struct {
	ID                string         `json:"id"`
	Aud               string         `json:"aud"`
	Role              string         `json:"role"`
	Email             string         `json:"email"`
	NewEmail          string         `json:"new_email,omitempty"`
	EmailChangeSentAt time.Time      `json:"email_change_sent_at,omitzero"`
	ConfirmedAt       time.Time      `json:"confirmed_at,omitzero"`
	AppMetadata       map[string]any `json:"app_metadata,omitempty"`
	UserMetadata      map[string]any `json:"user_metadata,omitempty"`
	CreatedAt         time.Time      `json:"created_at,omitzero"`
	UpdatedAt         time.Time      `json:"updated_at,omitzero"`
}

// UserUpdate carries the mutable user fields for PUT /user.
type UserUpdate struct {
	Email            string `json:"email,omitempty"`
	Password         string `json:"password,omitempty"`
	EmailChangeToken string `json:"email_change_token,omitempty"`
}

// Gateway issues HTTP calls to the identity provider.
type Gateway struct {
	baseURL    string
	adminToken string
	httpc      *http.Client
	tracer     trace.Tracer
}

// New constructs a Gateway. adminToken may be empty, which disables
// AdminDeleteUser.
func New(baseURL, adminToken string, timeout time.Duration) *Gateway {
	return &Gateway{
		baseURL:    strings.TrimRight(baseURL, "/"),
		adminToken: adminToken,
		httpc:      &http.Client{Timeout: timeout},
		tracer:     otel.Tracer("sessiongate/identity"),
	}
}

// Signup registers a new, unconfirmed user.
func (g *Gateway) Signup(ctx context.Context, email, password string) (*User, error) {
	var u User
	err := g.do(ctx, call{
		op:     "signup",
		method: http.MethodPost,
		path:   "/signup",
		json:   map[string]string{"email": email, "password": password},
	}, &u)
	if err != nil {
		return nil, err
	}
	return &u, nil
}

// ConfirmSignup exchanges an emailed confirmation token for a session.
func (g *Gateway) ConfirmSignup(ctx context.Context, confirmationToken string) (*Session, error) {
	return g.verify(ctx, "confirm_signup", confirmationToken, "signup")
}

// VerifyRecovery exchanges an emailed recovery token for a session.
func (g *Gateway) VerifyRecovery(ctx context.Context, recoveryToken string) (*Session, error) {
	return g.verify(ctx, "verify_recovery", recoveryToken, "recovery")
}

func (g *Gateway) verify(ctx context.Context, op, token, verifyType string) (*Session, error) {
	var s Session
	err := g.do(ctx, call{
		op:     op,
		method: http.MethodPost,
		path:   "/verify",
		json:   map[string]string{"token": token, "type": verifyType},
	}, &s)
	if err != nil {
		return nil, err
	}
	return &s, nil
}

// Login performs a password grant.
func (g *Gateway) Login(ctx context.Context, email, password string) (*Session, error) {
	form := url.Values{}
	form.Set("grant_type", "password")
	form.Set("username", email)
	form.Set("password", password)
	return g.tokenGrant(ctx, "login", form)
}

// Refresh performs a refresh-token grant. The provider enforces single use:
// a consumed refresh token is rejected on its next presentation.
func (g *Gateway) Refresh(ctx context.Context, refreshToken string) (*Session, error) {
	form := url.Values{}
	form.Set("grant_type", "refresh_token")
	form.Set("refresh_token", refreshToken)
	return g.tokenGrant(ctx, "refresh", form)
}

func (g *Gateway) tokenGrant(ctx context.Context, op string, form url.Values) (*Session, error) {
	var s Session
	err := g.do(ctx, call{
		op:     op,
		method: http.MethodPost,
		path:   "/token",
		form:   form,
	}, &s)
	if err != nil {
		return nil, err
	}
	return &s, nil
}

// RecoverPassword asks the provider to email a recovery token.
func (g *Gateway) RecoverPassword(ctx context.Context, email string) error {
	return g.do(ctx, call{
		op:     "recover",
		method: http.MethodPost,
		path:   "/recover",
		json:   map[string]string{"email": email},
	}, nil)
}

// GetUser fetches the user record the bearer token belongs to. This is the
// provider-side validity check for access tokens: an invalid or expired
// token yields a 401.
func (g *Gateway) GetUser(ctx context.Context, accessToken string) (*User, error) {
	var u User
	err := g.do(ctx, call{
		op:     "get_user",
		method: http.MethodGet,
		path:   "/user",
		bearer: accessToken,
	}, &u)
	if err != nil {
		return nil, err
	}
	return &u, nil
}

// UpdateUser mutates password or email on the user record. Starting an email
// change only records new_email; the switch happens on ConfirmEmailChange.
func (g *Gateway) UpdateUser(ctx context.Context, accessToken string, update UserUpdate) (*User, error) {
	var u User
	err := g.do(ctx, call{
		op:     "update_user",
		method: http.MethodPut,
		path:   "/user",
		bearer: accessToken,
		json:   update,
	}, &u)
	if err != nil {
		return nil, err
	}
	return &u, nil
}

// ConfirmEmailChange applies a pending email change using the emailed token.
func (g *Gateway) ConfirmEmailChange(ctx context.Context, accessToken, emailChangeToken string) (*User, error) {
	return g.UpdateUser(ctx, accessToken, UserUpdate{EmailChangeToken: emailChangeToken})
}

// Logout revokes the refresh tokens held by the provider for this session.
func (g *Gateway) Logout(ctx context.Context, accessToken string) error {
	return g.do(ctx, call{
		op:     "logout",
		method: http.MethodPost,
		path:   "/logout",
		bearer: accessToken,
	}, nil)
}

// AdminUpdateUserRole replaces the user's app_metadata roles with the single
// given role. Requires the elevated admin token from configuration; the
// provider echoes the user record, which must reflect the new role.
func (g *Gateway) AdminUpdateUserRole(ctx context.Context, sub, role string) error {
	if g.adminToken == "" {
		return dErrors.New(dErrors.CodeUnavailable, "admin token not configured")
	}
	var u User
	err := g.do(ctx, call{
		op:     "admin_update_role",
		method: http.MethodPut,
		path:   "/admin/users/" + url.PathEscape(sub),
		bearer: g.adminToken,
		json:   map[string]any{"app_metadata": map[string]any{"roles": []string{role}}},
	}, &u)
	if err != nil {
		return err
	}
	if !hasRole(u.AppMetadata, role) {
		return dErrors.Newf(dErrors.CodeInternal, "identity role %s not applied", role)
	}
	return nil
}

func hasRole(meta map[string]any, role string) bool {
	roles, ok := meta["roles"].([]any)
	if !ok {
		return false
	}
	for _, r := range roles {
		if s, ok := r.(string); ok && s == role {
			return true
		}
	}
	return false
}

// AdminDeleteUser removes the user record from the provider. Requires the
// elevated admin token from configuration.
func (g *Gateway) AdminDeleteUser(ctx context.Context, sub string) error {
	if g.adminToken == "" {
		return dErrors.New(dErrors.CodeUnavailable, "admin token not configured")
	}
	return g.do(ctx, call{
		op:     "admin_delete_user",
		method: http.MethodDelete,
		path:   "/admin/users/" + url.PathEscape(sub),
		bearer: g.adminToken,
	}, nil)
}

// call describes one provider round-trip.
type call struct {
	op     string
	method string
	path   string
	bearer string
	json   any
	form   url.Values
}

// do performs the round-trip and decodes the response into out (when out is
// non-nil and the body is JSON). Non-2xx responses become domain errors with
// the provider's message when one is present.
func (g *Gateway) do(ctx context.Context, c call, out any) error {
	ctx, span := g.tracer.Start(ctx, "identity."+c.op, trace.WithSpanKind(trace.SpanKindClient))
	defer span.End()

	var body io.Reader
	contentType := ""
	switch {
	case c.form != nil:
		body = strings.NewReader(c.form.Encode())
		contentType = "application/x-www-form-urlencoded"
	case c.json != nil:
		buf, err := json.Marshal(c.json)
		if err != nil {
			return dErrors.Wrap(err, dErrors.CodeInternal, "encode identity request")
		}
		body = bytes.NewReader(buf)
		contentType = "application/json"
	}

	req, err := http.NewRequestWithContext(ctx, c.method, g.baseURL+c.path, body)
	if err != nil {
		return dErrors.Wrap(err, dErrors.CodeInternal, "build identity request")
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	if c.bearer != "" {
		req.Header.Set("Authorization", "Bearer "+c.bearer)
	}

	resp, err := g.httpc.Do(req)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "request failed")
		return dErrors.Wrap(err, dErrors.CodeUnavailable, "identity provider unreachable")
	}
	defer resp.Body.Close()

	span.SetAttributes(attribute.Int("http.status_code", resp.StatusCode))

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return dErrors.Wrap(err, dErrors.CodeUnavailable, "read identity response")
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		msg := providerMessage(raw, resp.StatusCode)
		span.SetStatus(codes.Error, msg)
		return dErrors.New(codeForStatus(resp.StatusCode), msg)
	}

	if out == nil || len(raw) == 0 {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return dErrors.Wrap(err, dErrors.CodeInternal, "unexpected identity response shape")
	}
	return nil
}

// providerMessage pulls the most specific error message out of a provider
// error body, falling back to the HTTP status text. The provider varies its
// error field by endpoint, hence the precedence chain.
func providerMessage(raw []byte, status int) string {
	var body struct {
		Error            string `json:"error"`
		ErrorDescription string `json:"error_description"`
		Msg              string `json:"msg"`
	}
	msg := http.StatusText(status)
	if err := json.Unmarshal(raw, &body); err == nil {
		if body.Error != "" {
			msg = body.Error
		}
		if body.ErrorDescription != "" {
			msg = body.ErrorDescription
		}
		if body.Msg != "" {
			msg = body.Msg
		}
	}
	return msg
}

func codeForStatus(status int) dErrors.Code {
	switch {
	case status == http.StatusUnauthorized:
		return dErrors.CodeUnauthorized
	case status == http.StatusForbidden:
		return dErrors.CodeForbidden
	case status == http.StatusNotFound:
		return dErrors.CodeNotFound
	case status == http.StatusConflict:
		return dErrors.CodeConflict
	case status >= 400 && status < 500:
		return dErrors.CodeBadRequest
	case status == http.StatusBadGateway || status == http.StatusServiceUnavailable:
		return dErrors.CodeUnavailable
	default:
		return dErrors.CodeInternal
	}
}

// String renders the session for logs without leaking token material.
func (s *Session) String() string {
	return fmt.Sprintf("session{token_type:%s expires_in:%d}", s.TokenType, s.ExpiresIn)
}
