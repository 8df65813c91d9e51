package session

import (
	"net/http"
	"strings"
)

const (
	// CookieName carries the provider-issued access token.
	CookieName = "id_jwt"

	// CookieMaxAge matches the provider's access token lifetime.
	CookieMaxAge = 3600
)

// ParseCookieHeader extracts the session token from a raw Cookie header.
// Returns "" when the header is absent or no segment is named CookieName.
func ParseCookieHeader(rawHeader string) string {
	if rawHeader == "" {
		return ""
	}
	for _, segment := range strings.Split(rawHeader, "; ") {
		if value, ok := strings.CutPrefix(segment, CookieName+"="); ok {
			return value
		}
	}
	return ""
}

// TokenFromRequest extracts the session token from an incoming request.
func TokenFromRequest(r *http.Request) string {
	return ParseCookieHeader(r.Header.Get("Cookie"))
}

// SetCookie issues the session cookie to the client.
func SetCookie(w http.ResponseWriter, token string) {
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   CookieMaxAge,
		HttpOnly: true,
		Secure:   true,
		SameSite: http.SameSiteLaxMode,
	})
}

// ClearCookie removes the session cookie from the client. A negative MaxAge
// serializes as Max-Age=0, expiring the cookie immediately.
func ClearCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   true,
		SameSite: http.SameSiteLaxMode,
	})
}
