// Package token decodes the unsigned payload of a provider-issued access
// token. No signature or expiry check happens here: the claims are cached
// display data, and authorization proof always comes from a live round-trip
// to the identity provider.
package token

import (
	"github.com/golang-jwt/jwt/v5"
)

// Decode parses the payload segment of a compact signed token into generic
// claims. Returns nil (never an error) when the token is malformed: absent
// segments, invalid base64, or a payload that is not a JSON object. Callers
// treat nil claims as "unauthenticated".
func Decode(raw string) jwt.MapClaims {
	if raw == "" {
		return nil
	}
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(raw, claims); err != nil {
		return nil
	}
	return claims
}

// Sub returns the stable user identifier claim, or "" when absent.
func Sub(claims jwt.MapClaims) string {
	sub, _ := claims["sub"].(string)
	return sub
}

// Email returns the email claim, or "" when absent.
func Email(claims jwt.MapClaims) string {
	email, _ := claims["email"].(string)
	return email
}

// Exp returns the expiry claim as epoch seconds, or 0 when absent.
func Exp(claims jwt.MapClaims) int64 {
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return 0
	}
	return exp.Unix()
}
