// Package testutil holds helpers shared by tests across packages.
package testutil

import (
	"encoding/base64"
	"encoding/json"
)

// Token builds a compact three-segment token carrying the given claims in
// its payload. The signature segment is junk: nothing in this codebase
// verifies signatures, tokens are only ever payload-decoded.
func Token(claims map[string]any) string {
	header, _ := json.Marshal(map[string]string{"alg": "HS256", "typ": "JWT"})
	payload, _ := json.Marshal(claims)
	enc := base64.RawURLEncoding
	return enc.EncodeToString(header) + "." + enc.EncodeToString(payload) + ".c2lnbmF0dXJl"
}
