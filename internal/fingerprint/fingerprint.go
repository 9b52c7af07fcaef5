// Package fingerprint binds sessions to devices.
//
// The fallback fingerprint derived from request headers is a low-entropy,
// non-cryptographic heuristic. It is a development-time placeholder until
// clients send a real device identifier, and must not be relied on as a
// security control.
package fingerprint

import (
	"encoding/base64"
	"fmt"
)

// Fallback builds a deterministic fingerprint from request attributes when
// the client did not supply one.
func Fallback(userAgent string, ip string, acceptLanguage string) string {
	raw := fmt.Sprintf("%s|%s|%s", userAgent, ip, acceptLanguage)
	return base64.StdEncoding.EncodeToString([]byte(raw))
}

// Validate compares a stored fingerprint against the one provided at login.
// With strict mode off, binding is disabled and every combination passes.
// If either side is absent there is nothing to compare, so validation passes;
// otherwise the two values must be exactly equal.
func Validate(stored string, provided string, strict bool) bool {
	if !strict {
		return true
	}
	if stored == "" || provided == "" {
		return true
	}
	return stored == provided
}
