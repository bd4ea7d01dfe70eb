// Package session provides stores that bind opaque session identifiers to
// profile ids: Redis-backed for deployments, in-memory as a fallback.
package session

import (
	"crypto/rand"
	"encoding/hex"
)

// newSessionID returns a 128-bit random identifier, hex-encoded.
func newSessionID() (string, error) {
	buf := make([]byte, 16)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}
