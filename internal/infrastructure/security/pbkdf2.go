package security

import (
	"crypto/rand"
	"crypto/sha512"
	"crypto/subtle"
	"encoding/hex"

	"golang.org/x/crypto/pbkdf2"

	"github.com/rlewis2892/creepy-octo-meow/internal/application/ports"
)

// PBKDF2Params configurable for hashing.
type PBKDF2Params struct {
	Iterations  int
	KeyLength   int
	SaltLength  int
	TokenLength int
}

// DefaultPBKDF2Params returns the production parameters: PBKDF2-HMAC-SHA512
// with 262,144 iterations and a 64-byte derived key, 32-byte salts and
// 16-byte activation tokens.
func DefaultPBKDF2Params() PBKDF2Params {
	return PBKDF2Params{
		Iterations:  262144,
		KeyLength:   64,
		SaltLength:  32,
		TokenLength: 16,
	}
}

// PBKDF2Hasher implements ports.PasswordHasher using PBKDF2-HMAC-SHA512.
// Salts, tokens and derived keys are hex-encoded for storage; the salt's hex
// form is the exact byte sequence fed into the derivation, so encoding and
// hashing cannot drift apart.
type PBKDF2Hasher struct {
	params PBKDF2Params
}

func NewPBKDF2Hasher(params PBKDF2Params) *PBKDF2Hasher {
	return &PBKDF2Hasher{params: params}
}

// GenerateSalt returns a fresh per-profile salt.
func (h *PBKDF2Hasher) GenerateSalt() (string, error) {
	return randomHex(h.params.SaltLength)
}

// GenerateActivationToken returns a fresh single-use activation secret.
func (h *PBKDF2Hasher) GenerateActivationToken() (string, error) {
	return randomHex(h.params.TokenLength)
}

// Hash derives the stored hash for password and salt. Deterministic: the
// same inputs always produce the same output.
func (h *PBKDF2Hasher) Hash(password, salt string) string {
	key := pbkdf2.Key([]byte(password), []byte(salt), h.params.Iterations, h.params.KeyLength, sha512.New)
	return hex.EncodeToString(key)
}

// Verify recomputes the hash and compares it to expectedHash in constant
// time so the comparison cannot leak the position of the first mismatch.
func (h *PBKDF2Hasher) Verify(password, salt, expectedHash string) bool {
	computed := h.Hash(password, salt)
	return subtle.ConstantTimeCompare([]byte(computed), []byte(expectedHash)) == 1
}

func randomHex(n int) (string, error) {
	buf := make([]byte, n)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}

var _ ports.PasswordHasher = (*PBKDF2Hasher)(nil)
