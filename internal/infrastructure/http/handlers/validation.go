package handlers

import "strings"

// Validation limits.
const (
	MaxEmailLength    = 254
	MaxUsernameLength = 32
	MaxPasswordLength = 128
)

// SanitizeEmail trims and lowercases email; returns empty if over max length.
func SanitizeEmail(email string) string {
	s := strings.TrimSpace(strings.ToLower(email))
	if len(s) > MaxEmailLength {
		return ""
	}
	return s
}

// SanitizeUsername trims the username; returns empty if over max length.
func SanitizeUsername(username string) string {
	s := strings.TrimSpace(username)
	if len(s) > MaxUsernameLength {
		return ""
	}
	return s
}

// SanitizePassword rejects over-length passwords without trimming: leading
// or trailing spaces are part of the secret.
func SanitizePassword(password string) string {
	if len(password) > MaxPasswordLength {
		return ""
	}
	return password
}
