package ports

// PasswordHasher derives and verifies password hashes (PBKDF2-HMAC-SHA512)
// and generates the random secrets profiles carry. Hash is deterministic for
// a given (password, salt) pair; Verify must compare in constant time.
type PasswordHasher interface {
	GenerateSalt() (string, error)
	GenerateActivationToken() (string, error)
	Hash(password, salt string) string
	Verify(password, salt, expectedHash string) bool
}
