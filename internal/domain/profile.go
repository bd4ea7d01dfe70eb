package domain

import (
	"time"

	"github.com/google/uuid"
)

// ProfileID is a value object for profile identity.
type ProfileID struct{ uuid.UUID }

// NewProfileID creates a new ProfileID from uuid.
func NewProfileID(id uuid.UUID) ProfileID { return ProfileID{UUID: id} }

// String returns the canonical string form.
func (p ProfileID) String() string { return p.UUID.String() }

// Profile is the application's sole principal record. PasswordHash is always
// the PBKDF2 derivation of PasswordSalt and the current plaintext password;
// the pair changes together or not at all. ActivationToken is present until
// the account is activated and blocks signin while set.
type Profile struct {
	ID              ProfileID
	Email           string
	Username        string
	PasswordHash    string
	PasswordSalt    string
	ActivationToken *string
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// Activated reports whether the activation token has been cleared.
func (p *Profile) Activated() bool { return p.ActivationToken == nil }
