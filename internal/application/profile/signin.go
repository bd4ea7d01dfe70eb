package profile

import (
	"context"
	"fmt"

	"github.com/rlewis2892/creepy-octo-meow/internal/application/ports"
	"github.com/rlewis2892/creepy-octo-meow/internal/domain"
	domerrors "github.com/rlewis2892/creepy-octo-meow/internal/domain/errors"
)

type SigninInput struct {
	Email    string
	Password string
}

type SigninResult struct {
	Profile   *domain.Profile
	SessionID string
}

// Signin verifies credentials, refuses unactivated accounts, and establishes
// a session bound to the profile id.
type Signin struct {
	profiles ports.ProfileRepository
	hasher   ports.PasswordHasher
	sessions ports.SessionStore
}

func NewSignin(profiles ports.ProfileRepository, hasher ports.PasswordHasher, sessions ports.SessionStore) *Signin {
	return &Signin{profiles: profiles, hasher: hasher, sessions: sessions}
}

func (uc *Signin) Execute(ctx context.Context, input SigninInput) (*SigninResult, error) {
	if input.Email == "" {
		return nil, fmt.Errorf("%w: email is required", domerrors.ErrValidation)
	}
	if input.Password == "" {
		return nil, fmt.Errorf("%w: password is required", domerrors.ErrValidation)
	}

	p, err := uc.profiles.GetByEmail(ctx, input.Email)
	if err != nil {
		return nil, err
	}
	// Unknown email and wrong password fail identically.
	if p == nil || !uc.hasher.Verify(input.Password, p.PasswordSalt, p.PasswordHash) {
		return nil, domerrors.ErrInvalidCredentials
	}
	if !p.Activated() {
		return nil, domerrors.ErrNotActivated
	}

	sessionID, err := uc.sessions.Create(ctx, p.ID)
	if err != nil {
		return nil, err
	}
	return &SigninResult{Profile: p, SessionID: sessionID}, nil
}
