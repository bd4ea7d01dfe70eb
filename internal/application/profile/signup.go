package profile

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/rlewis2892/creepy-octo-meow/internal/application/ports"
	"github.com/rlewis2892/creepy-octo-meow/internal/domain"
	domerrors "github.com/rlewis2892/creepy-octo-meow/internal/domain/errors"
)

type SignupInput struct {
	Email           string
	Username        string
	Password        string
	PasswordConfirm string
}

// SignupResult carries no profile data: hash, salt and token never leave the
// flow, the caller only gets a confirmation signal.
type SignupResult struct{}

// Signup creates a pending (unactivated) profile and dispatches the
// activation email.
type Signup struct {
	profiles ports.ProfileRepository
	hasher   ports.PasswordHasher
	mailer   ports.ActivationMailer
}

func NewSignup(profiles ports.ProfileRepository, hasher ports.PasswordHasher, mailer ports.ActivationMailer) *Signup {
	return &Signup{profiles: profiles, hasher: hasher, mailer: mailer}
}

func (uc *Signup) Execute(ctx context.Context, input SignupInput) (*SignupResult, error) {
	switch {
	case input.Email == "":
		return nil, fmt.Errorf("%w: email is required", domerrors.ErrValidation)
	case input.Username == "":
		return nil, fmt.Errorf("%w: username is required", domerrors.ErrValidation)
	case input.Password == "":
		return nil, fmt.Errorf("%w: password is required", domerrors.ErrValidation)
	case input.PasswordConfirm == "":
		return nil, fmt.Errorf("%w: password confirmation is required", domerrors.ErrValidation)
	case input.Password != input.PasswordConfirm:
		return nil, fmt.Errorf("%w: passwords do not match", domerrors.ErrValidation)
	}

	// Fast-fail pre-checks. The unique constraints on insert remain the
	// authoritative guard against concurrent signups.
	existing, err := uc.profiles.GetByEmail(ctx, input.Email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domerrors.ErrEmailInUse
	}
	existing, err = uc.profiles.GetByUsername(ctx, input.Username)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domerrors.ErrUsernameTaken
	}

	token, err := uc.hasher.GenerateActivationToken()
	if err != nil {
		return nil, err
	}
	salt, err := uc.hasher.GenerateSalt()
	if err != nil {
		return nil, err
	}
	hash := uc.hasher.Hash(input.Password, salt)

	now := time.Now()
	p := &domain.Profile{
		ID:              domain.NewProfileID(uuid.New()),
		Email:           input.Email,
		Username:        input.Username,
		PasswordHash:    hash,
		PasswordSalt:    salt,
		ActivationToken: &token,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	if err := uc.profiles.Create(ctx, p); err != nil {
		return nil, err
	}

	if err := uc.mailer.SendActivation(ctx, ports.ActivationMail{
		Email:    p.Email,
		Username: p.Username,
		Token:    token,
	}); err != nil {
		return nil, err
	}
	return &SignupResult{}, nil
}
