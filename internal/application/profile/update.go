package profile

import (
	"context"
	"fmt"
	"time"

	"github.com/rlewis2892/creepy-octo-meow/internal/application/ports"
	"github.com/rlewis2892/creepy-octo-meow/internal/domain"
	domerrors "github.com/rlewis2892/creepy-octo-meow/internal/domain/errors"
)

// UpdateProfileInput distinguishes absent fields (nil) from provided values.
// Password rotation only happens when all three rotation fields are present.
type UpdateProfileInput struct {
	ID                 domain.ProfileID
	Session            *domain.SessionContext
	Email              *string
	Username           *string
	CurrentPassword    *string
	NewPassword        *string
	NewPasswordConfirm *string
}

type UpdateProfileResult struct{}

// UpdateProfile authorizes against the session, applies field changes and
// optional credential rotation, and persists them in one atomic update.
type UpdateProfile struct {
	profiles ports.ProfileRepository
	hasher   ports.PasswordHasher
}

func NewUpdateProfile(profiles ports.ProfileRepository, hasher ports.PasswordHasher) *UpdateProfile {
	return &UpdateProfile{profiles: profiles, hasher: hasher}
}

func (uc *UpdateProfile) Execute(ctx context.Context, input UpdateProfileInput) (*UpdateProfileResult, error) {
	// Authorization happens before any lookup or mutation.
	if input.Session == nil || input.Session.ProfileID != input.ID {
		return nil, domerrors.ErrForbidden
	}

	p, err := uc.profiles.GetByID(ctx, input.ID)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, domerrors.ErrProfileNotFound
	}

	if input.Email != nil {
		p.Email = *input.Email
	}
	if input.Username != nil {
		p.Username = *input.Username
	}

	if input.CurrentPassword != nil && input.NewPassword != nil && input.NewPasswordConfirm != nil {
		if !uc.hasher.Verify(*input.CurrentPassword, p.PasswordSalt, p.PasswordHash) {
			return nil, domerrors.ErrCurrentPassword
		}
		if *input.NewPassword != *input.NewPasswordConfirm {
			return nil, fmt.Errorf("%w: new passwords do not match", domerrors.ErrValidation)
		}
		salt, err := uc.hasher.GenerateSalt()
		if err != nil {
			return nil, err
		}
		// Salt and hash are assigned as a pair; Update persists them in a
		// single statement.
		p.PasswordSalt = salt
		p.PasswordHash = uc.hasher.Hash(*input.NewPassword, salt)
	}

	p.UpdatedAt = time.Now()
	if err := uc.profiles.Update(ctx, p); err != nil {
		return nil, err
	}
	return &UpdateProfileResult{}, nil
}
