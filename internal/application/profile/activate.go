package profile

import (
	"context"
	"fmt"

	"github.com/rlewis2892/creepy-octo-meow/internal/application/ports"
	domerrors "github.com/rlewis2892/creepy-octo-meow/internal/domain/errors"
)

type ActivateInput struct {
	Token string
}

type ActivateResult struct{}

// Activate clears the activation token identified by the emailed link,
// letting the profile sign in from then on.
type Activate struct {
	profiles ports.ProfileRepository
}

func NewActivate(profiles ports.ProfileRepository) *Activate {
	return &Activate{profiles: profiles}
}

func (uc *Activate) Execute(ctx context.Context, input ActivateInput) (*ActivateResult, error) {
	if input.Token == "" {
		return nil, fmt.Errorf("%w: activation token is required", domerrors.ErrValidation)
	}
	p, err := uc.profiles.GetByActivationToken(ctx, input.Token)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, domerrors.ErrProfileNotFound
	}
	if err := uc.profiles.ClearActivationToken(ctx, p.ID); err != nil {
		return nil, err
	}
	return &ActivateResult{}, nil
}
