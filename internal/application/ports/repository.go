package ports

import (
	"context"

	"github.com/rlewis2892/creepy-octo-meow/internal/domain"
)

// ProfileRepository defines persistence for profiles. Lookup methods return
// (nil, nil) when no profile matches. Create and Update enforce email and
// username uniqueness at the storage boundary and report violations with the
// conflict sentinels from internal/domain/errors, which closes the race left
// open by flow-level pre-checks.
type ProfileRepository interface {
	Create(ctx context.Context, profile *domain.Profile) error
	GetByID(ctx context.Context, id domain.ProfileID) (*domain.Profile, error)
	GetByEmail(ctx context.Context, email string) (*domain.Profile, error)
	GetByUsername(ctx context.Context, username string) (*domain.Profile, error)
	GetByActivationToken(ctx context.Context, token string) (*domain.Profile, error)
	List(ctx context.Context, limit, offset int) ([]*domain.Profile, error)
	// Update persists all mutable fields atomically and returns
	// ErrProfileNotFound when the id does not exist.
	Update(ctx context.Context, profile *domain.Profile) error
	// ClearActivationToken marks the profile activated.
	ClearActivationToken(ctx context.Context, id domain.ProfileID) error
}
