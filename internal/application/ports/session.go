package ports

import (
	"context"

	"github.com/rlewis2892/creepy-octo-meow/internal/domain"
)

// SessionStore associates opaque session identifiers with profile ids
// (Redis or in-memory). Get returns ok=false for unknown or expired ids.
type SessionStore interface {
	Create(ctx context.Context, profileID domain.ProfileID) (sessionID string, err error)
	Get(ctx context.Context, sessionID string) (profileID domain.ProfileID, ok bool, err error)
	Delete(ctx context.Context, sessionID string) error
}
