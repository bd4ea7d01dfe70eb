package http

import (
	"context"
	"sync"

	"github.com/rlewis2892/creepy-octo-meow/internal/application/ports"
	"github.com/rlewis2892/creepy-octo-meow/internal/domain"
	domerrors "github.com/rlewis2892/creepy-octo-meow/internal/domain/errors"
)

// fakeRepo backs router tests with a map.
type fakeRepo struct {
	mu       sync.Mutex
	profiles map[domain.ProfileID]*domain.Profile
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{profiles: make(map[domain.ProfileID]*domain.Profile)}
}

var _ ports.ProfileRepository = (*fakeRepo)(nil)

func copyProfile(p *domain.Profile) *domain.Profile {
	c := *p
	if p.ActivationToken != nil {
		t := *p.ActivationToken
		c.ActivationToken = &t
	}
	return &c
}

func (r *fakeRepo) Create(_ context.Context, p *domain.Profile) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.profiles {
		if existing.Email == p.Email {
			return domerrors.ErrEmailInUse
		}
		if existing.Username == p.Username {
			return domerrors.ErrUsernameTaken
		}
	}
	r.profiles[p.ID] = copyProfile(p)
	return nil
}

func (r *fakeRepo) GetByID(_ context.Context, id domain.ProfileID) (*domain.Profile, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if p, ok := r.profiles[id]; ok {
		return copyProfile(p), nil
	}
	return nil, nil
}

func (r *fakeRepo) GetByEmail(_ context.Context, email string) (*domain.Profile, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, p := range r.profiles {
		if p.Email == email {
			return copyProfile(p), nil
		}
	}
	return nil, nil
}

func (r *fakeRepo) GetByUsername(_ context.Context, username string) (*domain.Profile, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, p := range r.profiles {
		if p.Username == username {
			return copyProfile(p), nil
		}
	}
	return nil, nil
}

func (r *fakeRepo) GetByActivationToken(_ context.Context, token string) (*domain.Profile, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, p := range r.profiles {
		if p.ActivationToken != nil && *p.ActivationToken == token {
			return copyProfile(p), nil
		}
	}
	return nil, nil
}

func (r *fakeRepo) List(_ context.Context, limit, offset int) ([]*domain.Profile, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	all := make([]*domain.Profile, 0, len(r.profiles))
	for _, p := range r.profiles {
		all = append(all, copyProfile(p))
	}
	if offset >= len(all) {
		return nil, nil
	}
	all = all[offset:]
	if len(all) > limit {
		all = all[:limit]
	}
	return all, nil
}

func (r *fakeRepo) Update(_ context.Context, p *domain.Profile) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.profiles[p.ID]; !ok {
		return domerrors.ErrProfileNotFound
	}
	r.profiles[p.ID] = copyProfile(p)
	return nil
}

func (r *fakeRepo) ClearActivationToken(_ context.Context, id domain.ProfileID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.profiles[id]
	if !ok {
		return domerrors.ErrProfileNotFound
	}
	p.ActivationToken = nil
	return nil
}
