package handlers

import (
	"context"
	"fmt"
	"sync"

	"github.com/rlewis2892/creepy-octo-meow/internal/application/ports"
	"github.com/rlewis2892/creepy-octo-meow/internal/domain"
	domerrors "github.com/rlewis2892/creepy-octo-meow/internal/domain/errors"
)

// memRepo is a map-backed repository for handler tests.
type memRepo struct {
	mu       sync.Mutex
	profiles map[domain.ProfileID]*domain.Profile
}

func newMemRepo() *memRepo {
	return &memRepo{profiles: make(map[domain.ProfileID]*domain.Profile)}
}

var _ ports.ProfileRepository = (*memRepo)(nil)

func clone(p *domain.Profile) *domain.Profile {
	c := *p
	if p.ActivationToken != nil {
		t := *p.ActivationToken
		c.ActivationToken = &t
	}
	return &c
}

func (r *memRepo) Create(_ context.Context, p *domain.Profile) error {
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
	r.profiles[p.ID] = clone(p)
	return nil
}

func (r *memRepo) GetByID(_ context.Context, id domain.ProfileID) (*domain.Profile, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if p, ok := r.profiles[id]; ok {
		return clone(p), nil
	}
	return nil, nil
}

func (r *memRepo) GetByEmail(_ context.Context, email string) (*domain.Profile, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, p := range r.profiles {
		if p.Email == email {
			return clone(p), nil
		}
	}
	return nil, nil
}

func (r *memRepo) GetByUsername(_ context.Context, username string) (*domain.Profile, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, p := range r.profiles {
		if p.Username == username {
			return clone(p), nil
		}
	}
	return nil, nil
}

func (r *memRepo) GetByActivationToken(_ context.Context, token string) (*domain.Profile, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, p := range r.profiles {
		if p.ActivationToken != nil && *p.ActivationToken == token {
			return clone(p), nil
		}
	}
	return nil, nil
}

func (r *memRepo) List(_ context.Context, limit, offset int) ([]*domain.Profile, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	all := make([]*domain.Profile, 0, len(r.profiles))
	for _, p := range r.profiles {
		all = append(all, clone(p))
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

func (r *memRepo) Update(_ context.Context, p *domain.Profile) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.profiles[p.ID]; !ok {
		return domerrors.ErrProfileNotFound
	}
	for id, existing := range r.profiles {
		if id == p.ID {
			continue
		}
		if existing.Email == p.Email {
			return domerrors.ErrEmailInUse
		}
		if existing.Username == p.Username {
			return domerrors.ErrUsernameTaken
		}
	}
	r.profiles[p.ID] = clone(p)
	return nil
}

func (r *memRepo) ClearActivationToken(_ context.Context, id domain.ProfileID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.profiles[id]
	if !ok {
		return domerrors.ErrProfileNotFound
	}
	p.ActivationToken = nil
	return nil
}

// plainHasher makes hashes readable in assertions.
type plainHasher struct{ n int }

var _ ports.PasswordHasher = (*plainHasher)(nil)

func (h *plainHasher) GenerateSalt() (string, error) {
	h.n++
	return fmt.Sprintf("salt-%d", h.n), nil
}

func (h *plainHasher) GenerateActivationToken() (string, error) {
	h.n++
	return fmt.Sprintf("token-%d", h.n), nil
}

func (h *plainHasher) Hash(password, salt string) string {
	return "hash(" + password + "," + salt + ")"
}

func (h *plainHasher) Verify(password, salt, expectedHash string) bool {
	return h.Hash(password, salt) == expectedHash
}

// recordingMailer captures dispatched activation mails.
type recordingMailer struct {
	mu   sync.Mutex
	sent []ports.ActivationMail
	err  error
}

var _ ports.ActivationMailer = (*recordingMailer)(nil)

func (m *recordingMailer) SendActivation(_ context.Context, mail ports.ActivationMail) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	m.sent = append(m.sent, mail)
	return nil
}
