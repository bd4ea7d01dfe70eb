package profile

import (
	"context"
	"strconv"
	"sync"

	"github.com/rlewis2892/creepy-octo-meow/internal/application/ports"
	"github.com/rlewis2892/creepy-octo-meow/internal/domain"
	domerrors "github.com/rlewis2892/creepy-octo-meow/internal/domain/errors"
	"github.com/rlewis2892/creepy-octo-meow/internal/infrastructure/security"
)

// newLifecycleHasher is the real PBKDF2 hasher with a reduced iteration
// count so lifecycle tests stay fast.
func newLifecycleHasher() *security.PBKDF2Hasher {
	return security.NewPBKDF2Hasher(security.PBKDF2Params{
		Iterations:  1024,
		KeyLength:   64,
		SaltLength:  32,
		TokenLength: 16,
	})
}

// fakeProfileRepo is an in-memory ProfileRepository that enforces the same
// uniqueness contract as the Postgres implementation.
type fakeProfileRepo struct {
	mu       sync.Mutex
	profiles map[domain.ProfileID]*domain.Profile

	createErr error
	getErr    error
	updateErr error
}

func newFakeProfileRepo() *fakeProfileRepo {
	return &fakeProfileRepo{profiles: make(map[domain.ProfileID]*domain.Profile)}
}

func clone(p *domain.Profile) *domain.Profile {
	cp := *p
	if p.ActivationToken != nil {
		tok := *p.ActivationToken
		cp.ActivationToken = &tok
	}
	return &cp
}

func (f *fakeProfileRepo) Create(ctx context.Context, p *domain.Profile) error {
	if f.createErr != nil {
		return f.createErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, existing := range f.profiles {
		if existing.Email == p.Email {
			return domerrors.ErrEmailInUse
		}
		if existing.Username == p.Username {
			return domerrors.ErrUsernameTaken
		}
	}
	f.profiles[p.ID] = clone(p)
	return nil
}

func (f *fakeProfileRepo) GetByID(ctx context.Context, id domain.ProfileID) (*domain.Profile, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if p, ok := f.profiles[id]; ok {
		return clone(p), nil
	}
	return nil, nil
}

func (f *fakeProfileRepo) GetByEmail(ctx context.Context, email string) (*domain.Profile, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, p := range f.profiles {
		if p.Email == email {
			return clone(p), nil
		}
	}
	return nil, nil
}

func (f *fakeProfileRepo) GetByUsername(ctx context.Context, username string) (*domain.Profile, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, p := range f.profiles {
		if p.Username == username {
			return clone(p), nil
		}
	}
	return nil, nil
}

func (f *fakeProfileRepo) GetByActivationToken(ctx context.Context, token string) (*domain.Profile, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, p := range f.profiles {
		if p.ActivationToken != nil && *p.ActivationToken == token {
			return clone(p), nil
		}
	}
	return nil, nil
}

func (f *fakeProfileRepo) List(ctx context.Context, limit, offset int) ([]*domain.Profile, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]*domain.Profile, 0, len(f.profiles))
	for _, p := range f.profiles {
		out = append(out, clone(p))
	}
	return out, nil
}

func (f *fakeProfileRepo) Update(ctx context.Context, p *domain.Profile) error {
	if f.updateErr != nil {
		return f.updateErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.profiles[p.ID]; !ok {
		return domerrors.ErrProfileNotFound
	}
	for id, existing := range f.profiles {
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
	f.profiles[p.ID] = clone(p)
	return nil
}

func (f *fakeProfileRepo) ClearActivationToken(ctx context.Context, id domain.ProfileID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	p, ok := f.profiles[id]
	if !ok {
		return domerrors.ErrProfileNotFound
	}
	p.ActivationToken = nil
	return nil
}

var _ ports.ProfileRepository = (*fakeProfileRepo)(nil)

// fakeHasher makes hashes transparent so tests can assert on them.
type fakeHasher struct {
	salts  int
	tokens int
}

func (f *fakeHasher) GenerateSalt() (string, error) {
	f.salts++
	return "salt-" + strconv.Itoa(f.salts), nil
}

func (f *fakeHasher) GenerateActivationToken() (string, error) {
	f.tokens++
	return "token-" + strconv.Itoa(f.tokens), nil
}

func (f *fakeHasher) Hash(password, salt string) string {
	return "hash(" + password + "," + salt + ")"
}

func (f *fakeHasher) Verify(password, salt, expectedHash string) bool {
	return f.Hash(password, salt) == expectedHash
}

var _ ports.PasswordHasher = (*fakeHasher)(nil)

// fakeMailer records dispatched activation mails.
type fakeMailer struct {
	sent    []ports.ActivationMail
	sendErr error
}

func (f *fakeMailer) SendActivation(ctx context.Context, mail ports.ActivationMail) error {
	if f.sendErr != nil {
		return f.sendErr
	}
	f.sent = append(f.sent, mail)
	return nil
}

var _ ports.ActivationMailer = (*fakeMailer)(nil)

// fakeSessionStore binds sequential session ids to profile ids.
type fakeSessionStore struct {
	mu       sync.Mutex
	next     int
	sessions map[string]domain.ProfileID

	createErr error
}

func newFakeSessionStore() *fakeSessionStore {
	return &fakeSessionStore{sessions: make(map[string]domain.ProfileID)}
}

func (f *fakeSessionStore) Create(ctx context.Context, profileID domain.ProfileID) (string, error) {
	if f.createErr != nil {
		return "", f.createErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.next++
	id := "session-" + strconv.Itoa(f.next)
	f.sessions[id] = profileID
	return id, nil
}

func (f *fakeSessionStore) Get(ctx context.Context, sessionID string) (domain.ProfileID, bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	id, ok := f.sessions[sessionID]
	return id, ok, nil
}

func (f *fakeSessionStore) Delete(ctx context.Context, sessionID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.sessions, sessionID)
	return nil
}

var _ ports.SessionStore = (*fakeSessionStore)(nil)

func strptr(s string) *string { return &s }
