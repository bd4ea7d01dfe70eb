package profile

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domerrors "github.com/rlewis2892/creepy-octo-meow/internal/domain/errors"
)

func TestActivate_ClearsToken(t *testing.T) {
	repo := newFakeProfileRepo()
	hasher := &fakeHasher{}
	mailer := &fakeMailer{}
	_, err := NewSignup(repo, hasher, mailer).Execute(context.Background(), validSignup())
	require.NoError(t, err)
	require.Len(t, mailer.sent, 1)

	uc := NewActivate(repo)
	_, err = uc.Execute(context.Background(), ActivateInput{Token: mailer.sent[0].Token})
	require.NoError(t, err)

	p, err := repo.GetByEmail(context.Background(), "a@example.com")
	require.NoError(t, err)
	assert.True(t, p.Activated())
}

func TestActivate_UnknownToken(t *testing.T) {
	uc := NewActivate(newFakeProfileRepo())
	_, err := uc.Execute(context.Background(), ActivateInput{Token: "deadbeef"})
	assert.ErrorIs(t, err, domerrors.ErrProfileNotFound)
}

func TestActivate_EmptyToken(t *testing.T) {
	uc := NewActivate(newFakeProfileRepo())
	_, err := uc.Execute(context.Background(), ActivateInput{})
	assert.ErrorIs(t, err, domerrors.ErrValidation)
}

// TestSignupSigninLifecycle walks the full lifecycle with the real PBKDF2
// hasher: signup, signin refused before activation, activation, signin
// succeeds and binds the session to the new profile.
func TestSignupSigninLifecycle(t *testing.T) {
	repo := newFakeProfileRepo()
	mailer := &fakeMailer{}
	sessions := newFakeSessionStore()
	hasher := newLifecycleHasher()

	_, err := NewSignup(repo, hasher, mailer).Execute(context.Background(), SignupInput{
		Email:           "a@x.com",
		Username:        "alice",
		Password:        "Secret123!",
		PasswordConfirm: "Secret123!",
	})
	require.NoError(t, err)
	require.Len(t, mailer.sent, 1)

	signin := NewSignin(repo, hasher, sessions)
	_, err = signin.Execute(context.Background(), SigninInput{Email: "a@x.com", Password: "Secret123!"})
	require.ErrorIs(t, err, domerrors.ErrNotActivated)

	_, err = NewActivate(repo).Execute(context.Background(), ActivateInput{Token: mailer.sent[0].Token})
	require.NoError(t, err)

	result, err := signin.Execute(context.Background(), SigninInput{Email: "a@x.com", Password: "Secret123!"})
	require.NoError(t, err)

	p, err := repo.GetByEmail(context.Background(), "a@x.com")
	require.NoError(t, err)
	boundID, ok, err := sessions.Get(context.Background(), result.SessionID)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, p.ID, boundID)
}
