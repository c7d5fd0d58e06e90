package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestService(t *testing.T) *Service {
	t.Helper()
	svc, err := NewService(NewFileUserStore(t.TempDir()))
	require.NoError(t, err)
	return svc
}

func TestRegisterAndAuthenticate(t *testing.T) {
	svc := newTestService(t)

	user, err := svc.Register("maria", "s3cret", "Bar do Centro")
	require.NoError(t, err)
	assert.Equal(t, 1, user.ID)
	assert.Equal(t, "maria", user.Username)
	assert.Empty(t, user.Password)

	got, err := svc.Authenticate("maria", "s3cret")
	require.NoError(t, err)
	assert.Equal(t, user.ID, got.ID)
	assert.Empty(t, got.Password)

	_, err = svc.Authenticate("maria", "wrong")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
	_, err = svc.Authenticate("nobody", "s3cret")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestRegisterValidation(t *testing.T) {
	svc := newTestService(t)

	_, err := svc.Register("", "pw", "")
	assert.ErrorIs(t, err, ErrBadRequest)
	_, err = svc.Register("maria", "", "")
	assert.ErrorIs(t, err, ErrBadRequest)

	_, err = svc.Register("maria", "pw", "")
	require.NoError(t, err)
	_, err = svc.Register("maria", "other", "")
	assert.ErrorIs(t, err, ErrUsernameTaken)
}

func TestAccountsSurviveReload(t *testing.T) {
	dir := t.TempDir()
	svc, err := NewService(NewFileUserStore(dir))
	require.NoError(t, err)
	first, err := svc.Register("joao", "pw1", "")
	require.NoError(t, err)

	reloaded, err := NewService(NewFileUserStore(dir))
	require.NoError(t, err)
	got, err := reloaded.Authenticate("joao", "pw1")
	require.NoError(t, err)
	assert.Equal(t, first.ID, got.ID)

	// Ids keep growing after a reload.
	second, err := reloaded.Register("ana", "pw2", "")
	require.NoError(t, err)
	assert.Equal(t, first.ID+1, second.ID)
}
