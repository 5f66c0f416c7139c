package session

import (
	"context"
	"fmt"
	"testing"
	"time"

	"pizzastore/errs"
	"pizzastore/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeProber map[string]models.UserRole

func (f fakeProber) RoleOf(_ context.Context, login string) (models.UserRole, error) {
	role, ok := f[login]
	if !ok {
		return "", fmt.Errorf("%w: user %s", errs.ErrNotFound, login)
	}
	return role, nil
}

func newSession(t *testing.T) *Session {
	t.Helper()
	issuer, err := NewIssuer(time.Hour)
	require.NoError(t, err)
	return New(issuer)
}

func TestEmptySessionIsNotLoggedIn(t *testing.T) {
	s := newSession(t)
	_, err := s.Require()
	assert.ErrorIs(t, err, errs.ErrNotLoggedIn)
	assert.False(t, s.Active())
	assert.Empty(t, s.Login())
	assert.Empty(t, s.Role())
}

func TestStartAndEnd(t *testing.T) {
	s := newSession(t)
	require.NoError(t, s.Start("alice", models.RoleCustomer))

	claims, err := s.Require()
	require.NoError(t, err)
	assert.Equal(t, "alice", claims.Login)
	assert.Equal(t, models.RoleCustomer, claims.Role)
	assert.NotEmpty(t, claims.ID)
	assert.Equal(t, claims.ID, s.ID())

	s.End()
	assert.False(t, s.Active())
	assert.Empty(t, s.ID())
}

func TestEachStartGetsNewID(t *testing.T) {
	s := newSession(t)
	require.NoError(t, s.Start("alice", models.RoleCustomer))
	first := s.ID()
	require.NoError(t, s.Start("alice", models.RoleCustomer))
	assert.NotEqual(t, first, s.ID())
}

func TestExpiredSessionEnds(t *testing.T) {
	issuer, err := NewIssuer(time.Minute)
	require.NoError(t, err)
	now := time.Date(2026, 10, 19, 12, 0, 0, 0, time.UTC)
	issuer.now = func() time.Time { return now }
	s := New(issuer)
	require.NoError(t, s.Start("alice", models.RoleCustomer))

	now = now.Add(2 * time.Minute)
	_, err = s.Require()
	assert.ErrorIs(t, err, errs.ErrNotLoggedIn)
	assert.Empty(t, s.token)
}

func TestTokenFromAnotherIssuerIsRejected(t *testing.T) {
	a := newSession(t)
	b := newSession(t)
	require.NoError(t, a.Start("mallory", models.RoleManager))

	b.token = a.token
	_, err := b.Require()
	assert.ErrorIs(t, err, errs.ErrNotLoggedIn)
}

func TestRefreshAndRename(t *testing.T) {
	s := newSession(t)
	require.NoError(t, s.Start("alice", models.RoleCustomer))

	require.NoError(t, s.Refresh(models.RoleManager))
	assert.Equal(t, models.RoleManager, s.Role())

	require.NoError(t, s.Rename("alice2"))
	assert.Equal(t, "alice2", s.Login())
	assert.Equal(t, models.RoleManager, s.Role())
}

func TestAuthorizeProbesLiveRole(t *testing.T) {
	s := newSession(t)
	probe := fakeProber{"alice": models.RoleCustomer}
	require.NoError(t, s.Start("alice", models.RoleManager))

	role, err := s.Authorize(context.Background(), probe, models.RoleManager)
	assert.ErrorIs(t, err, errs.ErrForbidden)
	assert.Contains(t, err.Error(), "manager")
	assert.Equal(t, models.RoleCustomer, role)
	assert.Equal(t, models.RoleCustomer, s.Role())

	probe["alice"] = models.RoleDriver
	role, err = s.Authorize(context.Background(), probe, models.RoleManager, models.RoleDriver)
	require.NoError(t, err)
	assert.Equal(t, models.RoleDriver, role)

	role, err = s.Authorize(context.Background(), probe)
	require.NoError(t, err)
	assert.Equal(t, models.RoleDriver, role)
}

func TestAuthorizeEndsSessionForMissingUser(t *testing.T) {
	s := newSession(t)
	require.NoError(t, s.Start("ghost", models.RoleManager))

	_, err := s.Authorize(context.Background(), fakeProber{}, models.RoleManager)
	assert.ErrorIs(t, err, errs.ErrNotLoggedIn)
	assert.False(t, s.Active())
}

func TestAuthorizeWithoutSession(t *testing.T) {
	s := newSession(t)
	_, err := s.Authorize(context.Background(), fakeProber{"alice": models.RoleManager})
	assert.ErrorIs(t, err, errs.ErrNotLoggedIn)
}

func TestRolesString(t *testing.T) {
	assert.Equal(t, "manager, driver", RolesString([]models.UserRole{models.RoleManager, models.RoleDriver}))
}
