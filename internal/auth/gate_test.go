package auth_test

import (
	"LinkGate-Backend/internal/auth"
	"LinkGate-Backend/internal/domain"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func setupGate(t *testing.T) (*auth.Gate, *auth.PasswordService) {
	t.Helper()
	passwords := auth.NewPasswordServiceWithCost(bcrypt.MinCost)
	return auth.NewGate(passwords, newTokenService(time.Now())), passwords
}

func protectedLink(t *testing.T, passwords *auth.PasswordService, shortID, password string) *domain.Link {
	t.Helper()
	hash, err := passwords.HashPassword(password)
	require.NoError(t, err)
	return &domain.Link{ShortID: shortID, LongURL: "https://example.com", PasswordHash: &hash}
}

func strPtr(s string) *string { return &s }

func TestGate_NoPassword(t *testing.T) {
	gate, _ := setupGate(t)
	link := &domain.Link{ShortID: "open", LongURL: "https://example.com"}

	d, err := gate.Check(link, auth.Attempt{Password: strPtr("anything")})
	require.NoError(t, err)
	assert.Equal(t, auth.NoPassword, d.State)
	assert.True(t, d.State.Allowed())
	assert.Empty(t, d.Grant)
}

func TestGate_Flow(t *testing.T) {
	gate, passwords := setupGate(t)
	link := protectedLink(t, passwords, "secret-link", "secret")
	hashBefore := *link.PasswordHash

	d, err := gate.Check(link, auth.Attempt{})
	require.NoError(t, err)
	assert.Equal(t, auth.PasswordRequired, d.State)
	assert.False(t, d.State.Allowed())

	d, err = gate.Check(link, auth.Attempt{Password: strPtr("wrong")})
	require.NoError(t, err)
	assert.Equal(t, auth.Denied, d.State)
	assert.Empty(t, d.Grant)
	assert.Equal(t, hashBefore, *link.PasswordHash)

	d, err = gate.Check(link, auth.Attempt{Password: strPtr("secret")})
	require.NoError(t, err)
	assert.Equal(t, auth.Verified, d.State)
	require.NotEmpty(t, d.Grant)

	again, err := gate.Check(link, auth.Attempt{Grant: d.Grant})
	require.NoError(t, err)
	assert.Equal(t, auth.Verified, again.State)
	assert.Empty(t, again.Grant, "no new grant when an existing one is reused")
}

func TestGate_GrantIsScopedToShortID(t *testing.T) {
	gate, passwords := setupGate(t)
	first := protectedLink(t, passwords, "first", "secret")
	second := protectedLink(t, passwords, "second", "secret")

	d, err := gate.Check(first, auth.Attempt{Password: strPtr("secret")})
	require.NoError(t, err)
	require.Equal(t, auth.Verified, d.State)

	other, err := gate.Check(second, auth.Attempt{Grant: d.Grant})
	require.NoError(t, err)
	assert.Equal(t, auth.PasswordRequired, other.State)
}

func TestGate_InvalidGrantFallsBackToPassword(t *testing.T) {
	gate, passwords := setupGate(t)
	link := protectedLink(t, passwords, "p", "secret")

	d, err := gate.Check(link, auth.Attempt{Grant: "forged", Password: strPtr("secret")})
	require.NoError(t, err)
	assert.Equal(t, auth.Verified, d.State)
	assert.NotEmpty(t, d.Grant)
}

func TestState_String(t *testing.T) {
	assert.Equal(t, "no_password", auth.NoPassword.String())
	assert.Equal(t, "password_required", auth.PasswordRequired.String())
	assert.Equal(t, "verifying", auth.Verifying.String())
	assert.Equal(t, "verified", auth.Verified.String())
	assert.Equal(t, "denied", auth.Denied.String())
}
