package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rinkdesk/backend/internal/domain"
)

func newTestManager(secret string) *TokenManager {
	return NewTokenManager(secret, 30*24*time.Hour)
}

func TestIssueVerifyRoundtrip(t *testing.T) {
	m := newTestManager("test-secret")

	token, err := m.Issue(domain.Principal{Role: domain.RoleAdmin, AreaID: "area1"})
	require.NoError(t, err)

	principal, err := m.Verify(token)

	require.NoError(t, err)
	assert.Equal(t, domain.RoleAdmin, principal.Role)
	assert.Equal(t, "area1", principal.AreaID)
}

func TestVerifyRejectsWrongSecret(t *testing.T) {
	token, err := newTestManager("secret-a").Issue(domain.Principal{Role: domain.RoleEmployee, AreaID: "area1"})
	require.NoError(t, err)

	_, err = newTestManager("secret-b").Verify(token)

	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestVerifyRejectsExpiredToken(t *testing.T) {
	m := newTestManager("test-secret")
	issuedAt := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	m.now = func() time.Time { return issuedAt }

	token, err := m.Issue(domain.Principal{Role: domain.RoleEmployee, AreaID: "area1"})
	require.NoError(t, err)

	m.now = func() time.Time { return issuedAt.Add(30*24*time.Hour + time.Minute) }
	_, err = m.Verify(token)

	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestVerifyAcceptsTokenBeforeExpiry(t *testing.T) {
	m := newTestManager("test-secret")
	issuedAt := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	m.now = func() time.Time { return issuedAt }

	token, err := m.Issue(domain.Principal{Role: domain.RoleEmployee, AreaID: "area1"})
	require.NoError(t, err)

	m.now = func() time.Time { return issuedAt.Add(29 * 24 * time.Hour) }
	principal, err := m.Verify(token)

	require.NoError(t, err)
	assert.Equal(t, domain.RoleEmployee, principal.Role)
}

func TestVerifyRejectsMalformedToken(t *testing.T) {
	_, err := newTestManager("test-secret").Verify("not-a-jwt")

	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestVerifyRejectsMissingArea(t *testing.T) {
	m := newTestManager("test-secret")

	token, err := m.Issue(domain.Principal{Role: domain.RoleAdmin})
	require.NoError(t, err)

	_, err = m.Verify(token)

	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestVerifyRejectsUnknownRole(t *testing.T) {
	m := newTestManager("test-secret")

	token, err := m.Issue(domain.Principal{Role: "superuser", AreaID: "area1"})
	require.NoError(t, err)

	_, err = m.Verify(token)

	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestVerifyRejectsUnsignedToken(t *testing.T) {
	m := newTestManager("test-secret")

	claims := Claims{
		Role:   domain.RoleAdmin,
		AreaID: "area1",
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodNone, claims).SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	_, err = m.Verify(token)

	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}
