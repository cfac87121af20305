package jwt

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domain "github.com/aurainsight/aura-backend/internal/domain/auth"
)

var testSecret = []byte("unit-test-secret")

func TestVerifyValidToken(t *testing.T) {
	token, err := GenerateToken("u1", false, testSecret, time.Hour)
	require.NoError(t, err)

	v := NewVerifier(testSecret)
	p, err := v.Verify(context.Background(), token)
	require.NoError(t, err)
	assert.Equal(t, "u1", p.ID)
	assert.False(t, p.Anonymous)
}

func TestVerifyAnonymousClaim(t *testing.T) {
	token, err := GenerateToken("guest-42", true, testSecret, time.Hour)
	require.NoError(t, err)

	v := NewVerifier(testSecret)
	p, err := v.Verify(context.Background(), token)
	require.NoError(t, err)
	assert.True(t, p.Anonymous)
}

func TestVerifyEmptyToken(t *testing.T) {
	v := NewVerifier(testSecret)
	_, err := v.Verify(context.Background(), "")
	assert.ErrorIs(t, err, domain.ErrMissingCredential)
}

func TestVerifyExpiredToken(t *testing.T) {
	token, err := GenerateToken("u1", false, testSecret, -time.Minute)
	require.NoError(t, err)

	v := NewVerifier(testSecret)
	_, err = v.Verify(context.Background(), token)
	assert.ErrorIs(t, err, domain.ErrExpiredCredential)
}

func TestVerifyWrongSecret(t *testing.T) {
	token, err := GenerateToken("u1", false, []byte("other-secret"), time.Hour)
	require.NoError(t, err)

	v := NewVerifier(testSecret)
	_, err = v.Verify(context.Background(), token)
	assert.ErrorIs(t, err, domain.ErrInvalidCredential)
}

func TestVerifyGarbageToken(t *testing.T) {
	v := NewVerifier(testSecret)
	_, err := v.Verify(context.Background(), "not-a-jwt")
	assert.ErrorIs(t, err, domain.ErrInvalidCredential)
}

func TestVerifyMissingUserID(t *testing.T) {
	token, err := GenerateToken("", false, testSecret, time.Hour)
	require.NoError(t, err)

	v := NewVerifier(testSecret)
	_, err = v.Verify(context.Background(), token)
	assert.ErrorIs(t, err, domain.ErrInvalidCredential)
}

func TestVerifyNoSecretConfigured(t *testing.T) {
	token, err := GenerateToken("u1", false, testSecret, time.Hour)
	require.NoError(t, err)

	v := NewVerifier(nil)
	_, err = v.Verify(context.Background(), token)
	assert.ErrorIs(t, err, domain.ErrVerifierUnavailable)
}
