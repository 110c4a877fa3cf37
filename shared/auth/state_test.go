package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStateSigner_SignAndVerify(t *testing.T) {
	signer := NewStateSigner("secret", "social-login-api", time.Minute)

	token, err := signer.Sign("github")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := signer.Verify(token, "github")
	require.NoError(t, err)
	assert.Equal(t, "github", claims.Provider)
	assert.NotEmpty(t, claims.ID, "state carries a nonce")
}

func TestStateSigner_RejectsOtherProvider(t *testing.T) {
	signer := NewStateSigner("secret", "social-login-api", time.Minute)

	token, err := signer.Sign("github")
	require.NoError(t, err)

	_, err = signer.Verify(token, "google")
	assert.ErrorIs(t, err, ErrStateProviderMismatch)
}

func TestStateSigner_RejectsWrongSecret(t *testing.T) {
	signer := NewStateSigner("secret", "social-login-api", time.Minute)
	other := NewStateSigner("other-secret", "social-login-api", time.Minute)

	token, err := signer.Sign("github")
	require.NoError(t, err)

	_, err = other.Verify(token, "github")
	assert.Error(t, err)
}

func TestStateSigner_RejectsExpiredToken(t *testing.T) {
	signer := NewStateSigner("secret", "social-login-api", -time.Minute)

	token, err := signer.Sign("github")
	require.NoError(t, err)

	_, err = signer.Verify(token, "github")
	assert.ErrorIs(t, err, jwt.ErrTokenExpired)
}

func TestStateSigner_RejectsGarbage(t *testing.T) {
	signer := NewStateSigner("secret", "social-login-api", time.Minute)

	_, err := signer.Verify("not-a-token", "github")
	assert.Error(t, err)
}
