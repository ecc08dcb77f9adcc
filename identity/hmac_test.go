package identity_test

import (
	"context"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/avelkon/bucketgate"
	"github.com/avelkon/bucketgate/identity"
)

func TestHMACVerifier_RoundTrip(t *testing.T) {
	v, err := identity.NewHMACVerifier([]byte("test-secret"))
	require.NoError(t, err)

	token, err := v.Issue("u1", "u1@example.com", time.Minute)
	require.NoError(t, err)

	ident, err := v.Verify(context.Background(), token)
	require.NoError(t, err)
	assert.Equal(t, "u1", ident.UID)
	assert.Equal(t, "u1@example.com", ident.Email)
}

func TestHMACVerifier_ExpiredToken(t *testing.T) {
	v, err := identity.NewHMACVerifier([]byte("test-secret"))
	require.NoError(t, err)

	token, err := v.Issue("u1", "", -time.Minute)
	require.NoError(t, err)

	_, err = v.Verify(context.Background(), token)
	assert.ErrorIs(t, err, bucketgate.ErrInvalidToken)
}

func TestHMACVerifier_WrongSecret(t *testing.T) {
	signer, err := identity.NewHMACVerifier([]byte("secret-a"))
	require.NoError(t, err)
	verifier, err := identity.NewHMACVerifier([]byte("secret-b"))
	require.NoError(t, err)

	token, err := signer.Issue("u1", "", time.Minute)
	require.NoError(t, err)

	_, err = verifier.Verify(context.Background(), token)
	assert.ErrorIs(t, err, bucketgate.ErrInvalidToken)
}

func TestHMACVerifier_RejectsOtherSigningMethods(t *testing.T) {
	secret := []byte("test-secret")
	v, err := identity.NewHMACVerifier(secret)
	require.NoError(t, err)

	token := jwt.NewWithClaims(jwt.SigningMethodHS384, jwt.RegisteredClaims{
		Subject:   "u1",
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Minute)),
	})
	signed, err := token.SignedString(secret)
	require.NoError(t, err)

	_, err = v.Verify(context.Background(), signed)
	assert.ErrorIs(t, err, bucketgate.ErrInvalidToken)
}

func TestHMACVerifier_GarbageToken(t *testing.T) {
	v, err := identity.NewHMACVerifier([]byte("test-secret"))
	require.NoError(t, err)

	_, err = v.Verify(context.Background(), "not.a.jwt")
	assert.ErrorIs(t, err, bucketgate.ErrInvalidToken)
}

func TestNewHMACVerifier_RequiresSecret(t *testing.T) {
	_, err := identity.NewHMACVerifier(nil)
	assert.Error(t, err)
}
