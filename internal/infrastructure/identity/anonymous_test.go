package identity

import (
	"context"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"
)

func TestNewAnonymousProviderRequiresSecret(t *testing.T) {
	_, err := NewAnonymousProvider(Config{})
	require.Error(t, err)
}

func TestSignInAnonymously(t *testing.T) {
	secret := []byte("test-secret")
	provider, err := NewAnonymousProvider(Config{
		Issuer:   "sikkim-trails-auth",
		Audience: "sikkim-trails",
		Secret:   secret,
		TTL:      time.Hour,
	})
	require.NoError(t, err)

	fixed := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	provider.now = func() time.Time { return fixed }

	identity, err := provider.SignInAnonymously(context.Background())
	require.NoError(t, err)
	require.NotEmpty(t, identity.ID)
	require.NotEmpty(t, identity.Token)

	claims := &anonymousClaims{}
	token, err := jwt.ParseWithClaims(identity.Token, claims, func(*jwt.Token) (any, error) {
		return secret, nil
	}, jwt.WithTimeFunc(func() time.Time { return fixed }))
	require.NoError(t, err)
	require.True(t, token.Valid)

	require.Equal(t, identity.ID, claims.Subject)
	require.Equal(t, "sikkim-trails-auth", claims.Issuer)
	require.Equal(t, jwt.ClaimStrings{"sikkim-trails"}, claims.Audience)
	require.True(t, claims.Anonymous)
	require.Equal(t, fixed.Add(time.Hour).Unix(), claims.ExpiresAt.Unix())
}

func TestSignInAnonymouslyIssuesDistinctIdentities(t *testing.T) {
	provider, err := NewAnonymousProvider(Config{Secret: []byte("test-secret")})
	require.NoError(t, err)

	first, err := provider.SignInAnonymously(context.Background())
	require.NoError(t, err)
	second, err := provider.SignInAnonymously(context.Background())
	require.NoError(t, err)

	require.NotEqual(t, first.ID, second.ID)
}

func TestSignInAnonymouslyHonorsCancelledContext(t *testing.T) {
	provider, err := NewAnonymousProvider(Config{Secret: []byte("test-secret")})
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err = provider.SignInAnonymously(ctx)
	require.ErrorIs(t, err, context.Canceled)
}
