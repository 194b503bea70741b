package auth

import (
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"conduit/config"
	"conduit/internal/domain/service"
)

func newTestJWTService(t *testing.T, secret string, ttl time.Duration) service.TokenService {
	t.Helper()

	cfg := &config.Config{
		Auth: &config.AuthConfig{TokenTTL: ttl},
	}
	cfg.SecretKey.Access = secret

	svc, err := NewJWTService(cfg)
	require.NoError(t, err)

	return svc
}

func TestNewJWTService_MissingSecret(t *testing.T) {
	cfg := &config.Config{}

	svc, err := NewJWTService(cfg)

	assert.Error(t, err)
	assert.Nil(t, svc)
}

func TestJWTService_SignAndVerify(t *testing.T) {
	svc := newTestJWTService(t, "test-secret", 0)

	token, err := svc.Sign("alice@example.com")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := svc.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, "alice@example.com", claims.ID)
	assert.Equal(t, "alice@example.com", claims.Subject)
	assert.Equal(t, "alice@example.com", claims.Email())
	require.NotNil(t, claims.IssuedAt)
	assert.WithinDuration(t, time.Now(), claims.IssuedAt.Time, time.Minute)

	// Without a TTL no expiry claim is embedded.
	assert.Nil(t, claims.ExpiresAt)
}

func TestJWTService_SignWithTTL(t *testing.T) {
	svc := newTestJWTService(t, "test-secret", time.Hour)

	token, err := svc.Sign("alice@example.com")
	require.NoError(t, err)

	claims, err := svc.Verify(token)
	require.NoError(t, err)
	require.NotNil(t, claims.ExpiresAt)
	assert.WithinDuration(t, time.Now().Add(time.Hour), claims.ExpiresAt.Time, time.Minute)
}

func TestJWTService_VerifyWrongSecret(t *testing.T) {
	signer := newTestJWTService(t, "signing-secret", 0)
	verifier := newTestJWTService(t, "another-secret", 0)

	token, err := signer.Sign("alice@example.com")
	require.NoError(t, err)

	claims, err := verifier.Verify(token)

	assert.Nil(t, claims)
	assert.True(t, errors.Is(err, service.ErrInvalidToken))
}

func TestJWTService_VerifyMalformedToken(t *testing.T) {
	svc := newTestJWTService(t, "test-secret", 0)

	claims, err := svc.Verify("not.a.token")

	assert.Nil(t, claims)
	assert.True(t, errors.Is(err, service.ErrInvalidToken))
}

func TestJWTService_DecodeSkipsSignatureCheck(t *testing.T) {
	signer := newTestJWTService(t, "signing-secret", 0)
	decoder := newTestJWTService(t, "another-secret", 0)

	token, err := signer.Sign("alice@example.com")
	require.NoError(t, err)

	claims, err := decoder.Decode(token)
	require.NoError(t, err)
	assert.Equal(t, "alice@example.com", claims.Email())
}

func TestJWTService_DecodeMalformedToken(t *testing.T) {
	svc := newTestJWTService(t, "test-secret", 0)

	claims, err := svc.Decode("garbage")

	assert.Nil(t, claims)
	assert.True(t, errors.Is(err, service.ErrInvalidToken))
}
