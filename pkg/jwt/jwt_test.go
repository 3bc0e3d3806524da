package jwt

import (
	"testing"
	"time"

	"holo-api/config"

	gojwt "github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var issuedAt = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

func newTestService(t *testing.T, secret string) *JWTService {
	t.Helper()
	svc, err := NewJWTService(config.JWTConfig{
		Secret:       secret,
		Algorithm:    "HS256",
		AccessExpiry: 30 * time.Minute,
	})
	require.NoError(t, err)
	return svc
}

func TestNewJWTService_Validation(t *testing.T) {
	_, err := NewJWTService(config.JWTConfig{})
	assert.ErrorIs(t, err, ErrMissingSecret)

	_, err = NewJWTService(config.JWTConfig{Secret: "s", Algorithm: "RS256"})
	assert.ErrorIs(t, err, ErrUnsupportedMethod)

	_, err = NewJWTService(config.JWTConfig{Secret: "s", Algorithm: "none"})
	assert.ErrorIs(t, err, ErrUnsupportedMethod)

	svc, err := NewJWTService(config.JWTConfig{Secret: "s"})
	require.NoError(t, err)
	assert.Equal(t, 30*time.Minute, svc.GetAccessExpiry())
}

func TestIssueAndVerify_RoundTrip(t *testing.T) {
	svc := newTestService(t, "secret")

	token, expiresAt, err := svc.Issue("a@x.com", "patient", 3, issuedAt)
	require.NoError(t, err)
	assert.Equal(t, issuedAt.Add(30*time.Minute), expiresAt)

	claims, err := svc.Verify(token, issuedAt.Add(time.Minute))
	require.NoError(t, err)
	assert.Equal(t, "a@x.com", claims.Subject)
	assert.Equal(t, "patient", claims.Role)
	assert.Equal(t, 3, claims.Generation)
	assert.NotEmpty(t, claims.ID)
}

func TestVerify_ExpiryBoundary(t *testing.T) {
	svc := newTestService(t, "secret")
	ttl := svc.GetAccessExpiry()

	token, _, err := svc.Issue("a@x.com", "patient", 0, issuedAt)
	require.NoError(t, err)

	_, err = svc.Verify(token, issuedAt.Add(ttl-time.Second))
	assert.NoError(t, err, "one second before expiry")

	_, err = svc.Verify(token, issuedAt.Add(ttl))
	assert.ErrorIs(t, err, ErrInvalidToken, "exactly at expiry")

	_, err = svc.Verify(token, issuedAt.Add(ttl+time.Hour))
	assert.ErrorIs(t, err, ErrInvalidToken, "after expiry")
}

func TestVerify_ExpiryFollowsFractionalIssueTime(t *testing.T) {
	svc := newTestService(t, "secret")
	ttl := svc.GetAccessExpiry()
	issued := issuedAt.Add(700 * time.Millisecond)

	token, expiresAt, err := svc.Issue("a@x.com", "patient", 0, issued)
	require.NoError(t, err)
	assert.Equal(t, issued.Add(ttl), expiresAt)

	_, err = svc.Verify(token, issued.Add(ttl-500*time.Millisecond))
	assert.NoError(t, err, "still inside the TTL measured from the real issue time")

	_, err = svc.Verify(token, issued.Add(ttl))
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerify_WrongSecret(t *testing.T) {
	token, _, err := newTestService(t, "secret-a").Issue("a@x.com", "patient", 0, issuedAt)
	require.NoError(t, err)

	_, err = newTestService(t, "secret-b").Verify(token, issuedAt)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerify_RejectsOtherAlgorithm(t *testing.T) {
	svc := newTestService(t, "secret")

	claims := Claims{
		Role: "patient",
		RegisteredClaims: gojwt.RegisteredClaims{
			Subject:   "a@x.com",
			ExpiresAt: gojwt.NewNumericDate(issuedAt.Add(time.Hour)),
		},
	}
	token, err := gojwt.NewWithClaims(gojwt.SigningMethodHS512, claims).SignedString([]byte("secret"))
	require.NoError(t, err)

	_, err = svc.Verify(token, issuedAt)
	assert.ErrorIs(t, err, ErrInvalidToken)

	unsigned, err := gojwt.NewWithClaims(gojwt.SigningMethodNone, claims).SignedString(gojwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	_, err = svc.Verify(unsigned, issuedAt)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerify_MissingClaims(t *testing.T) {
	svc := newTestService(t, "secret")

	tests := []struct {
		name   string
		claims Claims
	}{
		{
			name: "missing subject",
			claims: Claims{
				Role:             "patient",
				RegisteredClaims: gojwt.RegisteredClaims{ExpiresAt: gojwt.NewNumericDate(issuedAt.Add(time.Hour))},
			},
		},
		{
			name: "missing role",
			claims: Claims{
				RegisteredClaims: gojwt.RegisteredClaims{Subject: "a@x.com", ExpiresAt: gojwt.NewNumericDate(issuedAt.Add(time.Hour))},
			},
		},
		{
			name: "missing expiry",
			claims: Claims{
				Role:             "patient",
				RegisteredClaims: gojwt.RegisteredClaims{Subject: "a@x.com"},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			token, err := gojwt.NewWithClaims(gojwt.SigningMethodHS256, tt.claims).SignedString([]byte("secret"))
			require.NoError(t, err)

			_, err = svc.Verify(token, issuedAt)
			assert.ErrorIs(t, err, ErrInvalidToken)
		})
	}
}

func TestVerify_Malformed(t *testing.T) {
	svc := newTestService(t, "secret")

	for _, token := range []string{"", "garbage", "a.b.c"} {
		_, err := svc.Verify(token, issuedAt)
		assert.ErrorIs(t, err, ErrInvalidToken, "token %q", token)
	}
}
