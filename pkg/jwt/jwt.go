package jwt

import (
	"errors"
	"fmt"
	"time"

	"holo-api/config"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

var (
	ErrInvalidToken      = errors.New("invalid or expired token")
	ErrMissingSecret     = errors.New("jwt secret is required")
	ErrUnsupportedMethod = errors.New("jwt algorithm must be one of HS256, HS384, HS512")
)

// Expiry lands on the issue instant plus the TTL to the millisecond
// rather than being cut back to a whole second.
func init() {
	jwt.TimePrecision = time.Millisecond
}

// Claims carried by an access token. Subject holds the account email and
// Generation the account's token version at issue time.
type Claims struct {
	Role       string `json:"role"`
	Generation int    `json:"gen"`
	jwt.RegisteredClaims
}

type JWTService struct {
	config config.JWTConfig
	method jwt.SigningMethod
}

func NewJWTService(cfg config.JWTConfig) (*JWTService, error) {
	if cfg.Secret == "" {
		return nil, ErrMissingSecret
	}

	alg := cfg.Algorithm
	if alg == "" {
		alg = jwt.SigningMethodHS256.Alg()
	}
	method, ok := jwt.GetSigningMethod(alg).(*jwt.SigningMethodHMAC)
	if !ok {
		return nil, fmt.Errorf("%w: got %q", ErrUnsupportedMethod, alg)
	}

	if cfg.AccessExpiry <= 0 {
		cfg.AccessExpiry = 30 * time.Minute
	}

	return &JWTService{config: cfg, method: method}, nil
}

// Issue signs a token for subject that expires at now plus the TTL. Claim
// timestamps carry milliseconds, so now is truncated to the millisecond.
func (s *JWTService) Issue(subject, role string, generation int, now time.Time) (string, time.Time, error) {
	issuedAt := now.Truncate(time.Millisecond)
	expiresAt := issuedAt.Add(s.config.AccessExpiry)

	claims := Claims{
		Role:       role,
		Generation: generation,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			ID:        uuid.New().String(),
			IssuedAt:  jwt.NewNumericDate(issuedAt),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}

	token := jwt.NewWithClaims(s.method, claims)
	signedToken, err := token.SignedString([]byte(s.config.Secret))
	if err != nil {
		return "", time.Time{}, err
	}

	return signedToken, expiresAt, nil
}

// Verify checks signature, algorithm, expiry relative to now and the
// presence of subject and role. Every failure wraps ErrInvalidToken.
func (s *JWTService) Verify(tokenString string, now time.Time) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		return []byte(s.config.Secret), nil
	},
		jwt.WithValidMethods([]string{s.method.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(func() time.Time { return now }),
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidToken, err)
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, ErrInvalidToken
	}
	if claims.Subject == "" {
		return nil, fmt.Errorf("%w: missing subject", ErrInvalidToken)
	}
	if claims.Role == "" {
		return nil, fmt.Errorf("%w: missing role", ErrInvalidToken)
	}

	return claims, nil
}

func (s *JWTService) GetAccessExpiry() time.Duration {
	return s.config.AccessExpiry
}
