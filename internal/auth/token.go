package auth

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var (
	// ErrTokenExpired indicates the token's expiry is at or before the supplied time.
	ErrTokenExpired = errors.New("token expired")
	// ErrTokenSignature indicates the token was not signed with the configured secret.
	ErrTokenSignature = errors.New("token signature mismatch")
	// ErrTokenMalformed indicates the token could not be parsed at all.
	ErrTokenMalformed = errors.New("token malformed")
	// ErrTokenUnsupported indicates an unexpected signing method or claim shape.
	ErrTokenUnsupported = errors.New("token unsupported")
)

type tokenClaims struct {
	jwt.RegisteredClaims
}

// TokenService issues and validates signed, time-limited identity tokens.
// It holds only the shared secret and TTL; validation is a pure function of
// (token, now, secret) and is safe for concurrent use.
type TokenService struct {
	secret []byte
	ttl    time.Duration
}

func NewTokenService(secret string, ttl time.Duration) *TokenService {
	return &TokenService{
		secret: []byte(secret),
		ttl:    ttl,
	}
}

// TTL returns the configured token lifetime.
func (s *TokenService) TTL() time.Duration {
	return s.ttl
}

// Issue produces a signed token for the given subject, valid from now until
// now + TTL.
func (s *TokenService) Issue(subjectID int64, now time.Time) (string, error) {
	claims := tokenClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatInt(subjectID, 10),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS512, claims)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

// Validate verifies the token against the shared secret and the supplied time
// and returns the embedded subject id. All failures map to one of the typed
// token errors; malformed input never panics.
func (s *TokenService) Validate(tokenString string, now time.Time) (int64, error) {
	parsed, err := jwt.ParseWithClaims(tokenString, &tokenClaims{},
		func(t *jwt.Token) (any, error) {
			return s.secret, nil
		},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS512.Alg()}),
		jwt.WithTimeFunc(func() time.Time { return now }),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		return 0, classifyTokenError(err)
	}

	claims, ok := parsed.Claims.(*tokenClaims)
	if !ok || !parsed.Valid {
		return 0, ErrTokenUnsupported
	}

	subjectID, err := strconv.ParseInt(claims.Subject, 10, 64)
	if err != nil || subjectID <= 0 {
		return 0, ErrTokenMalformed
	}
	return subjectID, nil
}

func classifyTokenError(err error) error {
	switch {
	case errors.Is(err, jwt.ErrTokenExpired):
		return ErrTokenExpired
	case errors.Is(err, jwt.ErrTokenSignatureInvalid):
		return ErrTokenSignature
	case errors.Is(err, jwt.ErrTokenMalformed):
		return ErrTokenMalformed
	default:
		return ErrTokenUnsupported
	}
}
