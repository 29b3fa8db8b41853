// Package token issues and verifies the signed bearer tokens that carry a
// user identity between login and protected requests.
package token

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

var (
	ErrTokenExpired = errors.New("token expired")
	ErrTokenInvalid = errors.New("invalid token")
)

// Claims adds the user id to the registered claims.
type Claims struct {
	jwt.RegisteredClaims
	UserID string `json:"id"`
}

type Issuer struct {
	issuer     string
	signingKey []byte
	ttl        time.Duration
	now        func() time.Time
}

type Option func(*Issuer)

// WithClock replaces time.Now for both issuing and verification.
func WithClock(now func() time.Time) Option {
	return func(i *Issuer) {
		i.now = now
	}
}

func NewIssuer(issuer string, signingKey []byte, ttl time.Duration, opts ...Option) *Issuer {
	i := &Issuer{
		issuer:     issuer,
		signingKey: signingKey,
		ttl:        ttl,
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(i)
	}
	return i
}

// Issue signs a token for userID and returns it with its expiry.
func (i *Issuer) Issue(userID string) (string, time.Time, error) {
	tokenUUID, err := uuid.NewRandom()
	if err != nil {
		return "", time.Time{}, fmt.Errorf("failed to generate id: %w", err)
	}

	now := i.now()
	expiresAt := now.Add(i.ttl)
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        tokenUUID.String(),
			Issuer:    i.issuer,
			Subject:   userID,
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(now),
		},
		UserID: userID,
	})

	signed, err := token.SignedString(i.signingKey)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, expiresAt, nil
}

// Parse verifies the signature, issuer and expiry of tokenString. It
// returns ErrTokenExpired or ErrTokenInvalid on failure.
func (i *Issuer) Parse(tokenString string) (*Claims, error) {
	claims := &Claims{}
	t, err := jwt.ParseWithClaims(
		tokenString,
		claims,
		func(token *jwt.Token) (any, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
			}
			return i.signingKey, nil
		},
		jwt.WithIssuer(i.issuer),
		jwt.WithIssuedAt(),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(i.now),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, fmt.Errorf("%w: %v", ErrTokenExpired, err)
		}
		return nil, fmt.Errorf("%w: %v", ErrTokenInvalid, err)
	}
	if !t.Valid {
		return nil, ErrTokenInvalid
	}

	return claims, nil
}
