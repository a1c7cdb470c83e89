// Package auth issues and verifies the bearer tokens of the API, and
// guards echo routes by role.
package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/DavidAtikpo/irata-sub007/pkg/domain"
)

var ErrInvalidToken = errors.New("invalid token")

// Claims is the JWT payload of an API session.
//
// Subject carries the user id.
type Claims struct {
	Role string `json:"role"`
	jwt.RegisteredClaims
}

// Issuer signs and verifies session tokens with a shared HMAC key.
type Issuer struct {
	signKey []byte
	ttl     time.Duration

	// clock, swappable in tests.
	now func() time.Time
}

func NewIssuer(signKey []byte, ttl time.Duration) *Issuer {
	return &Issuer{signKey: signKey, ttl: ttl, now: time.Now}
}

func (i *Issuer) Issue(user domain.User) (string, error) {
	now := i.now()
	claims := Claims{
		Role: user.Role.String(),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.Id,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(i.ttl)),
		},
	}
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return tok.SignedString(i.signKey)
}

func (i *Issuer) Verify(token string) (Claims, error) {
	claims := &Claims{}
	tok, err := jwt.ParseWithClaims(
		token, claims,
		func(t *jwt.Token) (interface{}, error) { return i.signKey, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(i.now),
	)
	if err != nil {
		return Claims{}, fmt.Errorf("%w: %s", ErrInvalidToken, err)
	}
	if !tok.Valid {
		return Claims{}, ErrInvalidToken
	}
	if _, err := domain.AsRole(claims.Role); err != nil {
		return Claims{}, fmt.Errorf("%w: %s", ErrInvalidToken, err)
	}
	return *claims, nil
}
