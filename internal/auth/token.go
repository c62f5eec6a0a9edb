package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"flipr/internal/models"
)

// TokenTTL is the fixed session lifetime. There is no refresh or
// revocation; clients re-authenticate after expiry.
const TokenTTL = 48 * time.Hour

// Claims is the payload carried by a session token.
type Claims struct {
	Email string `json:"email"`
	jwt.RegisteredClaims
}

// Tokens mints and verifies signed session tokens. Verification is
// stateless: the signature and expiry are the only checks.
type Tokens struct {
	secret []byte
	now    func() time.Time
}

// NewTokens creates a token issuer signing with the given secret.
func NewTokens(secret string) *Tokens {
	return &Tokens{secret: []byte(secret), now: time.Now}
}

// Issue mints a token for the identity, valid for TokenTTL from now.
func (t *Tokens) Issue(user models.AdminUser) (string, error) {
	now := t.now()
	claims := Claims{
		Email: user.Email,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.ID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(TokenTTL)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(t.secret)
}

// Verify parses and validates a raw token string.
func (t *Tokens) Verify(raw string) (*Claims, error) {
	claims := &Claims{}
	_, err := jwt.ParseWithClaims(raw, claims,
		func(*jwt.Token) (interface{}, error) { return t.secret, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(func() time.Time { return t.now() }),
	)
	if errors.Is(err, jwt.ErrTokenExpired) {
		return nil, ErrTokenExpired
	}
	if err != nil {
		return nil, ErrTokenInvalid
	}
	return claims, nil
}
