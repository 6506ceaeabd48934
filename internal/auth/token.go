// ABOUTME: Session token issuance and validation using HS256 signed JWTs
// ABOUTME: One shared secret, resolved once, used symmetrically for both operations

package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// ErrInvalidToken is returned for every token that fails validation.
// The specific cause is never exposed to the caller.
var ErrInvalidToken = errors.New("invalid token")

// DefaultTokenTTL is the token lifetime applied when no explicit TTL is requested.
const DefaultTokenTTL = 30 * time.Minute

// fallbackSecret is used when no secret is configured. It is resolved once
// in NewTokenIssuer, so issuance and validation always see the same value.
const fallbackSecret = "lorekeep-insecure-dev-secret"

// Claims is the validated payload of a session token.
type Claims struct {
	Subject   string
	ExpiresAt time.Time
}

// TokenIssuer signs and validates session tokens with a single shared secret.
// It is stateless per call and safe for concurrent use.
type TokenIssuer struct {
	secret []byte
	now    func() time.Time // overridable in tests
}

// NewTokenIssuer creates a token issuer for the given secret. An empty
// secret falls back to a well-known development value.
func NewTokenIssuer(secret string) *TokenIssuer {
	if secret == "" {
		secret = fallbackSecret
	}
	return &TokenIssuer{
		secret: []byte(secret),
		now:    time.Now,
	}
}

// Issue creates a signed token for subject with the default lifetime.
func (i *TokenIssuer) Issue(subject string) (string, error) {
	return i.IssueFor(subject, DefaultTokenTTL)
}

// IssueFor creates a signed token for subject that expires after ttl.
// A zero or negative ttl produces a token that is already expired.
func (i *TokenIssuer) IssueFor(subject string, ttl time.Duration) (string, error) {
	now := i.now()
	claims := jwt.MapClaims{
		"sub": subject,
		"iat": now.Unix(),
		"exp": now.Add(ttl).Unix(),
		"jti": uuid.New().String(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(i.secret)
	if err != nil {
		return "", fmt.Errorf("signing token: %w", err)
	}
	return signed, nil
}

// Validate verifies the signature and expiry of a token and returns its
// claims. Any failure yields ErrInvalidToken, regardless of cause.
func (i *TokenIssuer) Validate(tokenString string) (*Claims, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return i.secret, nil
	}, jwt.WithTimeFunc(i.now), jwt.WithExpirationRequired())
	if err != nil || !token.Valid {
		return nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, ErrInvalidToken
	}

	sub, ok := claims["sub"].(string)
	if !ok || sub == "" {
		return nil, ErrInvalidToken
	}

	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return nil, ErrInvalidToken
	}

	return &Claims{Subject: sub, ExpiresAt: exp.Time}, nil
}
