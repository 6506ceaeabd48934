// Package auth provides the security primitives for lorekeep: password
// hashing and session token issuance/validation.
//
// # Passwords
//
// Passwords are hashed with bcrypt (salted, one-way):
//
//	hash, err := auth.HashPassword(plaintext)
//	ok := auth.CheckPassword(plaintext, hash)
//
// CheckPassword never returns an error: a malformed or truncated hash is
// simply a mismatch. Comparison time does not depend on where a mismatch
// occurs.
//
// # Session Tokens
//
// Session tokens are HS256-signed JWTs carrying a subject identifier and an
// absolute expiry. One TokenIssuer holds the shared secret and is used for
// both signing and verification, so the two can never disagree about which
// secret is in effect:
//
//	issuer := auth.NewTokenIssuer(cfg.Auth.Secret)
//	token, err := issuer.Issue("42")
//	claims, err := issuer.Validate(token)
//
// Validate collapses every failure (bad signature, malformed token, missing
// subject, expired) into the single ErrInvalidToken sentinel. Callers are
// deliberately not told why a token was rejected.
package auth
