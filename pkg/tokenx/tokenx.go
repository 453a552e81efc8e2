// Package tokenx inspects bearer tokens issued by the phonebook API.
//
// The client never verifies signatures; it only needs the embedded expiry
// to decide whether a persisted token is still worth presenting. The token
// is treated as an opaque capability that happens to be self-describing.
package tokenx

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var (
	ErrMalformed = errors.New("tokenx: malformed token")
	ErrExpired   = errors.New("tokenx: token expired")
)

// Claims are the claims the phonebook API embeds in access tokens. Only
// the registered claims matter client-side; sub carries the user's email.
type Claims struct {
	jwt.RegisteredClaims
}

// Decode parses a token without verifying its signature and returns its
// claims. A token that cannot be parsed at all returns ErrMalformed.
func Decode(token string) (*Claims, error) {
	var claims Claims

	parser := jwt.NewParser()
	if _, _, err := parser.ParseUnverified(token, &claims); err != nil {
		return nil, ErrMalformed
	}

	return &claims, nil
}

// ValidateExpiry reports whether the claims are still live at the given
// instant. Claims without an exp are treated as expired: the API always
// sets one, so its absence means the token is not ours.
func (c *Claims) ValidateExpiry(now time.Time) error {
	if c.ExpiresAt == nil {
		return ErrExpired
	}

	if now.After(c.ExpiresAt.Time) {
		return ErrExpired
	}

	return nil
}

// Subject returns the sub claim, the email the token was issued for.
func (c *Claims) Subject() string {
	return c.RegisteredClaims.Subject
}
