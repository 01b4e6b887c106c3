// Package tokeninfo reads the claims of the stored bearer token for display.
// The signature is not checked (the client has no key) and nothing here
// decides whether a token is usable; the server remains the only judge.
package tokeninfo

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var ErrNotJWT = errors.New("token is not a JWT")

type Info struct {
	// Subject is the "sub" claim, the account email for this API.
	Subject   string
	ExpiresAt time.Time
	IssuedAt  time.Time
}

// Remaining is the time left until expiry at now, zero when unknown or past.
func (i Info) Remaining(now time.Time) time.Duration {
	if i.ExpiresAt.IsZero() || !now.Before(i.ExpiresAt) {
		return 0
	}
	return i.ExpiresAt.Sub(now)
}

func (i Info) Expired(now time.Time) bool {
	return !i.ExpiresAt.IsZero() && !now.Before(i.ExpiresAt)
}

func Describe(token string) (Info, error) {
	claims := &jwt.RegisteredClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return Info{}, fmt.Errorf("%w: %w", ErrNotJWT, err)
	}

	info := Info{Subject: claims.Subject}
	if claims.ExpiresAt != nil {
		info.ExpiresAt = claims.ExpiresAt.Time
	}
	if claims.IssuedAt != nil {
		info.IssuedAt = claims.IssuedAt.Time
	}
	return info, nil
}
