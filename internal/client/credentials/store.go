// Package credentials persists the bearer token between runs. Exactly one
// string is kept, under the fixed key common.CredentialKey.
package credentials

import (
	"context"
	"errors"
)

var ErrEmptyToken = errors.New("empty token")

// Store is the durable credential slot. Read reports ok=false when nothing is
// stored. ClearIf removes the token only while it still equals token, so a
// late 401 for an old token cannot wipe a token saved by a newer login.
type Store interface {
	Save(ctx context.Context, token string) error
	Read(ctx context.Context) (token string, ok bool, err error)
	Clear(ctx context.Context) error
	ClearIf(ctx context.Context, token string) (bool, error)
}
