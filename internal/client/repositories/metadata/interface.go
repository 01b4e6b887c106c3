// Package metadata is a tiny key/value table in the local SQLite database.
// The credential store keeps the bearer token here.
package metadata

import (
	"context"
)

// Repository stores opaque values by key. Get returns (nil, nil) for a
// missing key.
type Repository interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
	// DeleteIf removes key only while it still holds value.
	DeleteIf(ctx context.Context, key string, value []byte) (bool, error)
	List(ctx context.Context) (map[string][]byte, error)
	Clear(ctx context.Context) error
}
