// Package metadata is the local key/value store backing the persisted
// session (see common.StorageKeyShop and common.StorageKeyAccessToken).
package metadata

import (
	"context"
)

// Repository reads and writes opaque values by key.
//
// Get returns (nil, nil) for an absent key. Delete of an absent key is
// not an error.
type Repository interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, keys ...string) error
}
