package contract

import (
	"context"
	"time"
)

// IKVStore is the raw local persistence layer: string key to string value,
// no expiry semantics of its own.
type IKVStore interface {
	Get(ctx context.Context, key string) (value string, ok bool, err error)
	Set(ctx context.Context, key, value string) error
	Del(ctx context.Context, key string) error
	// Keys returns every stored key matching a glob-style pattern.
	Keys(ctx context.Context, pattern string) ([]string, error)
}

// ILocalCache is the expiring key/value cache layered over IKVStore. It has
// no knowledge of what it stores; values are JSON-encoded blobs stamped with
// their write time.
type ILocalCache interface {
	// Put stores value under key with the current time.
	Put(ctx context.Context, key string, value any) error

	// Get decodes the entry into dest when it is younger than maxAge.
	// Older, corrupt or version-mismatched entries are evicted and reported
	// as absent.
	Get(ctx context.Context, key string, maxAge time.Duration, dest any) (bool, error)

	// GetStale decodes the entry into dest regardless of its age. Used as
	// a fallback when the remote channel is down.
	GetStale(ctx context.Context, key string, dest any) (bool, error)

	// Invalidate removes the entry unconditionally.
	Invalidate(ctx context.Context, key string) error

	// InvalidatePrefix removes every entry whose key starts with prefix.
	InvalidatePrefix(ctx context.Context, prefix string) error
}
