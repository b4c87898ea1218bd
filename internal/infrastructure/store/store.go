package store

import (
	"context"
	"encoding/json"
	"time"

	"github.com/daniyarm/rosterhub/internal/domain/contract"
)

// Cache key namespaces. Each call site owns a disjoint namespace, so the
// store needs no locking beyond what the KV layer provides.
const (
	ProfileKeyPrefix = "cached_profile:"
	RosterKey        = "users_cache"
)

// schemaVersion guards cached blobs against shape changes across deploys.
// Bump it whenever the cached types change; old entries then read as misses.
const schemaVersion = 1

// ProfileKey returns the cache key for one identity's profile.
func ProfileKey(userID string) string {
	return ProfileKeyPrefix + userID
}

// envelope is the stored shape: the value plus its write time and the schema
// version it was written under.
type envelope struct {
	V        int             `json:"v"`
	Data     json.RawMessage `json:"data"`
	StoredAt int64           `json:"storedAt"` // unix milliseconds
}

// LocalCacheStore is a pure expiring cache over the local persistence layer.
// It has no knowledge of what it stores.
type LocalCacheStore struct {
	kv  contract.IKVStore
	now func() time.Time
}

var _ contract.ILocalCache = (*LocalCacheStore)(nil)

// NewLocalCacheStore creates a cache over the given KV layer.
func NewLocalCacheStore(kv contract.IKVStore) *LocalCacheStore {
	return &LocalCacheStore{kv: kv, now: time.Now}
}

// Put stores value under key stamped with the current time.
func (c *LocalCacheStore) Put(ctx context.Context, key string, value any) error {
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}
	env := envelope{
		V:        schemaVersion,
		Data:     data,
		StoredAt: c.now().UnixMilli(),
	}
	raw, err := json.Marshal(env)
	if err != nil {
		return err
	}
	return c.kv.Set(ctx, key, string(raw))
}

// Get decodes the entry into dest when it is younger than maxAge. Stale,
// corrupt or version-mismatched entries are evicted and reported as absent.
func (c *LocalCacheStore) Get(ctx context.Context, key string, maxAge time.Duration, dest any) (bool, error) {
	env, ok, err := c.load(ctx, key)
	if err != nil || !ok {
		return false, err
	}
	age := c.now().Sub(time.UnixMilli(env.StoredAt))
	if age >= maxAge {
		_ = c.kv.Del(ctx, key)
		return false, nil
	}
	if err := json.Unmarshal(env.Data, dest); err != nil {
		_ = c.kv.Del(ctx, key)
		return false, nil
	}
	return true, nil
}

// GetStale decodes the entry into dest regardless of its age.
func (c *LocalCacheStore) GetStale(ctx context.Context, key string, dest any) (bool, error) {
	env, ok, err := c.load(ctx, key)
	if err != nil || !ok {
		return false, err
	}
	if err := json.Unmarshal(env.Data, dest); err != nil {
		_ = c.kv.Del(ctx, key)
		return false, nil
	}
	return true, nil
}

// Invalidate removes the entry unconditionally.
func (c *LocalCacheStore) Invalidate(ctx context.Context, key string) error {
	return c.kv.Del(ctx, key)
}

// InvalidatePrefix removes every entry under a key prefix.
func (c *LocalCacheStore) InvalidatePrefix(ctx context.Context, prefix string) error {
	keys, err := c.kv.Keys(ctx, prefix+"*")
	if err != nil {
		return err
	}
	for _, key := range keys {
		if err := c.kv.Del(ctx, key); err != nil {
			return err
		}
	}
	return nil
}

// load reads and validates the envelope. Corrupt or version-mismatched
// entries are evicted and treated as absent.
func (c *LocalCacheStore) load(ctx context.Context, key string) (envelope, bool, error) {
	raw, ok, err := c.kv.Get(ctx, key)
	if err != nil {
		return envelope{}, false, err
	}
	if !ok {
		return envelope{}, false, nil
	}
	var env envelope
	if err := json.Unmarshal([]byte(raw), &env); err != nil || env.V != schemaVersion {
		_ = c.kv.Del(ctx, key)
		return envelope{}, false, nil
	}
	return env, true, nil
}
