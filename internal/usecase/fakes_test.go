package usecase

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/daniyarm/rosterhub/internal/domain/contract"
	"github.com/daniyarm/rosterhub/internal/domain/entity"
)

type fakeLogger struct{}

func (fakeLogger) Debugf(string, ...interface{}) {}
func (fakeLogger) Infof(string, ...interface{})  {}
func (fakeLogger) Warnf(string, ...interface{})  {}
func (fakeLogger) Errorf(string, ...interface{}) {}
func (fakeLogger) Fatalf(string, ...interface{}) {}

type fakeConfig struct {
	profileTTL  time.Duration
	rosterTTL   time.Duration
	staleAfter  time.Duration
	rosterLimit int64
	basePoints  int64
	sessionTTL  time.Duration
}

func newFakeConfig() *fakeConfig {
	return &fakeConfig{
		profileTTL:  30 * time.Minute,
		rosterTTL:   5 * time.Minute,
		staleAfter:  5 * time.Minute,
		rosterLimit: 50,
		basePoints:  10,
		sessionTTL:  12 * time.Hour,
	}
}

func (c *fakeConfig) GetProfileCacheTTL() time.Duration  { return c.profileTTL }
func (c *fakeConfig) GetRosterCacheTTL() time.Duration   { return c.rosterTTL }
func (c *fakeConfig) GetRosterStaleAfter() time.Duration { return c.staleAfter }
func (c *fakeConfig) GetRosterLimit() int64              { return c.rosterLimit }
func (c *fakeConfig) GetBasePoints() int64               { return c.basePoints }
func (c *fakeConfig) GetAdminSessionTTL() time.Duration  { return c.sessionTTL }

type seqUUID struct {
	mu sync.Mutex
	n  int
}

func (g *seqUUID) NewUUID() string {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.n++
	return fmt.Sprintf("handle-%d", g.n)
}

// fakeCache is an in-memory ILocalCache. Entries marked stale miss on Get
// but still resolve through GetStale, mimicking an aged envelope.
type fakeCache struct {
	mu      sync.Mutex
	entries map[string][]byte
	stale   map[string]bool
	getErr  error
	putErr  error
}

var _ contract.ILocalCache = (*fakeCache)(nil)

func newFakeCache() *fakeCache {
	return &fakeCache{entries: map[string][]byte{}, stale: map[string]bool{}}
}

func (c *fakeCache) Put(ctx context.Context, key string, value any) error {
	if c.putErr != nil {
		return c.putErr
	}
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = data
	delete(c.stale, key)
	return nil
}

func (c *fakeCache) Get(ctx context.Context, key string, maxAge time.Duration, dest any) (bool, error) {
	if c.getErr != nil {
		return false, c.getErr
	}
	c.mu.Lock()
	data, ok := c.entries[key]
	isStale := c.stale[key]
	c.mu.Unlock()
	if !ok || isStale {
		return false, nil
	}
	return true, json.Unmarshal(data, dest)
}

func (c *fakeCache) GetStale(ctx context.Context, key string, dest any) (bool, error) {
	if c.getErr != nil {
		return false, c.getErr
	}
	c.mu.Lock()
	data, ok := c.entries[key]
	c.mu.Unlock()
	if !ok {
		return false, nil
	}
	return true, json.Unmarshal(data, dest)
}

func (c *fakeCache) Invalidate(ctx context.Context, key string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.entries, key)
	delete(c.stale, key)
	return nil
}

func (c *fakeCache) InvalidatePrefix(ctx context.Context, prefix string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	for k := range c.entries {
		if len(k) >= len(prefix) && k[:len(prefix)] == prefix {
			delete(c.entries, k)
			delete(c.stale, k)
		}
	}
	return nil
}

func (c *fakeCache) markStale(key string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.stale[key] = true
}

func (c *fakeCache) has(key string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	_, ok := c.entries[key]
	return ok
}

// fakeUserRepo is a flag-driven in-memory IUserRepository.
type fakeUserRepo struct {
	mu    sync.Mutex
	users map[string]*entity.UserProfile

	ShouldFailGet       bool
	ShouldFailUpsert    bool
	ShouldFailReset     map[string]bool
	ShouldFailIncrement bool
	ShouldFailList      bool

	GetCalls    int
	TouchCalls  []string
	TouchErr    error
	LikePairs   [][2]string
	LikePairErr error
}

var _ contract.IUserRepository = (*fakeUserRepo)(nil)

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: map[string]*entity.UserProfile{}, ShouldFailReset: map[string]bool{}}
}

func (r *fakeUserRepo) GetUserByID(ctx context.Context, id string) (*entity.UserProfile, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.GetCalls++
	if r.ShouldFailGet {
		return nil, fmt.Errorf("remote store unavailable")
	}
	u, ok := r.users[id]
	if !ok {
		return nil, contract.ErrUserNotFound
	}
	cp := *u
	return &cp, nil
}

func (r *fakeUserRepo) UpsertUser(ctx context.Context, user *entity.UserProfile) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.ShouldFailUpsert {
		return fmt.Errorf("remote store unavailable")
	}
	cp := *user
	r.users[user.ID] = &cp
	return nil
}

func (r *fakeUserRepo) TouchLastActive(ctx context.Context, id string, at time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.TouchErr != nil {
		return r.TouchErr
	}
	r.TouchCalls = append(r.TouchCalls, id)
	if u, ok := r.users[id]; ok {
		u.LastActive = at
	}
	return nil
}

func (r *fakeUserRepo) RecordVisit(ctx context.Context, id string, at time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if u, ok := r.users[id]; ok {
		u.VisitCount++
		u.LastVisit = at
	}
	return nil
}

func (r *fakeUserRepo) IncrementPoints(ctx context.Context, id string, delta int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.ShouldFailIncrement {
		return fmt.Errorf("remote store unavailable")
	}
	if u, ok := r.users[id]; ok {
		u.Points += delta
	}
	return nil
}

func (r *fakeUserRepo) ResetStats(ctx context.Context, id string, at time.Time, clearAdmin bool) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.ShouldFailReset[id] {
		return fmt.Errorf("remote store unavailable")
	}
	if u, ok := r.users[id]; ok {
		u.Points = 0
		u.VisitCount = 0
		u.LastVisit = at
		u.LastActive = at
		u.Role = entity.RoleParticipant
		if clearAdmin {
			u.IsAdmin = false
		}
	}
	return nil
}

func (r *fakeUserRepo) SetRole(ctx context.Context, id string, role entity.Role, isAdmin bool) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if u, ok := r.users[id]; ok {
		u.Role = role
		u.IsAdmin = isAdmin
	}
	return nil
}

func (r *fakeUserRepo) SetDisplayData(ctx context.Context, id string, preset entity.PresetUserData) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if u, ok := r.users[id]; ok {
		u.FirstName = preset.FirstName
		u.LastName = preset.LastName
		u.PhotoURL = preset.PhotoURL
		u.Role = entity.RoleParticipant
	}
	return nil
}

func (r *fakeUserRepo) GrantAdmin(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if u, ok := r.users[id]; ok {
		u.IsAdmin = true
		u.Role = entity.RoleOrganizer
	}
	return nil
}

func (r *fakeUserRepo) AddLikePair(ctx context.Context, actorID, targetID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.LikePairErr != nil {
		return r.LikePairErr
	}
	r.LikePairs = append(r.LikePairs, [2]string{actorID, targetID})
	if u, ok := r.users[actorID]; ok {
		u.Likes = append(u.Likes, targetID)
	}
	if u, ok := r.users[targetID]; ok {
		u.LikedBy = append(u.LikedBy, actorID)
	}
	return nil
}

func (r *fakeUserRepo) ListUserRefs(ctx context.Context) ([]contract.UserRef, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.ShouldFailList {
		return nil, fmt.Errorf("remote store unavailable")
	}
	var refs []contract.UserRef
	for id, u := range r.users {
		refs = append(refs, contract.UserRef{ID: id, Username: u.Username})
	}
	return refs, nil
}

func (r *fakeUserRepo) user(id string) *entity.UserProfile {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.users[id]
}

// fakeWatcher records Watch calls and lets the test drive pushes by hand.
type fakeWatcher struct {
	mu         sync.Mutex
	watchCalls int
	ctx        context.Context
	onSnapshot contract.RosterSnapshotFunc
	onError    contract.RosterErrorFunc
}

var _ contract.IRosterWatcher = (*fakeWatcher)(nil)

func (w *fakeWatcher) Watch(ctx context.Context, limit int64, onSnapshot contract.RosterSnapshotFunc, onError contract.RosterErrorFunc) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.watchCalls++
	w.ctx = ctx
	w.onSnapshot = onSnapshot
	w.onError = onError
}

func (w *fakeWatcher) push(users []entity.UserProfile) {
	w.mu.Lock()
	fn := w.onSnapshot
	w.mu.Unlock()
	fn(users)
}

func (w *fakeWatcher) fail(err error) {
	w.mu.Lock()
	fn := w.onError
	w.mu.Unlock()
	fn(err)
}

func (w *fakeWatcher) calls() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.watchCalls
}

func (w *fakeWatcher) cancelled() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.ctx != nil && w.ctx.Err() != nil
}
