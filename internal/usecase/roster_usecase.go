package usecase

import (
	"context"
	"sync"
	"time"

	"github.com/daniyarm/rosterhub/internal/domain/contract"
	"github.com/daniyarm/rosterhub/internal/domain/entity"
	"github.com/daniyarm/rosterhub/internal/infrastructure/metrics"
	"github.com/daniyarm/rosterhub/internal/infrastructure/store"
	usecasecontract "github.com/daniyarm/rosterhub/internal/usecase/contract"
)

// rosterObserverEntry keeps an observer with its handle id. Observers are a
// slice, not a map, so notification order matches registration order.
type rosterObserverEntry struct {
	id       string
	observer usecasecontract.RosterObserver
}

// RosterUsecase multiplexes one live subscription to the ranked roster across
// any number of observers. At most one remote subscription is active; the
// last observer leaving tears it down.
type RosterUsecase struct {
	watcher contract.IRosterWatcher
	cache   contract.ILocalCache
	uuidGen contract.IUUIDGenerator
	logger  usecasecontract.IAppLogger
	config  usecasecontract.IConfigProvider

	mu        sync.Mutex
	observers []rosterObserverEntry
	roster    []entity.UserProfile
	hasRoster bool
	cancel    context.CancelFunc
	startedAt time.Time
	gen       uint64

	now func() time.Time
}

var _ usecasecontract.IRosterUseCase = (*RosterUsecase)(nil)

// NewRosterUsecase creates the process-wide subscription manager. Construct
// it once and share it; the singleton lives in the wiring, not in package
// state.
func NewRosterUsecase(
	watcher contract.IRosterWatcher,
	cache contract.ILocalCache,
	uuidGen contract.IUUIDGenerator,
	logger usecasecontract.IAppLogger,
	config usecasecontract.IConfigProvider,
) *RosterUsecase {
	return &RosterUsecase{
		watcher: watcher,
		cache:   cache,
		uuidGen: uuidGen,
		logger:  logger,
		config:  config,
		now:     time.Now,
	}
}

// Acquire registers an observer and ensures a live subscription exists. If a
// snapshot is already resident it is delivered to the new observer before
// Acquire returns.
func (uc *RosterUsecase) Acquire(observer usecasecontract.RosterObserver) usecasecontract.RosterHandle {
	uc.mu.Lock()
	defer uc.mu.Unlock()

	if uc.cancel == nil || uc.now().Sub(uc.startedAt) > uc.config.GetRosterStaleAfter() {
		uc.restartLocked()
	}

	handle := usecasecontract.RosterHandle{ID: uc.uuidGen.NewUUID()}
	uc.observers = append(uc.observers, rosterObserverEntry{id: handle.ID, observer: observer})
	metrics.RosterObservers.Set(float64(len(uc.observers)))

	if uc.hasRoster && observer.OnRoster != nil {
		observer.OnRoster(uc.roster)
	}
	return handle
}

// Release removes the observer. When the last one leaves, the remote
// subscription is torn down and the shared state discarded.
func (uc *RosterUsecase) Release(handle usecasecontract.RosterHandle) {
	uc.mu.Lock()
	defer uc.mu.Unlock()

	for i, entry := range uc.observers {
		if entry.id == handle.ID {
			uc.observers = append(uc.observers[:i], uc.observers[i+1:]...)
			break
		}
	}
	metrics.RosterObservers.Set(float64(len(uc.observers)))

	if len(uc.observers) == 0 && uc.cancel != nil {
		uc.cancel()
		uc.cancel = nil
		uc.gen++ // drops any in-flight callbacks from the old watch
		uc.roster = nil
		uc.hasRoster = false
	}
}

// Snapshot returns the resident roster without subscribing.
func (uc *RosterUsecase) Snapshot() ([]entity.UserProfile, bool) {
	uc.mu.Lock()
	defer uc.mu.Unlock()
	return uc.roster, uc.hasRoster
}

// restartLocked (re)starts the remote subscription. Caller holds mu.
func (uc *RosterUsecase) restartLocked() {
	if uc.cancel != nil {
		uc.cancel()
	}
	ctx, cancel := context.WithCancel(context.Background())
	uc.cancel = cancel
	uc.startedAt = uc.now()
	uc.gen++
	gen := uc.gen
	uc.watcher.Watch(ctx, uc.config.GetRosterLimit(),
		func(users []entity.UserProfile) { uc.onSnapshot(gen, users) },
		func(err error) { uc.onError(gen, err) })
}

// onSnapshot filters and publishes one push from the remote channel. Pushes
// from a superseded subscription are dropped.
func (uc *RosterUsecase) onSnapshot(gen uint64, users []entity.UserProfile) {
	filtered := FilterRoster(users)

	uc.mu.Lock()
	if gen != uc.gen {
		uc.mu.Unlock()
		return
	}
	uc.roster = filtered
	uc.hasRoster = true
	metrics.RosterPushes.Inc()
	observers := make([]rosterObserverEntry, len(uc.observers))
	copy(observers, uc.observers)
	uc.mu.Unlock()

	if err := uc.cache.Put(context.Background(), store.RosterKey, filtered); err != nil {
		uc.logger.Warnf("roster: failed to cache snapshot: %v", err)
	}
	for _, entry := range observers {
		if entry.observer.OnRoster != nil {
			entry.observer.OnRoster(filtered)
		}
	}
}

// onError serves the cached roster, however old, then reports the failure.
// The remote channel is down, so age no longer matters.
func (uc *RosterUsecase) onError(gen uint64, err error) {
	uc.logger.Errorf("roster: subscription failed: %v", err)
	metrics.RosterErrors.Inc()

	var cached []entity.UserProfile
	ok, cacheErr := uc.cache.GetStale(context.Background(), store.RosterKey, &cached)
	if cacheErr != nil {
		uc.logger.Warnf("roster: cache fallback failed: %v", cacheErr)
		ok = false
	}

	uc.mu.Lock()
	if gen != uc.gen {
		uc.mu.Unlock()
		return
	}
	if ok {
		uc.roster = cached
		uc.hasRoster = true
	}
	observers := make([]rosterObserverEntry, len(uc.observers))
	copy(observers, uc.observers)
	uc.mu.Unlock()

	for _, entry := range observers {
		if ok && entry.observer.OnRoster != nil {
			entry.observer.OnRoster(cached)
		}
		if entry.observer.OnError != nil {
			entry.observer.OnError(err)
		}
	}
}

// FilterRoster hides the reserved admin identity and incomplete
// registrations from the public roster.
func FilterRoster(users []entity.UserProfile) []entity.UserProfile {
	filtered := make([]entity.UserProfile, 0, len(users))
	for _, u := range users {
		if entity.IsReservedUsername(u.Username) {
			continue
		}
		if u.FirstName == "" || u.LastName == "" {
			continue
		}
		filtered = append(filtered, u)
	}
	return filtered
}
