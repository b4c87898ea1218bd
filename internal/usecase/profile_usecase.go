package usecase

import (
	"context"
	"errors"
	"time"

	"github.com/daniyarm/rosterhub/internal/domain/contract"
	"github.com/daniyarm/rosterhub/internal/domain/entity"
	"github.com/daniyarm/rosterhub/internal/infrastructure/metrics"
	"github.com/daniyarm/rosterhub/internal/infrastructure/store"
	usecasecontract "github.com/daniyarm/rosterhub/internal/usecase/contract"
)

// ProfileUsecase resolves one consistent profile per identity with minimal
// remote round-trips: cached copy first, then exactly one remote read, then
// create-with-defaults.
type ProfileUsecase struct {
	userRepo contract.IUserRepository
	cache    contract.ILocalCache
	logger   usecasecontract.IAppLogger
	config   usecasecontract.IConfigProvider

	now func() time.Time
}

var _ usecasecontract.IProfileUseCase = (*ProfileUsecase)(nil)

// NewProfileUsecase creates a new ProfileUsecase instance.
func NewProfileUsecase(
	userRepo contract.IUserRepository,
	cache contract.ILocalCache,
	logger usecasecontract.IAppLogger,
	config usecasecontract.IConfigProvider,
) *ProfileUsecase {
	return &ProfileUsecase{
		userRepo: userRepo,
		cache:    cache,
		logger:   logger,
		config:   config,
		now:      time.Now,
	}
}

// Bootstrap loads or creates the profile for the identity. Remote failures
// are logged and surface as the loading state, never as an error: a later
// mount retries.
func (uc *ProfileUsecase) Bootstrap(ctx context.Context, identity entity.Identity) usecasecontract.BootstrapResult {
	if identity.ID == "" {
		return usecasecontract.BootstrapResult{State: usecasecontract.BootstrapLoading}
	}

	cacheKey := store.ProfileKey(identity.ID)

	var cached entity.UserProfile
	hit, err := uc.cache.Get(ctx, cacheKey, uc.config.GetProfileCacheTTL(), &cached)
	if err != nil {
		uc.logger.Warnf("profile: cache read failed for %s: %v", identity.ID, err)
	}
	if hit {
		metrics.CacheHits.WithLabelValues("profile").Inc()
		return usecasecontract.BootstrapResult{State: usecasecontract.BootstrapCacheHit, Profile: &cached}
	}
	metrics.CacheMisses.WithLabelValues("profile").Inc()

	profile, err := uc.resolve(ctx, identity)
	if err != nil {
		uc.logger.Errorf("profile: failed to load profile for %s: %v", identity.ID, err)
		return usecasecontract.BootstrapResult{State: usecasecontract.BootstrapLoading}
	}

	if err := uc.cache.Put(ctx, cacheKey, profile); err != nil {
		uc.logger.Warnf("profile: failed to cache profile for %s: %v", identity.ID, err)
	}
	return usecasecontract.BootstrapResult{State: usecasecontract.BootstrapReady, Profile: profile}
}

// resolve performs the single remote read and, when the document is absent,
// the one creation path.
func (uc *ProfileUsecase) resolve(ctx context.Context, identity entity.Identity) (*entity.UserProfile, error) {
	now := uc.now()

	stored, err := uc.userRepo.GetUserByID(ctx, identity.ID)
	if err != nil && !errors.Is(err, contract.ErrUserNotFound) {
		return nil, err
	}

	if stored != nil {
		// The identity provider is authoritative for display fields, the
		// store for everything it has accumulated.
		profile := *stored
		profile.ID = identity.ID
		profile.Username = identity.DisplayUsername()
		profile.FirstName = identity.FirstName
		profile.LastName = identity.LastName
		profile.PhotoURL = identity.PhotoURL
		profile.IsAdmin = identity.IsReservedAdmin() || stored.IsAdmin
		profile.LastActive = now

		if err := uc.userRepo.RecordVisit(ctx, identity.ID, now); err != nil {
			uc.logger.Warnf("profile: failed to record visit for %s: %v", identity.ID, err)
		} else {
			profile.VisitCount++
			profile.LastVisit = now
		}
		return &profile, nil
	}

	profile := &entity.UserProfile{
		ID:         identity.ID,
		Username:   identity.DisplayUsername(),
		FirstName:  identity.FirstName,
		LastName:   identity.LastName,
		PhotoURL:   identity.PhotoURL,
		Points:     uc.config.GetBasePoints(),
		VisitCount: 1,
		LastVisit:  now,
		LastActive: now,
		IsAdmin:    identity.IsReservedAdmin(),
		Role:       entity.DefaultRole(),
		Streak:     1,
	}
	// Upsert so a concurrent creation for the same identity converges to a
	// single record, last write wins.
	if err := uc.userRepo.UpsertUser(ctx, profile); err != nil {
		return nil, err
	}
	return profile, nil
}
