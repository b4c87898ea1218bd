package usecase

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/daniyarm/rosterhub/internal/domain/contract"
	"github.com/daniyarm/rosterhub/internal/domain/entity"
	"github.com/daniyarm/rosterhub/internal/infrastructure/metrics"
	"github.com/daniyarm/rosterhub/internal/infrastructure/store"
	usecasecontract "github.com/daniyarm/rosterhub/internal/usecase/contract"
)

// Errors surfaced by the admin mutation protocol.
var (
	ErrProtectedTarget   = errors.New("the reserved admin identity cannot be mutated")
	ErrUnsupportedAction = errors.New("unsupported admin action")
	ErrPartialReset      = errors.New("some users could not be reset")
)

// AdminUsecase applies the closed set of mutations an administrator may
// perform on other profiles. Authorization is enforced at the HTTP edge; the
// usecase guards only the reserved identity.
type AdminUsecase struct {
	userRepo contract.IUserRepository
	cache    contract.ILocalCache
	logger   usecasecontract.IAppLogger

	now func() time.Time
}

var _ usecasecontract.IAdminUseCase = (*AdminUsecase)(nil)

// NewAdminUsecase creates a new AdminUsecase instance.
func NewAdminUsecase(
	userRepo contract.IUserRepository,
	cache contract.ILocalCache,
	logger usecasecontract.IAppLogger,
) *AdminUsecase {
	return &AdminUsecase{userRepo: userRepo, cache: cache, logger: logger, now: time.Now}
}

// Apply performs one action against the target profile. The switch is
// exhaustive over the sealed action set; anything else is rejected.
func (uc *AdminUsecase) Apply(ctx context.Context, targetID string, action entity.AdminAction) error {
	target, err := uc.userRepo.GetUserByID(ctx, targetID)
	if err != nil {
		return fmt.Errorf("failed to load target profile: %w", err)
	}
	// The reserved admin identity with admin rights already is off-limits.
	if entity.IsReservedUsername(target.Username) && target.IsAdmin {
		return ErrProtectedTarget
	}

	switch a := action.(type) {
	case entity.AddPoints:
		err = uc.userRepo.IncrementPoints(ctx, targetID, a.Points)
		metrics.AdminActions.WithLabelValues("add_points").Inc()
	case entity.ResetStats:
		err = uc.userRepo.ResetStats(ctx, targetID, uc.now(), false)
		metrics.AdminActions.WithLabelValues("reset_stats").Inc()
	case entity.SetRole:
		role := a.Role
		if !role.Valid() {
			role = entity.DefaultRole()
		}
		// Admin rights follow the reserved username, not the role.
		err = uc.userRepo.SetRole(ctx, targetID, role, entity.IsReservedUsername(target.Username))
		metrics.AdminActions.WithLabelValues("set_role").Inc()
	case entity.UpdateUserData:
		err = uc.userRepo.SetDisplayData(ctx, targetID, a.Preset)
		metrics.AdminActions.WithLabelValues("update_user_data").Inc()
	case entity.MakeAdmin:
		err = uc.userRepo.GrantAdmin(ctx, targetID)
		metrics.AdminActions.WithLabelValues("make_admin").Inc()
	default:
		return ErrUnsupportedAction
	}
	if err != nil {
		return fmt.Errorf("admin action failed: %w", err)
	}

	// The target's cached profile is now out of date on this device.
	if cerr := uc.cache.Invalidate(ctx, store.ProfileKey(targetID)); cerr != nil {
		uc.logger.Warnf("admin: failed to invalidate cached profile %s: %v", targetID, cerr)
	}
	return nil
}

// ResetAllUsers resets every profile except the reserved admin identity:
// stats zeroed, role demoted, admin rights cleared. Best-effort parallel
// fan-out; the caller learns success or failure only in aggregate, and
// whatever succeeded before a failure stays reset.
func (uc *AdminUsecase) ResetAllUsers(ctx context.Context) error {
	refs, err := uc.userRepo.ListUserRefs(ctx)
	if err != nil {
		return fmt.Errorf("failed to list users: %w", err)
	}

	now := uc.now()
	var failed atomic.Int64
	var wg sync.WaitGroup
	for _, ref := range refs {
		if entity.IsReservedUsername(ref.Username) {
			continue
		}
		wg.Add(1)
		go func(id string) {
			defer wg.Done()
			if err := uc.userRepo.ResetStats(ctx, id, now, true); err != nil {
				uc.logger.Errorf("admin: failed to reset user %s: %v", id, err)
				failed.Add(1)
			}
		}(ref.ID)
	}
	wg.Wait()

	// Local caches hold pre-reset data on the invoking device.
	if err := uc.cache.Invalidate(ctx, store.RosterKey); err != nil {
		uc.logger.Warnf("admin: failed to invalidate roster cache: %v", err)
	}
	if err := uc.cache.InvalidatePrefix(ctx, store.ProfileKeyPrefix); err != nil {
		uc.logger.Warnf("admin: failed to invalidate profile caches: %v", err)
	}

	metrics.AdminActions.WithLabelValues("reset_all").Inc()
	if failed.Load() > 0 {
		return ErrPartialReset
	}
	return nil
}
