package usecase

import (
	"context"
	"time"

	"github.com/daniyarm/rosterhub/internal/domain/contract"
	"github.com/daniyarm/rosterhub/internal/domain/entity"
	usecasecontract "github.com/daniyarm/rosterhub/internal/usecase/contract"
)

// PresenceUsecase is the best-effort liveness signal. It performs no reads,
// holds no state, and never fails its caller.
type PresenceUsecase struct {
	userRepo contract.IUserRepository
	logger   usecasecontract.IAppLogger

	now func() time.Time
}

var _ usecasecontract.IPresenceUseCase = (*PresenceUsecase)(nil)

// NewPresenceUsecase creates a new PresenceUsecase instance.
func NewPresenceUsecase(userRepo contract.IUserRepository, logger usecasecontract.IAppLogger) *PresenceUsecase {
	return &PresenceUsecase{userRepo: userRepo, logger: logger, now: time.Now}
}

// Attach marks the user active now. No-op for empty or reserved ids.
func (uc *PresenceUsecase) Attach(ctx context.Context, userID string) {
	uc.touch(ctx, userID)
}

// Detach issues one last best-effort ping as the session ends.
func (uc *PresenceUsecase) Detach(ctx context.Context, userID string) {
	uc.touch(ctx, userID)
}

func (uc *PresenceUsecase) touch(ctx context.Context, userID string) {
	if userID == "" || userID == entity.ReservedAdminUsername {
		return
	}
	if err := uc.userRepo.TouchLastActive(ctx, userID, uc.now()); err != nil {
		uc.logger.Warnf("presence: failed to update lastActive for %s: %v", userID, err)
	}
}
