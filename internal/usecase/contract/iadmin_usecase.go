package contract

import (
	"context"

	"github.com/daniyarm/rosterhub/internal/domain/entity"
)

// IAdminUseCase applies the closed set of admin mutations to target profiles.
type IAdminUseCase interface {
	// Apply performs one action against the target. The target profile is
	// loaded first so guards and recomputed flags see current state.
	Apply(ctx context.Context, targetID string, action entity.AdminAction) error

	// ResetAllUsers resets every non-admin profile and clears local caches.
	// Best-effort parallel fan-out; partial failure is reported only in
	// aggregate.
	ResetAllUsers(ctx context.Context) error
}

// IPresenceUseCase is the best-effort liveness signal, paired attach/detach.
type IPresenceUseCase interface {
	Attach(ctx context.Context, userID string)
	Detach(ctx context.Context, userID string)
}

// ILikeUseCase records peer like actions.
type ILikeUseCase interface {
	AddLike(ctx context.Context, actorID, targetID string) error
}
