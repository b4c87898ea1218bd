package contract

import (
	"context"

	"github.com/daniyarm/rosterhub/internal/domain/entity"
)

// BootstrapState is the observable phase of a profile bootstrap.
type BootstrapState string

const (
	// BootstrapCacheHit means the profile came from the local cache without
	// a remote read.
	BootstrapCacheHit BootstrapState = "cache_hit"
	// BootstrapReady means the profile was resolved from the remote store.
	BootstrapReady BootstrapState = "ready"
	// BootstrapLoading means the remote read failed and the caller should
	// retry on a later mount. Never an error.
	BootstrapLoading BootstrapState = "loading"
)

// BootstrapResult carries the resolved profile, or a nil profile while in
// the loading state.
type BootstrapResult struct {
	State   BootstrapState
	Profile *entity.UserProfile
}

// IProfileUseCase is the load-or-create sequence guaranteeing one profile
// record per identity.
type IProfileUseCase interface {
	Bootstrap(ctx context.Context, identity entity.Identity) BootstrapResult
}
