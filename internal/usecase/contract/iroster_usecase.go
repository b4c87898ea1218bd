package contract

import (
	"github.com/daniyarm/rosterhub/internal/domain/entity"
)

// RosterObserver receives roster updates. OnRoster is called with each full
// replacement snapshot; OnError signals that the remote channel failed, after
// any cached fallback has been delivered through OnRoster.
type RosterObserver struct {
	OnRoster func(users []entity.UserProfile)
	OnError  func(err error)
}

// RosterHandle identifies one registered observer.
type RosterHandle struct {
	ID string
}

// IRosterUseCase multiplexes a single live subscription to the ranked roster
// across any number of observers. Acquire/Release must pair; the last release
// tears down the remote subscription.
type IRosterUseCase interface {
	Acquire(observer RosterObserver) RosterHandle
	Release(handle RosterHandle)
	// Snapshot returns the resident roster, if any, without subscribing.
	Snapshot() ([]entity.UserProfile, bool)
}
