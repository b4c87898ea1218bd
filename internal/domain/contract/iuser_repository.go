package contract

import (
	"context"
	"errors"
	"time"

	"github.com/daniyarm/rosterhub/internal/domain/entity"
)

// ErrUserNotFound is returned when no profile document exists for an id.
var ErrUserNotFound = errors.New("user not found")

// UserRef identifies one stored profile without loading the whole document.
// Used by bulk operations to decide which records to touch.
type UserRef struct {
	ID       string
	Username string
}

// IUserRepository is the remote document store surface for profile records.
// All writes are single-document; there are no cross-document transactions.
type IUserRepository interface {
	// GetUserByID loads one profile. Returns ErrUserNotFound when absent.
	GetUserByID(ctx context.Context, id string) (*entity.UserProfile, error)

	// UpsertUser writes the whole profile document, creating it when absent.
	// Concurrent creations for the same id converge last-write-wins.
	UpsertUser(ctx context.Context, user *entity.UserProfile) error

	// TouchLastActive merges lastActive into the document without touching
	// any other field.
	TouchLastActive(ctx context.Context, id string, at time.Time) error

	// RecordVisit bumps visitCount by one and refreshes lastVisit.
	RecordVisit(ctx context.Context, id string, at time.Time) error

	// IncrementPoints applies an atomic store-level increment to points.
	IncrementPoints(ctx context.Context, id string, delta int64) error

	// ResetStats zeroes points and visitCount, refreshes the visit
	// timestamps and demotes to participant. When clearAdmin is set the
	// isAdmin flag is also dropped (bulk reset path).
	ResetStats(ctx context.Context, id string, at time.Time, clearAdmin bool) error

	// SetRole updates role and the recomputed isAdmin flag together.
	SetRole(ctx context.Context, id string, role entity.Role, isAdmin bool) error

	// SetDisplayData overwrites the display attributes from a preset and
	// forces the participant role.
	SetDisplayData(ctx context.Context, id string, preset entity.PresetUserData) error

	// GrantAdmin sets isAdmin and the organizer role.
	GrantAdmin(ctx context.Context, id string) error

	// AddLikePair appends targetID to the actor's likes set and actorID to
	// the target's likedBy set as one paired write.
	AddLikePair(ctx context.Context, actorID, targetID string) error

	// ListUserRefs returns a reference for every stored profile.
	ListUserRefs(ctx context.Context) ([]UserRef, error)
}

// RosterSnapshotFunc receives one full replacement snapshot of the ranked
// roster, already defensively mapped but not yet filtered.
type RosterSnapshotFunc func(users []entity.UserProfile)

// RosterErrorFunc receives subscription failures.
type RosterErrorFunc func(err error)

// IRosterWatcher is a real-time subscription to the top-N ranked profiles.
// Watch delivers an initial snapshot, then one snapshot per matching change,
// until ctx is cancelled. Callbacks run on the watcher's own goroutine, in
// order.
type IRosterWatcher interface {
	Watch(ctx context.Context, limit int64, onSnapshot RosterSnapshotFunc, onError RosterErrorFunc)
}
