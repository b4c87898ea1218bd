package contract

import "time"

// IConfigProvider exposes the tunables the usecases need.
type IConfigProvider interface {
	GetProfileCacheTTL() time.Duration
	GetRosterCacheTTL() time.Duration
	GetRosterStaleAfter() time.Duration
	GetRosterLimit() int64
	GetBasePoints() int64
	GetAdminSessionTTL() time.Duration
}
