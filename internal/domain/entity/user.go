package entity

import (
	"time"
)

// ReservedAdminUsername is the username that flags the administrative
// identity. It is excluded from roster listings and bulk mutations.
const ReservedAdminUsername = "admin"

// UserProfile represents one event participant in the directory.
type UserProfile struct {
	ID         string    `bson:"_id" json:"id"`
	Username   string    `bson:"username" json:"username"`
	FirstName  string    `bson:"firstName" json:"firstName"`
	LastName   string    `bson:"lastName" json:"lastName"`
	PhotoURL   string    `bson:"photoUrl" json:"photoUrl"`
	Points     int64     `bson:"points" json:"points"`
	VisitCount int64     `bson:"visitCount" json:"visitCount"`
	LastVisit  time.Time `bson:"lastVisit" json:"lastVisit"`
	LastActive time.Time `bson:"lastActive" json:"lastActive"`
	IsAdmin    bool      `bson:"isAdmin" json:"isAdmin"`
	Role       Role      `bson:"role" json:"role"`
	Streak     int64     `bson:"streak" json:"streak"`
	Likes      []string  `bson:"likes" json:"likes"`
	LikedBy    []string  `bson:"likedBy" json:"likedBy"`
}

// Role represents the grouping of a profile in the roster view. It is
// independent of IsAdmin.
type Role string

const (
	RoleParticipant Role = "participant"
	RoleOrganizer   Role = "organizer"
)

// DefaultRole returns the role assigned to newly created profiles.
func DefaultRole() Role {
	return RoleParticipant
}

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	return r == RoleParticipant || r == RoleOrganizer
}

// Identity is the authenticated user supplied by the host platform for the
// current session. Display attributes are authoritative for rendering; stored
// profile fields are authoritative for points/role/streak.
type Identity struct {
	ID        string `json:"id"`
	Username  string `json:"username"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	PhotoURL  string `json:"photo_url"`
}

// IsReservedAdmin reports whether the identity is the reserved admin account.
func (i Identity) IsReservedAdmin() bool {
	return IsReservedUsername(i.Username)
}

// IsReservedUsername reports whether a stored or platform-supplied handle
// names the reserved admin account. Handles may carry a leading "@".
func IsReservedUsername(username string) bool {
	if username != "" && username[0] == '@' {
		username = username[1:]
	}
	return username == ReservedAdminUsername
}

// DisplayUsername returns the handle the way it is stored on profiles,
// prefixed with "@" when the platform supplied one.
func (i Identity) DisplayUsername() string {
	if i.Username == "" {
		return ""
	}
	if i.Username[0] == '@' {
		return i.Username
	}
	return "@" + i.Username
}
