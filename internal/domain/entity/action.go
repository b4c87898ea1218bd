package entity

// AdminAction is one of the closed set of state transitions an administrator
// may apply to a target profile. The set is sealed; handlers switch over the
// concrete types and reject anything else.
type AdminAction interface {
	isAdminAction()
}

// AddPoints atomically increments the target's points. The delta may be
// negative.
type AddPoints struct {
	Points int64
}

// ResetStats zeroes points and visitCount, refreshes the visit timestamps and
// demotes the role to participant. It does not touch IsAdmin.
type ResetStats struct{}

// SetRole changes the target's role. Admin rights are recomputed from the
// reserved username, not granted by the role itself.
type SetRole struct {
	Role Role
}

// UpdateUserData overwrites the target's display attributes from a preset and
// forces the participant role.
type UpdateUserData struct {
	Preset PresetUserData
}

// MakeAdmin grants admin rights and the organizer role. There is no
// corresponding revoke action.
type MakeAdmin struct{}

func (AddPoints) isAdminAction()      {}
func (ResetStats) isAdminAction()     {}
func (SetRole) isAdminAction()        {}
func (UpdateUserData) isAdminAction() {}
func (MakeAdmin) isAdminAction()      {}
