package dto

// AdminLoginRequest is the credential pair for the admin gate.
type AdminLoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// AdminActionRequest is the wire form of one admin mutation. Type selects
// the variant; the remaining fields apply only to the variants that use them.
type AdminActionRequest struct {
	Type string `json:"type" binding:"required,adminaction"`
	// Points for ADD_POINTS. A pointer so an explicit zero is distinguishable
	// from an omitted field.
	Points *int64 `json:"points,omitempty"`
	// Role for SET_ROLE.
	Role string `json:"role,omitempty" binding:"omitempty,role"`
	// PresetUsername selects the preset table entry for UPDATE_USER_DATA.
	PresetUsername string `json:"presetUsername,omitempty"`
}
