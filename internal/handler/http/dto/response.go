package dto

import (
	"github.com/daniyarm/rosterhub/internal/domain/entity"
	usecasecontract "github.com/daniyarm/rosterhub/internal/usecase/contract"
)

// ErrorResponse is the uniform error body.
type ErrorResponse struct {
	Error string `json:"error"`
}

// MessageResponse is the uniform success body for mutations.
type MessageResponse struct {
	Message string `json:"message"`
}

// AdminLoginResponse carries the admin session token.
type AdminLoginResponse struct {
	Token string `json:"token"`
}

// BootstrapResponse is the wire form of a profile bootstrap result.
type BootstrapResponse struct {
	State   usecasecontract.BootstrapState `json:"state"`
	Profile *entity.UserProfile            `json:"profile,omitempty"`
}
