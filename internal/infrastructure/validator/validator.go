package validator

import (
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"github.com/daniyarm/rosterhub/internal/domain/entity"
)

// RegisterCustomValidators installs domain validations on gin's binding
// engine. Call once at startup.
func RegisterCustomValidators() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		_ = v.RegisterValidation("role", validRole)
		_ = v.RegisterValidation("adminaction", validAdminActionType)
	}
}

func validRole(fl validator.FieldLevel) bool {
	return entity.Role(fl.Field().String()).Valid()
}

// Action type tags accepted on the admin mutation endpoint.
var actionTypes = map[string]bool{
	"ADD_POINTS":       true,
	"RESET_STATS":      true,
	"SET_ROLE":         true,
	"UPDATE_USER_DATA": true,
	"MAKE_ADMIN":       true,
}

func validAdminActionType(fl validator.FieldLevel) bool {
	return actionTypes[fl.Field().String()]
}
