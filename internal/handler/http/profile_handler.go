package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/daniyarm/rosterhub/internal/handler/http/dto"
	"github.com/daniyarm/rosterhub/internal/handler/http/middleware"
	usecasecontract "github.com/daniyarm/rosterhub/internal/usecase/contract"
)

// ProfileHandler serves the session bootstrap.
type ProfileHandler struct {
	profileUC usecasecontract.IProfileUseCase
}

// NewProfileHandler creates a new ProfileHandler.
func NewProfileHandler(profileUC usecasecontract.IProfileUseCase) *ProfileHandler {
	return &ProfileHandler{profileUC: profileUC}
}

// Bootstrap resolves the caller's profile. A remote failure is not an HTTP
// error: the client gets the loading state and retries on its next mount.
func (h *ProfileHandler) Bootstrap(c *gin.Context) {
	identity, ok := middleware.IdentityFrom(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, dto.ErrorResponse{Error: "identity required"})
		return
	}

	result := h.profileUC.Bootstrap(c.Request.Context(), identity)
	c.JSON(http.StatusOK, dto.BootstrapResponse{State: result.State, Profile: result.Profile})
}
