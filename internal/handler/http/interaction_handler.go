package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/daniyarm/rosterhub/internal/handler/http/dto"
	"github.com/daniyarm/rosterhub/internal/handler/http/middleware"
	"github.com/daniyarm/rosterhub/internal/usecase"
	usecasecontract "github.com/daniyarm/rosterhub/internal/usecase/contract"
)

// InteractionHandler serves peer actions between participants.
type InteractionHandler struct {
	likeUC usecasecontract.ILikeUseCase
}

// NewInteractionHandler creates a new InteractionHandler.
func NewInteractionHandler(likeUC usecasecontract.ILikeUseCase) *InteractionHandler {
	return &InteractionHandler{likeUC: likeUC}
}

// LikeUser records one like from the caller on the target profile.
func (h *InteractionHandler) LikeUser(c *gin.Context) {
	identity, ok := middleware.IdentityFrom(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, dto.ErrorResponse{Error: "identity required"})
		return
	}

	targetID := c.Param("id")
	if err := h.likeUC.AddLike(c.Request.Context(), identity.ID, targetID); err != nil {
		if errors.Is(err, usecase.ErrSelfLike) {
			c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, dto.ErrorResponse{Error: "failed to record like, please try again later"})
		return
	}
	c.JSON(http.StatusOK, dto.MessageResponse{Message: "like recorded"})
}
