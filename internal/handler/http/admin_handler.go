package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/daniyarm/rosterhub/internal/domain/contract"
	"github.com/daniyarm/rosterhub/internal/domain/entity"
	"github.com/daniyarm/rosterhub/internal/handler/http/dto"
	appjwt "github.com/daniyarm/rosterhub/internal/infrastructure/jwt"
	"github.com/daniyarm/rosterhub/internal/usecase"
	usecasecontract "github.com/daniyarm/rosterhub/internal/usecase/contract"
)

// PasswordComparer checks a password against a stored hash.
type PasswordComparer interface {
	ComparePasswordHash(password, hashedPassword string) error
}

// AdminHandler serves the admin gate and the mutation surface.
type AdminHandler struct {
	adminUC           usecasecontract.IAdminUseCase
	jwtManager        *appjwt.JWTManager
	hasher            PasswordComparer
	adminPasswordHash string
	logger            usecasecontract.IAppLogger
}

// NewAdminHandler creates a new AdminHandler.
func NewAdminHandler(
	adminUC usecasecontract.IAdminUseCase,
	jwtManager *appjwt.JWTManager,
	hasher PasswordComparer,
	adminPasswordHash string,
	logger usecasecontract.IAppLogger,
) *AdminHandler {
	return &AdminHandler{
		adminUC:           adminUC,
		jwtManager:        jwtManager,
		hasher:            hasher,
		adminPasswordHash: adminPasswordHash,
		logger:            logger,
	}
}

// Login checks the reserved admin credentials and issues a session token.
func (h *AdminHandler) Login(c *gin.Context) {
	var req dto.AdminLoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: err.Error()})
		return
	}
	if !entity.IsReservedUsername(req.Username) ||
		h.hasher.ComparePasswordHash(req.Password, h.adminPasswordHash) != nil {
		c.JSON(http.StatusUnauthorized, dto.ErrorResponse{Error: "invalid username or password"})
		return
	}

	token, err := h.jwtManager.GenerateAdminToken(entity.ReservedAdminUsername)
	if err != nil {
		h.logger.Errorf("admin: failed to issue session token: %v", err)
		c.JSON(http.StatusInternalServerError, dto.ErrorResponse{Error: "failed to create session"})
		return
	}
	c.JSON(http.StatusOK, dto.AdminLoginResponse{Token: token})
}

// ApplyAction performs one admin mutation against the target user.
func (h *AdminHandler) ApplyAction(c *gin.Context) {
	targetID := c.Param("id")

	var req dto.AdminActionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: err.Error()})
		return
	}

	action, err := actionFromRequest(req)
	if err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: err.Error()})
		return
	}

	if err := h.adminUC.Apply(c.Request.Context(), targetID, action); err != nil {
		switch {
		case errors.Is(err, usecase.ErrProtectedTarget):
			c.JSON(http.StatusForbidden, dto.ErrorResponse{Error: err.Error()})
		case errors.Is(err, contract.ErrUserNotFound):
			c.JSON(http.StatusNotFound, dto.ErrorResponse{Error: "user not found"})
		default:
			h.logger.Errorf("admin: action %s on %s failed: %v", req.Type, targetID, err)
			c.JSON(http.StatusInternalServerError, dto.ErrorResponse{Error: "action failed, please try again later"})
		}
		return
	}
	c.JSON(http.StatusOK, dto.MessageResponse{Message: "action applied"})
}

// ResetAll resets every non-admin user. Partial failure is reported only in
// aggregate.
func (h *AdminHandler) ResetAll(c *gin.Context) {
	if err := h.adminUC.ResetAllUsers(c.Request.Context()); err != nil {
		h.logger.Errorf("admin: bulk reset failed: %v", err)
		c.JSON(http.StatusInternalServerError, dto.ErrorResponse{Error: "reset failed, please try again later"})
		return
	}
	c.JSON(http.StatusOK, dto.MessageResponse{Message: "all users reset"})
}

// actionFromRequest maps the wire form onto the sealed action set.
func actionFromRequest(req dto.AdminActionRequest) (entity.AdminAction, error) {
	switch req.Type {
	case "ADD_POINTS":
		if req.Points == nil {
			return nil, errors.New("points is required for ADD_POINTS")
		}
		return entity.AddPoints{Points: *req.Points}, nil
	case "RESET_STATS":
		return entity.ResetStats{}, nil
	case "SET_ROLE":
		role := entity.Role(req.Role)
		if !role.Valid() {
			return nil, errors.New("a valid role is required for SET_ROLE")
		}
		return entity.SetRole{Role: role}, nil
	case "UPDATE_USER_DATA":
		preset, ok := entity.PresetFor(req.PresetUsername)
		if !ok {
			return nil, errors.New("unknown preset username")
		}
		return entity.UpdateUserData{Preset: preset}, nil
	case "MAKE_ADMIN":
		return entity.MakeAdmin{}, nil
	}
	return nil, errors.New("unknown action type")
}
