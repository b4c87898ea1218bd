package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/daniyarm/rosterhub/internal/domain/entity"
	"github.com/daniyarm/rosterhub/internal/handler/http/dto"
	"github.com/daniyarm/rosterhub/internal/infrastructure/telegram"
)

const identityKey = "identity"

// Identity validates Telegram Web App init data and attaches the resulting
// identity to the request context. Init data is accepted either as
// "Authorization: tma <initData>" or in the X-Telegram-Init-Data header.
func Identity(validator *telegram.Validator) gin.HandlerFunc {
	return func(c *gin.Context) {
		raw := rawInitData(c)
		if raw == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, dto.ErrorResponse{Error: "missing init data"})
			return
		}
		identity, err := validator.Validate(raw)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, dto.ErrorResponse{Error: "invalid init data"})
			return
		}
		c.Set(identityKey, identity)
		c.Next()
	}
}

// IdentityFrom returns the identity attached by the Identity middleware.
func IdentityFrom(c *gin.Context) (entity.Identity, bool) {
	v, ok := c.Get(identityKey)
	if !ok {
		return entity.Identity{}, false
	}
	identity, ok := v.(entity.Identity)
	return identity, ok
}

// SetIdentity attaches an identity directly. Test seam.
func SetIdentity(c *gin.Context, identity entity.Identity) {
	c.Set(identityKey, identity)
}

func rawInitData(c *gin.Context) string {
	auth := c.GetHeader("Authorization")
	if strings.HasPrefix(auth, "tma ") {
		return strings.TrimPrefix(auth, "tma ")
	}
	return c.GetHeader("X-Telegram-Init-Data")
}
