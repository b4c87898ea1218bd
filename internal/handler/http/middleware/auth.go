package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/daniyarm/rosterhub/internal/handler/http/dto"
	appjwt "github.com/daniyarm/rosterhub/internal/infrastructure/jwt"
)

const adminClaimsKey = "adminClaims"

// AdminAuth gates the admin mutation surface behind a valid admin session
// token. This is the session-side guard only; the store itself does not
// enforce authorization.
func AdminAuth(manager *appjwt.JWTManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		auth := c.GetHeader("Authorization")
		if !strings.HasPrefix(auth, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, dto.ErrorResponse{Error: "missing admin token"})
			return
		}
		claims, err := manager.VerifyAdminToken(strings.TrimPrefix(auth, "Bearer "))
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, dto.ErrorResponse{Error: "invalid admin token"})
			return
		}
		c.Set(adminClaimsKey, claims)
		c.Next()
	}
}

// AdminClaimsFrom returns the claims attached by AdminAuth.
func AdminClaimsFrom(c *gin.Context) (*appjwt.AdminClaims, bool) {
	v, ok := c.Get(adminClaimsKey)
	if !ok {
		return nil, false
	}
	claims, ok := v.(*appjwt.AdminClaims)
	return claims, ok
}
