package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/the247care/clinic-api/internal/handler"
	"github.com/the247care/clinic-api/pkg/auth"
)

// Context keys set by Authenticate.
const (
	ContextKeyClaims = "auth_claims"
)

// Authenticate validates the bearer token and stores the claims on the
// request context.
func Authenticate(tokens auth.JWTService) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized,
				handler.NewErrorResponse("missing authorization header"))
			return
		}

		parts := strings.SplitN(header, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			c.AbortWithStatusJSON(http.StatusUnauthorized,
				handler.NewErrorResponse("invalid authorization header"))
			return
		}

		claims, err := tokens.ValidateAccessToken(parts[1])
		if err != nil {
			msg := "invalid token"
			if err == auth.ErrExpiredToken {
				msg = "token expired"
			}
			c.AbortWithStatusJSON(http.StatusUnauthorized, handler.NewErrorResponse(msg))
			return
		}

		c.Set(ContextKeyClaims, claims)
		c.Next()
	}
}

// RequireRoles aborts with 403 unless the authenticated user holds one of the
// given roles. Must run after Authenticate.
func RequireRoles(roles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims := ClaimsFrom(c)
		if claims == nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized,
				handler.NewErrorResponse("authentication required"))
			return
		}
		for _, role := range roles {
			if claims.Role == role {
				c.Next()
				return
			}
		}
		c.AbortWithStatusJSON(http.StatusForbidden,
			handler.NewErrorResponse("insufficient permissions"))
	}
}

// ClaimsFrom returns the authenticated claims, or nil on an unauthenticated
// request.
func ClaimsFrom(c *gin.Context) *auth.Claims {
	v, ok := c.Get(ContextKeyClaims)
	if !ok {
		return nil
	}
	claims, ok := v.(*auth.Claims)
	if !ok {
		return nil
	}
	return claims
}
