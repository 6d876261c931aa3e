// internal/middleware/auth.go
package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/raniasellak/Projet-de-stage-plateforme-e-commerce/internal/i18n"
	"github.com/raniasellak/Projet-de-stage-plateforme-e-commerce/internal/models"
	"github.com/raniasellak/Projet-de-stage-plateforme-e-commerce/internal/utils"
)

// AuthRequired rejects requests without a valid Bearer access token
// and stores the caller's identity in the context.
func AuthRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		token, ok := bearerToken(c)
		if !ok {
			abortUnauthorized(c, i18n.KeyAuthRequired)
			return
		}

		claims, err := utils.ValidateJWT(token)
		if err != nil {
			abortUnauthorized(c, i18n.KeyAuthTokenExpired)
			return
		}

		setIdentity(c, claims)
		c.Next()
	}
}

// OptionalAuth decodes the token when present but lets anonymous
// requests through.
func OptionalAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		if token, ok := bearerToken(c); ok {
			if claims, err := utils.ValidateJWT(token); err == nil {
				setIdentity(c, claims)
			}
		}
		c.Next()
	}
}

// RoleRequired aborts with 403 unless the authenticated user carries
// the given role.
func RoleRequired(role string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if roles, ok := utils.GetUserRolesFromContext(c); ok {
			for _, r := range roles {
				if r == role {
					c.Next()
					return
				}
			}
		}

		c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
			"error": i18n.T(utils.GetLangFromContext(c), i18n.KeyAdminAccessDenied),
		})
	}
}

func AdminRequired() gin.HandlerFunc {
	return RoleRequired(models.RoleAdmin)
}

func UserRequired() gin.HandlerFunc {
	return RoleRequired(models.RoleUser)
}

func bearerToken(c *gin.Context) (string, bool) {
	header := c.GetHeader("Authorization")
	if header == "" {
		return "", false
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || parts[0] != "Bearer" || parts[1] == "" {
		return "", false
	}
	return parts[1], true
}

func setIdentity(c *gin.Context, claims *utils.JWTClaims) {
	c.Set("user_id", claims.UserID)
	c.Set("username", claims.Username)
	c.Set("roles", claims.Roles)
}

func abortUnauthorized(c *gin.Context, key string) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
		"error": i18n.T(utils.GetLangFromContext(c), key),
	})
}
