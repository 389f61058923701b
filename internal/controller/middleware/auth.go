package middleware

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/lnthach/Margay/config"
	"github.com/lnthach/Margay/internal/dto"
	"github.com/rs/zerolog/log"
)

const (
	ContextUserIDKey  = "user_id"
	ContextIsAdminKey = "is_admin"
)

// RequireAuth validates the Bearer token and puts the caller's user id (the
// token subject, a UUID) on the gin context. Identity is trusted from here on;
// nothing downstream re-validates tokens.
func RequireAuth(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if !strings.HasPrefix(header, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, dto.Fail("missing bearer token"))
			return
		}
		tokenStr := strings.TrimPrefix(header, "Bearer ")

		token, err := jwt.Parse(tokenStr, func(t *jwt.Token) (any, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
			}
			return []byte(cfg.JWTSecret), nil
		})
		if err != nil || !token.Valid {
			log.Warn().Err(err).Msg("Rejected invalid bearer token")
			c.AbortWithStatusJSON(http.StatusUnauthorized, dto.Fail("invalid or expired token"))
			return
		}

		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, dto.Fail("invalid token claims"))
			return
		}
		sub, err := claims.GetSubject()
		if err != nil || sub == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, dto.Fail("token has no subject"))
			return
		}
		if _, err := uuid.Parse(sub); err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, dto.Fail("token subject is not a valid user id"))
			return
		}

		c.Set(ContextUserIDKey, sub)
		if role, ok := claims["role"].(string); ok && role == "admin" {
			c.Set(ContextIsAdminKey, true)
		}
		c.Next()
	}
}

// RequireAdmin gates the administrative surface. Must run after RequireAuth.
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !c.GetBool(ContextIsAdminKey) {
			c.AbortWithStatusJSON(http.StatusForbidden, dto.Fail("admin access required"))
			return
		}
		c.Next()
	}
}

// UserID returns the authenticated caller's user id set by RequireAuth.
func UserID(c *gin.Context) string {
	return c.GetString(ContextUserIDKey)
}
