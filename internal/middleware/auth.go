package middleware

import (
	"context"
	"log"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"coffeeshop/internal/auth"
	"coffeeshop/internal/models"
)

// Context keys set by RequireToken.
const (
	ClaimsKey = "claims"
	EmailKey  = "email"
)

// RoleSource resolves the role held by the user registered under an email.
type RoleSource interface {
	RoleFor(ctx context.Context, email string) (string, error)
}

// RequireToken rejects requests without a valid bearer token and stores the
// decoded claims and claimed email in the request context.
func RequireToken(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		raw := strings.TrimSpace(c.GetHeader("Authorization"))
		if raw == "" {
			log.Println("[AUTH] [ERROR] missing authorization header")
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "unauthorized access"})
			return
		}

		parts := strings.Split(raw, " ")
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			log.Println("[AUTH] [ERROR] invalid authorization header format")
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "unauthorized access"})
			return
		}

		claims, err := auth.Verify(parts[1], []byte(secret))
		if err != nil {
			log.Println("[AUTH] [ERROR] token verification failed:", err)
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "unauthorized access"})
			return
		}

		c.Set(ClaimsKey, claims)
		c.Set(EmailKey, auth.Email(claims))
		c.Next()
	}
}

// RequireAdmin must run after RequireToken. It re-queries the user's role on
// every request; a missing user and a non-admin role both deny access.
func RequireAdmin(roles RoleSource) gin.HandlerFunc {
	return func(c *gin.Context) {
		email, _ := c.Get(EmailKey)
		claimed, _ := email.(string)
		if claimed == "" {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"message": "forbidden access"})
			return
		}

		role, err := roles.RoleFor(c.Request.Context(), claimed)
		if err != nil || role != models.RoleAdmin {
			if err != nil {
				log.Println("[AUTH] [ERROR] role lookup failed:", err)
			}
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"message": "forbidden access"})
			return
		}

		c.Next()
	}
}
