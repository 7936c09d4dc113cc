package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"coffeeshop/internal/auth"
)

// IssueToken signs the posted claims into a bearer token. The claim set is
// opaque beyond the required email; clients send whatever identity fields
// the frontend wants echoed back on verification.
func IssueToken(secret string, ttl time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "POST /jwt"
		defer handlePanic(c, route)

		var claims map[string]any
		if err := c.ShouldBindJSON(&claims); err != nil {
			respondWithError(c, http.StatusBadRequest, route, "invalid body")
			return
		}

		token, err := auth.Sign(claims, []byte(secret), ttl)
		if err != nil {
			respondWithError(c, http.StatusBadRequest, route, "email is required")
			return
		}

		c.JSON(http.StatusOK, gin.H{"token": token})
	}
}
