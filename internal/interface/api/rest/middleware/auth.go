package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"filestore-api/internal/application/ports"
	"filestore-api/internal/domain/account"
	"filestore-api/internal/domain/command"
)

const CtxAccount = "account"

// AuthMiddleware resolves the bearer token into an active account.
// Tokens are opaque uuids handed out when the account is provisioned.
func AuthMiddleware(bus ports.Bus) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.AbortWithStatusJSON(
				http.StatusUnauthorized,
				gin.H{"error": "missing Authorization header"},
			)
			return
		}

		tokenStr := strings.TrimPrefix(authHeader, "Bearer ")
		if tokenStr == authHeader {
			c.AbortWithStatusJSON(
				http.StatusUnauthorized,
				gin.H{"error": "invalid token format"},
			)
			return
		}

		token, err := uuid.Parse(tokenStr)
		if err != nil {
			c.AbortWithStatusJSON(
				http.StatusUnauthorized,
				gin.H{"error": "invalid token"},
			)
			return
		}

		res, err := bus.Handle(c.Request.Context(), command.GetAccountByAuthToken{AuthToken: token})
		if err != nil {
			c.AbortWithStatusJSON(
				http.StatusInternalServerError,
				gin.H{"error": "authorization failed"},
			)
			return
		}

		a, _ := res.(*account.Account)
		if a == nil {
			c.AbortWithStatusJSON(
				http.StatusUnauthorized,
				gin.H{"error": "invalid token"},
			)
			return
		}

		c.Set(CtxAccount, a)

		c.Next()
	}
}

// Account returns the account resolved by AuthMiddleware.
func Account(c *gin.Context) *account.Account {
	if v, ok := c.Get(CtxAccount); ok {
		if a, ok := v.(*account.Account); ok {
			return a
		}
	}
	return nil
}
