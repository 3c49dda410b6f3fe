// Session authentication middleware.
//
// This file resolves the Bearer session token into a request-scoped identity.
// Identity travels through the Gin context under the "userID" and "nickname"
// keys; downstream handlers and the access logger read those keys rather than
// re-parsing the token.
package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/carryonhq/carryon-backend/internal/auth"
)

const (
	// userIDKey is the Gin context key holding the authenticated user's ID.
	userIDKey = "userID"
	// nicknameKey is the Gin context key holding the user's public nickname.
	nicknameKey = "nickname"
)

// bearerToken extracts the token from an "Authorization: Bearer ..." header.
func bearerToken(c *gin.Context) string {
	h := c.GetHeader("Authorization")
	if h == "" {
		return ""
	}
	parts := strings.SplitN(h, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}

// OptionalAuth resolves identity when a valid token is present but lets
// anonymous requests through. Installed globally so that downstream
// middleware (logging, idempotency, rate limiting) sees the user identity;
// enforcement happens per route group via RequireAuth.
func OptionalAuth(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if tok := bearerToken(c); tok != "" {
			if claims, err := auth.ValidateToken(tok, secret); err == nil {
				c.Set(userIDKey, claims.UserID)
				c.Set(nicknameKey, claims.Nickname)
			}
		}
		c.Next()
	}
}

// RequireAuth aborts with 401 unless OptionalAuth resolved an identity
// earlier in the chain. Protected route groups mount this after the global
// middleware stack.
func RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		if UserID(c) == "" {
			unauthorized(c, "missing or invalid bearer token")
			return
		}
		c.Next()
	}
}

// UserID returns the authenticated user's ID from the Gin context, or "".
func UserID(c *gin.Context) string {
	v, _ := c.Get(userIDKey)
	return asString(v)
}

// Nickname returns the authenticated user's nickname from the Gin context, or "".
func Nickname(c *gin.Context) string {
	v, _ := c.Get(nicknameKey)
	return asString(v)
}

// unauthorized aborts with the standard error envelope. Kept local to avoid a
// dependency cycle with the handlers package.
func unauthorized(c *gin.Context, msg string) {
	rid, _ := c.Get(requestIDKey)
	c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
		"request_id": asString(rid),
		"code":       "unauthorized",
		"message":    msg,
	})
}
