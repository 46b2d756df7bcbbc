package middleware

import (
	"fmt"
	"net/http"

	"paper-tracker/config"
	"paper-tracker/database"
	"paper-tracker/internal/domain/users"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

// SessionCookie is the name of the signed session cookie.
const SessionCookie = "paper_tracker_session"

// SessionAuth validates the signed session cookie and resolves the tenant
// user, exposing its id as "user_id" in the gin context. With no
// APP_PASSWORD configured the gate is open (local dev).
func SessionAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		if config.APP_PASSWORD != "" {
			token, err := c.Cookie(SessionCookie)
			if err != nil || !ValidateSessionToken(token) {
				c.JSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
				c.Abort()
				return
			}
		}

		// Password auth is a shared gate, so every session maps to the
		// single default user.
		user, err := users.EnsureDefault(database.DB)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to resolve user"})
			c.Abort()
			return
		}

		c.Set("user_id", user.ID)
		c.Next()
	}
}

// ValidateSessionToken checks the cookie's HMAC-signed token.
func ValidateSessionToken(tokenString string) bool {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(config.SESSION_SECRET), nil
	})
	return err == nil && token.Valid
}
