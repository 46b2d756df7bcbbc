package auth

import (
	"crypto/subtle"
	"net/http"
	"strings"
	"time"

	"paper-tracker/config"
	"paper-tracker/internal/app/http/middleware"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

const sessionTTL = 30 * 24 * time.Hour

func verifyPassword(password string) bool {
	if config.APP_PASSWORD == "" {
		// No password configured - open access for local dev.
		return true
	}
	if strings.HasPrefix(config.APP_PASSWORD, "$2") {
		return bcrypt.CompareHashAndPassword([]byte(config.APP_PASSWORD), []byte(password)) == nil
	}
	return subtle.ConstantTimeCompare([]byte(password), []byte(config.APP_PASSWORD)) == 1
}

func Login(c *gin.Context) {
	var input struct {
		Password string `json:"password"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if !verifyPassword(input.Password) {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid password"})
		return
	}

	now := time.Now()
	claims := jwt.MapClaims{
		"sub": "session",
		"iat": now.Unix(),
		"exp": now.Add(sessionTTL).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(config.SESSION_SECRET))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create session"})
		return
	}

	c.SetCookie(middleware.SessionCookie, signed, int(sessionTTL.Seconds()), "/", "", false, true)
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func Logout(c *gin.Context) {
	c.SetCookie(middleware.SessionCookie, "", -1, "/", "", false, true)
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
