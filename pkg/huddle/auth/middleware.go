package auth

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

const (
	// SessionCookie is the name of the HTTP-only cookie carrying the session token
	SessionCookie = "huddle_session"

	// ContextKeyUserID is the key for user ID in gin context
	ContextKeyUserID = "user_id"
	// ContextKeyUsername is the key for username in gin context
	ContextKeyUsername = "username"
	// ContextKeyDisplayName is the key for display name in gin context
	ContextKeyDisplayName = "display_name"
)

// Middleware validates the session cookie and sets the caller's identity
// in the gin context. Requests without a valid session are rejected before
// any handler logic runs.
func Middleware(tokens *TokenService) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString, err := c.Cookie(SessionCookie)
		if err != nil || tokenString == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"message": "Unauthorized"})
			c.Abort()
			return
		}

		claims, err := tokens.Validate(tokenString)
		if err != nil {
			if err == ErrExpiredToken {
				c.JSON(http.StatusUnauthorized, gin.H{"message": "Session has expired"})
			} else {
				c.JSON(http.StatusUnauthorized, gin.H{"message": "Unauthorized"})
			}
			c.Abort()
			return
		}

		c.Set(ContextKeyUserID, claims.UserID)
		c.Set(ContextKeyUsername, claims.Username)
		c.Set(ContextKeyDisplayName, claims.DisplayName)

		c.Next()
	}
}

// GetUserID returns the user ID from the gin context
func GetUserID(c *gin.Context) (uint, bool) {
	userID, exists := c.Get(ContextKeyUserID)
	if !exists {
		return 0, false
	}
	return userID.(uint), true
}

// GetUsername returns the username from the gin context
func GetUsername(c *gin.Context) (string, bool) {
	username, exists := c.Get(ContextKeyUsername)
	if !exists {
		return "", false
	}
	return username.(string), true
}

// GetDisplayName returns the display name from the gin context
func GetDisplayName(c *gin.Context) (string, bool) {
	name, exists := c.Get(ContextKeyDisplayName)
	if !exists {
		return "", false
	}
	return name.(string), true
}
