package middleware

import (
	"net/http"

	"cling-reminder.backend/pkg/jwt"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	// SessionCookieName is the cookie carrying the session token
	SessionCookieName = "token"
	// UserIDKey is the context key for user ID
	UserIDKey = "userId"
	// UserEmailKey is the context key for user email
	UserEmailKey = "userEmail"
)

// resolveSession reads and validates the session cookie. A missing or
// invalid cookie is treated as anonymous, never as an error.
func resolveSession(c *gin.Context, jwtService *jwt.JWTService) (uuid.UUID, string, bool) {
	token, err := c.Cookie(SessionCookieName)
	if err != nil || token == "" {
		return uuid.Nil, "", false
	}

	claims, err := jwtService.ValidateToken(token)
	if err != nil {
		return uuid.Nil, "", false
	}

	userID, err := claims.UserID()
	if err != nil {
		return uuid.Nil, "", false
	}
	return userID, claims.Email, true
}

// SessionMiddleware requires a valid session cookie. Failures are
// rejected with a uniform 401 that does not say why.
func SessionMiddleware(jwtService *jwt.JWTService) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, email, ok := resolveSession(c, jwtService)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"message": "Unauthorized",
			})
			return
		}

		c.Set(UserIDKey, userID)
		c.Set(UserEmailKey, email)
		c.Next()
	}
}

// OptionalSession resolves the session when present but lets anonymous
// requests through
func OptionalSession(jwtService *jwt.JWTService) gin.HandlerFunc {
	return func(c *gin.Context) {
		if userID, email, ok := resolveSession(c, jwtService); ok {
			c.Set(UserIDKey, userID)
			c.Set(UserEmailKey, email)
		}
		c.Next()
	}
}

// GetUserID gets the user ID from context
func GetUserID(c *gin.Context) (uuid.UUID, bool) {
	userID, exists := c.Get(UserIDKey)
	if !exists {
		return uuid.Nil, false
	}
	return userID.(uuid.UUID), true
}

// GetUserEmail gets the user email from context
func GetUserEmail(c *gin.Context) (string, bool) {
	email, exists := c.Get(UserEmailKey)
	if !exists {
		return "", false
	}
	return email.(string), true
}
