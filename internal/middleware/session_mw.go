package middleware

import (
	"errors"
	"net/http"
	"strings"

	"trekking_club/internal/utils"

	"github.com/gin-gonic/gin"
)

const (
	// AuthUserKey is the context key holding the authenticated user id
	AuthUserKey = "authUser"
	// SessionCookieName is the cookie carrying the session token
	SessionCookieName = "session"
)

var errNoSession = errors.New("no session token")

// resolveSession extracts the session token from the cookie or the
// Authorization header and validates it.
func resolveSession(c *gin.Context, jwtUtil *utils.JWTUtil) (int, error) {
	tokenString, err := c.Cookie(SessionCookieName)
	if err != nil || tokenString == "" {
		authHeader := c.GetHeader("Authorization")
		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
			return 0, errNoSession
		}
		tokenString = parts[1]
	}

	claims, err := jwtUtil.ValidateToken(tokenString)
	if err != nil {
		return 0, err
	}
	return claims.UserID, nil
}

// SessionRequired gates API routes: a missing or invalid session token yields
// a 401 JSON response.
func SessionRequired(jwtUtil *utils.JWTUtil) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, err := resolveSession(c, jwtUtil)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"status": "error", "message": "Not logged in"})
			return
		}
		c.Set(AuthUserKey, userID)
		c.Next()
	}
}

// PageSessionRequired gates HTML pages: a missing or invalid session token
// redirects to the login page.
func PageSessionRequired(jwtUtil *utils.JWTUtil) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, err := resolveSession(c, jwtUtil)
		if err != nil {
			c.Redirect(http.StatusFound, "/auth/login")
			c.Abort()
			return
		}
		c.Set(AuthUserKey, userID)
		c.Next()
	}
}
