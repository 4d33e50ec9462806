package handler

import (
	"errors"
	"log"
	"net/http"

	"trekking_club/internal/middleware"
	"trekking_club/internal/service"

	"github.com/gin-gonic/gin"
)

// AuthHandler handles authentication requests
type AuthHandler struct {
	service service.AuthService
}

// NewAuthHandler creates a new AuthHandler
func NewAuthHandler(s service.AuthService) *AuthHandler {
	return &AuthHandler{service: s}
}

func (h *AuthHandler) ShowLogin(c *gin.Context) {
	c.HTML(http.StatusOK, "login.html", gin.H{})
}

func (h *AuthHandler) Login(c *gin.Context) {
	username := c.PostForm("username")
	password := c.PostForm("password")

	_, token, err := h.service.Login(c.Request.Context(), username, password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			c.HTML(http.StatusUnauthorized, "login.html", gin.H{"error": "Invalid username or password"})
			return
		}
		log.Printf("Error during login: %v", err)
		c.HTML(http.StatusInternalServerError, "login.html", gin.H{"error": "Failed to login"})
		return
	}

	// Session cookie; MaxAge 0 makes it last for the browser session, the
	// token itself carries the expiry.
	c.SetCookie(middleware.SessionCookieName, token, 0, "/", "", false, true)
	c.Redirect(http.StatusFound, "/dashboard")
}

func (h *AuthHandler) ShowSignup(c *gin.Context) {
	c.HTML(http.StatusOK, "signup.html", gin.H{})
}

func (h *AuthHandler) Signup(c *gin.Context) {
	username := c.PostForm("username")
	email := c.PostForm("email")
	password := c.PostForm("password")
	confirm := c.PostForm("confirmPassword")
	number := c.PostForm("number")

	_, err := h.service.Signup(c.Request.Context(), username, email, password, confirm, number)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrPasswordMismatch):
			c.HTML(http.StatusBadRequest, "signup.html", gin.H{"error": "Passwords do not match"})
		case errors.Is(err, service.ErrUserExists):
			c.HTML(http.StatusConflict, "signup.html", gin.H{"error": "User already exists"})
		default:
			log.Printf("Error during signup: %v", err)
			c.HTML(http.StatusInternalServerError, "signup.html", gin.H{"error": "Failed to sign up"})
		}
		return
	}

	c.Redirect(http.StatusFound, "/auth/login")
}

// Logout clears the session cookie. Idempotent.
func (h *AuthHandler) Logout(c *gin.Context) {
	c.SetCookie(middleware.SessionCookieName, "", -1, "/", "", false, true)
	c.Redirect(http.StatusFound, "/")
}

// RegisterAuthRoutes registers auth routes
func (h *AuthHandler) RegisterAuthRoutes(r *gin.Engine) {
	authGroup := r.Group("/auth")
	{
		authGroup.GET("/login", h.ShowLogin)
		authGroup.POST("/login", h.Login)
		authGroup.GET("/signup", h.ShowSignup)
		authGroup.POST("/signup", h.Signup)
	}
	r.GET("/logout", h.Logout)
}
