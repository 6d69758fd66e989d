package controller

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"tripify-backend/internal/repository"
	"tripify-backend/internal/service"
	"tripify-backend/utilities"
)

type AuthController struct {
	AuthService service.AuthService
}

func NewAuthController(authService service.AuthService) *AuthController {
	return &AuthController{AuthService: authService}
}

type signupRequest struct {
	FullName string `json:"fullName" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type loginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type refreshRequest struct {
	RefreshToken string `json:"refreshToken" binding:"required"`
}

// Signup handles POST /auth/signup
func (ac *AuthController) Signup(c *gin.Context) {
	var req signupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: fullName, email and password are required"})
		return
	}
	user, err := ac.AuthService.Signup(c.Request.Context(), req.FullName, req.Email, req.Password)
	switch {
	case errors.Is(err, service.ErrEmailTaken),
		errors.Is(err, service.ErrPasswordTooShort),
		errors.Is(err, service.ErrMissingFields):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	case err != nil:
		utilities.Error("signup failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create user"})
		return
	}
	c.JSON(http.StatusCreated, user)
}

// Login handles POST /auth/login
func (ac *AuthController) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input"})
		return
	}
	user, tokens, err := ac.AuthService.Login(c.Request.Context(), req.Email, req.Password)
	if errors.Is(err, service.ErrInvalidCredentials) {
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
		return
	}
	if err != nil {
		utilities.Error("login failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Login failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"user":         user,
		"accessToken":  tokens.AccessToken,
		"refreshToken": tokens.RefreshToken,
	})
}

// Refresh handles POST /auth/refresh
func (ac *AuthController) Refresh(c *gin.Context) {
	var req refreshRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input"})
		return
	}
	tokens, err := ac.AuthService.Refresh(c.Request.Context(), req.RefreshToken)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, tokens)
}

// GetUser handles GET /auth/users/:email
func (ac *AuthController) GetUser(c *gin.Context) {
	user, err := ac.AuthService.LookupUser(c.Request.Context(), c.Param("email"))
	if errors.Is(err, repository.ErrUserNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found", "exists": false})
		return
	}
	if err != nil {
		utilities.Error("user lookup failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "User lookup failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"id":       user.ID,
		"fullName": user.FullName,
		"email":    user.Email,
		"exists":   true,
	})
}
