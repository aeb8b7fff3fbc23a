package handler

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"subleasend/backend/internal/auth"
	"subleasend/backend/internal/config"
	"subleasend/backend/internal/models"
	"subleasend/backend/internal/storage"
)

type signUpRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
	Name     string `json:"name" binding:"required"`
}

type signInRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// SignUp creates a member account. Validation happens before any store
// write: institutional email suffix, password minimum, display name.
func (h *Handler) SignUp(c *gin.Context) {
	var req signUpRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Email, password and name are required"})
		return
	}

	if !strings.HasSuffix(req.Email, config.AllowedEmailDomain) {
		c.JSON(http.StatusForbidden, gin.H{"error": "Only Notre Dame email addresses are allowed"})
		return
	}
	if len(req.Password) < config.MinPasswordLength {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Password must be at least 6 characters long"})
		return
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		respondStoreError(c, "signup: hash password", err)
		return
	}

	user := models.User{
		Email:        req.Email,
		Name:         req.Name,
		PasswordHash: hash,
	}
	if err := h.Store.CreateUser(&user); err != nil {
		respondStoreError(c, "signup: create user", err)
		return
	}

	token, err := h.Tokens.Issue(user.ID)
	if err != nil {
		respondStoreError(c, "signup: issue token", err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"user": user, "token": token})
}

// SignIn authenticates a member and returns a fresh bearer credential.
func (h *Handler) SignIn(c *gin.Context) {
	var req signInRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Email and password are required"})
		return
	}

	if !strings.HasSuffix(req.Email, config.AllowedEmailDomain) {
		c.JSON(http.StatusForbidden, gin.H{"error": "Only Notre Dame email addresses are allowed"})
		return
	}

	user, err := h.Store.GetUserByEmail(req.Email)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
			return
		}
		respondStoreError(c, "signin: get user", err)
		return
	}

	if !auth.CheckPassword(user.PasswordHash, req.Password) {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
		return
	}

	token, err := h.Tokens.Issue(user.ID)
	if err != nil {
		respondStoreError(c, "signin: issue token", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"user": user, "token": token})
}
