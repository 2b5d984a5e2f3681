package handlers

import (
	"net/http"
	"regexp"
	"strings"

	"pharmacy-api/config"
	"pharmacy-api/middleware"
	"pharmacy-api/models"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
)

type SignupRequest struct {
	Email     string `json:"email" binding:"required,email"`
	Password1 string `json:"password1" binding:"required"`
	Password2 string `json:"password2" binding:"required"`
}

type SigninRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

var (
	hasLetter = regexp.MustCompile(`[A-Za-z]`)
	hasDigit  = regexp.MustCompile(`\d`)
)

// validatePassword enforces the signup password policy: at least 8
// characters, one letter and one digit. Returns "" when the password is fine.
func validatePassword(password string) string {
	if len(password) < 8 {
		return "Password is too short (8 characters minimum)"
	}
	if !hasLetter.MatchString(password) || !hasDigit.MatchString(password) {
		return "Password must be at least 8 characters long, and one letter, one number"
	}
	return ""
}

// normalizeEmail lowercases and strips whitespace so lookups are
// case-insensitive regardless of how the address was typed.
func normalizeEmail(email string) string {
	return strings.ReplaceAll(strings.ToLower(strings.TrimSpace(email)), " ", "")
}

// Signup creates a new account and returns a bearer token for it
func Signup(auth *middleware.Authenticator) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req SignupRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"detail": err.Error()})
			return
		}
		if msg := validatePassword(req.Password1); msg != "" {
			c.JSON(http.StatusBadRequest, gin.H{"detail": msg})
			return
		}
		if req.Password1 != req.Password2 {
			c.JSON(http.StatusBadRequest, gin.H{"detail": "passwords do not match"})
			return
		}

		email := normalizeEmail(req.Email)
		var existing models.User
		if result := config.DB.Where("email = ?", email).First(&existing); result.Error == nil {
			c.JSON(http.StatusBadRequest, gin.H{"detail": "Email is already in use"})
			return
		}

		hash, err := bcrypt.GenerateFromPassword([]byte(req.Password1), bcrypt.DefaultCost)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"detail": "Failed to hash password"})
			return
		}

		user := models.User{
			Email:        email,
			PasswordHash: string(hash),
		}
		if err := config.DB.Create(&user).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"detail": "Failed to create user"})
			return
		}

		token, err := auth.GenerateToken(&user)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"detail": "Failed to generate token"})
			return
		}

		c.JSON(http.StatusCreated, gin.H{
			"token": gin.H{"access": token},
			"user":  gin.H{"email": user.Email},
		})
	}
}

// Signin verifies credentials and returns a bearer token. Unknown email and
// wrong password are reported separately.
func Signin(auth *middleware.Authenticator) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req SigninRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"detail": err.Error()})
			return
		}

		email := normalizeEmail(req.Email)
		var user models.User
		if err := config.DB.Where("email = ?", email).First(&user).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"detail": "User is not registered Or Email is wrong"})
			return
		}

		if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"detail": "Wrong password"})
			return
		}

		token, err := auth.GenerateToken(&user)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"detail": "Failed to generate token"})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"token": gin.H{"access": token},
			"user":  gin.H{"email": user.Email},
		})
	}
}
