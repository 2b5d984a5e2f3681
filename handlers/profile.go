package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"pharmacy-api/config"
	"pharmacy-api/middleware"
	"pharmacy-api/models"

	"github.com/gin-gonic/gin"
	"github.com/nyaruka/phonenumbers"
	"gorm.io/gorm"
)

// Sentinel errors so callers can tell a missing account from a missing
// profile without inspecting message text.
var (
	errUserNotFound    = errors.New("user not found")
	errProfileNotFound = errors.New("profile not found")
)

type ProfileRequest struct {
	Name        string `json:"name" binding:"required"`
	City        string `json:"city" binding:"required"`
	Province    string `json:"province" binding:"required"`
	PhoneNumber string `json:"phone_number" binding:"required"`
}

// userByEmail resolves the account for a normalized email claim.
func userByEmail(email string) (*models.User, error) {
	var user models.User
	if err := config.DB.Where("email = ?", normalizeEmail(email)).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errUserNotFound
		}
		return nil, err
	}
	return &user, nil
}

// profileByEmail resolves the profile owned by the account behind an email
// claim, distinguishing "no such user" from "user has no profile yet".
func profileByEmail(email string) (*models.Profile, error) {
	user, err := userByEmail(email)
	if err != nil {
		return nil, err
	}
	var profile models.Profile
	if err := config.DB.Where("user_id = ?", user.ID).First(&profile).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errProfileNotFound
		}
		return nil, err
	}
	profile.User = *user
	return &profile, nil
}

// respondProfileError maps the profile lookup sentinels onto HTTP statuses
func respondProfileError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, errUserNotFound):
		c.JSON(http.StatusNotFound, gin.H{"detail": "User not found"})
	case errors.Is(err, errProfileNotFound):
		c.JSON(http.StatusNotFound, gin.H{"detail": "Profile not found"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"detail": "Failed to load profile"})
	}
}

func validPhone(number string) bool {
	num, err := phonenumbers.Parse(number, "")
	if err != nil {
		return false
	}
	return phonenumbers.IsValidNumber(num)
}

func profileOut(p *models.Profile) gin.H {
	return gin.H{
		"name":         p.Name,
		"email":        p.User.Email,
		"city":         p.City,
		"province":     p.Province,
		"phone_number": p.Phone,
		"img":          p.Image,
	}
}

// GetProfile returns the caller's profile joined with the account email
func GetProfile(c *gin.Context) {
	profile, err := profileByEmail(middleware.GetEmail(c))
	if err != nil {
		respondProfileError(c, err)
		return
	}
	c.JSON(http.StatusOK, profileOut(profile))
}

// CreateProfile creates the caller's profile and its cart in one transaction.
// Fails if a profile already exists for the account.
func CreateProfile(c *gin.Context) {
	user, err := userByEmail(middleware.GetEmail(c))
	if err != nil {
		respondProfileError(c, err)
		return
	}

	var existing models.Profile
	if result := config.DB.Where("user_id = ?", user.ID).First(&existing); result.Error == nil {
		c.JSON(http.StatusNotFound, gin.H{"detail": "Profile already exists"})
		return
	}

	var req ProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": err.Error()})
		return
	}
	if !validPhone(req.PhoneNumber) {
		c.JSON(http.StatusBadRequest, gin.H{"detail": "phone number is not valid"})
		return
	}

	profile := models.Profile{
		UserID:   user.ID,
		Name:     req.Name,
		City:     req.City,
		Province: req.Province,
		Phone:    req.PhoneNumber,
	}
	err = config.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&profile).Error; err != nil {
			return err
		}
		cart := models.Cart{
			ProfileID: profile.ID,
			Status:    models.StatusNew,
			StartDate: time.Now(),
		}
		return tx.Create(&cart).Error
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"detail": "Failed to create profile"})
		return
	}

	profile.User = *user
	c.JSON(http.StatusOK, profileOut(&profile))
}

// EditProfile replaces the profile's name, address and phone
func EditProfile(c *gin.Context) {
	profile, err := profileByEmail(middleware.GetEmail(c))
	if err != nil {
		respondProfileError(c, err)
		return
	}

	var req ProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": err.Error()})
		return
	}
	if !validPhone(req.PhoneNumber) {
		c.JSON(http.StatusBadRequest, gin.H{"detail": "phone number is not valid"})
		return
	}

	profile.Name = req.Name
	profile.City = req.City
	profile.Province = req.Province
	profile.Phone = req.PhoneNumber
	if err := config.DB.Save(profile).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"detail": "Failed to update profile"})
		return
	}

	c.JSON(http.StatusOK, profileOut(profile))
}

// UploadProfileImage stores a new profile image under uploadDir and deletes
// the previously stored file, if any.
func UploadProfileImage(uploadDir string) gin.HandlerFunc {
	return func(c *gin.Context) {
		profile, err := profileByEmail(middleware.GetEmail(c))
		if err != nil {
			respondProfileError(c, err)
			return
		}

		fileHeader, err := c.FormFile("img")
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"detail": "No image uploaded"})
			return
		}

		if err := os.MkdirAll(uploadDir, os.ModePerm); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"detail": "Failed to create upload folder"})
			return
		}

		ext := filepath.Ext(fileHeader.Filename)
		base := strings.ReplaceAll(strings.TrimSuffix(fileHeader.Filename, ext), " ", "_")
		fileName := fmt.Sprintf("%d_%s%s", time.Now().Unix(), base, ext)
		savePath := filepath.Join(uploadDir, fileName)

		if err := c.SaveUploadedFile(fileHeader, savePath); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"detail": "Failed to save file"})
			return
		}

		// Drop the old image before pointing the profile at the new one
		if profile.Image != "" {
			_ = os.Remove(filepath.Join(uploadDir, filepath.Base(profile.Image)))
		}

		profile.Image = fileName
		if err := config.DB.Save(profile).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"detail": "Failed to update profile"})
			return
		}

		c.JSON(http.StatusOK, profileOut(profile))
	}
}
