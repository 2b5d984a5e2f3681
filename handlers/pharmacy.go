package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"pharmacy-api/config"
	"pharmacy-api/middleware"
	"pharmacy-api/models"
	"pharmacy-api/ratings"

	"github.com/gin-gonic/gin"
)

// pharmacyPageSize is the fixed page size for the paginated listing
const pharmacyPageSize = 6

type ReviewRequest struct {
	PharmacyID  uint    `json:"pharmacy_id" binding:"required"`
	Rating      float64 `json:"rating" binding:"min=0,max=5"`
	Description string  `json:"description"`
}

// pharmacyRatings loads the raw ratings for one pharmacy
func pharmacyRatings(pharmacyID uint) []float64 {
	var rates []float64
	config.DB.Model(&models.Review{}).
		Where("pharmacy_id = ?", pharmacyID).
		Pluck("rating", &rates)
	return rates
}

func pharmacyShort(p *models.Pharmacy) gin.H {
	return gin.H{
		"id":          p.ID,
		"name":        p.Name,
		"description": p.Description,
		"img":         p.Image,
		"location":    p.Location,
		"avg_stars":   ratings.Average(pharmacyRatings(p.ID)),
	}
}

// GetAllPharmacies returns one fixed-size page, 1-based, ordered by id
func GetAllPharmacies(c *gin.Context) {
	page, err := strconv.Atoi(c.Param("page"))
	if err != nil || page <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"detail": "Invalid page number"})
		return
	}

	var pharmacies []models.Pharmacy
	config.DB.Order("id asc").
		Offset((page - 1) * pharmacyPageSize).
		Limit(pharmacyPageSize).
		Find(&pharmacies)

	out := make([]gin.H, 0, len(pharmacies))
	for i := range pharmacies {
		out = append(out, pharmacyShort(&pharmacies[i]))
	}
	c.JSON(http.StatusOK, gin.H{"count": len(out), "pharmacies": out})
}

// GetPharmacyByID returns the full pharmacy detail: drugs, opening hours,
// average rating and the percentage histogram (nil means no reviews yet).
func GetPharmacyByID(c *gin.Context) {
	id := c.Param("id")
	var pharmacy models.Pharmacy
	if err := config.DB.Preload("Drugs").Preload("OpeningHours").First(&pharmacy, id).Error; err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": "Pharmacy with id " + id + " Not Found"})
		return
	}

	rates := pharmacyRatings(pharmacy.ID)
	c.JSON(http.StatusOK, gin.H{
		"id":            pharmacy.ID,
		"name":          pharmacy.Name,
		"description":   pharmacy.Description,
		"img":           pharmacy.Image,
		"location":      pharmacy.Location,
		"shipping":      pharmacy.Shipping,
		"drugs":         pharmacy.Drugs,
		"opening_hours": pharmacy.OpeningHours,
		"avg_stars":     ratings.Average(rates),
		"pct_rates":     ratings.Histogram(rates),
	})
}

// GetPharmacyReviews lists a pharmacy's reviews with the reviewer attached
func GetPharmacyReviews(c *gin.Context) {
	id := c.Param("id")
	var pharmacy models.Pharmacy
	if err := config.DB.First(&pharmacy, id).Error; err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": "Pharmacy with id " + id + " Not Found"})
		return
	}

	var reviews []models.Review
	config.DB.Preload("Profile").Where("pharmacy_id = ?", pharmacy.ID).Find(&reviews)
	c.JSON(http.StatusOK, gin.H{"count": len(reviews), "reviews": reviews})
}

// SearchPharmacy matches case-insensitively on pharmacy name or drug name
func SearchPharmacy(c *gin.Context) {
	like := "%" + strings.ToLower(c.Param("name")) + "%"
	var pharmacies []models.Pharmacy
	config.DB.Model(&models.Pharmacy{}).
		Distinct("pharmacies.*").
		Joins("LEFT JOIN drugs ON drugs.pharmacy_id = pharmacies.id").
		Where("LOWER(pharmacies.name) LIKE ? OR LOWER(drugs.name) LIKE ?", like, like).
		Find(&pharmacies)

	out := make([]gin.H, 0, len(pharmacies))
	for i := range pharmacies {
		out = append(out, pharmacyShort(&pharmacies[i]))
	}
	c.JSON(http.StatusOK, gin.H{"count": len(out), "pharmacies": out})
}

// SearchByLocation matches case-insensitively on the location field
func SearchByLocation(c *gin.Context) {
	like := "%" + strings.ToLower(c.Param("location")) + "%"
	var pharmacies []models.Pharmacy
	config.DB.Where("LOWER(location) LIKE ?", like).Find(&pharmacies)

	out := make([]gin.H, 0, len(pharmacies))
	for i := range pharmacies {
		out = append(out, pharmacyShort(&pharmacies[i]))
	}
	c.JSON(http.StatusOK, gin.H{"count": len(out), "pharmacies": out})
}

// FilterByRates returns name matches ordered by average rating, best first
func FilterByRates(c *gin.Context) {
	like := "%" + strings.ToLower(c.Param("name")) + "%"
	var pharmacies []models.Pharmacy
	config.DB.Model(&models.Pharmacy{}).
		Select("pharmacies.*, COALESCE(AVG(reviews.rating), 0) AS avg_rating").
		Joins("LEFT JOIN reviews ON reviews.pharmacy_id = pharmacies.id").
		Where("LOWER(pharmacies.name) LIKE ?", like).
		Group("pharmacies.id").
		Order("avg_rating DESC").
		Find(&pharmacies)

	out := make([]gin.H, 0, len(pharmacies))
	for i := range pharmacies {
		out = append(out, pharmacyShort(&pharmacies[i]))
	}
	c.JSON(http.StatusOK, gin.H{"count": len(out), "pharmacies": out})
}

// FilterByLocation intersects a name search with the caller's own
// city/province, so the results are pharmacies near the profile's address.
func FilterByLocation(c *gin.Context) {
	profile, err := profileByEmail(middleware.GetEmail(c))
	if err != nil {
		respondProfileError(c, err)
		return
	}

	like := "%" + strings.ToLower(c.Param("name")) + "%"
	var pharmacies []models.Pharmacy
	config.DB.Where("LOWER(name) LIKE ?", like).
		Where("LOWER(location) LIKE ? OR LOWER(location) LIKE ?",
			"%"+strings.ToLower(profile.City)+"%",
			"%"+strings.ToLower(profile.Province)+"%").
		Find(&pharmacies)

	out := make([]gin.H, 0, len(pharmacies))
	for i := range pharmacies {
		out = append(out, pharmacyShort(&pharmacies[i]))
	}
	c.JSON(http.StatusOK, gin.H{"count": len(out), "pharmacies": out})
}

// AddEditReview upserts the caller's review for a pharmacy: at most one
// review per (profile, pharmacy), later submissions overwrite it.
func AddEditReview(c *gin.Context) {
	profile, err := profileByEmail(middleware.GetEmail(c))
	if err != nil {
		respondProfileError(c, err)
		return
	}

	var req ReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": err.Error()})
		return
	}

	var pharmacy models.Pharmacy
	if err := config.DB.First(&pharmacy, req.PharmacyID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"detail": "Pharmacy Not Found"})
		return
	}

	var review models.Review
	result := config.DB.Where("profile_id = ? AND pharmacy_id = ?", profile.ID, pharmacy.ID).First(&review)
	if result.Error != nil {
		review = models.Review{ProfileID: profile.ID, PharmacyID: pharmacy.ID}
	}
	review.Rating = req.Rating
	review.Description = req.Description
	if err := config.DB.Save(&review).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"detail": "Failed to save review"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"review": review})
}

// DeleteReview removes the caller's review for a pharmacy
func DeleteReview(c *gin.Context) {
	profile, err := profileByEmail(middleware.GetEmail(c))
	if err != nil {
		respondProfileError(c, err)
		return
	}

	result := config.DB.Where("profile_id = ? AND pharmacy_id = ?", profile.ID, c.Param("pharmacy_id")).
		Delete(&models.Review{})
	if result.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"detail": "Failed to delete review"})
		return
	}
	if result.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"detail": "Review Not Found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"detail": "Review Deleted Successfully"})
}
