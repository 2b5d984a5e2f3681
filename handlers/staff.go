package handlers

import (
	"net/http"

	"pharmacy-api/config"
	"pharmacy-api/models"
	"pharmacy-api/statemachine"

	"github.com/gin-gonic/gin"
)

// ── Pharmacy management ─────────────────────────────────────────────────────

type PharmacyRequest struct {
	Name        string  `json:"name" binding:"required"`
	Description string  `json:"description"`
	Image       string  `json:"img"`
	Location    string  `json:"location"`
	Shipping    float64 `json:"shipping" binding:"min=0"`
}

// CreatePharmacy adds a pharmacy to the catalog — staff only
func CreatePharmacy(c *gin.Context) {
	var req PharmacyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": err.Error()})
		return
	}

	pharmacy := models.Pharmacy{
		Name:        req.Name,
		Description: req.Description,
		Image:       req.Image,
		Location:    req.Location,
		Shipping:    req.Shipping,
	}
	if err := config.DB.Create(&pharmacy).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"detail": "Failed to create pharmacy"})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "Pharmacy created", "pharmacy": pharmacy})
}

// UpdatePharmacy updates catalog details for a pharmacy
func UpdatePharmacy(c *gin.Context) {
	var pharmacy models.Pharmacy
	if err := config.DB.First(&pharmacy, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"detail": "Pharmacy Not Found"})
		return
	}

	var req map[string]interface{}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": err.Error()})
		return
	}
	// Only allow safe fields
	allowed := map[string]bool{"name": true, "description": true, "img": true, "location": true, "shipping": true}
	update := map[string]interface{}{}
	for k, v := range req {
		if allowed[k] {
			if k == "img" {
				update["image"] = v
				continue
			}
			update[k] = v
		}
	}
	config.DB.Model(&pharmacy).Updates(update)
	c.JSON(http.StatusOK, gin.H{"message": "Pharmacy updated", "pharmacy": pharmacy})
}

// ── Drug management ─────────────────────────────────────────────────────────

type DrugRequest struct {
	Name        string  `json:"name" binding:"required"`
	Description string  `json:"description"`
	Image       string  `json:"img"`
	Price       float64 `json:"price" binding:"min=0"`
}

// AddDrug adds a drug to a pharmacy's catalog
func AddDrug(c *gin.Context) {
	var pharmacy models.Pharmacy
	if err := config.DB.First(&pharmacy, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"detail": "Pharmacy Not Found"})
		return
	}

	var req DrugRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": err.Error()})
		return
	}

	drug := models.Drug{
		PharmacyID:  pharmacy.ID,
		Name:        req.Name,
		Description: req.Description,
		Image:       req.Image,
		Price:       req.Price,
		IsActive:    true,
	}
	if err := config.DB.Create(&drug).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"detail": "Failed to add drug"})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "Drug added", "drug": drug})
}

// UpdateDrug updates a drug's catalog entry, including the active flag
func UpdateDrug(c *gin.Context) {
	var drug models.Drug
	if err := config.DB.First(&drug, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"detail": "Drug Not Found"})
		return
	}

	var req map[string]interface{}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": err.Error()})
		return
	}
	allowed := map[string]bool{"name": true, "description": true, "img": true, "price": true, "is_active": true}
	update := map[string]interface{}{}
	for k, v := range req {
		if allowed[k] {
			if k == "img" {
				update["image"] = v
				continue
			}
			update[k] = v
		}
	}
	config.DB.Model(&drug).Updates(update)
	c.JSON(http.StatusOK, gin.H{"message": "Drug updated", "drug": drug})
}

// DeleteDrug removes a drug from the catalog
func DeleteDrug(c *gin.Context) {
	var drug models.Drug
	if err := config.DB.First(&drug, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"detail": "Drug Not Found"})
		return
	}
	config.DB.Delete(&drug)
	c.JSON(http.StatusOK, gin.H{"message": "Drug deleted"})
}

// ── Opening hours ───────────────────────────────────────────────────────────

type OpeningHoursRequest struct {
	Weekday models.Weekday `json:"weekday" binding:"required"`
	Hours   string         `json:"hours" binding:"required"`
}

// SetOpeningHours upserts the hours for one weekday: at most one row per
// (pharmacy, weekday).
func SetOpeningHours(c *gin.Context) {
	var pharmacy models.Pharmacy
	if err := config.DB.First(&pharmacy, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"detail": "Pharmacy Not Found"})
		return
	}

	var req OpeningHoursRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": err.Error()})
		return
	}
	if !models.ValidWeekday(req.Weekday) {
		c.JSON(http.StatusBadRequest, gin.H{"detail": "Invalid weekday"})
		return
	}

	var hours models.OpeningHours
	result := config.DB.Where("pharmacy_id = ? AND weekday = ?", pharmacy.ID, req.Weekday).First(&hours)
	if result.Error != nil {
		hours = models.OpeningHours{PharmacyID: pharmacy.ID, Weekday: req.Weekday}
	}
	hours.Hours = req.Hours
	if err := config.DB.Save(&hours).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"detail": "Failed to save opening hours"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"opening_hours": hours})
}

// ── Fulfilment and accounts ─────────────────────────────────────────────────

// ListCarts returns all carts, optionally filtered by status, with a summary
// count per status for the dashboard.
func ListCarts(c *gin.Context) {
	var carts []models.Cart
	query := config.DB.Preload("Items.Drug").Preload("Profile")
	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}
	query.Order("updated_at desc").Find(&carts)

	summary := map[string]int{}
	for _, cart := range carts {
		summary[string(cart.Status)]++
	}
	c.JSON(http.StatusOK, gin.H{"count": len(carts), "summary": summary, "carts": carts})
}

// UpdateCartStatus advances a cart through the fulfilment lifecycle. The
// transition is validated against the state machine with the staff actor.
func UpdateCartStatus(c *gin.Context) {
	var req struct {
		Status models.CartStatus `json:"status" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": err.Error()})
		return
	}

	var cart models.Cart
	if err := config.DB.First(&cart, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"detail": "Cart Not Found"})
		return
	}

	if err := statemachine.CanTransition(cart.Status, req.Status, "staff"); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"detail":        "Cannot update cart status",
			"reason":        err.Error(),
			"current_state": cart.Status,
		})
		return
	}

	prev := cart.Status
	config.DB.Model(&cart).Update("status", req.Status)
	c.JSON(http.StatusOK, gin.H{
		"message":         "Cart status updated",
		"cart_id":         cart.ID,
		"previous_status": prev,
		"new_status":      req.Status,
	})
}

// ListUsers returns all accounts — staff only
func ListUsers(c *gin.Context) {
	var users []models.User
	query := config.DB
	if staff := c.Query("staff"); staff == "true" {
		query = query.Where("is_staff = ?", true)
	}
	query.Find(&users)
	c.JSON(http.StatusOK, gin.H{"count": len(users), "users": users})
}
