package handlers

import (
	"errors"
	"net/http"
	"time"

	"pharmacy-api/config"
	"pharmacy-api/middleware"
	"pharmacy-api/models"
	"pharmacy-api/statemachine"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// cartByEmail resolves the caller's cart through their profile
func cartByEmail(email string) (*models.Cart, error) {
	profile, err := profileByEmail(email)
	if err != nil {
		return nil, err
	}
	var cart models.Cart
	if err := config.DB.Where("profile_id = ?", profile.ID).First(&cart).Error; err != nil {
		return nil, err
	}
	cart.Profile = *profile
	return &cart, nil
}

// cartView shapes the cart with per-line totals, the cart total and the
// shipping fee. Shipping comes from the first item's pharmacy and defaults
// to 0 for an empty cart.
func cartView(cart *models.Cart) gin.H {
	var items []models.CartItem
	config.DB.Preload("Drug").Where("cart_id = ?", cart.ID).Order("id asc").Find(&items)

	var total, shipping float64
	views := make([]gin.H, 0, len(items))
	for _, item := range items {
		lineTotal := item.Drug.Price * float64(item.Quantity)
		total += lineTotal
		views = append(views, gin.H{
			"id":     item.ID,
			"drug":   item.Drug,
			"amount": item.Quantity,
			"total":  lineTotal,
		})
	}
	if len(items) > 0 {
		var pharmacy models.Pharmacy
		if err := config.DB.First(&pharmacy, items[0].Drug.PharmacyID).Error; err == nil {
			shipping = pharmacy.Shipping
		}
	}

	return gin.H{
		"id":           cart.ID,
		"status":       cart.Status,
		"ordered":      cart.Ordered,
		"start_date":   cart.StartDate,
		"ordered_date": cart.OrderedDate,
		"items":        views,
		"total":        total,
		"shipping":     shipping,
	}
}

// GetCart returns the caller's cart with computed totals
func GetCart(c *gin.Context) {
	cart, err := cartByEmail(middleware.GetEmail(c))
	if err != nil {
		respondProfileError(c, err)
		return
	}
	c.JSON(http.StatusOK, cartView(cart))
}

// AddIncrementToCart adds a drug to the cart, or bumps its quantity by one.
// The increment is an SQL expression so concurrent adds do not lose updates.
func AddIncrementToCart(c *gin.Context) {
	cart, err := cartByEmail(middleware.GetEmail(c))
	if err != nil {
		respondProfileError(c, err)
		return
	}

	var drug models.Drug
	if err := config.DB.Where("is_active = ?", true).First(&drug, c.Param("drug_id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"detail": "Drug Not Found"})
		return
	}

	var item models.CartItem
	err = config.DB.Where("cart_id = ? AND drug_id = ?", cart.ID, drug.ID).First(&item).Error
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusInternalServerError, gin.H{"detail": "Failed to fetch cart item"})
			return
		}
		item = models.CartItem{CartID: cart.ID, DrugID: drug.ID, Quantity: 1}
		if err := config.DB.Create(&item).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"detail": "Failed to add item to cart"})
			return
		}
	} else {
		if err := config.DB.Model(&item).Update("quantity", gorm.Expr("quantity + 1")).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"detail": "Failed to update cart item"})
			return
		}
		config.DB.First(&item, item.ID)
	}

	item.Drug = drug
	c.JSON(http.StatusOK, gin.H{
		"id":     item.ID,
		"drug":   item.Drug,
		"amount": item.Quantity,
		"total":  drug.Price * float64(item.Quantity),
	})
}

// DecreaseFromCart lowers the item's quantity by one; at zero the row is
// deleted and the response says so instead of reporting a zero quantity.
func DecreaseFromCart(c *gin.Context) {
	cart, err := cartByEmail(middleware.GetEmail(c))
	if err != nil {
		respondProfileError(c, err)
		return
	}

	var item models.CartItem
	deleted := false
	err = config.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Preload("Drug").
			Where("cart_id = ? AND drug_id = ?", cart.ID, c.Param("drug_id")).
			First(&item).Error; err != nil {
			return err
		}
		if err := tx.Model(&item).Update("quantity", gorm.Expr("quantity - 1")).Error; err != nil {
			return err
		}
		if err := tx.First(&item, item.ID).Error; err != nil {
			return err
		}
		if item.Quantity <= 0 {
			deleted = true
			return tx.Delete(&models.CartItem{}, item.ID).Error
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"detail": "Item Not Found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"detail": "Failed to update cart item"})
		return
	}

	if deleted {
		c.JSON(http.StatusOK, gin.H{"detail": "Item Deleted"})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"id":     item.ID,
		"drug":   item.Drug,
		"amount": item.Quantity,
		"total":  item.Drug.Price * float64(item.Quantity),
	})
}

// RemoveFromCart deletes the line item outright, whatever its quantity
func RemoveFromCart(c *gin.Context) {
	cart, err := cartByEmail(middleware.GetEmail(c))
	if err != nil {
		respondProfileError(c, err)
		return
	}

	result := config.DB.Where("cart_id = ? AND drug_id = ?", cart.ID, c.Param("drug_id")).
		Delete(&models.CartItem{})
	if result.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"detail": "Failed to delete item"})
		return
	}
	if result.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"detail": "Item Not Found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"detail": "Item Deleted"})
}

// Checkout snapshots the cart, empties it, and moves the cart status from
// NEW to PROCESSING through the state machine.
func Checkout(c *gin.Context) {
	cart, err := cartByEmail(middleware.GetEmail(c))
	if err != nil {
		respondProfileError(c, err)
		return
	}

	var count int64
	config.DB.Model(&models.CartItem{}).Where("cart_id = ?", cart.ID).Count(&count)
	if count == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"detail": "Cart is empty"})
		return
	}

	if err := statemachine.CanTransition(cart.Status, models.StatusProcessing, "customer"); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": err.Error()})
		return
	}

	// Snapshot before the line items disappear
	snapshot := cartView(cart)

	now := time.Now()
	err = config.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("cart_id = ?", cart.ID).Delete(&models.CartItem{}).Error; err != nil {
			return err
		}
		return tx.Model(cart).Updates(map[string]interface{}{
			"status":       models.StatusProcessing,
			"ordered":      true,
			"ordered_date": now,
		}).Error
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"detail": "Failed to checkout"})
		return
	}

	snapshot["status"] = models.StatusProcessing
	snapshot["ordered"] = true
	snapshot["ordered_date"] = now
	c.JSON(http.StatusOK, gin.H{"message": "Checkout successful", "cart": snapshot})
}
