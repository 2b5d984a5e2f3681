package models

import "time"

// CartStatus represents the lifecycle of a cart after checkout
type CartStatus string

const (
	StatusNew        CartStatus = "NEW"
	StatusProcessing CartStatus = "PROCESSING"
	StatusShipped    CartStatus = "SHIPPED"
	StatusCompleted  CartStatus = "COMPLETED"
)

// Cart is created together with its Profile and lives for the life of the
// account; checkout empties it and moves the status forward.
type Cart struct {
	ID          uint       `json:"id" gorm:"primaryKey"`
	ProfileID   uint       `json:"profile_id" gorm:"uniqueIndex;not null"`
	Profile     Profile    `json:"user,omitempty" gorm:"foreignKey:ProfileID"`
	Status      CartStatus `json:"status" gorm:"not null;default:'NEW'"`
	Ordered     bool       `json:"ordered" gorm:"default:false"`
	StartDate   time.Time  `json:"start_date"`
	OrderedDate *time.Time `json:"ordered_date"`
	Items       []CartItem `json:"items,omitempty" gorm:"foreignKey:CartID"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// CartItem is one (drug, quantity) line. Quantity stays positive; the row is
// deleted as soon as a decrement takes it to zero.
type CartItem struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	CartID    uint      `json:"cart_id" gorm:"not null;index"`
	DrugID    uint      `json:"drug_id" gorm:"not null"`
	Drug      Drug      `json:"drug,omitempty" gorm:"foreignKey:DrugID"`
	Quantity  int       `json:"amount" gorm:"not null"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
