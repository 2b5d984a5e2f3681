package models

import (
	"time"
)

// User is the authenticatable account. Emails are stored lowercase and
// compared case-insensitively by normalizing before every lookup.
type User struct {
	ID           uint      `json:"id" gorm:"primaryKey"`
	Email        string    `json:"email" gorm:"uniqueIndex;not null"`
	PasswordHash string    `json:"-" gorm:"not null"`
	IsStaff      bool      `json:"is_staff" gorm:"default:false"`
	IsSuperuser  bool      `json:"is_superuser" gorm:"default:false"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// Profile is the user-facing identity record, exactly one per User.
// Its Cart is created in the same transaction.
type Profile struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	UserID    uint      `json:"user_id" gorm:"uniqueIndex;not null"`
	User      User      `json:"user,omitempty" gorm:"foreignKey:UserID"`
	Name      string    `json:"name" gorm:"not null"`
	City      string    `json:"city"`
	Province  string    `json:"province"`
	Phone     string    `json:"phone_number"`
	Image     string    `json:"img"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
