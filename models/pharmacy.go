package models

import "time"

// Weekday labels opening-hours rows, one row per (pharmacy, weekday).
type Weekday string

const (
	Sunday    Weekday = "SUNDAY"
	Monday    Weekday = "MONDAY"
	Tuesday   Weekday = "TUESDAY"
	Wednesday Weekday = "WEDNESDAY"
	Thursday  Weekday = "THURSDAY"
	Friday    Weekday = "FRIDAY"
	Saturday  Weekday = "SATURDAY"
)

// ValidWeekday reports whether w is one of the seven known labels.
func ValidWeekday(w Weekday) bool {
	switch w {
	case Sunday, Monday, Tuesday, Wednesday, Thursday, Friday, Saturday:
		return true
	}
	return false
}

type Pharmacy struct {
	ID           uint           `json:"id" gorm:"primaryKey"`
	Name         string         `json:"name" gorm:"not null"`
	Description  string         `json:"description"`
	Image        string         `json:"img"`
	Location     string         `json:"location"`
	Shipping     float64        `json:"shipping" gorm:"default:0"`
	Drugs        []Drug         `json:"drugs,omitempty" gorm:"foreignKey:PharmacyID"`
	Reviews      []Review       `json:"reviews,omitempty" gorm:"foreignKey:PharmacyID"`
	OpeningHours []OpeningHours `json:"opening_hours,omitempty" gorm:"foreignKey:PharmacyID"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
}

type Drug struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	PharmacyID  uint      `json:"pharmacy_id" gorm:"not null;index"`
	Name        string    `json:"name" gorm:"not null"`
	Description string    `json:"description"`
	Image       string    `json:"img"`
	Price       float64   `json:"price" gorm:"not null;check:price >= 0"`
	IsActive    bool      `json:"is_active" gorm:"default:true"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// Review holds at most one row per (profile, pharmacy) pair; add_edit_review
// overwrites the existing row instead of inserting a second one.
type Review struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	ProfileID   uint      `json:"profile_id" gorm:"not null;uniqueIndex:idx_review_profile_pharmacy"`
	Profile     Profile   `json:"user,omitempty" gorm:"foreignKey:ProfileID"`
	PharmacyID  uint      `json:"pharmacy_id" gorm:"not null;uniqueIndex:idx_review_profile_pharmacy"`
	Rating      float64   `json:"rating" gorm:"not null"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"start_date"`
	UpdatedAt   time.Time `json:"-"`
}

type OpeningHours struct {
	ID         uint    `json:"id" gorm:"primaryKey"`
	PharmacyID uint    `json:"pharmacy_id" gorm:"not null;uniqueIndex:idx_hours_pharmacy_weekday"`
	Weekday    Weekday `json:"weekday" gorm:"not null;uniqueIndex:idx_hours_pharmacy_weekday"`
	Hours      string  `json:"hours"`
}
