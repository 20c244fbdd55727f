package models

import (
	"time"
)

// UnknownCategory is rendered when a menu item references a category
// that no longer exists (or never had one).
const UnknownCategory = "Unknown"

type MenuItem struct {
	ID           int64     `json:"id" db:"id"`
	Name         string    `json:"name" db:"name"`
	Description  string    `json:"description" db:"description"`
	Price        float64   `json:"price" db:"price"`
	CategoryID   *int64    `json:"category_id" db:"category_id"`
	CategoryName string    `json:"category" db:"category_name"` // resolved by join at read time
	IsAvailable  bool      `json:"is_available" db:"is_available"`
	ImageObject  *string   `json:"-" db:"image_object"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
}
