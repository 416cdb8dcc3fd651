package models

import "gorm.io/gorm"

// User represents a marketplace member. Every user can both list products
// and place purchase requests on other users' products.
type User struct {
	ID         string  `json:"id" gorm:"primaryKey;type:varchar(36)" validate:"omitempty,uuid"`
	Username   string  `json:"username" gorm:"uniqueIndex;type:varchar(100)" validate:"required,min=3,max=100"`
	Email      string  `json:"email" gorm:"uniqueIndex;type:varchar(255)" validate:"required,email"`
	Password   string  `gorm:"type:varchar(255)" validate:"required,min=6"` // No json tag for security
	Address    string  `json:"address" gorm:"type:varchar(255)" validate:"omitempty,max=255"`
	Latitude   float64 `json:"latitude" validate:"omitempty,latitude"`
	Longitude  float64 `json:"longitude" validate:"omitempty,longitude"`
	gorm.Model         // Embed gorm.Model for CreatedAt, UpdatedAt, DeletedAt
}
