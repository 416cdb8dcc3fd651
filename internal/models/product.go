package models

import "gorm.io/gorm"

// Product condition values.
const (
	ConditionNew     = "new"
	ConditionLikeNew = "likenew"
	ConditionUsed    = "used"
)

// Product represents a single listing owned by one seller. A listing is a
// unique second-hand item, not a stocked SKU: once an order on it is
// accepted, IsBought flips to true and the product is off the market.
type Product struct {
	ID          string  `json:"id" gorm:"primaryKey;type:varchar(36)" validate:"omitempty,uuid"`
	SellerID    string  `json:"seller_id" gorm:"index;type:varchar(36)"`
	Title       string  `json:"title" gorm:"type:varchar(100)" validate:"required,min=3,max=100"`
	Description string  `json:"description" gorm:"type:text" validate:"omitempty,max=500"`
	Price       float64 `json:"price" validate:"required,gt=0"`
	Address     string  `json:"address" gorm:"type:varchar(255)" validate:"omitempty,max=255"`
	Latitude    float64 `json:"latitude" validate:"omitempty,latitude"`
	Longitude   float64 `json:"longitude" validate:"omitempty,longitude"`
	ImageURL    string  `json:"image_url" gorm:"type:varchar(512)" validate:"omitempty,url"`
	Condition   string  `json:"condition" gorm:"type:varchar(20)" validate:"required,oneof=new likenew used"`
	Category    string  `json:"category" gorm:"index;type:varchar(50)" validate:"required,max=50"`
	Delivery    bool    `json:"delivery"`
	IsBought    bool    `json:"is_bought" gorm:"default:false"`
	gorm.Model          // Embed gorm.Model for CreatedAt, UpdatedAt, DeletedAt
}
