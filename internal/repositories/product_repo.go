package repositories

import (
	"pasar/internal/models"
)

// ProductFilter narrows a product listing query. Zero values mean "no
// constraint"; RadiusKM only applies when greater than zero.
type ProductFilter struct {
	Category    string
	Query       string  // case-insensitive title match
	Latitude    float64 // search origin, used with RadiusKM
	Longitude   float64
	RadiusKM    float64
	SellerID    string
	IncludeSold bool
}

// ProductRepository defines the interface for product data access.
type ProductRepository interface {
	GetAll(filter ProductFilter) ([]models.Product, error)
	GetByID(id string) (*models.Product, error)
	Create(product *models.Product) error
	Update(product *models.Product) error
	Delete(id string) error
}
