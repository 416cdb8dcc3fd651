package services

import (
	"fmt"

	"pasar/internal/models"
	"pasar/internal/repositories"
)

// ProductService handles business logic related to product listings.
type ProductService struct {
	repo repositories.ProductRepository
}

// NewProductService creates a new ProductService.
func NewProductService(repo repositories.ProductRepository) *ProductService {
	return &ProductService{
		repo: repo,
	}
}

// GetAllProducts retrieves products matching the filter.
func (s *ProductService) GetAllProducts(filter repositories.ProductFilter) ([]models.Product, error) {
	return s.repo.GetAll(filter)
}

// GetProductByID retrieves a single product by its ID.
func (s *ProductService) GetProductByID(id string) (*models.Product, error) {
	product, err := s.repo.GetByID(id)
	if err != nil {
		return nil, fmt.Errorf("product with ID %s: %w", id, ErrNotFound)
	}
	return product, nil
}

// GetSellerProducts retrieves a seller's own listings, sold ones included.
func (s *ProductService) GetSellerProducts(sellerID string) ([]models.Product, error) {
	return s.repo.GetAll(repositories.ProductFilter{SellerID: sellerID, IncludeSold: true})
}

// CreateProduct creates a new listing owned by sellerID.
func (s *ProductService) CreateProduct(sellerID string, product *models.Product) error {
	product.SellerID = sellerID
	product.IsBought = false
	return s.repo.Create(product)
}

// UpdateProduct updates a listing. Only the owner may update it, and sold
// listings are immutable.
func (s *ProductService) UpdateProduct(actorID string, product *models.Product) error {
	existing, err := s.repo.GetByID(product.ID)
	if err != nil {
		return fmt.Errorf("product with ID %s: %w", product.ID, ErrNotFound)
	}
	if existing.SellerID != actorID {
		return fmt.Errorf("only the owner can update this product: %w", ErrForbidden)
	}
	if existing.IsBought {
		return fmt.Errorf("sold products cannot be updated: %w", ErrConflict)
	}

	// Ownership and sold flag are never client-writable.
	product.SellerID = existing.SellerID
	product.IsBought = existing.IsBought
	return s.repo.Update(product)
}

// DeleteProduct deletes a listing. Only the owner may delete it.
func (s *ProductService) DeleteProduct(actorID, id string) error {
	existing, err := s.repo.GetByID(id)
	if err != nil {
		return fmt.Errorf("product with ID %s: %w", id, ErrNotFound)
	}
	if existing.SellerID != actorID {
		return fmt.Errorf("only the owner can delete this product: %w", ErrForbidden)
	}
	return s.repo.Delete(id)
}
