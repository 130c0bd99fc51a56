package repositories

import (
	"storefront/internal/models"
)

// ProductRepository defines the interface for product data access.
// FindByID returns (nil, nil) when no row matches: a missing product is an
// ordinary outcome for readers, not an error.
type ProductRepository interface {
	FindAll() ([]models.Product, error)
	FindByID(id string) (*models.Product, error)
	Create(product *models.Product) error
	MergeAndSave(existing *models.Product, patch models.ProductPatch) error
	Delete(product *models.Product) error
}
