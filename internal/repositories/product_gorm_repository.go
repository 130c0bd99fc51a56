package repositories

import (
	"errors"
	"fmt"

	"storefront/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GORMProductRepository is a GORM implementation of ProductRepository.
type GORMProductRepository struct {
	db *gorm.DB
}

// NewGORMProductRepository creates a new instance of GORMProductRepository.
func NewGORMProductRepository(db *gorm.DB) *GORMProductRepository {
	return &GORMProductRepository{
		db: db,
	}
}

// FindAll retrieves every product, oldest first.
func (r *GORMProductRepository) FindAll() ([]models.Product, error) {
	var products []models.Product
	if err := r.db.Order("created_at asc").Find(&products).Error; err != nil {
		return nil, fmt.Errorf("failed to list products: %w", err)
	}
	return products, nil
}

// FindByID retrieves a single product by its ID. A missing row yields
// (nil, nil), never an error.
func (r *GORMProductRepository) FindByID(id string) (*models.Product, error) {
	var product models.Product
	if err := r.db.First(&product, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get product by ID %s: %w", id, err)
	}
	return &product, nil
}

// Create persists a new product. The ID is assigned here when blank;
// CreatedAt and UpdatedAt are stamped by GORM on insert.
func (r *GORMProductRepository) Create(product *models.Product) error {
	if product.ID == "" {
		product.ID = uuid.New().String()
	}
	if err := r.db.Create(product).Error; err != nil {
		return fmt.Errorf("failed to create product: %w", err)
	}
	return nil
}

// MergeAndSave overwrites exactly the non-nil fields of patch on existing
// and persists the result. Fields absent from the patch keep their prior
// value; UpdatedAt is refreshed by GORM on save.
func (r *GORMProductRepository) MergeAndSave(existing *models.Product, patch models.ProductPatch) error {
	applyPatch(existing, patch)

	res := r.db.Save(existing)
	if res.Error != nil {
		return fmt.Errorf("failed to update product %s: %w", existing.ID, res.Error)
	}
	return nil
}

// Delete removes the product row permanently. The model carries no
// DeletedAt column, so this is a hard delete.
func (r *GORMProductRepository) Delete(product *models.Product) error {
	if err := r.db.Delete(product).Error; err != nil {
		return fmt.Errorf("failed to delete product %s: %w", product.ID, err)
	}
	return nil
}

func applyPatch(p *models.Product, patch models.ProductPatch) {
	if patch.Name != nil {
		p.Name = *patch.Name
	}
	if patch.Description != nil {
		p.Description = patch.Description
	}
	if patch.Price != nil {
		p.Price = *patch.Price
	}
	if patch.ImageURL != nil {
		p.ImageURL = patch.ImageURL
	}
	if patch.Category != nil {
		p.Category = patch.Category
	}
	if patch.StockQuantity != nil {
		p.StockQuantity = *patch.StockQuantity
	}
	if patch.IsActive != nil {
		p.IsActive = *patch.IsActive
	}
}
