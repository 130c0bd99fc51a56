package repositories

import (
	"sync"
	"time"

	"storefront/internal/models"

	"github.com/google/uuid"
)

// MockProductRepository is an in-memory implementation of ProductRepository.
// It backs tests and DSN-less local runs. Insertion order is tracked
// explicitly so FindAll matches the database-backed ordering.
type MockProductRepository struct {
	products map[string]models.Product
	order    []string
	mu       sync.RWMutex
}

// NewMockProductRepository creates a new instance of MockProductRepository.
func NewMockProductRepository() *MockProductRepository {
	return &MockProductRepository{
		products: make(map[string]models.Product),
	}
}

// FindAll returns all products in insertion order.
func (r *MockProductRepository) FindAll() ([]models.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	productList := make([]models.Product, 0, len(r.order))
	for _, id := range r.order {
		productList = append(productList, r.products[id])
	}
	return productList, nil
}

// FindByID returns a product by its ID, or (nil, nil) if absent.
func (r *MockProductRepository) FindByID(id string) (*models.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	product, ok := r.products[id]
	if !ok {
		return nil, nil
	}
	return &product, nil
}

// Create adds a new product, assigning an ID and timestamps.
func (r *MockProductRepository) Create(product *models.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if product.ID == "" {
		product.ID = uuid.New().String()
	}
	now := time.Now()
	product.CreatedAt = now
	product.UpdatedAt = now

	r.products[product.ID] = *product
	r.order = append(r.order, product.ID)
	return nil
}

// MergeAndSave applies the non-nil patch fields to existing and stores the
// result with a refreshed UpdatedAt.
func (r *MockProductRepository) MergeAndSave(existing *models.Product, patch models.ProductPatch) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	applyPatch(existing, patch)
	existing.UpdatedAt = time.Now()

	r.products[existing.ID] = *existing
	return nil
}

// Delete removes a product permanently.
func (r *MockProductRepository) Delete(product *models.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.products, product.ID)
	for i, id := range r.order {
		if id == product.ID {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	return nil
}
