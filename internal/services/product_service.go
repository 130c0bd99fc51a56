package services

import (
	"errors"
	"fmt"
	"log"

	"storefront/internal/models"
	"storefront/internal/repositories"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

// ErrProductNotFound is returned by Update and Remove when the referenced
// product does not exist. It is the only service-level failure in the
// contract; callers match it with errors.Is.
var ErrProductNotFound = errors.New("product not found")

// Stock assigned to a newly created product when the input omits it.
const defaultStockQuantity = 1

// EventPublisher publishes product lifecycle events. A nil publisher
// disables publishing; a failing publisher never fails the mutation.
type EventPublisher interface {
	PublishProductEvent(event string, product *models.Product) error
}

// CreateProductInput carries the fields accepted by Create. Price uses a
// pointer so that "missing" is distinguishable from zero and rejected by
// validation before any store access.
type CreateProductInput struct {
	Name          string           `validate:"required,min=1,max=100"`
	Price         *decimal.Decimal `validate:"required"`
	Description   *string          `validate:"omitempty,max=500"`
	ImageURL      *string          `validate:"omitempty,max=255"`
	Category      *string          `validate:"omitempty,max=100"`
	StockQuantity *int             `validate:"omitempty,gte=0"`
	IsActive      *bool
}

// UpdateProductInput carries a product ID plus any subset of the create
// fields. Nil means the field was omitted and keeps its current value.
type UpdateProductInput struct {
	ID            string           `validate:"required"`
	Name          *string          `validate:"omitempty,min=1,max=100"`
	Price         *decimal.Decimal `validate:"omitempty"`
	Description   *string          `validate:"omitempty,max=500"`
	ImageURL      *string          `validate:"omitempty,max=255"`
	Category      *string          `validate:"omitempty,max=100"`
	StockQuantity *int             `validate:"omitempty,gte=0"`
	IsActive      *bool
}

// ProductService handles business logic related to products.
type ProductService struct {
	repo      repositories.ProductRepository
	publisher EventPublisher
	validate  *validator.Validate
}

// NewProductService creates a new ProductService. publisher may be nil.
func NewProductService(repo repositories.ProductRepository, publisher EventPublisher) *ProductService {
	return &ProductService{
		repo:      repo,
		publisher: publisher,
		validate:  validator.New(),
	}
}

// List retrieves all products in insertion order.
func (s *ProductService) List() ([]models.Product, error) {
	return s.repo.FindAll()
}

// Get retrieves a single product by its ID. A missing product yields
// (nil, nil); callers decide how to surface the miss.
func (s *ProductService) Get(id string) (*models.Product, error) {
	return s.repo.FindByID(id)
}

// Create validates the input, fills in defaults for omitted optional
// fields and persists the new product. Description, ImageURL and Category
// stay null when omitted; StockQuantity defaults to 1 and IsActive to true.
func (s *ProductService) Create(input CreateProductInput) (*models.Product, error) {
	if err := s.validate.Struct(input); err != nil {
		return nil, fmt.Errorf("invalid product input: %w", err)
	}

	product := models.Product{
		Name:          input.Name,
		Price:         *input.Price,
		Description:   input.Description,
		ImageURL:      input.ImageURL,
		Category:      input.Category,
		StockQuantity: defaultStockQuantity,
		IsActive:      true,
	}
	if input.StockQuantity != nil {
		product.StockQuantity = *input.StockQuantity
	}
	if input.IsActive != nil {
		product.IsActive = *input.IsActive
	}

	if err := s.repo.Create(&product); err != nil {
		return nil, err
	}

	s.publish("product.created", &product)
	return &product, nil
}

// Update merges the present input fields into the existing product.
// Referencing a nonexistent ID fails with ErrProductNotFound.
func (s *ProductService) Update(input UpdateProductInput) (*models.Product, error) {
	if err := s.validate.Struct(input); err != nil {
		return nil, fmt.Errorf("invalid product input: %w", err)
	}

	existing, err := s.repo.FindByID(input.ID)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		return nil, fmt.Errorf("product with ID %s: %w", input.ID, ErrProductNotFound)
	}

	patch := models.ProductPatch{
		Name:          input.Name,
		Description:   input.Description,
		Price:         input.Price,
		ImageURL:      input.ImageURL,
		Category:      input.Category,
		StockQuantity: input.StockQuantity,
		IsActive:      input.IsActive,
	}
	if err := s.repo.MergeAndSave(existing, patch); err != nil {
		return nil, err
	}

	s.publish("product.updated", existing)
	return existing, nil
}

// Remove deletes the product and returns its state as it existed
// immediately before deletion. A nonexistent ID fails with
// ErrProductNotFound.
func (s *ProductService) Remove(id string) (*models.Product, error) {
	existing, err := s.repo.FindByID(id)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		return nil, fmt.Errorf("product with ID %s: %w", id, ErrProductNotFound)
	}

	snapshot := *existing
	if err := s.repo.Delete(existing); err != nil {
		return nil, err
	}

	s.publish("product.deleted", &snapshot)
	return &snapshot, nil
}

func (s *ProductService) publish(event string, product *models.Product) {
	if s.publisher == nil {
		return
	}
	if err := s.publisher.PublishProductEvent(event, product); err != nil {
		log.Printf("Failed to publish %s event for product %s: %v", event, product.ID, err)
	}
}
