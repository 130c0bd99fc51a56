package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product represents a product listed in the storefront catalog.
// Nullable columns use pointer types so that "not set" survives round-trips
// through the database and the API.
type Product struct {
	ID            string          `json:"id" gorm:"primaryKey;type:varchar(36)" validate:"omitempty,uuid"`
	Name          string          `json:"name" gorm:"type:varchar(100);not null" validate:"required,min=1,max=100"`
	Description   *string         `json:"description" validate:"omitempty,max=500"`
	Price         decimal.Decimal `json:"price" gorm:"type:decimal(10,2);not null"`
	ImageURL      *string         `json:"imageUrl" gorm:"column:image_url;type:varchar(255)" validate:"omitempty,max=255"`
	Category      *string         `json:"category" gorm:"type:varchar(100)" validate:"omitempty,max=100"`
	StockQuantity int             `json:"stockQuantity" validate:"gte=0"`
	IsActive      bool            `json:"isActive"`
	CreatedAt     time.Time       `json:"createdAt"`
	UpdatedAt     time.Time       `json:"updatedAt"`
}

// ProductPatch describes a partial update to a product. A nil field means
// "keep the current value". Nullable columns cannot be cleared back to null
// through a patch; omission always preserves the prior value.
type ProductPatch struct {
	Name          *string
	Description   *string
	Price         *decimal.Decimal
	ImageURL      *string
	Category      *string
	StockQuantity *int
	IsActive      *bool
}
