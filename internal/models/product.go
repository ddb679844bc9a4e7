package models

import (
	"time"

	"github.com/google/uuid"
)

type Category struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Slug        string    `json:"slug"`
	Description string    `json:"description,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

type Product struct {
	ID            uuid.UUID `json:"id"`
	CategoryID    uuid.UUID `json:"category_id"`
	Name          string    `json:"name"`
	Slug          string    `json:"slug"`
	Description   string    `json:"description"`
	Price         float64   `json:"price"`
	OriginalPrice *float64  `json:"original_price,omitempty"`
	StockQuantity int       `json:"stock_quantity"`
	SKU           string    `json:"sku"`
	IsActive      bool      `json:"is_active"`
	IsFeatured    bool      `json:"is_featured"`
	IsBestseller  bool      `json:"is_bestseller"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
	Category      *Category `json:"category,omitempty"`
}

type CreateProductRequest struct {
	CategoryID    uuid.UUID `json:"category_id" validate:"required"`
	Name          string    `json:"name" validate:"required,min=3,max=200"`
	Slug          string    `json:"slug" validate:"required,min=3,max=200"`
	Description   string    `json:"description,omitempty"`
	Price         float64   `json:"price" validate:"required,gt=0"`
	OriginalPrice *float64  `json:"original_price,omitempty" validate:"omitempty,gt=0"`
	StockQuantity int       `json:"stock_quantity" validate:"gte=0"`
	SKU           string    `json:"sku" validate:"required,min=3,max=50"`
	IsFeatured    bool      `json:"is_featured"`
	IsBestseller  bool      `json:"is_bestseller"`
}

type UpdateProductRequest struct {
	CategoryID    *uuid.UUID `json:"category_id,omitempty"`
	Name          *string    `json:"name,omitempty" validate:"omitempty,min=3,max=200"`
	Description   *string    `json:"description,omitempty"`
	Price         *float64   `json:"price,omitempty" validate:"omitempty,gt=0"`
	OriginalPrice *float64   `json:"original_price,omitempty" validate:"omitempty,gt=0"`
	StockQuantity *int       `json:"stock_quantity,omitempty" validate:"omitempty,gte=0"`
	IsActive      *bool      `json:"is_active,omitempty"`
	IsFeatured    *bool      `json:"is_featured,omitempty"`
	IsBestseller  *bool      `json:"is_bestseller,omitempty"`
}

// ProductFilter narrows the public catalog listing.
type ProductFilter struct {
	CategoryID *uuid.UUID
	MinPrice   *float64
	MaxPrice   *float64
	Search     string
	Featured   bool
	Bestseller bool
	Sort       string
	Order      string
	Page       int
	PageSize   int
}
