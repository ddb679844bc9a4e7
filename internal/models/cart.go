package models

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// CartItem is a single cart row. Exactly one of UserID or SessionID is set:
// authenticated carts are keyed by user, guest carts by a client-generated
// session token.
type CartItem struct {
	ID                   uuid.UUID       `json:"id"`
	UserID               *uuid.UUID      `json:"user_id,omitempty"`
	SessionID            *string         `json:"session_id,omitempty"`
	ProductID            uuid.UUID       `json:"product_id"`
	Quantity             int             `json:"quantity"`
	Price                float64         `json:"price"`
	CustomizationDetails json.RawMessage `json:"customization_details,omitempty"`
	CreatedAt            time.Time       `json:"created_at"`
	UpdatedAt            time.Time       `json:"updated_at"`
	Product              *Product        `json:"product,omitempty"`
}

// Cart is the assembled view of a customer's cart rows.
type Cart struct {
	Items     []CartItem `json:"items"`
	Subtotal  float64    `json:"subtotal"`
	ItemCount int        `json:"item_count"`
}

type AddCartItemRequest struct {
	ProductID            uuid.UUID       `json:"product_id" validate:"required"`
	Quantity             int             `json:"quantity" validate:"required,min=1"`
	SessionID            string          `json:"session_id,omitempty"`
	CustomizationDetails json.RawMessage `json:"customization_details,omitempty"`
}

type UpdateCartItemRequest struct {
	Quantity int `json:"quantity" validate:"required,min=1"`
}

// CartKey identifies whose cart a request operates on.
type CartKey struct {
	UserID    *uuid.UUID
	SessionID string
}
