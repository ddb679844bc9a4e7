package models

import (
	"time"

	"github.com/google/uuid"
)

type DiscountType string

const (
	DiscountTypePercentage DiscountType = "percentage"
	DiscountTypeFlat       DiscountType = "flat"
)

type Discount struct {
	ID                uuid.UUID    `json:"id"`
	Code              string       `json:"code"`
	Description       string       `json:"description,omitempty"`
	DiscountType      DiscountType `json:"discount_type"`
	DiscountValue     float64      `json:"discount_value"`
	MinOrderAmount    *float64     `json:"min_order_amount,omitempty"`
	MaxDiscountAmount *float64     `json:"max_discount_amount,omitempty"`
	ValidFrom         *time.Time   `json:"valid_from,omitempty"`
	ValidUntil        *time.Time   `json:"valid_until,omitempty"`
	UsageLimit        *int         `json:"usage_limit,omitempty"`
	UsageCount        int          `json:"usage_count"`
	IsActive          bool         `json:"is_active"`
	CreatedAt         time.Time    `json:"created_at"`
}

type ValidateDiscountRequest struct {
	Code        string  `json:"code" validate:"required"`
	OrderAmount float64 `json:"order_amount" validate:"gte=0"`
}

// AppliedDiscount is the public shape of a successfully validated code.
type AppliedDiscount struct {
	Code           string       `json:"code"`
	Description    string       `json:"description,omitempty"`
	DiscountType   DiscountType `json:"discount_type"`
	DiscountValue  float64      `json:"discount_value"`
	DiscountAmount float64      `json:"discount_amount"`
}

// DiscountValidation mirrors the validate endpoint's envelope. Reason holds
// the failure label ("Expired", "Usage Limit Reached", ...) when Valid is
// false.
type DiscountValidation struct {
	Valid          bool             `json:"valid"`
	Reason         string           `json:"error,omitempty"`
	Message        string           `json:"message"`
	Discount       *AppliedDiscount `json:"discount,omitempty"`
	MinOrderAmount float64          `json:"min_order_amount,omitempty"`
}

// Failure labels returned by the discount evaluator, matching the public API.
const (
	DiscountReasonInvalid     = "Invalid Code"
	DiscountReasonNotYetValid = "Not Yet Valid"
	DiscountReasonExpired     = "Expired"
	DiscountReasonLimit       = "Usage Limit Reached"
	DiscountReasonMinOrder    = "Minimum Order Not Met"
)

type CreateDiscountRequest struct {
	Code              string       `json:"code" validate:"required,min=3,max=50"`
	Description       string       `json:"description,omitempty"`
	DiscountType      DiscountType `json:"discount_type" validate:"required,oneof=percentage flat"`
	DiscountValue     float64      `json:"discount_value" validate:"required,gt=0"`
	MinOrderAmount    *float64     `json:"min_order_amount,omitempty" validate:"omitempty,gt=0"`
	MaxDiscountAmount *float64     `json:"max_discount_amount,omitempty" validate:"omitempty,gt=0"`
	ValidFrom         *time.Time   `json:"valid_from,omitempty"`
	ValidUntil        *time.Time   `json:"valid_until,omitempty"`
	UsageLimit        *int         `json:"usage_limit,omitempty" validate:"omitempty,gt=0"`
}
