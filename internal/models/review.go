package models

import (
	"time"

	"github.com/google/uuid"
)

type Review struct {
	ID                 uuid.UUID `json:"id"`
	ProductID          uuid.UUID `json:"product_id"`
	UserID             uuid.UUID `json:"user_id"`
	UserName           string    `json:"user_name"`
	Rating             int       `json:"rating"`
	Title              string    `json:"title,omitempty"`
	Comment            string    `json:"comment"`
	IsVerifiedPurchase bool      `json:"is_verified_purchase"`
	IsApproved         bool      `json:"is_approved"`
	CreatedAt          time.Time `json:"created_at"`
	UpdatedAt          time.Time `json:"updated_at"`
}

type CreateReviewRequest struct {
	ProductID uuid.UUID `json:"product_id" validate:"required"`
	Rating    int       `json:"rating" validate:"required,min=1,max=5"`
	Title     string    `json:"title,omitempty" validate:"omitempty,max=200"`
	Comment   string    `json:"comment" validate:"required,min=3,max=2000"`
}

type ProductReviews struct {
	Reviews   []Review `json:"reviews"`
	Total     int      `json:"total"`
	AvgRating float64  `json:"avg_rating"`
}
