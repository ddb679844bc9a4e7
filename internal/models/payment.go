package models

import "github.com/google/uuid"

type CreatePaymentIntentRequest struct {
	Amount   float64   `json:"amount" validate:"required,gte=50"`
	OrderID  uuid.UUID `json:"order_id" validate:"required"`
	Currency string    `json:"currency,omitempty" validate:"omitempty,len=3"`
}

type PaymentIntentResponse struct {
	ClientSecret    string `json:"client_secret"`
	PaymentIntentID string `json:"payment_intent_id"`
}

type ConfirmPaymentRequest struct {
	PaymentIntentID string    `json:"payment_intent_id" validate:"required"`
	OrderID         uuid.UUID `json:"order_id" validate:"required"`
}
