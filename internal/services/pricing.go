package service

import (
	"math"

	"github.com/velunaskf/veluna-api/internal/models"
)

// Pricing constants for checkout. Amounts are in the store currency (INR).
const (
	taxRate               = 0.18
	standardShippingCost  = 50.0
	expressShippingCost   = 150.0
	freeShippingThreshold = 1000.0
)

func roundMoney(v float64) float64 {
	return math.Round(v*100) / 100
}

// shippingCost returns the shipping charge for a subtotal. Standard shipping
// is free once the subtotal reaches the threshold; express always charges.
func shippingCost(method models.ShippingMethod, subtotal float64) float64 {
	if method == models.ShippingMethodExpress {
		return expressShippingCost
	}

	if subtotal >= freeShippingThreshold {
		return 0
	}

	return standardShippingCost
}

// taxAmount is computed on the discounted subtotal plus shipping.
func taxAmount(subtotal, discount, shipping float64) float64 {
	return roundMoney((subtotal - discount + shipping) * taxRate)
}
