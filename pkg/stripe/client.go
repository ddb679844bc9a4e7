package stripe

import (
	"errors"

	"github.com/stripe/stripe-go/v81"
	"github.com/stripe/stripe-go/v81/paymentintent"
	"github.com/stripe/stripe-go/v81/webhook"
)

type Event = stripe.Event

// Client wraps the Stripe operations checkout needs.
type Client interface {
	CreatePaymentIntent(amount int64, currency string, orderID string, orderNumber string) (*stripe.PaymentIntent, error)
	RetrievePaymentIntent(paymentIntentID string) (*stripe.PaymentIntent, error)
	VerifyWebhookSignature(payload []byte, signature string) (Event, error)
}

type stripeClient struct {
	webhookSecret string
}

func NewStripeClient(apiKey string, webhookSecret string) Client {
	stripe.Key = apiKey

	return &stripeClient{webhookSecret: webhookSecret}
}

// CreatePaymentIntent creates an intent in the smallest currency unit and
// tags it with the order so webhooks can be routed back.
func (s *stripeClient) CreatePaymentIntent(amount int64, currency string, orderID string, orderNumber string) (*stripe.PaymentIntent, error) {
	params := &stripe.PaymentIntentParams{
		Amount:      stripe.Int64(amount),
		Currency:    stripe.String(currency),
		Description: stripe.String("Order " + orderNumber),
	}

	params.AddMetadata("order_id", orderID)
	params.AddMetadata("order_number", orderNumber)

	return paymentintent.New(params)
}

func (s *stripeClient) RetrievePaymentIntent(paymentIntentID string) (*stripe.PaymentIntent, error) {
	return paymentintent.Get(paymentIntentID, nil)
}

func (s *stripeClient) VerifyWebhookSignature(payload []byte, signature string) (Event, error) {
	if s.webhookSecret == "" {
		return Event{}, errors.New("webhook secret not configured")
	}

	return webhook.ConstructEvent(payload, signature, s.webhookSecret)
}
