package service

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"math"

	"github.com/google/uuid"

	"github.com/velunaskf/veluna-api/internal/api/middleware"
	apperrors "github.com/velunaskf/veluna-api/internal/errors"
	"github.com/velunaskf/veluna-api/internal/models"
	repository "github.com/velunaskf/veluna-api/internal/repositories"
	"github.com/velunaskf/veluna-api/pkg/stripe"
)

type PaymentService struct {
	orderRepo    repository.OrderRepository
	stripeClient stripe.Client
	currency     string
}

func NewPaymentService(orderRepo repository.OrderRepository, stripeClient stripe.Client, currency string) *PaymentService {
	return &PaymentService{orderRepo: orderRepo, stripeClient: stripeClient, currency: currency}
}

// CreatePaymentIntent opens a Stripe intent for an order. The amount is
// validated against the order total so a tampered client cannot underpay.
func (s *PaymentService) CreatePaymentIntent(ctx context.Context, req *models.CreatePaymentIntentRequest) (*models.PaymentIntentResponse, error) {
	order, err := s.orderRepo.GetOrderByID(ctx, req.OrderID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperrors.NotFoundError("Order not found")
		}

		return nil, apperrors.DatabaseError("Failed to fetch order").WithError(err)
	}

	if order.PaymentStatus == models.PaymentStatusPaid {
		return nil, apperrors.BadRequestError("Order is already paid")
	}

	if req.Amount != order.TotalAmount {
		return nil, apperrors.BadRequestError("Payment amount does not match the order total")
	}

	currency := req.Currency
	if currency == "" {
		currency = s.currency
	}

	// Stripe bills in the smallest currency unit.
	minorUnits := int64(math.Round(order.TotalAmount * 100))

	intent, err := s.stripeClient.CreatePaymentIntent(minorUnits, currency, order.ID.String(), order.OrderNumber)
	if err != nil {
		return nil, apperrors.ThirdPartyError("Failed to create payment intent").WithError(err)
	}

	return &models.PaymentIntentResponse{
		ClientSecret:    intent.ClientSecret,
		PaymentIntentID: intent.ID,
	}, nil
}

// ConfirmPayment re-checks the intent with Stripe rather than trusting the
// client-reported status.
func (s *PaymentService) ConfirmPayment(ctx context.Context, req *models.ConfirmPaymentRequest) (*models.Order, error) {
	intent, err := s.stripeClient.RetrievePaymentIntent(req.PaymentIntentID)
	if err != nil {
		return nil, apperrors.ThirdPartyError("Failed to retrieve payment intent").WithError(err)
	}

	order, err := s.orderRepo.GetOrderByID(ctx, req.OrderID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperrors.NotFoundError("Order not found")
		}

		return nil, apperrors.DatabaseError("Failed to fetch order").WithError(err)
	}

	if intent.Metadata["order_id"] != order.ID.String() {
		return nil, apperrors.BadRequestError("Payment intent does not belong to this order")
	}

	if intent.Status != "succeeded" {
		return nil, apperrors.BadRequestError("Payment has not succeeded yet")
	}

	if err := s.orderRepo.UpdatePaymentStatus(ctx, order.ID, models.PaymentStatusPaid, intent.ID); err != nil {
		return nil, apperrors.DatabaseError("Failed to update payment status").WithError(err)
	}

	return s.orderRepo.GetOrderByID(ctx, order.ID)
}

// ProcessWebhook verifies the Stripe signature and applies payment state
// transitions to the referenced order.
func (s *PaymentService) ProcessWebhook(ctx context.Context, payload []byte, signature string) (stripe.Event, error) {
	logger := middleware.LoggerFromContext(ctx)

	event, err := s.stripeClient.VerifyWebhookSignature(payload, signature)
	if err != nil {
		return stripe.Event{}, apperrors.ThirdPartyError("Webhook signature verification failed").WithError(err)
	}

	var status models.PaymentStatus

	switch event.Type {
	case "payment_intent.succeeded":
		status = models.PaymentStatusPaid
	case "payment_intent.payment_failed":
		status = models.PaymentStatusFailed
	case "charge.refunded":
		status = models.PaymentStatusRefunded
	default:
		logger.Info("Ignoring unhandled webhook event", slog.String("type", string(event.Type)))
		return event, nil
	}

	orderID, intentID, err := webhookOrderRef(event)
	if err != nil {
		return event, apperrors.ThirdPartyError("Malformed webhook payload").WithError(err)
	}

	if err := s.orderRepo.UpdatePaymentStatus(ctx, orderID, status, intentID); err != nil {
		return event, apperrors.DatabaseError("Failed to update payment status").WithError(err)
	}

	return event, nil
}

func webhookOrderRef(event stripe.Event) (uuid.UUID, string, error) {
	object := event.Data.Object

	metadata, _ := object["metadata"].(map[string]any)

	rawOrderID, _ := metadata["order_id"].(string)
	if rawOrderID == "" {
		return uuid.Nil, "", errors.New("missing order_id metadata in webhook")
	}

	orderID, err := uuid.Parse(rawOrderID)
	if err != nil {
		return uuid.Nil, "", errors.New("invalid order_id metadata in webhook")
	}

	intentID, _ := object["id"].(string)

	return orderID, intentID, nil
}
