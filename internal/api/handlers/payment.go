package handlers

import (
	"io"
	"log/slog"
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/velunaskf/veluna-api/internal/api/middleware"
	"github.com/velunaskf/veluna-api/internal/errors"
	"github.com/velunaskf/veluna-api/internal/models"
	service "github.com/velunaskf/veluna-api/internal/services"
	"github.com/velunaskf/veluna-api/internal/utils"
	"github.com/velunaskf/veluna-api/internal/utils/response"
)

type PaymentHandler struct {
	paymentService *service.PaymentService
	validator      *validator.Validate
}

func NewPaymentHandler(paymentService *service.PaymentService) *PaymentHandler {
	return &PaymentHandler{paymentService: paymentService, validator: validator.New()}
}

func (h *PaymentHandler) CreatePaymentIntent() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logger := middleware.LoggerFromContext(r.Context())

		var req models.CreatePaymentIntentRequest

		if !utils.ParseAndValidate(r, w, &req, h.validator) {
			return
		}

		intent, err := h.paymentService.CreatePaymentIntent(r.Context(), &req)
		if err != nil {
			logger.Warn("Failed to create payment intent", slog.String("orderId", req.OrderID.String()), slog.String("error", err.Error()))
			response.Error(w, err)

			return
		}

		logger.Info("Payment intent created", slog.String("paymentIntentId", intent.PaymentIntentID))
		response.Success(w, http.StatusOK, intent)
	}
}

func (h *PaymentHandler) ConfirmPayment() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logger := middleware.LoggerFromContext(r.Context())

		var req models.ConfirmPaymentRequest

		if !utils.ParseAndValidate(r, w, &req, h.validator) {
			return
		}

		order, err := h.paymentService.ConfirmPayment(r.Context(), &req)
		if err != nil {
			logger.Warn("Failed to confirm payment", slog.String("orderId", req.OrderID.String()), slog.String("error", err.Error()))
			response.Error(w, err)

			return
		}

		logger.Info("Payment confirmed", slog.String("orderNumber", order.OrderNumber))
		response.Success(w, http.StatusOK, order)
	}
}

func (h *PaymentHandler) HandleStripeWebhook() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logger := middleware.LoggerFromContext(r.Context())

		payload, err := io.ReadAll(r.Body)
		if err != nil {
			logger.Error("Error reading webhook body", slog.String("error", err.Error()))
			response.Error(w, errors.BadRequestError("Failed to read request body"))

			return
		}

		signature := r.Header.Get("Stripe-Signature")
		if signature == "" {
			response.Error(w, errors.BadRequestError("Stripe signature is required"))
			return
		}

		event, err := h.paymentService.ProcessWebhook(r.Context(), payload, signature)
		if err != nil {
			logger.Error("Failed to process payment webhook", slog.String("eventId", event.ID), slog.String("error", err.Error()))
			response.Error(w, err)

			return
		}

		logger.Info("Payment webhook processed", slog.String("eventId", event.ID), slog.String("type", string(event.Type)))
		response.Success(w, http.StatusOK, map[string]bool{"received": true})
	}
}
