package handlers

import (
	"log/slog"
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/velunaskf/veluna-api/internal/api/middleware"
	"github.com/velunaskf/veluna-api/internal/models"
	service "github.com/velunaskf/veluna-api/internal/services"
	"github.com/velunaskf/veluna-api/internal/utils"
	"github.com/velunaskf/veluna-api/internal/utils/response"
)

type DiscountHandler struct {
	discountService *service.DiscountService
	validator       *validator.Validate
}

func NewDiscountHandler(discountService *service.DiscountService) *DiscountHandler {
	return &DiscountHandler{discountService: discountService, validator: validator.New()}
}

func (h *DiscountHandler) CreateDiscount() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logger := middleware.LoggerFromContext(r.Context())

		var req models.CreateDiscountRequest

		if !utils.ParseAndValidate(r, w, &req, h.validator) {
			return
		}

		discount, err := h.discountService.CreateDiscount(r.Context(), &req)
		if err != nil {
			logger.Error("Failed to create discount", slog.String("code", req.Code), slog.String("error", err.Error()))
			response.Error(w, err)

			return
		}

		logger.Info("Discount created", slog.String("code", discount.Code))
		response.Success(w, http.StatusCreated, discount)
	}
}

func (h *DiscountHandler) ListDiscounts() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		discounts, err := h.discountService.ListActive(r.Context())
		if err != nil {
			response.Error(w, err)
			return
		}

		if discounts == nil {
			discounts = []models.Discount{}
		}

		response.Success(w, http.StatusOK, discounts)
	}
}

// ValidateDiscount returns the validation envelope directly: 200 for a
// usable code, 404 when the code does not exist, 400 for every other
// failed rule. Clients read the "error" label to show a message.
func (h *DiscountHandler) ValidateDiscount() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req models.ValidateDiscountRequest

		if !utils.ParseAndValidate(r, w, &req, h.validator) {
			return
		}

		validation, err := h.discountService.Validate(r.Context(), &req)
		if err != nil {
			response.Error(w, err)
			return
		}

		status := http.StatusOK

		if !validation.Valid {
			if validation.Reason == models.DiscountReasonInvalid {
				status = http.StatusNotFound
			} else {
				status = http.StatusBadRequest
			}
		}

		response.WriteJson(w, status, validation)
	}
}
