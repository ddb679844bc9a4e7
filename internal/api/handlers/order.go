package handlers

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-playground/validator/v10"

	"github.com/velunaskf/veluna-api/internal/api/middleware"
	"github.com/velunaskf/veluna-api/internal/errors"
	"github.com/velunaskf/veluna-api/internal/metrics"
	"github.com/velunaskf/veluna-api/internal/models"
	service "github.com/velunaskf/veluna-api/internal/services"
	"github.com/velunaskf/veluna-api/internal/utils"
	"github.com/velunaskf/veluna-api/internal/utils/response"
)

type OrderHandler struct {
	orderService *service.OrderService
	validator    *validator.Validate
}

func NewOrderHandler(orderService *service.OrderService) *OrderHandler {
	return &OrderHandler{orderService: orderService, validator: validator.New()}
}

// CreateOrder serves both guests and signed-in customers; the route uses
// optional authentication.
func (h *OrderHandler) CreateOrder() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logger := middleware.LoggerFromContext(r.Context())

		var req models.CreateOrderRequest

		if !utils.ParseAndValidate(r, w, &req, h.validator) {
			return
		}

		claims, _ := middleware.ClaimsFromContext(r.Context())

		order, err := h.orderService.CreateOrder(r.Context(), claims, &req)
		if err != nil {
			logger.Warn("Failed to create order", slog.String("error", err.Error()))
			response.Error(w, err)

			return
		}

		metrics.OrderCreated()
		logger.Info("Order created", slog.String("orderNumber", order.OrderNumber))
		response.Success(w, http.StatusCreated, order)
	}
}

func (h *OrderHandler) GetOrder() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		orderNumber := r.PathValue("orderNumber")
		if orderNumber == "" {
			response.Error(w, errors.BadRequestError("Order number is required"))
			return
		}

		claims, _ := middleware.ClaimsFromContext(r.Context())

		order, err := h.orderService.GetOrderByNumber(r.Context(), claims, orderNumber)
		if err != nil {
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusOK, order)
	}
}

func (h *OrderHandler) ListOrders() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.ClaimsFromContext(r.Context())
		if !ok {
			response.Error(w, errors.UnauthorizedError("Authentication required"))
			return
		}

		page, _ := strconv.Atoi(r.URL.Query().Get("page"))
		pageSize, _ := strconv.Atoi(r.URL.Query().Get("page_size"))

		orders, total, err := h.orderService.ListOrders(r.Context(), claims.UserID, page, pageSize)
		if err != nil {
			response.Error(w, err)
			return
		}

		if orders == nil {
			orders = []models.Order{}
		}

		response.Success(w, http.StatusOK, models.PaginatedResponse{
			Data:     orders,
			Total:    total,
			Page:     max(page, 1),
			PageSize: pageSize,
		})
	}
}

func (h *OrderHandler) UpdateOrderStatus() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logger := middleware.LoggerFromContext(r.Context())

		id, err := utils.ParseID(r, "id")
		if err != nil {
			response.Error(w, err)
			return
		}

		var req models.UpdateOrderStatusRequest

		if !utils.ParseAndValidate(r, w, &req, h.validator) {
			return
		}

		order, err := h.orderService.UpdateOrderStatus(r.Context(), id, &req)
		if err != nil {
			logger.Error("Failed to update order status", slog.String("orderId", id.String()), slog.String("error", err.Error()))
			response.Error(w, err)

			return
		}

		logger.Info("Order status updated", slog.String("orderNumber", order.OrderNumber), slog.String("status", string(order.Status)))
		response.Success(w, http.StatusOK, order)
	}
}
