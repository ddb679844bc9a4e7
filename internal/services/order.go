package service

import (
	"context"
	"crypto/rand"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"math/big"
	"time"

	"github.com/google/uuid"

	"github.com/velunaskf/veluna-api/internal/api/middleware"
	apperrors "github.com/velunaskf/veluna-api/internal/errors"
	"github.com/velunaskf/veluna-api/internal/models"
	repository "github.com/velunaskf/veluna-api/internal/repositories"
)

const orderNumberAttempts = 3

// OrderNotifier sends customer-facing order emails. Delivery is best-effort:
// a failure never rolls back the order.
type OrderNotifier interface {
	SendOrderConfirmation(ctx context.Context, order *models.Order) error
}

type OrderService struct {
	repo         repository.OrderRepository
	productRepo  repository.ProductRepository
	discountRepo repository.DiscountRepository
	cartRepo     repository.CartRepository
	notifier     OrderNotifier
}

func NewOrderService(repo repository.OrderRepository, productRepo repository.ProductRepository,
	discountRepo repository.DiscountRepository, cartRepo repository.CartRepository, notifier OrderNotifier,
) *OrderService {
	return &OrderService{
		repo:         repo,
		productRepo:  productRepo,
		discountRepo: discountRepo,
		cartRepo:     cartRepo,
		notifier:     notifier,
	}
}

// CreateOrder re-prices every item from the live catalog, applies the
// discount code if it still validates, and persists the order atomically.
// Guest checkout requires a contact email; signed-in checkout clears the
// user's cart after the order commits.
func (s *OrderService) CreateOrder(ctx context.Context, claims *models.Claims, req *models.CreateOrderRequest) (*models.Order, error) {
	logger := middleware.LoggerFromContext(ctx)

	if claims == nil && req.GuestEmail == "" {
		return nil, apperrors.BadRequestError("Guest checkout requires an email address")
	}

	order := &models.Order{
		Status:          models.OrderStatusPending,
		PaymentStatus:   models.PaymentStatusPending,
		PaymentMethod:   req.PaymentMethod,
		ShippingAddress: &req.ShippingAddress,
		BillingAddress:  req.BillingAddress,
		ShippingMethod:  req.ShippingMethod,
	}

	if order.BillingAddress == nil {
		order.BillingAddress = &req.ShippingAddress
	}

	if claims != nil {
		order.UserID = &claims.UserID
	} else {
		order.GuestEmail = req.GuestEmail
		order.GuestName = req.GuestName
		order.GuestPhone = req.GuestPhone
	}

	var subtotal float64

	for _, line := range req.Items {
		product, err := s.productRepo.GetProductByID(ctx, line.ProductID)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return nil, apperrors.NotFoundError(fmt.Sprintf("Product %s not found", line.ProductID))
			}

			return nil, apperrors.DatabaseError("Failed to fetch product").WithError(err)
		}

		if !product.IsActive {
			return nil, apperrors.BadRequestError(fmt.Sprintf("Product %q is no longer available", product.Name))
		}

		if product.StockQuantity < line.Quantity {
			return nil, apperrors.BadRequestError(fmt.Sprintf("Insufficient stock for %q", product.Name))
		}

		item := models.OrderItem{
			ProductID:            product.ID,
			ProductName:          product.Name,
			ProductSKU:           product.SKU,
			Quantity:             line.Quantity,
			UnitPrice:            product.Price,
			TotalPrice:           roundMoney(product.Price * float64(line.Quantity)),
			CustomizationDetails: line.CustomizationDetails,
		}

		subtotal += item.TotalPrice
		order.Items = append(order.Items, item)
	}

	order.Subtotal = roundMoney(subtotal)

	if req.DiscountCode != "" {
		s.applyDiscount(ctx, order, req.DiscountCode)
	}

	order.ShippingCost = shippingCost(order.ShippingMethod, order.Subtotal)
	order.TaxAmount = taxAmount(order.Subtotal, order.DiscountAmount, order.ShippingCost)
	order.TotalAmount = roundMoney(order.Subtotal - order.DiscountAmount + order.ShippingCost + order.TaxAmount)

	if err := s.persistWithRetry(ctx, order); err != nil {
		return nil, err
	}

	s.afterCreate(ctx, logger, claims, order)

	return order, nil
}

// applyDiscount validates the code against the order subtotal. A code that
// fails validation is dropped without surfacing an error; the customer was
// already told at cart time, and checkout should not fail over it.
func (s *OrderService) applyDiscount(ctx context.Context, order *models.Order, code string) {
	logger := middleware.LoggerFromContext(ctx)

	discount, err := s.discountRepo.GetByCode(ctx, code)
	if err != nil {
		logger.Warn("Ignoring discount code", slog.String("code", code), slog.Any("error", err))
		return
	}

	validation := evaluateDiscount(discount, order.Subtotal)
	if !validation.Valid {
		logger.Warn("Ignoring invalid discount code", slog.String("code", code), slog.String("reason", validation.Reason))
		return
	}

	order.DiscountCode = discount.Code
	order.DiscountAmount = validation.Discount.DiscountAmount
}

func (s *OrderService) persistWithRetry(ctx context.Context, order *models.Order) error {
	logger := middleware.LoggerFromContext(ctx)

	for attempt := 1; ; attempt++ {
		number, err := generateOrderNumber()
		if err != nil {
			return apperrors.InternalError("Failed to generate order number").WithError(err)
		}

		order.OrderNumber = number

		err = s.repo.CreateOrder(ctx, order)
		if err == nil {
			return nil
		}

		var stockErr *repository.InsufficientStockError
		if errors.As(err, &stockErr) {
			return apperrors.BadRequestError(fmt.Sprintf("Insufficient stock for product %s", stockErr.ProductID))
		}

		if errors.Is(err, repository.ErrDuplicateOrderNumber) && attempt < orderNumberAttempts {
			logger.Warn("Order number collision, retrying", slog.String("orderNumber", number))
			continue
		}

		return apperrors.DatabaseError("Failed to create order").WithError(err)
	}
}

func (s *OrderService) afterCreate(ctx context.Context, logger *slog.Logger, claims *models.Claims, order *models.Order) {
	if order.DiscountCode != "" {
		if err := s.discountRepo.IncrementUsage(ctx, order.DiscountCode); err != nil {
			logger.Warn("Failed to record discount usage", slog.String("code", order.DiscountCode), slog.Any("error", err))
		}
	}

	if claims != nil {
		if err := s.cartRepo.ClearCart(ctx, models.CartKey{UserID: &claims.UserID}); err != nil {
			logger.Warn("Failed to clear cart after order", slog.Any("error", err))
		}
	}

	if s.notifier != nil {
		if err := s.notifier.SendOrderConfirmation(ctx, order); err != nil {
			logger.Warn("Failed to send order confirmation email", slog.String("orderNumber", order.OrderNumber), slog.Any("error", err))
		}
	}
}

// generateOrderNumber produces "VLN" + UTC date + a zero-padded 5-digit
// random suffix, e.g. VLN2026083012345.
func generateOrderNumber() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(100000))
	if err != nil {
		return "", err
	}

	return fmt.Sprintf("VLN%s%05d", time.Now().UTC().Format("20060102"), n.Int64()), nil
}

// GetOrderByNumber enforces ownership: a customer only sees their own
// orders, admins see everything, and guest orders resolve by number alone.
func (s *OrderService) GetOrderByNumber(ctx context.Context, claims *models.Claims, orderNumber string) (*models.Order, error) {
	order, err := s.repo.GetOrderByNumber(ctx, orderNumber)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperrors.NotFoundError("Order not found")
		}

		return nil, apperrors.DatabaseError("Failed to fetch order").WithError(err)
	}

	if order.UserID != nil {
		if claims == nil {
			return nil, apperrors.UnauthorizedError("Sign in to view this order")
		}

		if claims.Role != models.RoleAdmin && *order.UserID != claims.UserID {
			return nil, apperrors.ForbiddenError("You do not have access to this order")
		}
	}

	return order, nil
}

func (s *OrderService) ListOrders(ctx context.Context, userID uuid.UUID, page, pageSize int) ([]models.Order, int, error) {
	if page < 1 {
		page = 1
	}

	if pageSize < 1 || pageSize > 100 {
		pageSize = 20
	}

	orders, total, err := s.repo.ListOrdersByUser(ctx, userID, page, pageSize)
	if err != nil {
		return nil, 0, apperrors.DatabaseError("Failed to list orders").WithError(err)
	}

	return orders, total, nil
}

func (s *OrderService) UpdateOrderStatus(ctx context.Context, id uuid.UUID, req *models.UpdateOrderStatusRequest) (*models.Order, error) {
	if err := s.repo.UpdateOrderStatus(ctx, id, req.Status, req.TrackingNumber); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperrors.NotFoundError("Order not found")
		}

		return nil, apperrors.DatabaseError("Failed to update order status").WithError(err)
	}

	order, err := s.repo.GetOrderByID(ctx, id)
	if err != nil {
		return nil, apperrors.DatabaseError("Failed to fetch order").WithError(err)
	}

	return order, nil
}
