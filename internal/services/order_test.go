package service_test

import (
	"context"
	"database/sql"
	"regexp"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	appErrors "github.com/velunaskf/veluna-api/internal/errors"
	"github.com/velunaskf/veluna-api/internal/models"
	repository "github.com/velunaskf/veluna-api/internal/repositories"
	"github.com/velunaskf/veluna-api/internal/repositories/mocks"
	service "github.com/velunaskf/veluna-api/internal/services"
	servicemocks "github.com/velunaskf/veluna-api/internal/services/mocks"
)

var orderNumberPattern = regexp.MustCompile(`^VLN\d{13}$`)

type orderTestDeps struct {
	orderRepo    *mocks.OrderRepository
	productRepo  *mocks.ProductRepository
	discountRepo *mocks.DiscountRepository
	cartRepo     *mocks.CartRepository
	notifier     *servicemocks.OrderNotifier
}

func newOrderService() (*service.OrderService, *orderTestDeps) {
	deps := &orderTestDeps{
		orderRepo:    new(mocks.OrderRepository),
		productRepo:  new(mocks.ProductRepository),
		discountRepo: new(mocks.DiscountRepository),
		cartRepo:     new(mocks.CartRepository),
		notifier:     new(servicemocks.OrderNotifier),
	}

	orderService := service.NewOrderService(deps.orderRepo, deps.productRepo, deps.discountRepo, deps.cartRepo, deps.notifier)

	return orderService, deps
}

func testAddress() models.Address {
	return models.Address{
		FullName:     "Asha Rao",
		AddressLine1: "14 MG Road",
		City:         "Bengaluru",
		State:        "Karnataka",
		PostalCode:   "560001",
		Country:      "IN",
	}
}

func testProduct(id uuid.UUID, price float64, stock int) *models.Product {
	return &models.Product{
		ID:            id,
		Name:          "Silk Scarf",
		SKU:           "SKU-" + id.String()[:8],
		Price:         price,
		StockQuantity: stock,
		IsActive:      true,
	}
}

func TestCreateOrder(t *testing.T) {
	ctx := context.Background()

	t.Run("Success - Authenticated User Above Free Shipping Threshold", func(t *testing.T) {
		// Arrange
		orderService, deps := newOrderService()

		userID := uuid.New()
		claims := &models.Claims{UserID: userID, Role: models.RoleCustomer}
		productID := uuid.New()

		deps.productRepo.On("GetProductByID", mock.Anything, productID).
			Return(testProduct(productID, 600, 10), nil).Once()
		deps.orderRepo.On("CreateOrder", mock.Anything, mock.Anything).Return(nil).Once()
		deps.cartRepo.On("ClearCart", mock.Anything, models.CartKey{UserID: &userID}).Return(nil).Once()
		deps.notifier.On("SendOrderConfirmation", mock.Anything, mock.Anything).Return(nil).Once()

		req := &models.CreateOrderRequest{
			Items:           []models.OrderItemRequest{{ProductID: productID, Quantity: 2}},
			ShippingAddress: testAddress(),
			ShippingMethod:  models.ShippingMethodStandard,
			PaymentMethod:   "card",
		}

		// Act
		order, err := orderService.CreateOrder(ctx, claims, req)

		// Assert
		require.NoError(t, err)
		assert.InDelta(t, 1200.0, order.Subtotal, 0.001)
		assert.InDelta(t, 0.0, order.ShippingCost, 0.001, "standard shipping is free at this subtotal")
		assert.InDelta(t, 216.0, order.TaxAmount, 0.001)
		assert.InDelta(t, 1416.0, order.TotalAmount, 0.001)
		assert.Regexp(t, orderNumberPattern, order.OrderNumber)
		assert.Equal(t, models.OrderStatusPending, order.Status)
		assert.Equal(t, models.PaymentStatusPending, order.PaymentStatus)
		require.NotNil(t, order.UserID)
		assert.Equal(t, userID, *order.UserID)
		assert.Equal(t, order.ShippingAddress, order.BillingAddress, "billing defaults to shipping")

		deps.orderRepo.AssertExpectations(t)
		deps.cartRepo.AssertExpectations(t)
		deps.notifier.AssertExpectations(t)
	})

	t.Run("Success - Guest Checkout With Capped Percentage Discount", func(t *testing.T) {
		// Arrange
		orderService, deps := newOrderService()

		productID := uuid.New()
		discount := &models.Discount{
			Code:              "SAVE10",
			DiscountType:      models.DiscountTypePercentage,
			DiscountValue:     10,
			MaxDiscountAmount: floatPtr(40),
			IsActive:          true,
		}

		deps.productRepo.On("GetProductByID", mock.Anything, productID).
			Return(testProduct(productID, 250, 10), nil).Once()
		deps.discountRepo.On("GetByCode", mock.Anything, "SAVE10").Return(discount, nil).Once()
		deps.orderRepo.On("CreateOrder", mock.Anything, mock.Anything).Return(nil).Once()
		deps.discountRepo.On("IncrementUsage", mock.Anything, "SAVE10").Return(nil).Once()
		deps.notifier.On("SendOrderConfirmation", mock.Anything, mock.Anything).Return(nil).Once()

		req := &models.CreateOrderRequest{
			Items:           []models.OrderItemRequest{{ProductID: productID, Quantity: 2}},
			ShippingAddress: testAddress(),
			ShippingMethod:  models.ShippingMethodStandard,
			PaymentMethod:   "card",
			DiscountCode:    "SAVE10",
			GuestEmail:      "guest@example.com",
		}

		// Act
		order, err := orderService.CreateOrder(ctx, nil, req)

		// Assert
		require.NoError(t, err)
		assert.InDelta(t, 500.0, order.Subtotal, 0.001)
		assert.InDelta(t, 40.0, order.DiscountAmount, 0.001, "10%% of 500 is capped at 40")
		assert.InDelta(t, 50.0, order.ShippingCost, 0.001)
		assert.InDelta(t, 91.8, order.TaxAmount, 0.001)
		assert.InDelta(t, 601.8, order.TotalAmount, 0.001)
		assert.Equal(t, "guest@example.com", order.GuestEmail)
		assert.Nil(t, order.UserID)

		deps.discountRepo.AssertExpectations(t)
		deps.cartRepo.AssertNotCalled(t, "ClearCart", mock.Anything, mock.Anything)
	})

	t.Run("Success - Invalid Discount Code Is Dropped Silently", func(t *testing.T) {
		// Arrange
		orderService, deps := newOrderService()

		productID := uuid.New()

		deps.productRepo.On("GetProductByID", mock.Anything, productID).
			Return(testProduct(productID, 250, 10), nil).Once()
		deps.discountRepo.On("GetByCode", mock.Anything, "GHOST").Return(nil, sql.ErrNoRows).Once()
		deps.orderRepo.On("CreateOrder", mock.Anything, mock.Anything).Return(nil).Once()
		deps.notifier.On("SendOrderConfirmation", mock.Anything, mock.Anything).Return(nil).Once()

		req := &models.CreateOrderRequest{
			Items:           []models.OrderItemRequest{{ProductID: productID, Quantity: 2}},
			ShippingAddress: testAddress(),
			ShippingMethod:  models.ShippingMethodStandard,
			PaymentMethod:   "card",
			DiscountCode:    "GHOST",
			GuestEmail:      "guest@example.com",
		}

		// Act
		order, err := orderService.CreateOrder(ctx, nil, req)

		// Assert
		require.NoError(t, err, "an unusable code must not fail checkout")
		assert.Empty(t, order.DiscountCode)
		assert.InDelta(t, 0.0, order.DiscountAmount, 0.001)
		assert.InDelta(t, 649.0, order.TotalAmount, 0.001, "full price without the discount")

		deps.discountRepo.AssertNotCalled(t, "IncrementUsage", mock.Anything, mock.Anything)
	})

	t.Run("Success - Express Shipping Always Charged", func(t *testing.T) {
		// Arrange
		orderService, deps := newOrderService()

		productID := uuid.New()

		deps.productRepo.On("GetProductByID", mock.Anything, productID).
			Return(testProduct(productID, 1500, 5), nil).Once()
		deps.orderRepo.On("CreateOrder", mock.Anything, mock.Anything).Return(nil).Once()
		deps.notifier.On("SendOrderConfirmation", mock.Anything, mock.Anything).Return(nil).Once()

		req := &models.CreateOrderRequest{
			Items:           []models.OrderItemRequest{{ProductID: productID, Quantity: 1}},
			ShippingAddress: testAddress(),
			ShippingMethod:  models.ShippingMethodExpress,
			PaymentMethod:   "card",
			GuestEmail:      "guest@example.com",
		}

		// Act
		order, err := orderService.CreateOrder(ctx, nil, req)

		// Assert
		require.NoError(t, err)
		assert.InDelta(t, 150.0, order.ShippingCost, 0.001)
	})

	t.Run("Success - Retries On Order Number Collision", func(t *testing.T) {
		// Arrange
		orderService, deps := newOrderService()

		productID := uuid.New()

		deps.productRepo.On("GetProductByID", mock.Anything, productID).
			Return(testProduct(productID, 100, 10), nil).Once()
		deps.orderRepo.On("CreateOrder", mock.Anything, mock.Anything).Return(repository.ErrDuplicateOrderNumber).Once()
		deps.orderRepo.On("CreateOrder", mock.Anything, mock.Anything).Return(nil).Once()
		deps.notifier.On("SendOrderConfirmation", mock.Anything, mock.Anything).Return(nil).Once()

		req := &models.CreateOrderRequest{
			Items:           []models.OrderItemRequest{{ProductID: productID, Quantity: 1}},
			ShippingAddress: testAddress(),
			ShippingMethod:  models.ShippingMethodStandard,
			PaymentMethod:   "card",
			GuestEmail:      "guest@example.com",
		}

		// Act
		order, err := orderService.CreateOrder(ctx, nil, req)

		// Assert
		require.NoError(t, err)
		assert.Regexp(t, orderNumberPattern, order.OrderNumber)
		deps.orderRepo.AssertNumberOfCalls(t, "CreateOrder", 2)
	})

	t.Run("Success - Email Failure Does Not Fail The Order", func(t *testing.T) {
		// Arrange
		orderService, deps := newOrderService()

		productID := uuid.New()

		deps.productRepo.On("GetProductByID", mock.Anything, productID).
			Return(testProduct(productID, 100, 10), nil).Once()
		deps.orderRepo.On("CreateOrder", mock.Anything, mock.Anything).Return(nil).Once()
		deps.notifier.On("SendOrderConfirmation", mock.Anything, mock.Anything).
			Return(assert.AnError).Once()

		req := &models.CreateOrderRequest{
			Items:           []models.OrderItemRequest{{ProductID: productID, Quantity: 1}},
			ShippingAddress: testAddress(),
			ShippingMethod:  models.ShippingMethodStandard,
			PaymentMethod:   "card",
			GuestEmail:      "guest@example.com",
		}

		// Act
		order, err := orderService.CreateOrder(ctx, nil, req)

		// Assert
		require.NoError(t, err)
		assert.NotNil(t, order)
		deps.notifier.AssertExpectations(t)
	})

	t.Run("Failure - Guest Without Email", func(t *testing.T) {
		// Arrange
		orderService, deps := newOrderService()

		req := &models.CreateOrderRequest{
			Items:           []models.OrderItemRequest{{ProductID: uuid.New(), Quantity: 1}},
			ShippingAddress: testAddress(),
			ShippingMethod:  models.ShippingMethodStandard,
			PaymentMethod:   "card",
		}

		// Act
		order, err := orderService.CreateOrder(ctx, nil, req)

		// Assert
		require.Error(t, err)
		assert.Nil(t, order)

		appErr, ok := appErrors.IsAppError(err)
		require.True(t, ok)
		assert.Equal(t, appErrors.ErrCodeBadRequest, appErr.Code)

		deps.productRepo.AssertNotCalled(t, "GetProductByID", mock.Anything, mock.Anything)
		deps.orderRepo.AssertNotCalled(t, "CreateOrder", mock.Anything, mock.Anything)
	})

	t.Run("Failure - Unknown Product Writes Nothing", func(t *testing.T) {
		// Arrange
		orderService, deps := newOrderService()

		productID := uuid.New()

		deps.productRepo.On("GetProductByID", mock.Anything, productID).Return(nil, sql.ErrNoRows).Once()

		req := &models.CreateOrderRequest{
			Items:           []models.OrderItemRequest{{ProductID: productID, Quantity: 1}},
			ShippingAddress: testAddress(),
			ShippingMethod:  models.ShippingMethodStandard,
			PaymentMethod:   "card",
			GuestEmail:      "guest@example.com",
		}

		// Act
		order, err := orderService.CreateOrder(ctx, nil, req)

		// Assert
		require.Error(t, err)
		assert.Nil(t, order)

		appErr, ok := appErrors.IsAppError(err)
		require.True(t, ok)
		assert.Equal(t, appErrors.ErrCodeNotFound, appErr.Code)
		assert.Contains(t, appErr.Message, productID.String())

		deps.orderRepo.AssertNotCalled(t, "CreateOrder", mock.Anything, mock.Anything)
	})

	t.Run("Failure - Insufficient Stock Writes Nothing", func(t *testing.T) {
		// Arrange
		orderService, deps := newOrderService()

		productID := uuid.New()

		deps.productRepo.On("GetProductByID", mock.Anything, productID).
			Return(testProduct(productID, 100, 1), nil).Once()

		req := &models.CreateOrderRequest{
			Items:           []models.OrderItemRequest{{ProductID: productID, Quantity: 3}},
			ShippingAddress: testAddress(),
			ShippingMethod:  models.ShippingMethodStandard,
			PaymentMethod:   "card",
			GuestEmail:      "guest@example.com",
		}

		// Act
		order, err := orderService.CreateOrder(ctx, nil, req)

		// Assert
		require.Error(t, err)
		assert.Nil(t, order)

		appErr, ok := appErrors.IsAppError(err)
		require.True(t, ok)
		assert.Equal(t, appErrors.ErrCodeBadRequest, appErr.Code)

		deps.orderRepo.AssertNotCalled(t, "CreateOrder", mock.Anything, mock.Anything)
	})

	t.Run("Failure - Stock Raced Away During Persist", func(t *testing.T) {
		// Arrange
		orderService, deps := newOrderService()

		productID := uuid.New()

		deps.productRepo.On("GetProductByID", mock.Anything, productID).
			Return(testProduct(productID, 100, 10), nil).Once()
		deps.orderRepo.On("CreateOrder", mock.Anything, mock.Anything).
			Return(&repository.InsufficientStockError{ProductID: productID}).Once()

		req := &models.CreateOrderRequest{
			Items:           []models.OrderItemRequest{{ProductID: productID, Quantity: 2}},
			ShippingAddress: testAddress(),
			ShippingMethod:  models.ShippingMethodStandard,
			PaymentMethod:   "card",
			GuestEmail:      "guest@example.com",
		}

		// Act
		order, err := orderService.CreateOrder(ctx, nil, req)

		// Assert
		require.Error(t, err)
		assert.Nil(t, order)

		appErr, ok := appErrors.IsAppError(err)
		require.True(t, ok)
		assert.Equal(t, appErrors.ErrCodeBadRequest, appErr.Code)

		deps.notifier.AssertNotCalled(t, "SendOrderConfirmation", mock.Anything, mock.Anything)
	})

	t.Run("Failure - Inactive Product", func(t *testing.T) {
		// Arrange
		orderService, deps := newOrderService()

		productID := uuid.New()
		product := testProduct(productID, 100, 10)
		product.IsActive = false

		deps.productRepo.On("GetProductByID", mock.Anything, productID).Return(product, nil).Once()

		req := &models.CreateOrderRequest{
			Items:           []models.OrderItemRequest{{ProductID: productID, Quantity: 1}},
			ShippingAddress: testAddress(),
			ShippingMethod:  models.ShippingMethodStandard,
			PaymentMethod:   "card",
			GuestEmail:      "guest@example.com",
		}

		// Act
		_, err := orderService.CreateOrder(ctx, nil, req)

		// Assert
		require.Error(t, err)

		appErr, ok := appErrors.IsAppError(err)
		require.True(t, ok)
		assert.Equal(t, appErrors.ErrCodeBadRequest, appErr.Code)
	})
}

func TestGetOrderByNumber(t *testing.T) {
	ctx := context.Background()

	t.Run("Success - Guest Order Resolves By Number Alone", func(t *testing.T) {
		// Arrange
		orderService, deps := newOrderService()

		deps.orderRepo.On("GetOrderByNumber", mock.Anything, "VLN2026083012345").
			Return(&models.Order{OrderNumber: "VLN2026083012345", GuestEmail: "guest@example.com"}, nil).Once()

		// Act
		order, err := orderService.GetOrderByNumber(ctx, nil, "VLN2026083012345")

		// Assert
		require.NoError(t, err)
		assert.Equal(t, "VLN2026083012345", order.OrderNumber)
	})

	t.Run("Success - Admin Sees Any Order", func(t *testing.T) {
		// Arrange
		orderService, deps := newOrderService()

		ownerID := uuid.New()
		claims := &models.Claims{UserID: uuid.New(), Role: models.RoleAdmin}

		deps.orderRepo.On("GetOrderByNumber", mock.Anything, "VLN2026083012345").
			Return(&models.Order{OrderNumber: "VLN2026083012345", UserID: &ownerID}, nil).Once()

		// Act
		_, err := orderService.GetOrderByNumber(ctx, claims, "VLN2026083012345")

		// Assert
		require.NoError(t, err)
	})

	t.Run("Failure - Anonymous Access To User Order", func(t *testing.T) {
		// Arrange
		orderService, deps := newOrderService()

		ownerID := uuid.New()

		deps.orderRepo.On("GetOrderByNumber", mock.Anything, "VLN2026083012345").
			Return(&models.Order{OrderNumber: "VLN2026083012345", UserID: &ownerID}, nil).Once()

		// Act
		_, err := orderService.GetOrderByNumber(ctx, nil, "VLN2026083012345")

		// Assert
		require.Error(t, err)

		appErr, ok := appErrors.IsAppError(err)
		require.True(t, ok)
		assert.Equal(t, appErrors.ErrCodeUnauthorized, appErr.Code)
	})

	t.Run("Failure - Wrong Customer", func(t *testing.T) {
		// Arrange
		orderService, deps := newOrderService()

		ownerID := uuid.New()
		claims := &models.Claims{UserID: uuid.New(), Role: models.RoleCustomer}

		deps.orderRepo.On("GetOrderByNumber", mock.Anything, "VLN2026083012345").
			Return(&models.Order{OrderNumber: "VLN2026083012345", UserID: &ownerID}, nil).Once()

		// Act
		_, err := orderService.GetOrderByNumber(ctx, claims, "VLN2026083012345")

		// Assert
		require.Error(t, err)

		appErr, ok := appErrors.IsAppError(err)
		require.True(t, ok)
		assert.Equal(t, appErrors.ErrCodeForbidden, appErr.Code)
	})

	t.Run("Failure - Unknown Order Number", func(t *testing.T) {
		// Arrange
		orderService, deps := newOrderService()

		deps.orderRepo.On("GetOrderByNumber", mock.Anything, "VLN0000000000000").
			Return(nil, sql.ErrNoRows).Once()

		// Act
		_, err := orderService.GetOrderByNumber(ctx, nil, "VLN0000000000000")

		// Assert
		require.Error(t, err)

		appErr, ok := appErrors.IsAppError(err)
		require.True(t, ok)
		assert.Equal(t, appErrors.ErrCodeNotFound, appErr.Code)
	})
}
