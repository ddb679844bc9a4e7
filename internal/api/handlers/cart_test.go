package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/velunaskf/veluna-api/internal/api/handlers"
	"github.com/velunaskf/veluna-api/internal/api/middleware"
	"github.com/velunaskf/veluna-api/internal/models"
	"github.com/velunaskf/veluna-api/internal/repositories/mocks"
	service "github.com/velunaskf/veluna-api/internal/services"
	"github.com/velunaskf/veluna-api/internal/utils/response"
)

type cartHandlerDeps struct {
	cartRepo    *mocks.CartRepository
	productRepo *mocks.ProductRepository
}

func setupCartHandler() (*handlers.CartHandler, *cartHandlerDeps) {
	deps := &cartHandlerDeps{
		cartRepo:    new(mocks.CartRepository),
		productRepo: new(mocks.ProductRepository),
	}

	cartService := service.NewCartService(deps.cartRepo, deps.productRepo)

	return handlers.NewCartHandler(cartService), deps
}

func addItemRequest(t *testing.T, body models.AddCartItemRequest) *http.Request {
	t.Helper()

	reqBody, err := json.Marshal(body)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/cart/items", bytes.NewBuffer(reqBody))
	req.Header.Set("Content-Type", "application/json")

	return req
}

func TestCartHandler_AddItem(t *testing.T) {
	productID := uuid.New()
	product := &models.Product{
		ID:            productID,
		Name:          "Silk Scarf",
		Price:         299,
		StockQuantity: 10,
		IsActive:      true,
	}

	t.Run("Success - Authenticated User Keys Cart By User ID", func(t *testing.T) {
		// Arrange
		cartHandler, deps := setupCartHandler()

		userID := uuid.New()
		claims := &models.Claims{UserID: userID, Role: models.RoleCustomer}

		deps.productRepo.On("GetProductByID", mock.Anything, productID).Return(product, nil).Once()
		deps.cartRepo.On("UpsertItem", mock.Anything, mock.MatchedBy(func(item *models.CartItem) bool {
			return item.UserID != nil && *item.UserID == userID && item.SessionID == nil
		})).Return(nil).Once()
		deps.cartRepo.On("GetItems", mock.Anything, models.CartKey{UserID: &userID}).
			Return([]models.CartItem{{ProductID: productID, Quantity: 2, Price: 299}}, nil).Once()

		req := addItemRequest(t, models.AddCartItemRequest{ProductID: productID, Quantity: 2})
		req = req.WithContext(context.WithValue(req.Context(), middleware.UserContextKey, claims))
		w := httptest.NewRecorder()

		// Act
		cartHandler.AddItem()(w, req)

		// Assert
		assert.Equal(t, http.StatusOK, w.Code)
		deps.cartRepo.AssertExpectations(t)
	})

	t.Run("Success - Guest Keys Cart By Session Header", func(t *testing.T) {
		// Arrange
		cartHandler, deps := setupCartHandler()

		sessionID := "sess-abc"

		deps.productRepo.On("GetProductByID", mock.Anything, productID).Return(product, nil).Once()
		deps.cartRepo.On("UpsertItem", mock.Anything, mock.MatchedBy(func(item *models.CartItem) bool {
			return item.UserID == nil && item.SessionID != nil && *item.SessionID == sessionID
		})).Return(nil).Once()
		deps.cartRepo.On("GetItems", mock.Anything, models.CartKey{SessionID: sessionID}).
			Return([]models.CartItem{}, nil).Once()

		req := addItemRequest(t, models.AddCartItemRequest{ProductID: productID, Quantity: 1})
		req.Header.Set(handlers.SessionHeader, sessionID)
		w := httptest.NewRecorder()

		// Act
		cartHandler.AddItem()(w, req)

		// Assert
		assert.Equal(t, http.StatusOK, w.Code)
		deps.cartRepo.AssertExpectations(t)
	})

	t.Run("Success - Session ID From Body When Header Missing", func(t *testing.T) {
		// Arrange
		cartHandler, deps := setupCartHandler()

		sessionID := "sess-body"

		deps.productRepo.On("GetProductByID", mock.Anything, productID).Return(product, nil).Once()
		deps.cartRepo.On("UpsertItem", mock.Anything, mock.MatchedBy(func(item *models.CartItem) bool {
			return item.SessionID != nil && *item.SessionID == sessionID
		})).Return(nil).Once()
		deps.cartRepo.On("GetItems", mock.Anything, models.CartKey{SessionID: sessionID}).
			Return([]models.CartItem{}, nil).Once()

		req := addItemRequest(t, models.AddCartItemRequest{ProductID: productID, Quantity: 1, SessionID: sessionID})
		w := httptest.NewRecorder()

		// Act
		cartHandler.AddItem()(w, req)

		// Assert
		assert.Equal(t, http.StatusOK, w.Code)
		deps.cartRepo.AssertExpectations(t)
	})
}

func TestCartHandler_GetCart(t *testing.T) {
	t.Run("Failure - No Session And No Auth Returns 400", func(t *testing.T) {
		// Arrange
		cartHandler, deps := setupCartHandler()

		req := httptest.NewRequest(http.MethodGet, "/api/v1/cart", nil)
		w := httptest.NewRecorder()

		// Act
		cartHandler.GetCart()(w, req)

		// Assert
		assert.Equal(t, http.StatusBadRequest, w.Code)

		var resp response.APIResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		require.NotNil(t, resp.Error)
		assert.Equal(t, "A session ID is required for guest carts", resp.Error.Message)

		deps.cartRepo.AssertNotCalled(t, "GetItems", mock.Anything, mock.Anything)
	})

	t.Run("Success - Empty Guest Cart Returns Zero Totals", func(t *testing.T) {
		// Arrange
		cartHandler, deps := setupCartHandler()

		deps.cartRepo.On("GetItems", mock.Anything, models.CartKey{SessionID: "sess-empty"}).
			Return(nil, nil).Once()

		req := httptest.NewRequest(http.MethodGet, "/api/v1/cart", nil)
		req.Header.Set(handlers.SessionHeader, "sess-empty")
		w := httptest.NewRecorder()

		// Act
		cartHandler.GetCart()(w, req)

		// Assert
		assert.Equal(t, http.StatusOK, w.Code)

		var resp response.APIResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.True(t, resp.Success)

		cartJSON, err := json.Marshal(resp.Data)
		require.NoError(t, err)

		var cart models.Cart
		require.NoError(t, json.Unmarshal(cartJSON, &cart))
		assert.NotNil(t, cart.Items)
		assert.Empty(t, cart.Items)
		assert.Zero(t, cart.ItemCount)
	})
}
