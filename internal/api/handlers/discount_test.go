package handlers_test

import (
	"bytes"
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/velunaskf/veluna-api/internal/api/handlers"
	cachemocks "github.com/velunaskf/veluna-api/internal/cache/mocks"
	"github.com/velunaskf/veluna-api/internal/models"
	"github.com/velunaskf/veluna-api/internal/repositories/mocks"
	service "github.com/velunaskf/veluna-api/internal/services"
	"github.com/velunaskf/veluna-api/internal/utils/response"
)

func setupDiscountHandler() (*handlers.DiscountHandler, *mocks.DiscountRepository) {
	mockRepo := new(mocks.DiscountRepository)
	discountService := service.NewDiscountService(mockRepo, new(cachemocks.Cache))

	return handlers.NewDiscountHandler(discountService), mockRepo
}

func validateRequest(t *testing.T, body any) *http.Request {
	t.Helper()

	reqBody, err := json.Marshal(body)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/discounts/validate", bytes.NewBuffer(reqBody))
	req.Header.Set("Content-Type", "application/json")

	return req
}

func TestDiscountHandler_ValidateDiscount(t *testing.T) {
	t.Run("Success - Usable Code Returns 200", func(t *testing.T) {
		// Arrange
		discountHandler, mockRepo := setupDiscountHandler()

		mockRepo.On("GetByCode", mock.Anything, "SAVE10").Return(&models.Discount{
			Code:          "SAVE10",
			DiscountType:  models.DiscountTypePercentage,
			DiscountValue: 10,
			IsActive:      true,
		}, nil).Once()

		req := validateRequest(t, models.ValidateDiscountRequest{Code: "SAVE10", OrderAmount: 500})
		w := httptest.NewRecorder()

		// Act
		discountHandler.ValidateDiscount()(w, req)

		// Assert
		assert.Equal(t, http.StatusOK, w.Code)

		var validation models.DiscountValidation
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &validation))
		assert.True(t, validation.Valid)
		require.NotNil(t, validation.Discount)
		assert.InDelta(t, 50.0, validation.Discount.DiscountAmount, 0.001)

		mockRepo.AssertExpectations(t)
	})

	t.Run("Failure - Unknown Code Returns 404", func(t *testing.T) {
		// Arrange
		discountHandler, mockRepo := setupDiscountHandler()

		mockRepo.On("GetByCode", mock.Anything, "GHOST").Return(nil, sql.ErrNoRows).Once()

		req := validateRequest(t, models.ValidateDiscountRequest{Code: "GHOST", OrderAmount: 500})
		w := httptest.NewRecorder()

		// Act
		discountHandler.ValidateDiscount()(w, req)

		// Assert
		assert.Equal(t, http.StatusNotFound, w.Code)

		var validation models.DiscountValidation
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &validation))
		assert.False(t, validation.Valid)
		assert.Equal(t, models.DiscountReasonInvalid, validation.Reason)
	})

	t.Run("Failure - Minimum Order Not Met Returns 400 With Minimum", func(t *testing.T) {
		// Arrange
		discountHandler, mockRepo := setupDiscountHandler()

		minOrder := 1000.0

		mockRepo.On("GetByCode", mock.Anything, "BIG50").Return(&models.Discount{
			Code:           "BIG50",
			DiscountType:   models.DiscountTypeFlat,
			DiscountValue:  50,
			MinOrderAmount: &minOrder,
			IsActive:       true,
		}, nil).Once()

		req := validateRequest(t, models.ValidateDiscountRequest{Code: "BIG50", OrderAmount: 400})
		w := httptest.NewRecorder()

		// Act
		discountHandler.ValidateDiscount()(w, req)

		// Assert
		assert.Equal(t, http.StatusBadRequest, w.Code)

		var validation models.DiscountValidation
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &validation))
		assert.Equal(t, models.DiscountReasonMinOrder, validation.Reason)
		assert.InDelta(t, 1000.0, validation.MinOrderAmount, 0.001)
	})

	t.Run("Failure - Missing Code Returns Field-Level Detail", func(t *testing.T) {
		// Arrange
		discountHandler, _ := setupDiscountHandler()

		req := validateRequest(t, models.ValidateDiscountRequest{OrderAmount: 400})
		w := httptest.NewRecorder()

		// Act
		discountHandler.ValidateDiscount()(w, req)

		// Assert
		assert.Equal(t, http.StatusBadRequest, w.Code)

		var resp response.APIResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.False(t, resp.Success)
		require.NotNil(t, resp.Error)
		assert.Equal(t, "Validation failed", resp.Error.Message)
		require.Len(t, resp.Error.Details, 1)
		assert.Equal(t, "Field Code is required", resp.Error.Details[0])
	})
}
