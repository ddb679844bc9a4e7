package service_test

import (
	"context"
	"database/sql"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	appErrors "github.com/velunaskf/veluna-api/internal/errors"
	"github.com/velunaskf/veluna-api/internal/models"
	"github.com/velunaskf/veluna-api/internal/repositories/mocks"
	service "github.com/velunaskf/veluna-api/internal/services"
)

func newReviewService() (*service.ReviewService, *mocks.ReviewRepository, *mocks.ProductRepository) {
	reviewRepo := new(mocks.ReviewRepository)
	productRepo := new(mocks.ProductRepository)

	return service.NewReviewService(reviewRepo, productRepo), reviewRepo, productRepo
}

func TestCreateReview(t *testing.T) {
	ctx := context.Background()

	t.Run("Success - Verified Purchase Flag Set", func(t *testing.T) {
		// Arrange
		reviewService, reviewRepo, productRepo := newReviewService()

		userID := uuid.New()
		productID := uuid.New()

		productRepo.On("GetProductByID", mock.Anything, productID).
			Return(testProduct(productID, 100, 5), nil).Once()
		reviewRepo.On("GetByProductAndUser", mock.Anything, productID, userID).
			Return(nil, sql.ErrNoRows).Once()
		reviewRepo.On("HasPaidPurchase", mock.Anything, userID, productID).Return(true, nil).Once()
		reviewRepo.On("CreateReview", mock.Anything, mock.Anything).Return(nil).Once()

		// Act
		review, err := reviewService.CreateReview(ctx, userID, &models.CreateReviewRequest{
			ProductID: productID,
			Rating:    5,
			Title:     "Lovely",
			Comment:   "Soft and well made.",
		})

		// Assert
		require.NoError(t, err)
		assert.True(t, review.IsVerifiedPurchase)
		assert.True(t, review.IsApproved)
		reviewRepo.AssertExpectations(t)
	})

	t.Run("Success - Markup Is Stripped From Title And Comment", func(t *testing.T) {
		// Arrange
		reviewService, reviewRepo, productRepo := newReviewService()

		userID := uuid.New()
		productID := uuid.New()

		productRepo.On("GetProductByID", mock.Anything, productID).
			Return(testProduct(productID, 100, 5), nil).Once()
		reviewRepo.On("GetByProductAndUser", mock.Anything, productID, userID).
			Return(nil, sql.ErrNoRows).Once()
		reviewRepo.On("HasPaidPurchase", mock.Anything, userID, productID).Return(false, nil).Once()
		reviewRepo.On("CreateReview", mock.Anything, mock.Anything).Return(nil).Once()

		// Act
		review, err := reviewService.CreateReview(ctx, userID, &models.CreateReviewRequest{
			ProductID: productID,
			Rating:    4,
			Title:     `<script>alert("x")</script>Nice`,
			Comment:   `Great <b>quality</b>`,
		})

		// Assert
		require.NoError(t, err)
		assert.Equal(t, "Nice", review.Title)
		assert.Equal(t, "Great quality", review.Comment)
		assert.False(t, review.IsVerifiedPurchase)
	})

	t.Run("Failure - Second Review For Same Product", func(t *testing.T) {
		// Arrange
		reviewService, reviewRepo, productRepo := newReviewService()

		userID := uuid.New()
		productID := uuid.New()

		productRepo.On("GetProductByID", mock.Anything, productID).
			Return(testProduct(productID, 100, 5), nil).Once()
		reviewRepo.On("GetByProductAndUser", mock.Anything, productID, userID).
			Return(&models.Review{ProductID: productID, UserID: userID}, nil).Once()

		// Act
		review, err := reviewService.CreateReview(ctx, userID, &models.CreateReviewRequest{
			ProductID: productID,
			Rating:    3,
			Comment:   "Again.",
		})

		// Assert
		require.Error(t, err)
		assert.Nil(t, review)

		appErr, ok := appErrors.IsAppError(err)
		require.True(t, ok)
		assert.Equal(t, appErrors.ErrCodeDuplicateEntry, appErr.Code)

		reviewRepo.AssertNotCalled(t, "CreateReview", mock.Anything, mock.Anything)
	})

	t.Run("Failure - Unknown Product", func(t *testing.T) {
		// Arrange
		reviewService, reviewRepo, productRepo := newReviewService()

		productID := uuid.New()

		productRepo.On("GetProductByID", mock.Anything, productID).Return(nil, sql.ErrNoRows).Once()

		// Act
		_, err := reviewService.CreateReview(ctx, uuid.New(), &models.CreateReviewRequest{
			ProductID: productID,
			Rating:    3,
			Comment:   "Hm.",
		})

		// Assert
		require.Error(t, err)

		appErr, ok := appErrors.IsAppError(err)
		require.True(t, ok)
		assert.Equal(t, appErrors.ErrCodeNotFound, appErr.Code)

		reviewRepo.AssertNotCalled(t, "CreateReview", mock.Anything, mock.Anything)
	})
}

func TestListReviewsByProduct(t *testing.T) {
	ctx := context.Background()

	t.Run("Success - Summary Passed Through", func(t *testing.T) {
		// Arrange
		reviewService, reviewRepo, _ := newReviewService()

		productID := uuid.New()

		reviewRepo.On("ListByProduct", mock.Anything, productID, 1, 20).
			Return(&models.ProductReviews{Total: 2, AvgRating: 4.5, Reviews: []models.Review{{}, {}}}, nil).Once()

		// Act
		reviews, err := reviewService.ListByProduct(ctx, productID, 0, 0)

		// Assert
		require.NoError(t, err)
		assert.Equal(t, 2, reviews.Total)
		assert.InDelta(t, 4.5, reviews.AvgRating, 0.001)
		reviewRepo.AssertExpectations(t)
	})
}
