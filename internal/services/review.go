package service

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"
	"github.com/microcosm-cc/bluemonday"

	apperrors "github.com/velunaskf/veluna-api/internal/errors"
	"github.com/velunaskf/veluna-api/internal/models"
	repository "github.com/velunaskf/veluna-api/internal/repositories"
)

type ReviewService struct {
	repo        repository.ReviewRepository
	productRepo repository.ProductRepository
	sanitizer   *bluemonday.Policy
}

func NewReviewService(repo repository.ReviewRepository, productRepo repository.ProductRepository) *ReviewService {
	return &ReviewService{
		repo:        repo,
		productRepo: productRepo,
		sanitizer:   bluemonday.StrictPolicy(),
	}
}

// CreateReview accepts one review per user per product. Reviews from
// customers with a paid order containing the product are flagged as
// verified purchases.
func (s *ReviewService) CreateReview(ctx context.Context, userID uuid.UUID, req *models.CreateReviewRequest) (*models.Review, error) {
	if _, err := s.productRepo.GetProductByID(ctx, req.ProductID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperrors.NotFoundError("Product not found")
		}

		return nil, apperrors.DatabaseError("Failed to fetch product").WithError(err)
	}

	if existing, _ := s.repo.GetByProductAndUser(ctx, req.ProductID, userID); existing != nil {
		return nil, apperrors.DuplicateEntryError("You have already reviewed this product")
	}

	verified, err := s.repo.HasPaidPurchase(ctx, userID, req.ProductID)
	if err != nil {
		return nil, apperrors.DatabaseError("Failed to check purchase history").WithError(err)
	}

	review := &models.Review{
		ProductID:          req.ProductID,
		UserID:             userID,
		Rating:             req.Rating,
		Title:              s.sanitizer.Sanitize(req.Title),
		Comment:            s.sanitizer.Sanitize(req.Comment),
		IsVerifiedPurchase: verified,
		IsApproved:         true,
	}

	if err := s.repo.CreateReview(ctx, review); err != nil {
		if errors.Is(err, repository.ErrDuplicateEntry) {
			return nil, apperrors.DuplicateEntryError("You have already reviewed this product")
		}

		return nil, apperrors.DatabaseError("Failed to create review").WithError(err)
	}

	return review, nil
}

func (s *ReviewService) ListByProduct(ctx context.Context, productID uuid.UUID, page, pageSize int) (*models.ProductReviews, error) {
	if page < 1 {
		page = 1
	}

	if pageSize < 1 || pageSize > 100 {
		pageSize = 20
	}

	reviews, err := s.repo.ListByProduct(ctx, productID, page, pageSize)
	if err != nil {
		return nil, apperrors.DatabaseError("Failed to list reviews").WithError(err)
	}

	return reviews, nil
}
