package service

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"

	apperrors "github.com/velunaskf/veluna-api/internal/errors"
	"github.com/velunaskf/veluna-api/internal/models"
	repository "github.com/velunaskf/veluna-api/internal/repositories"
)

type WishlistService struct {
	repo        repository.WishlistRepository
	productRepo repository.ProductRepository
}

func NewWishlistService(repo repository.WishlistRepository, productRepo repository.ProductRepository) *WishlistService {
	return &WishlistService{repo: repo, productRepo: productRepo}
}

func (s *WishlistService) AddItem(ctx context.Context, userID uuid.UUID, req *models.AddWishlistItemRequest) (*models.WishlistItem, error) {
	if _, err := s.productRepo.GetProductByID(ctx, req.ProductID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperrors.NotFoundError("Product not found")
		}

		return nil, apperrors.DatabaseError("Failed to fetch product").WithError(err)
	}

	item := &models.WishlistItem{
		UserID:    userID,
		ProductID: req.ProductID,
	}

	if err := s.repo.AddItem(ctx, item); err != nil {
		if errors.Is(err, repository.ErrDuplicateEntry) {
			return nil, apperrors.DuplicateEntryError("Product is already in your wishlist")
		}

		return nil, apperrors.DatabaseError("Failed to add wishlist item").WithError(err)
	}

	return item, nil
}

func (s *WishlistService) ListItems(ctx context.Context, userID uuid.UUID) ([]models.WishlistItem, error) {
	items, err := s.repo.ListByUser(ctx, userID)
	if err != nil {
		return nil, apperrors.DatabaseError("Failed to list wishlist").WithError(err)
	}

	if items == nil {
		items = []models.WishlistItem{}
	}

	return items, nil
}

func (s *WishlistService) RemoveItem(ctx context.Context, userID, productID uuid.UUID) error {
	if err := s.repo.RemoveItem(ctx, userID, productID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return apperrors.NotFoundError("Product is not in your wishlist")
		}

		return apperrors.DatabaseError("Failed to remove wishlist item").WithError(err)
	}

	return nil
}
