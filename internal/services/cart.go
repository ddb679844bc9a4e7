package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	apperrors "github.com/velunaskf/veluna-api/internal/errors"
	"github.com/velunaskf/veluna-api/internal/models"
	repository "github.com/velunaskf/veluna-api/internal/repositories"
)

type CartService struct {
	repo        repository.CartRepository
	productRepo repository.ProductRepository
}

func NewCartService(repo repository.CartRepository, productRepo repository.ProductRepository) *CartService {
	return &CartService{repo: repo, productRepo: productRepo}
}

// AddItem snapshots the product's current price onto the cart row; checkout
// re-prices from the catalog, so the snapshot is display-only.
func (s *CartService) AddItem(ctx context.Context, key models.CartKey, req *models.AddCartItemRequest) (*models.Cart, error) {
	product, err := s.productRepo.GetProductByID(ctx, req.ProductID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperrors.NotFoundError("Product not found")
		}

		return nil, apperrors.DatabaseError("Failed to fetch product").WithError(err)
	}

	if !product.IsActive {
		return nil, apperrors.BadRequestError("Product is not available")
	}

	if product.StockQuantity < req.Quantity {
		return nil, apperrors.BadRequestError(fmt.Sprintf("Only %d units available", product.StockQuantity))
	}

	item := &models.CartItem{
		UserID:               key.UserID,
		ProductID:            req.ProductID,
		Quantity:             req.Quantity,
		Price:                product.Price,
		CustomizationDetails: req.CustomizationDetails,
	}

	if key.UserID == nil {
		item.SessionID = &key.SessionID
	}

	if err := s.repo.UpsertItem(ctx, item); err != nil {
		return nil, apperrors.DatabaseError("Failed to add item to cart").WithError(err)
	}

	return s.GetCart(ctx, key)
}

func (s *CartService) GetCart(ctx context.Context, key models.CartKey) (*models.Cart, error) {
	items, err := s.repo.GetItems(ctx, key)
	if err != nil {
		return nil, apperrors.DatabaseError("Failed to fetch cart").WithError(err)
	}

	cart := &models.Cart{Items: items}
	if cart.Items == nil {
		cart.Items = []models.CartItem{}
	}

	for _, item := range items {
		cart.Subtotal += item.Price * float64(item.Quantity)
		cart.ItemCount += item.Quantity
	}

	cart.Subtotal = roundMoney(cart.Subtotal)

	return cart, nil
}

func (s *CartService) UpdateItem(ctx context.Context, key models.CartKey, itemID uuid.UUID, req *models.UpdateCartItemRequest) (*models.Cart, error) {
	item, err := s.repo.GetItemByID(ctx, itemID, key)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperrors.NotFoundError("Cart item not found")
		}

		return nil, apperrors.DatabaseError("Failed to fetch cart item").WithError(err)
	}

	product, err := s.productRepo.GetProductByID(ctx, item.ProductID)
	if err != nil {
		return nil, apperrors.DatabaseError("Failed to fetch product").WithError(err)
	}

	if product.StockQuantity < req.Quantity {
		return nil, apperrors.BadRequestError(fmt.Sprintf("Only %d units available", product.StockQuantity))
	}

	if err := s.repo.UpdateItemQuantity(ctx, itemID, key, req.Quantity); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperrors.NotFoundError("Cart item not found")
		}

		return nil, apperrors.DatabaseError("Failed to update cart item").WithError(err)
	}

	return s.GetCart(ctx, key)
}

func (s *CartService) RemoveItem(ctx context.Context, key models.CartKey, itemID uuid.UUID) (*models.Cart, error) {
	if err := s.repo.RemoveItem(ctx, itemID, key); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperrors.NotFoundError("Cart item not found")
		}

		return nil, apperrors.DatabaseError("Failed to remove cart item").WithError(err)
	}

	return s.GetCart(ctx, key)
}

func (s *CartService) ClearCart(ctx context.Context, key models.CartKey) error {
	if err := s.repo.ClearCart(ctx, key); err != nil {
		return apperrors.DatabaseError("Failed to clear cart").WithError(err)
	}

	return nil
}
