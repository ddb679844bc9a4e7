package service

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/velunaskf/veluna-api/internal/api/middleware"
	"github.com/velunaskf/veluna-api/internal/cache"
	apperrors "github.com/velunaskf/veluna-api/internal/errors"
	"github.com/velunaskf/veluna-api/internal/models"
	repository "github.com/velunaskf/veluna-api/internal/repositories"
)

const productCacheTTL = 5 * time.Minute

type ProductService struct {
	repo  repository.ProductRepository
	cache cache.Cache
}

func NewProductService(repo repository.ProductRepository, c cache.Cache) *ProductService {
	return &ProductService{repo: repo, cache: c}
}

func (s *ProductService) CreateProduct(ctx context.Context, req *models.CreateProductRequest) (*models.Product, error) {
	product := &models.Product{
		CategoryID:    req.CategoryID,
		Name:          req.Name,
		Slug:          req.Slug,
		Description:   req.Description,
		Price:         req.Price,
		OriginalPrice: req.OriginalPrice,
		StockQuantity: req.StockQuantity,
		SKU:           req.SKU,
		IsActive:      true,
		IsFeatured:    req.IsFeatured,
		IsBestseller:  req.IsBestseller,
	}

	if err := s.repo.CreateProduct(ctx, product); err != nil {
		if errors.Is(err, repository.ErrDuplicateEntry) {
			return nil, apperrors.DuplicateEntryError("A product with this slug or SKU already exists")
		}

		return nil, apperrors.DatabaseError("Failed to create product").WithError(err)
	}

	return product, nil
}

func (s *ProductService) GetProductByID(ctx context.Context, id uuid.UUID) (*models.Product, error) {
	logger := middleware.LoggerFromContext(ctx)
	cacheKey := cache.Key(cache.ProductKeyPrefix, id.String())

	var cached models.Product

	found, err := s.cache.Get(ctx, cacheKey, &cached)
	if err != nil {
		logger.Warn("Product cache lookup failed", slog.Any("error", err))
	}

	if found {
		return &cached, nil
	}

	product, err := s.repo.GetProductByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperrors.NotFoundError("Product not found")
		}

		return nil, apperrors.DatabaseError("Failed to fetch product").WithError(err)
	}

	if err := s.cache.Set(ctx, cacheKey, product, productCacheTTL); err != nil {
		logger.Warn("Product cache write failed", slog.Any("error", err))
	}

	return product, nil
}

func (s *ProductService) GetProductBySlug(ctx context.Context, slug string) (*models.Product, error) {
	product, err := s.repo.GetProductBySlug(ctx, slug)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperrors.NotFoundError("Product not found")
		}

		return nil, apperrors.DatabaseError("Failed to fetch product").WithError(err)
	}

	return product, nil
}

func (s *ProductService) UpdateProduct(ctx context.Context, id uuid.UUID, req *models.UpdateProductRequest) (*models.Product, error) {
	product, err := s.repo.GetProductByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperrors.NotFoundError("Product not found")
		}

		return nil, apperrors.DatabaseError("Failed to fetch product").WithError(err)
	}

	if req.CategoryID != nil {
		product.CategoryID = *req.CategoryID
	}
	if req.Name != nil {
		product.Name = *req.Name
	}
	if req.Description != nil {
		product.Description = *req.Description
	}
	if req.Price != nil {
		product.Price = *req.Price
	}
	if req.OriginalPrice != nil {
		product.OriginalPrice = req.OriginalPrice
	}
	if req.StockQuantity != nil {
		product.StockQuantity = *req.StockQuantity
	}
	if req.IsActive != nil {
		product.IsActive = *req.IsActive
	}
	if req.IsFeatured != nil {
		product.IsFeatured = *req.IsFeatured
	}
	if req.IsBestseller != nil {
		product.IsBestseller = *req.IsBestseller
	}

	if err := s.repo.UpdateProduct(ctx, product); err != nil {
		return nil, apperrors.DatabaseError("Failed to update product").WithError(err)
	}

	s.invalidate(ctx, id)

	return product, nil
}

func (s *ProductService) DeactivateProduct(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.DeactivateProduct(ctx, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return apperrors.NotFoundError("Product not found")
		}

		return apperrors.DatabaseError("Failed to deactivate product").WithError(err)
	}

	s.invalidate(ctx, id)

	return nil
}

func (s *ProductService) ListProducts(ctx context.Context, filter *models.ProductFilter) ([]*models.Product, int, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}

	if filter.PageSize < 1 || filter.PageSize > 100 {
		filter.PageSize = 20
	}

	products, total, err := s.repo.ListProducts(ctx, filter)
	if err != nil {
		return nil, 0, apperrors.DatabaseError("Failed to list products").WithError(err)
	}

	return products, total, nil
}

func (s *ProductService) ListCategories(ctx context.Context) ([]models.Category, error) {
	logger := middleware.LoggerFromContext(ctx)
	cacheKey := cache.Key(cache.CategoryKeyPrefix, "all")

	var cached []models.Category

	found, err := s.cache.Get(ctx, cacheKey, &cached)
	if err != nil {
		logger.Warn("Category cache lookup failed", slog.Any("error", err))
	}

	if found {
		return cached, nil
	}

	categories, err := s.repo.ListCategories(ctx)
	if err != nil {
		return nil, apperrors.DatabaseError("Failed to list categories").WithError(err)
	}

	if err := s.cache.Set(ctx, cacheKey, categories, productCacheTTL); err != nil {
		logger.Warn("Category cache write failed", slog.Any("error", err))
	}

	return categories, nil
}

func (s *ProductService) invalidate(ctx context.Context, id uuid.UUID) {
	logger := middleware.LoggerFromContext(ctx)

	if err := s.cache.Delete(ctx, cache.Key(cache.ProductKeyPrefix, id.String())); err != nil {
		logger.Warn("Product cache invalidation failed", slog.Any("error", err))
	}
}
