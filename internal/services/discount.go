package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/velunaskf/veluna-api/internal/api/middleware"
	"github.com/velunaskf/veluna-api/internal/cache"
	apperrors "github.com/velunaskf/veluna-api/internal/errors"
	"github.com/velunaskf/veluna-api/internal/models"
	repository "github.com/velunaskf/veluna-api/internal/repositories"
)

const discountCacheTTL = 2 * time.Minute

type DiscountService struct {
	repo  repository.DiscountRepository
	cache cache.Cache
}

func NewDiscountService(repo repository.DiscountRepository, c cache.Cache) *DiscountService {
	return &DiscountService{repo: repo, cache: c}
}

func (s *DiscountService) CreateDiscount(ctx context.Context, req *models.CreateDiscountRequest) (*models.Discount, error) {
	discount := &models.Discount{
		Code:              strings.ToUpper(req.Code),
		Description:       req.Description,
		DiscountType:      req.DiscountType,
		DiscountValue:     req.DiscountValue,
		MinOrderAmount:    req.MinOrderAmount,
		MaxDiscountAmount: req.MaxDiscountAmount,
		ValidFrom:         req.ValidFrom,
		ValidUntil:        req.ValidUntil,
		UsageLimit:        req.UsageLimit,
		IsActive:          true,
	}

	if err := s.repo.CreateDiscount(ctx, discount); err != nil {
		if errors.Is(err, repository.ErrDuplicateEntry) {
			return nil, apperrors.DuplicateEntryError("A discount with this code already exists")
		}

		return nil, apperrors.DatabaseError("Failed to create discount").WithError(err)
	}

	s.invalidateList(ctx)

	return discount, nil
}

func (s *DiscountService) ListActive(ctx context.Context) ([]models.Discount, error) {
	logger := middleware.LoggerFromContext(ctx)
	cacheKey := cache.Key(cache.DiscountKeyPrefix, "active")

	var cached []models.Discount

	found, err := s.cache.Get(ctx, cacheKey, &cached)
	if err != nil {
		logger.Warn("Discount cache lookup failed", slog.Any("error", err))
	}

	if found {
		return cached, nil
	}

	discounts, err := s.repo.ListActive(ctx)
	if err != nil {
		return nil, apperrors.DatabaseError("Failed to list discounts").WithError(err)
	}

	if err := s.cache.Set(ctx, cacheKey, discounts, discountCacheTTL); err != nil {
		logger.Warn("Discount cache write failed", slog.Any("error", err))
	}

	return discounts, nil
}

// Validate evaluates a code against an order amount. Rules run in a fixed
// order: existence, start date, expiry, usage limit, minimum order. An
// invalid result is a normal response, not an error.
func (s *DiscountService) Validate(ctx context.Context, req *models.ValidateDiscountRequest) (*models.DiscountValidation, error) {
	discount, err := s.repo.GetByCode(ctx, req.Code)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return &models.DiscountValidation{
				Valid:   false,
				Reason:  models.DiscountReasonInvalid,
				Message: "This discount code is not valid",
			}, nil
		}

		return nil, apperrors.DatabaseError("Failed to fetch discount").WithError(err)
	}

	return evaluateDiscount(discount, req.OrderAmount), nil
}

func evaluateDiscount(discount *models.Discount, orderAmount float64) *models.DiscountValidation {
	now := time.Now()

	if discount.ValidFrom != nil && now.Before(*discount.ValidFrom) {
		return &models.DiscountValidation{
			Valid:   false,
			Reason:  models.DiscountReasonNotYetValid,
			Message: "This discount code is not yet active",
		}
	}

	if discount.ValidUntil != nil && now.After(*discount.ValidUntil) {
		return &models.DiscountValidation{
			Valid:   false,
			Reason:  models.DiscountReasonExpired,
			Message: "This discount code has expired",
		}
	}

	if discount.UsageLimit != nil && discount.UsageCount >= *discount.UsageLimit {
		return &models.DiscountValidation{
			Valid:   false,
			Reason:  models.DiscountReasonLimit,
			Message: "This discount code has reached its usage limit",
		}
	}

	if discount.MinOrderAmount != nil && orderAmount < *discount.MinOrderAmount {
		return &models.DiscountValidation{
			Valid:          false,
			Reason:         models.DiscountReasonMinOrder,
			Message:        fmt.Sprintf("Minimum order amount of ₹%g required", *discount.MinOrderAmount),
			MinOrderAmount: *discount.MinOrderAmount,
		}
	}

	amount := discountAmount(discount, orderAmount)

	return &models.DiscountValidation{
		Valid:   true,
		Message: "Discount code applied successfully",
		Discount: &models.AppliedDiscount{
			Code:           discount.Code,
			Description:    discount.Description,
			DiscountType:   discount.DiscountType,
			DiscountValue:  discount.DiscountValue,
			DiscountAmount: amount,
		},
	}
}

// discountAmount computes the money value of a discount. Percentage codes
// are capped by max_discount_amount when set; flat codes apply their full
// value even when it exceeds the order amount.
func discountAmount(discount *models.Discount, orderAmount float64) float64 {
	if discount.DiscountType == models.DiscountTypePercentage {
		amount := orderAmount * discount.DiscountValue / 100
		if discount.MaxDiscountAmount != nil && amount > *discount.MaxDiscountAmount {
			amount = *discount.MaxDiscountAmount
		}

		return roundMoney(amount)
	}

	return roundMoney(discount.DiscountValue)
}

func (s *DiscountService) invalidateList(ctx context.Context) {
	logger := middleware.LoggerFromContext(ctx)

	if err := s.cache.Delete(ctx, cache.Key(cache.DiscountKeyPrefix, "active")); err != nil {
		logger.Warn("Discount cache invalidation failed", slog.Any("error", err))
	}
}
