package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/velunaskf/veluna-api/internal/models"
	"github.com/velunaskf/veluna-api/internal/utils"
)

type DiscountRepository interface {
	CreateDiscount(ctx context.Context, discount *models.Discount) error
	GetByCode(ctx context.Context, code string) (*models.Discount, error)
	ListActive(ctx context.Context) ([]models.Discount, error)
	IncrementUsage(ctx context.Context, code string) error
}

type discountRepository struct {
	DB *sql.DB
}

func NewDiscountRepo(db *sql.DB) DiscountRepository {
	return &discountRepository{DB: db}
}

const discountColumns = `id, code, description, discount_type, discount_value, min_order_amount,
	       max_discount_amount, valid_from, valid_until, usage_limit, usage_count, is_active, created_at`

func scanDiscount(row interface{ Scan(...any) error }) (*models.Discount, error) {
	discount := &models.Discount{}

	err := row.Scan(&discount.ID, &discount.Code, &discount.Description, &discount.DiscountType,
		&discount.DiscountValue, &discount.MinOrderAmount, &discount.MaxDiscountAmount,
		&discount.ValidFrom, &discount.ValidUntil, &discount.UsageLimit, &discount.UsageCount,
		&discount.IsActive, &discount.CreatedAt)
	if err != nil {
		return nil, err
	}

	return discount, nil
}

func (r *discountRepository) CreateDiscount(ctx context.Context, discount *models.Discount) error {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `
		INSERT INTO discounts (code, description, discount_type, discount_value, min_order_amount,
		                       max_discount_amount, valid_from, valid_until, usage_limit, is_active)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING id, usage_count, created_at
	`

	err := r.DB.QueryRowContext(dbCtx, query,
		discount.Code, discount.Description, discount.DiscountType, discount.DiscountValue,
		discount.MinOrderAmount, discount.MaxDiscountAmount, discount.ValidFrom, discount.ValidUntil,
		discount.UsageLimit, discount.IsActive).
		Scan(&discount.ID, &discount.UsageCount, &discount.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return ErrDuplicateEntry
		}
		return fmt.Errorf("failed to insert discount: %w", err)
	}

	return nil
}

// GetByCode matches codes case-insensitively; only active codes are returned.
func (r *discountRepository) GetByCode(ctx context.Context, code string) (*models.Discount, error) {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `
		SELECT ` + discountColumns + `
		FROM discounts
		WHERE UPPER(code) = UPPER($1) AND is_active = TRUE`

	discount, err := scanDiscount(r.DB.QueryRowContext(dbCtx, query, code))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("querying database: %w", err)
	}

	return discount, nil
}

func (r *discountRepository) ListActive(ctx context.Context) ([]models.Discount, error) {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `
		SELECT ` + discountColumns + `
		FROM discounts
		WHERE is_active = TRUE
		  AND (valid_from IS NULL OR valid_from <= NOW())
		  AND (valid_until IS NULL OR valid_until > NOW())
		ORDER BY created_at DESC`

	rows, err := r.DB.QueryContext(dbCtx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list discounts: %w", err)
	}

	defer rows.Close()

	var discounts []models.Discount

	for rows.Next() {
		discount, err := scanDiscount(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan discount: %w", err)
		}

		discounts = append(discounts, *discount)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return discounts, nil
}

// IncrementUsage bumps usage_count only while the code is still under its
// limit, so two concurrent orders cannot push it past usage_limit.
func (r *discountRepository) IncrementUsage(ctx context.Context, code string) error {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `
		UPDATE discounts
		SET usage_count = usage_count + 1
		WHERE UPPER(code) = UPPER($1)
		  AND (usage_limit IS NULL OR usage_count < usage_limit)
	`

	result, err := r.DB.ExecContext(dbCtx, query, code)
	if err != nil {
		return fmt.Errorf("failed to increment discount usage: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get affected rows: %w", err)
	}

	if rows == 0 {
		return sql.ErrNoRows
	}

	return nil
}
