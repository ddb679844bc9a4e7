package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"github.com/velunaskf/veluna-api/internal/models"
	"github.com/velunaskf/veluna-api/internal/utils"
)

type WishlistRepository interface {
	AddItem(ctx context.Context, item *models.WishlistItem) error
	ListByUser(ctx context.Context, userID uuid.UUID) ([]models.WishlistItem, error)
	RemoveItem(ctx context.Context, userID, productID uuid.UUID) error
}

type wishlistRepository struct {
	DB *sql.DB
}

func NewWishlistRepo(db *sql.DB) WishlistRepository {
	return &wishlistRepository{DB: db}
}

func (r *wishlistRepository) AddItem(ctx context.Context, item *models.WishlistItem) error {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `
		INSERT INTO wishlist_items (user_id, product_id)
		VALUES ($1, $2)
		RETURNING id, created_at
	`

	err := r.DB.QueryRowContext(dbCtx, query, item.UserID, item.ProductID).
		Scan(&item.ID, &item.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return ErrDuplicateEntry
		}
		return fmt.Errorf("failed to insert wishlist item: %w", err)
	}

	return nil
}

func (r *wishlistRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]models.WishlistItem, error) {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `
		SELECT w.id, w.user_id, w.product_id, w.created_at,
		       p.id, p.name, p.slug, p.price, p.original_price, p.stock_quantity, p.is_active
		FROM wishlist_items w
		JOIN products p ON w.product_id = p.id
		WHERE w.user_id = $1
		ORDER BY w.created_at DESC`

	rows, err := r.DB.QueryContext(dbCtx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list wishlist items: %w", err)
	}

	defer rows.Close()

	var items []models.WishlistItem

	for rows.Next() {
		var item models.WishlistItem

		product := &models.Product{}

		err := rows.Scan(&item.ID, &item.UserID, &item.ProductID, &item.CreatedAt,
			&product.ID, &product.Name, &product.Slug, &product.Price, &product.OriginalPrice,
			&product.StockQuantity, &product.IsActive)
		if err != nil {
			return nil, fmt.Errorf("failed to scan wishlist item: %w", err)
		}

		item.Product = product
		items = append(items, item)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return items, nil
}

func (r *wishlistRepository) RemoveItem(ctx context.Context, userID, productID uuid.UUID) error {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `DELETE FROM wishlist_items WHERE user_id = $1 AND product_id = $2`

	result, err := r.DB.ExecContext(dbCtx, query, userID, productID)
	if err != nil {
		return fmt.Errorf("failed to remove wishlist item: %w", err)
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
