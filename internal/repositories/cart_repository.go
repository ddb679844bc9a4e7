package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"github.com/velunaskf/veluna-api/internal/models"
	"github.com/velunaskf/veluna-api/internal/utils"
)

type CartRepository interface {
	UpsertItem(ctx context.Context, item *models.CartItem) error
	GetItems(ctx context.Context, key models.CartKey) ([]models.CartItem, error)
	GetItemByID(ctx context.Context, id uuid.UUID, key models.CartKey) (*models.CartItem, error)
	UpdateItemQuantity(ctx context.Context, id uuid.UUID, key models.CartKey, quantity int) error
	RemoveItem(ctx context.Context, id uuid.UUID, key models.CartKey) error
	ClearCart(ctx context.Context, key models.CartKey) error
	MergeGuestCart(ctx context.Context, sessionID string, userID uuid.UUID) error
}

type cartRepository struct {
	DB *sql.DB
}

func NewCartRepo(db *sql.DB) CartRepository {
	return &cartRepository{DB: db}
}

// ownerClause appends the cart owner predicate and its argument, keeping
// guest and user carts isolated from each other.
func ownerClause(key models.CartKey, args []any) (string, []any) {
	if key.UserID != nil {
		args = append(args, *key.UserID)
		return fmt.Sprintf("user_id = $%d", len(args)), args
	}

	args = append(args, key.SessionID)

	return fmt.Sprintf("session_id = $%d", len(args)), args
}

func (r *cartRepository) UpsertItem(ctx context.Context, item *models.CartItem) error {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	// ON CONFLICT adds to the existing quantity so repeated adds accumulate.
	query := `
		INSERT INTO cart_items (user_id, session_id, product_id, quantity, price, customization_details)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (COALESCE(user_id::text, session_id), product_id)
		DO UPDATE SET quantity = cart_items.quantity + EXCLUDED.quantity,
		              price = EXCLUDED.price,
		              updated_at = NOW()
		RETURNING id, quantity, created_at, updated_at
	`

	err := r.DB.QueryRowContext(dbCtx, query,
		item.UserID, item.SessionID, item.ProductID, item.Quantity, item.Price, item.CustomizationDetails).
		Scan(&item.ID, &item.Quantity, &item.CreatedAt, &item.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to upsert cart item: %w", err)
	}

	return nil
}

func (r *cartRepository) GetItems(ctx context.Context, key models.CartKey) ([]models.CartItem, error) {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	owner, args := ownerClause(key, nil)

	query := `
		SELECT ci.id, ci.user_id, ci.session_id, ci.product_id, ci.quantity, ci.price,
		       ci.customization_details, ci.created_at, ci.updated_at,
		       p.id, p.name, p.slug, p.price, p.stock_quantity, p.is_active
		FROM cart_items ci
		JOIN products p ON ci.product_id = p.id
		WHERE ` + owner + `
		ORDER BY ci.created_at`

	rows, err := r.DB.QueryContext(dbCtx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list cart items: %w", err)
	}

	defer rows.Close()

	var items []models.CartItem

	for rows.Next() {
		var item models.CartItem

		product := &models.Product{}

		err := rows.Scan(&item.ID, &item.UserID, &item.SessionID, &item.ProductID, &item.Quantity, &item.Price,
			&item.CustomizationDetails, &item.CreatedAt, &item.UpdatedAt,
			&product.ID, &product.Name, &product.Slug, &product.Price, &product.StockQuantity, &product.IsActive)
		if err != nil {
			return nil, fmt.Errorf("failed to scan cart item: %w", err)
		}

		item.Product = product
		items = append(items, item)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return items, nil
}

func (r *cartRepository) GetItemByID(ctx context.Context, id uuid.UUID, key models.CartKey) (*models.CartItem, error) {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	owner, args := ownerClause(key, []any{id})

	item := &models.CartItem{}

	query := `
		SELECT id, user_id, session_id, product_id, quantity, price, customization_details, created_at, updated_at
		FROM cart_items
		WHERE id = $1 AND ` + owner

	err := r.DB.QueryRowContext(dbCtx, query, args...).
		Scan(&item.ID, &item.UserID, &item.SessionID, &item.ProductID, &item.Quantity, &item.Price,
			&item.CustomizationDetails, &item.CreatedAt, &item.UpdatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("querying database: %w", err)
	}

	return item, nil
}

func (r *cartRepository) UpdateItemQuantity(ctx context.Context, id uuid.UUID, key models.CartKey, quantity int) error {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	owner, args := ownerClause(key, []any{quantity, id})

	query := `UPDATE cart_items SET quantity = $1, updated_at = NOW() WHERE id = $2 AND ` + owner

	result, err := r.DB.ExecContext(dbCtx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to update cart item: %w", err)
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

func (r *cartRepository) RemoveItem(ctx context.Context, id uuid.UUID, key models.CartKey) error {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	owner, args := ownerClause(key, []any{id})

	query := `DELETE FROM cart_items WHERE id = $1 AND ` + owner

	result, err := r.DB.ExecContext(dbCtx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to remove cart item: %w", err)
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

func (r *cartRepository) ClearCart(ctx context.Context, key models.CartKey) error {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	owner, args := ownerClause(key, nil)

	query := `DELETE FROM cart_items WHERE ` + owner

	if _, err := r.DB.ExecContext(dbCtx, query, args...); err != nil {
		return fmt.Errorf("failed to clear cart: %w", err)
	}

	return nil
}

// MergeGuestCart reassigns a guest session's rows to the user who just
// signed in. Rows for products already in the user's cart have their
// quantities folded in, then the leftover guest rows are dropped.
func (r *cartRepository) MergeGuestCart(ctx context.Context, sessionID string, userID uuid.UUID) error {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	tx, err := r.DB.BeginTx(dbCtx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	defer func() { _ = tx.Rollback() }()

	foldQuery := `
		UPDATE cart_items u
		SET quantity = u.quantity + g.quantity, updated_at = NOW()
		FROM cart_items g
		WHERE u.user_id = $1 AND g.session_id = $2 AND u.product_id = g.product_id
	`

	if _, err := tx.ExecContext(dbCtx, foldQuery, userID, sessionID); err != nil {
		return fmt.Errorf("failed to merge guest cart: %w", err)
	}

	dropQuery := `
		DELETE FROM cart_items g
		WHERE g.session_id = $1
		  AND EXISTS (SELECT 1 FROM cart_items u WHERE u.user_id = $2 AND u.product_id = g.product_id)
	`

	if _, err := tx.ExecContext(dbCtx, dropQuery, sessionID, userID); err != nil {
		return fmt.Errorf("failed to drop merged guest rows: %w", err)
	}

	claimQuery := `
		UPDATE cart_items
		SET user_id = $1, session_id = NULL, updated_at = NOW()
		WHERE session_id = $2
	`

	if _, err := tx.ExecContext(dbCtx, claimQuery, userID, sessionID); err != nil {
		return fmt.Errorf("failed to claim guest cart: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}
