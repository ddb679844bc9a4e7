package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"github.com/velunaskf/veluna-api/internal/models"
	"github.com/velunaskf/veluna-api/internal/utils"
)

type ReviewRepository interface {
	CreateReview(ctx context.Context, review *models.Review) error
	GetByProductAndUser(ctx context.Context, productID, userID uuid.UUID) (*models.Review, error)
	ListByProduct(ctx context.Context, productID uuid.UUID, page, pageSize int) (*models.ProductReviews, error)
	HasPaidPurchase(ctx context.Context, userID, productID uuid.UUID) (bool, error)
}

type reviewRepository struct {
	DB *sql.DB
}

func NewReviewRepo(db *sql.DB) ReviewRepository {
	return &reviewRepository{DB: db}
}

func (r *reviewRepository) CreateReview(ctx context.Context, review *models.Review) error {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `
		INSERT INTO reviews (product_id, user_id, rating, title, comment, is_verified_purchase, is_approved)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, created_at, updated_at
	`

	err := r.DB.QueryRowContext(dbCtx, query,
		review.ProductID, review.UserID, review.Rating, review.Title, review.Comment,
		review.IsVerifiedPurchase, review.IsApproved).
		Scan(&review.ID, &review.CreatedAt, &review.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return ErrDuplicateEntry
		}
		return fmt.Errorf("failed to insert review: %w", err)
	}

	return nil
}

func (r *reviewRepository) GetByProductAndUser(ctx context.Context, productID, userID uuid.UUID) (*models.Review, error) {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	review := &models.Review{}

	query := `
		SELECT id, product_id, user_id, rating, title, comment, is_verified_purchase, is_approved, created_at, updated_at
		FROM reviews
		WHERE product_id = $1 AND user_id = $2
	`

	err := r.DB.QueryRowContext(dbCtx, query, productID, userID).
		Scan(&review.ID, &review.ProductID, &review.UserID, &review.Rating, &review.Title,
			&review.Comment, &review.IsVerifiedPurchase, &review.IsApproved, &review.CreatedAt, &review.UpdatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("querying database: %w", err)
	}

	return review, nil
}

func (r *reviewRepository) ListByProduct(ctx context.Context, productID uuid.UUID, page, pageSize int) (*models.ProductReviews, error) {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	result := &models.ProductReviews{Reviews: []models.Review{}}

	summaryQuery := `
		SELECT COUNT(*), COALESCE(AVG(rating), 0)
		FROM reviews
		WHERE product_id = $1 AND is_approved = TRUE
	`

	if err := r.DB.QueryRowContext(dbCtx, summaryQuery, productID).Scan(&result.Total, &result.AvgRating); err != nil {
		return nil, fmt.Errorf("failed to summarize reviews: %w", err)
	}

	query := `
		SELECT r.id, r.product_id, r.user_id, u.name, r.rating, r.title, r.comment,
		       r.is_verified_purchase, r.is_approved, r.created_at, r.updated_at
		FROM reviews r
		JOIN users u ON r.user_id = u.id
		WHERE r.product_id = $1 AND r.is_approved = TRUE
		ORDER BY r.created_at DESC
		LIMIT $2 OFFSET $3`

	rows, err := r.DB.QueryContext(dbCtx, query, productID, pageSize, (page-1)*pageSize)
	if err != nil {
		return nil, fmt.Errorf("failed to list reviews: %w", err)
	}

	defer rows.Close()

	for rows.Next() {
		var review models.Review

		err := rows.Scan(&review.ID, &review.ProductID, &review.UserID, &review.UserName, &review.Rating,
			&review.Title, &review.Comment, &review.IsVerifiedPurchase, &review.IsApproved,
			&review.CreatedAt, &review.UpdatedAt)
		if err != nil {
			return nil, fmt.Errorf("failed to scan review: %w", err)
		}

		result.Reviews = append(result.Reviews, review)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return result, nil
}

// HasPaidPurchase reports whether the user has a paid order containing the
// product, which marks their review as a verified purchase.
func (r *reviewRepository) HasPaidPurchase(ctx context.Context, userID, productID uuid.UUID) (bool, error) {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	var exists bool

	query := `
		SELECT EXISTS (
			SELECT 1
			FROM orders o
			JOIN order_items oi ON oi.order_id = o.id
			WHERE o.user_id = $1 AND oi.product_id = $2 AND o.payment_status = 'paid'
		)
	`

	if err := r.DB.QueryRowContext(dbCtx, query, userID, productID).Scan(&exists); err != nil {
		return false, fmt.Errorf("querying database: %w", err)
	}

	return exists, nil
}
