package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/velunaskf/veluna-api/internal/models"
	"github.com/velunaskf/veluna-api/internal/utils"
)

type ProductRepository interface {
	CreateProduct(ctx context.Context, product *models.Product) error
	GetProductByID(ctx context.Context, id uuid.UUID) (*models.Product, error)
	GetProductBySlug(ctx context.Context, slug string) (*models.Product, error)
	UpdateProduct(ctx context.Context, product *models.Product) error
	DeactivateProduct(ctx context.Context, id uuid.UUID) error
	ListProducts(ctx context.Context, filter *models.ProductFilter) ([]*models.Product, int, error)
	ListCategories(ctx context.Context) ([]models.Category, error)
}

type productRepository struct {
	DB *sql.DB
}

func NewProductRepo(db *sql.DB) ProductRepository {
	return &productRepository{DB: db}
}

const productColumns = `p.id, p.category_id, p.name, p.slug, p.description, p.price, p.original_price,
	       p.stock_quantity, p.sku, p.is_active, p.is_featured, p.is_bestseller, p.created_at, p.updated_at,
	       c.id, c.name, c.slug`

func scanProduct(row interface{ Scan(...any) error }) (*models.Product, error) {
	product := &models.Product{}
	category := &models.Category{}

	err := row.Scan(&product.ID, &product.CategoryID, &product.Name, &product.Slug, &product.Description,
		&product.Price, &product.OriginalPrice, &product.StockQuantity, &product.SKU,
		&product.IsActive, &product.IsFeatured, &product.IsBestseller, &product.CreatedAt, &product.UpdatedAt,
		&category.ID, &category.Name, &category.Slug)
	if err != nil {
		return nil, err
	}

	product.Category = category

	return product, nil
}

func (r *productRepository) CreateProduct(ctx context.Context, product *models.Product) error {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `
		INSERT INTO products (category_id, name, slug, description, price, original_price, stock_quantity, sku, is_active, is_featured, is_bestseller)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING id, created_at, updated_at
	`

	err := r.DB.QueryRowContext(dbCtx, query,
		product.CategoryID, product.Name, product.Slug, product.Description, product.Price,
		product.OriginalPrice, product.StockQuantity, product.SKU, product.IsActive,
		product.IsFeatured, product.IsBestseller).
		Scan(&product.ID, &product.CreatedAt, &product.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return ErrDuplicateEntry
		}
		return fmt.Errorf("failed to insert product: %w", err)
	}

	return nil
}

func (r *productRepository) GetProductByID(ctx context.Context, id uuid.UUID) (*models.Product, error) {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `
		SELECT ` + productColumns + `
		FROM products p
		LEFT JOIN categories c ON p.category_id = c.id
		WHERE p.id = $1`

	product, err := scanProduct(r.DB.QueryRowContext(dbCtx, query, id))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("querying database: %w", err)
	}

	return product, nil
}

func (r *productRepository) GetProductBySlug(ctx context.Context, slug string) (*models.Product, error) {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `
		SELECT ` + productColumns + `
		FROM products p
		LEFT JOIN categories c ON p.category_id = c.id
		WHERE p.slug = $1 AND p.is_active = TRUE`

	product, err := scanProduct(r.DB.QueryRowContext(dbCtx, query, slug))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("querying database: %w", err)
	}

	return product, nil
}

func (r *productRepository) UpdateProduct(ctx context.Context, product *models.Product) error {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `
		UPDATE products
		SET category_id = $1, name = $2, description = $3, price = $4, original_price = $5,
		    stock_quantity = $6, is_active = $7, is_featured = $8, is_bestseller = $9, updated_at = NOW()
		WHERE id = $10
		RETURNING updated_at
	`

	err := r.DB.QueryRowContext(dbCtx, query,
		product.CategoryID, product.Name, product.Description, product.Price, product.OriginalPrice,
		product.StockQuantity, product.IsActive, product.IsFeatured, product.IsBestseller, product.ID).
		Scan(&product.UpdatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return err
		}
		return fmt.Errorf("failed to update product: %w", err)
	}

	return nil
}

// DeactivateProduct soft-deletes: the row stays referenced by order items.
func (r *productRepository) DeactivateProduct(ctx context.Context, id uuid.UUID) error {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `UPDATE products SET is_active = FALSE, updated_at = NOW() WHERE id = $1`

	result, err := r.DB.ExecContext(dbCtx, query, id)
	if err != nil {
		return fmt.Errorf("failed to deactivate product: %w", err)
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

func (r *productRepository) ListProducts(ctx context.Context, filter *models.ProductFilter) ([]*models.Product, int, error) {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	conditions := []string{"p.is_active = TRUE"}
	args := []any{}

	addArg := func(condition string, value any) {
		args = append(args, value)
		conditions = append(conditions, fmt.Sprintf(condition, len(args)))
	}

	if filter.CategoryID != nil {
		addArg("p.category_id = $%d", *filter.CategoryID)
	}
	if filter.MinPrice != nil {
		addArg("p.price >= $%d", *filter.MinPrice)
	}
	if filter.MaxPrice != nil {
		addArg("p.price <= $%d", *filter.MaxPrice)
	}
	if filter.Search != "" {
		addArg("(p.name ILIKE $%d OR p.description ILIKE $%d)", "%"+filter.Search+"%")
		conditions[len(conditions)-1] = fmt.Sprintf("(p.name ILIKE $%d OR p.description ILIKE $%d)", len(args), len(args))
	}
	if filter.Featured {
		conditions = append(conditions, "p.is_featured = TRUE")
	}
	if filter.Bestseller {
		conditions = append(conditions, "p.is_bestseller = TRUE")
	}

	where := strings.Join(conditions, " AND ")

	var total int

	countQuery := `SELECT COUNT(*) FROM products p WHERE ` + where

	if err := r.DB.QueryRowContext(dbCtx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count products: %w", err)
	}

	// Sort column is whitelisted, never interpolated from raw input.
	sortColumn := map[string]string{
		"price":      "p.price",
		"name":       "p.name",
		"created_at": "p.created_at",
	}[filter.Sort]
	if sortColumn == "" {
		sortColumn = "p.created_at"
	}

	direction := "DESC"
	if strings.EqualFold(filter.Order, "asc") {
		direction = "ASC"
	}

	offset := (filter.Page - 1) * filter.PageSize

	args = append(args, filter.PageSize, offset)
	query := fmt.Sprintf(`
		SELECT `+productColumns+`
		FROM products p
		LEFT JOIN categories c ON p.category_id = c.id
		WHERE `+where+`
		ORDER BY %s %s
		LIMIT $%d OFFSET $%d`, sortColumn, direction, len(args)-1, len(args))

	rows, err := r.DB.QueryContext(dbCtx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list products: %w", err)
	}

	defer rows.Close()

	var products []*models.Product

	for rows.Next() {
		product, err := scanProduct(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan product: %w", err)
		}

		products = append(products, product)
	}

	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	return products, total, nil
}

func (r *productRepository) ListCategories(ctx context.Context) ([]models.Category, error) {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `SELECT id, name, slug, description, created_at FROM categories ORDER BY name`

	rows, err := r.DB.QueryContext(dbCtx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}

	defer rows.Close()

	var categories []models.Category

	for rows.Next() {
		var category models.Category

		if err := rows.Scan(&category.ID, &category.Name, &category.Slug, &category.Description, &category.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan category: %w", err)
		}

		categories = append(categories, category)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return categories, nil
}
