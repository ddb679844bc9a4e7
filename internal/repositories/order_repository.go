package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"

	"github.com/velunaskf/veluna-api/internal/models"
	"github.com/velunaskf/veluna-api/internal/utils"
)

type OrderRepository interface {
	CreateOrder(ctx context.Context, order *models.Order) error
	GetOrderByID(ctx context.Context, id uuid.UUID) (*models.Order, error)
	GetOrderByNumber(ctx context.Context, orderNumber string) (*models.Order, error)
	ListOrdersByUser(ctx context.Context, userID uuid.UUID, page, pageSize int) ([]models.Order, int, error)
	UpdateOrderStatus(ctx context.Context, id uuid.UUID, status models.OrderStatus, trackingNumber string) error
	UpdatePaymentStatus(ctx context.Context, id uuid.UUID, status models.PaymentStatus, paymentID string) error
}

type orderRepository struct {
	DB *sql.DB
}

func NewOrderRepo(db *sql.DB) OrderRepository {
	return &orderRepository{DB: db}
}

// CreateOrder persists the order header, its items, and the stock decrements
// in a single transaction. Stock is decremented conditionally: when another
// order drained a product first, the statement matches no rows and the whole
// transaction rolls back, leaving no order behind.
func (r *orderRepository) CreateOrder(ctx context.Context, order *models.Order) error {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	shippingAddr, err := json.Marshal(order.ShippingAddress)
	if err != nil {
		return fmt.Errorf("failed to marshal shipping address: %w", err)
	}

	billingAddr, err := json.Marshal(order.BillingAddress)
	if err != nil {
		return fmt.Errorf("failed to marshal billing address: %w", err)
	}

	tx, err := r.DB.BeginTx(dbCtx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	defer func() { _ = tx.Rollback() }()

	decrementQuery := `
		UPDATE products
		SET stock_quantity = stock_quantity - $1, updated_at = NOW()
		WHERE id = $2 AND stock_quantity >= $1
	`

	for i := range order.Items {
		item := &order.Items[i]

		result, err := tx.ExecContext(dbCtx, decrementQuery, item.Quantity, item.ProductID)
		if err != nil {
			return fmt.Errorf("failed to decrement stock: %w", err)
		}

		rows, err := result.RowsAffected()
		if err != nil {
			return fmt.Errorf("failed to get affected rows: %w", err)
		}

		if rows == 0 {
			return &InsufficientStockError{ProductID: item.ProductID}
		}
	}

	headerQuery := `
		INSERT INTO orders (order_number, user_id, guest_email, guest_name, guest_phone, status,
		                    payment_status, payment_method, subtotal, discount_amount, discount_code,
		                    shipping_cost, tax_amount, total_amount, shipping_address, billing_address,
		                    shipping_method)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17)
		RETURNING id, created_at, updated_at
	`

	err = tx.QueryRowContext(dbCtx, headerQuery,
		order.OrderNumber, order.UserID, order.GuestEmail, order.GuestName, order.GuestPhone,
		order.Status, order.PaymentStatus, order.PaymentMethod, order.Subtotal, order.DiscountAmount,
		order.DiscountCode, order.ShippingCost, order.TaxAmount, order.TotalAmount,
		shippingAddr, billingAddr, order.ShippingMethod).
		Scan(&order.ID, &order.CreatedAt, &order.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return ErrDuplicateOrderNumber
		}
		return fmt.Errorf("failed to insert order: %w", err)
	}

	itemQuery := `
		INSERT INTO order_items (order_id, product_id, product_name, product_sku, quantity, unit_price, total_price, customization_details)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id, created_at
	`

	for i := range order.Items {
		item := &order.Items[i]
		item.OrderID = order.ID

		err := tx.QueryRowContext(dbCtx, itemQuery,
			item.OrderID, item.ProductID, item.ProductName, item.ProductSKU,
			item.Quantity, item.UnitPrice, item.TotalPrice, item.CustomizationDetails).
			Scan(&item.ID, &item.CreatedAt)
		if err != nil {
			return fmt.Errorf("failed to insert order item: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

const orderColumns = `id, order_number, user_id, guest_email, guest_name, guest_phone, status,
	       payment_status, payment_method, payment_id, subtotal, discount_amount, discount_code,
	       shipping_cost, tax_amount, total_amount, shipping_address, billing_address,
	       shipping_method, tracking_number, delivered_at, created_at, updated_at`

func scanOrder(row interface{ Scan(...any) error }) (*models.Order, error) {
	order := &models.Order{}

	var shippingAddr, billingAddr []byte

	err := row.Scan(&order.ID, &order.OrderNumber, &order.UserID, &order.GuestEmail, &order.GuestName,
		&order.GuestPhone, &order.Status, &order.PaymentStatus, &order.PaymentMethod, &order.PaymentID,
		&order.Subtotal, &order.DiscountAmount, &order.DiscountCode, &order.ShippingCost,
		&order.TaxAmount, &order.TotalAmount, &shippingAddr, &billingAddr,
		&order.ShippingMethod, &order.TrackingNumber, &order.DeliveredAt, &order.CreatedAt, &order.UpdatedAt)
	if err != nil {
		return nil, err
	}

	if len(shippingAddr) > 0 {
		if err := json.Unmarshal(shippingAddr, &order.ShippingAddress); err != nil {
			return nil, fmt.Errorf("failed to unmarshal shipping address: %w", err)
		}
	}

	if len(billingAddr) > 0 {
		if err := json.Unmarshal(billingAddr, &order.BillingAddress); err != nil {
			return nil, fmt.Errorf("failed to unmarshal billing address: %w", err)
		}
	}

	return order, nil
}

func (r *orderRepository) loadItems(ctx context.Context, order *models.Order) error {
	query := `
		SELECT id, order_id, product_id, product_name, product_sku, quantity, unit_price, total_price, customization_details, created_at
		FROM order_items
		WHERE order_id = $1
		ORDER BY created_at`

	rows, err := r.DB.QueryContext(ctx, query, order.ID)
	if err != nil {
		return fmt.Errorf("failed to list order items: %w", err)
	}

	defer rows.Close()

	for rows.Next() {
		var item models.OrderItem

		err := rows.Scan(&item.ID, &item.OrderID, &item.ProductID, &item.ProductName, &item.ProductSKU,
			&item.Quantity, &item.UnitPrice, &item.TotalPrice, &item.CustomizationDetails, &item.CreatedAt)
		if err != nil {
			return fmt.Errorf("failed to scan order item: %w", err)
		}

		order.Items = append(order.Items, item)
	}

	return rows.Err()
}

func (r *orderRepository) GetOrderByID(ctx context.Context, id uuid.UUID) (*models.Order, error) {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `SELECT ` + orderColumns + ` FROM orders WHERE id = $1`

	order, err := scanOrder(r.DB.QueryRowContext(dbCtx, query, id))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("querying database: %w", err)
	}

	if err := r.loadItems(dbCtx, order); err != nil {
		return nil, err
	}

	return order, nil
}

func (r *orderRepository) GetOrderByNumber(ctx context.Context, orderNumber string) (*models.Order, error) {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `SELECT ` + orderColumns + ` FROM orders WHERE order_number = $1`

	order, err := scanOrder(r.DB.QueryRowContext(dbCtx, query, orderNumber))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("querying database: %w", err)
	}

	if err := r.loadItems(dbCtx, order); err != nil {
		return nil, err
	}

	return order, nil
}

func (r *orderRepository) ListOrdersByUser(ctx context.Context, userID uuid.UUID, page, pageSize int) ([]models.Order, int, error) {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	var total int

	countQuery := `SELECT COUNT(*) FROM orders WHERE user_id = $1`

	if err := r.DB.QueryRowContext(dbCtx, countQuery, userID).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count orders: %w", err)
	}

	query := `
		SELECT ` + orderColumns + `
		FROM orders
		WHERE user_id = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3`

	rows, err := r.DB.QueryContext(dbCtx, query, userID, pageSize, (page-1)*pageSize)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list orders: %w", err)
	}

	defer rows.Close()

	var orders []models.Order

	for rows.Next() {
		order, err := scanOrder(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan order: %w", err)
		}

		orders = append(orders, *order)
	}

	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	for i := range orders {
		if err := r.loadItems(dbCtx, &orders[i]); err != nil {
			return nil, 0, err
		}
	}

	return orders, total, nil
}

func (r *orderRepository) UpdateOrderStatus(ctx context.Context, id uuid.UUID, status models.OrderStatus, trackingNumber string) error {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `
		UPDATE orders
		SET status = $1,
		    tracking_number = COALESCE(NULLIF($2, ''), tracking_number),
		    delivered_at = CASE WHEN $1 = 'delivered' THEN NOW() ELSE delivered_at END,
		    updated_at = NOW()
		WHERE id = $3
	`

	result, err := r.DB.ExecContext(dbCtx, query, status, trackingNumber, id)
	if err != nil {
		return fmt.Errorf("failed to update order status: %w", err)
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

func (r *orderRepository) UpdatePaymentStatus(ctx context.Context, id uuid.UUID, status models.PaymentStatus, paymentID string) error {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `
		UPDATE orders
		SET payment_status = $1,
		    payment_id = COALESCE(NULLIF($2, ''), payment_id),
		    status = CASE WHEN $1 = 'paid' AND status = 'pending' THEN 'confirmed' ELSE status END,
		    updated_at = NOW()
		WHERE id = $3
	`

	result, err := r.DB.ExecContext(dbCtx, query, status, paymentID, id)
	if err != nil {
		return fmt.Errorf("failed to update payment status: %w", err)
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
