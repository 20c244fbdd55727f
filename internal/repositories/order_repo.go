package repositories

import (
	"context"
	"errors"
	"fmt"

	"dinepos/internal/models"

	"github.com/jackc/pgx/v5"
)

type OrderRepository interface {
	Submit(ctx context.Context, order *models.Order, lines []models.OrderLine) (int64, error)
	GetByID(ctx context.Context, id int64) (*models.Order, error)
	ListLines(ctx context.Context, orderID int64) ([]*models.OrderLine, error)
	List(ctx context.Context) ([]*models.Order, error)
}

type orderRepo struct {
	db Database
}

func NewOrderRepo(db Database) OrderRepository {
	return &orderRepo{db: db}
}

// Submit writes the order header and its detail rows in one transaction.
// The header insert returns the store-assigned id; every detail row carries
// it. If any insert fails the whole order is rolled back, so an order either
// exists with all of its lines or not at all.
func (r *orderRepo) Submit(ctx context.Context, order *models.Order, lines []models.OrderLine) (int64, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return 0, fmt.Errorf("begin order transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	var orderID int64
	headerQuery := `
		INSERT INTO orders (table_id, user_id, total_amount, status, order_date)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id
	`
	err = tx.QueryRow(ctx, headerQuery, order.TableID, order.UserID, order.TotalAmount, order.Status, order.OrderDate).Scan(&orderID)
	if err != nil {
		return 0, fmt.Errorf("insert order header: %w", err)
	}

	lineQuery := `
		INSERT INTO order_details (order_id, item_id, quantity, unit_price)
		VALUES ($1, $2, $3, $4)
	`
	for _, line := range lines {
		if _, err := tx.Exec(ctx, lineQuery, orderID, line.ItemID, line.Quantity, line.UnitPrice); err != nil {
			return 0, fmt.Errorf("insert order detail for item %d: %w", line.ItemID, err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return 0, fmt.Errorf("commit order transaction: %w", err)
	}

	order.ID = orderID
	return orderID, nil
}

func (r *orderRepo) GetByID(ctx context.Context, id int64) (*models.Order, error) {
	order := &models.Order{}
	query := `
		SELECT o.id, o.table_id, o.user_id, o.total_amount, o.status, o.order_date,
		       t.table_number, u.username
		FROM orders o
		JOIN restaurant_tables t ON t.id = o.table_id
		JOIN users u ON u.id = o.user_id
		WHERE o.id = $1
	`
	err := r.db.QueryRow(ctx, query, id).Scan(&order.ID, &order.TableID, &order.UserID,
		&order.TotalAmount, &order.Status, &order.OrderDate, &order.TableNumber, &order.Username)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return order, nil
}

func (r *orderRepo) ListLines(ctx context.Context, orderID int64) ([]*models.OrderLine, error) {
	query := `
		SELECT order_id, item_id, quantity, unit_price
		FROM order_details
		WHERE order_id = $1
	`
	rows, err := r.db.Query(ctx, query, orderID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var lines []*models.OrderLine
	for rows.Next() {
		line := &models.OrderLine{}
		if err := rows.Scan(&line.OrderID, &line.ItemID, &line.Quantity, &line.UnitPrice); err != nil {
			return nil, err
		}
		lines = append(lines, line)
	}
	return lines, rows.Err()
}

// List returns orders joined with table number and waiter username for the
// active-orders view, newest first.
func (r *orderRepo) List(ctx context.Context) ([]*models.Order, error) {
	query := `
		SELECT o.id, o.table_id, o.user_id, o.total_amount, o.status, o.order_date,
		       t.table_number, u.username
		FROM orders o
		JOIN restaurant_tables t ON t.id = o.table_id
		JOIN users u ON u.id = o.user_id
		ORDER BY o.order_date DESC
	`
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var orders []*models.Order
	for rows.Next() {
		order := &models.Order{}
		if err := rows.Scan(&order.ID, &order.TableID, &order.UserID, &order.TotalAmount,
			&order.Status, &order.OrderDate, &order.TableNumber, &order.Username); err != nil {
			return nil, err
		}
		orders = append(orders, order)
	}
	return orders, rows.Err()
}
