package services

import (
	"context"
	"fmt"
	"time"

	"dinepos/internal/models"
	"dinepos/internal/repositories"
)

// OrderService commits finalized carts and serves the active-orders view.
type OrderService interface {
	Submit(ctx context.Context, tableID, userID int64, lines []models.CartLine, totalAmount float64) (int64, error)
	ListOrders(ctx context.Context) ([]*models.Order, error)
	GetOrder(ctx context.Context, id int64) (*models.Order, []*models.OrderLine, error)
}

type orderService struct {
	orderRepo repositories.OrderRepository
}

func NewOrderService(orderRepo repositories.OrderRepository) OrderService {
	return &orderService{orderRepo: orderRepo}
}

// Submit turns the cart into one Pending order header plus one detail row
// per cart line. Unit prices come from the cart lines, never re-read from
// the catalog. There is no idempotency key: submitting the same cart twice
// places two independent orders.
func (s *orderService) Submit(ctx context.Context, tableID, userID int64, lines []models.CartLine, totalAmount float64) (int64, error) {
	if len(lines) == 0 {
		return 0, fmt.Errorf("cart is empty")
	}

	order := &models.Order{
		TableID:     tableID,
		UserID:      userID,
		TotalAmount: totalAmount,
		Status:      models.StatusPending,
		OrderDate:   time.Now(),
	}

	details := make([]models.OrderLine, 0, len(lines))
	for _, line := range lines {
		details = append(details, models.OrderLine{
			ItemID:    line.ItemID,
			Quantity:  line.Quantity,
			UnitPrice: line.UnitPrice,
		})
	}

	orderID, err := s.orderRepo.Submit(ctx, order, details)
	if err != nil {
		return 0, fmt.Errorf("place order: %w", err)
	}
	return orderID, nil
}

func (s *orderService) ListOrders(ctx context.Context) ([]*models.Order, error) {
	return s.orderRepo.List(ctx)
}

func (s *orderService) GetOrder(ctx context.Context, id int64) (*models.Order, []*models.OrderLine, error) {
	order, err := s.orderRepo.GetByID(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	if order == nil {
		return nil, nil, nil
	}
	lines, err := s.orderRepo.ListLines(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	return order, lines, nil
}
