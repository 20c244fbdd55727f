package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"dinepos/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockOrderRepository struct {
	mock.Mock
}

func (m *MockOrderRepository) Submit(ctx context.Context, order *models.Order, lines []models.OrderLine) (int64, error) {
	args := m.Called(ctx, order, lines)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockOrderRepository) GetByID(ctx context.Context, id int64) (*models.Order, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Order), args.Error(1)
}

func (m *MockOrderRepository) ListLines(ctx context.Context, orderID int64) ([]*models.OrderLine, error) {
	args := m.Called(ctx, orderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.OrderLine), args.Error(1)
}

func (m *MockOrderRepository) List(ctx context.Context) ([]*models.Order, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Order), args.Error(1)
}

func cartFixture() []models.CartLine {
	return []models.CartLine{
		{ItemID: 1, Name: "Burger", UnitPrice: 8.00, Quantity: 2, LineTotal: 16.00},
		{ItemID: 2, Name: "Soda", UnitPrice: 2.00, Quantity: 3, LineTotal: 6.00},
	}
}

func TestSubmitBuildsPendingHeaderAndLines(t *testing.T) {
	repo := new(MockOrderRepository)
	svc := NewOrderService(repo)

	var captured *models.Order
	var capturedLines []models.OrderLine
	repo.On("Submit", mock.Anything, mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) {
			captured = args.Get(1).(*models.Order)
			capturedLines = args.Get(2).([]models.OrderLine)
		}).
		Return(int64(42), nil)

	orderID, err := svc.Submit(context.Background(), 4, 7, cartFixture(), 22.00)
	require.NoError(t, err)
	assert.Equal(t, int64(42), orderID)

	require.NotNil(t, captured)
	assert.Equal(t, int64(4), captured.TableID)
	assert.Equal(t, int64(7), captured.UserID)
	assert.Equal(t, 22.00, captured.TotalAmount)
	assert.Equal(t, models.StatusPending, captured.Status)
	assert.WithinDuration(t, time.Now(), captured.OrderDate, time.Minute)

	// One detail per cart line, prices copied from the cart.
	require.Len(t, capturedLines, 2)
	assert.Equal(t, models.OrderLine{ItemID: 1, Quantity: 2, UnitPrice: 8.00}, capturedLines[0])
	assert.Equal(t, models.OrderLine{ItemID: 2, Quantity: 3, UnitPrice: 2.00}, capturedLines[1])

	repo.AssertExpectations(t)
}

func TestSubmitEmptyCartRejected(t *testing.T) {
	repo := new(MockOrderRepository)
	svc := NewOrderService(repo)

	_, err := svc.Submit(context.Background(), 4, 7, nil, 0)
	assert.Error(t, err)
	repo.AssertNotCalled(t, "Submit", mock.Anything, mock.Anything, mock.Anything)
}

func TestSubmitRepositoryFailureSurfaces(t *testing.T) {
	repo := new(MockOrderRepository)
	svc := NewOrderService(repo)

	repo.On("Submit", mock.Anything, mock.Anything, mock.Anything).
		Return(int64(0), errors.New("store unavailable"))

	_, err := svc.Submit(context.Background(), 4, 7, cartFixture(), 22.00)
	assert.Error(t, err)
}

func TestGetOrderMissingReturnsNil(t *testing.T) {
	repo := new(MockOrderRepository)
	svc := NewOrderService(repo)

	repo.On("GetByID", mock.Anything, int64(99)).Return(nil, nil)

	order, lines, err := svc.GetOrder(context.Background(), 99)
	assert.NoError(t, err)
	assert.Nil(t, order)
	assert.Nil(t, lines)
	repo.AssertNotCalled(t, "ListLines", mock.Anything, mock.Anything)
}
