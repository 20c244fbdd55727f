package repositories

import (
	"context"
	"errors"
	"testing"
	"time"

	"dinepos/internal/models"

	pgxmock "github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"
)

type OrderRepoTestSuite struct {
	suite.Suite
	mock    pgxmock.PgxPoolIface
	repo    OrderRepository
	context context.Context
}

func (suite *OrderRepoTestSuite) SetupTest() {
	mock, err := pgxmock.NewPool()
	assert.NoError(suite.T(), err)
	suite.mock = mock

	suite.repo = NewOrderRepo(mock)
	suite.context = context.Background()
}

func (suite *OrderRepoTestSuite) TearDownTest() {
	suite.mock.Close()
}

func TestOrderRepoTestSuite(t *testing.T) {
	suite.Run(t, new(OrderRepoTestSuite))
}

func (suite *OrderRepoTestSuite) submittedOrder() (*models.Order, []models.OrderLine) {
	order := &models.Order{
		TableID:     4,
		UserID:      7,
		TotalAmount: 22.00,
		Status:      models.StatusPending,
		OrderDate:   time.Now(),
	}
	lines := []models.OrderLine{
		{ItemID: 1, Quantity: 2, UnitPrice: 8.00},
		{ItemID: 2, Quantity: 3, UnitPrice: 2.00},
	}
	return order, lines
}

func (suite *OrderRepoTestSuite) TestSubmit_Success() {
	order, lines := suite.submittedOrder()

	suite.mock.ExpectBegin()
	suite.mock.ExpectQuery(`INSERT INTO orders`).
		WithArgs(order.TableID, order.UserID, order.TotalAmount, order.Status, order.OrderDate).
		WillReturnRows(pgxmock.NewRows([]string{"id"}).AddRow(int64(42)))
	suite.mock.ExpectExec(`INSERT INTO order_details`).
		WithArgs(int64(42), int64(1), 2, 8.00).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))
	suite.mock.ExpectExec(`INSERT INTO order_details`).
		WithArgs(int64(42), int64(2), 3, 2.00).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))
	suite.mock.ExpectCommit()

	orderID, err := suite.repo.Submit(suite.context, order, lines)
	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), int64(42), orderID)
	assert.Equal(suite.T(), int64(42), order.ID)
	assert.NoError(suite.T(), suite.mock.ExpectationsWereMet())
}

func (suite *OrderRepoTestSuite) TestSubmit_HeaderInsertFails_NoLinesWritten() {
	order, lines := suite.submittedOrder()

	suite.mock.ExpectBegin()
	suite.mock.ExpectQuery(`INSERT INTO orders`).
		WithArgs(order.TableID, order.UserID, order.TotalAmount, order.Status, order.OrderDate).
		WillReturnError(errors.New("store unavailable"))
	suite.mock.ExpectRollback()

	orderID, err := suite.repo.Submit(suite.context, order, lines)
	assert.Error(suite.T(), err)
	assert.Zero(suite.T(), orderID)
	// No order_details insert was ever expected; any attempt would have
	// failed the expectation check.
	assert.NoError(suite.T(), suite.mock.ExpectationsWereMet())
}

func (suite *OrderRepoTestSuite) TestSubmit_LineInsertFails_RollsBackHeader() {
	order, lines := suite.submittedOrder()

	suite.mock.ExpectBegin()
	suite.mock.ExpectQuery(`INSERT INTO orders`).
		WithArgs(order.TableID, order.UserID, order.TotalAmount, order.Status, order.OrderDate).
		WillReturnRows(pgxmock.NewRows([]string{"id"}).AddRow(int64(42)))
	suite.mock.ExpectExec(`INSERT INTO order_details`).
		WithArgs(int64(42), int64(1), 2, 8.00).
		WillReturnError(errors.New("constraint violation"))
	suite.mock.ExpectRollback()

	orderID, err := suite.repo.Submit(suite.context, order, lines)
	assert.Error(suite.T(), err)
	assert.Zero(suite.T(), orderID)
	assert.NoError(suite.T(), suite.mock.ExpectationsWereMet())
}

func (suite *OrderRepoTestSuite) TestGetByID_NotFound() {
	suite.mock.ExpectQuery(`SELECT o\.id, o\.table_id`).
		WithArgs(int64(99)).
		WillReturnRows(pgxmock.NewRows([]string{"id", "table_id", "user_id", "total_amount", "status", "order_date", "table_number", "username"}))

	order, err := suite.repo.GetByID(suite.context, 99)
	assert.NoError(suite.T(), err)
	assert.Nil(suite.T(), order)
}

func (suite *OrderRepoTestSuite) TestList_JoinsTableAndWaiter() {
	now := time.Now()
	rows := pgxmock.NewRows([]string{"id", "table_id", "user_id", "total_amount", "status", "order_date", "table_number", "username"}).
		AddRow(int64(2), int64(4), int64(7), 22.00, models.StatusPending, now, "T4", "maria").
		AddRow(int64(1), int64(1), int64(7), 9.50, models.StatusServed, now.Add(-time.Hour), "T1", "maria")

	suite.mock.ExpectQuery(`SELECT o\.id, o\.table_id`).WillReturnRows(rows)

	orders, err := suite.repo.List(suite.context)
	assert.NoError(suite.T(), err)
	assert.Len(suite.T(), orders, 2)
	assert.Equal(suite.T(), "T4", orders[0].TableNumber)
	assert.Equal(suite.T(), "maria", orders[0].Username)
	assert.Equal(suite.T(), models.StatusPending, orders[0].Status)
}

func (suite *OrderRepoTestSuite) TestListLines() {
	rows := pgxmock.NewRows([]string{"order_id", "item_id", "quantity", "unit_price"}).
		AddRow(int64(42), int64(1), 2, 8.00).
		AddRow(int64(42), int64(2), 3, 2.00)

	suite.mock.ExpectQuery(`SELECT order_id, item_id, quantity, unit_price`).
		WithArgs(int64(42)).
		WillReturnRows(rows)

	lines, err := suite.repo.ListLines(suite.context, 42)
	assert.NoError(suite.T(), err)
	assert.Len(suite.T(), lines, 2)
	assert.Equal(suite.T(), int64(42), lines[0].OrderID)
	assert.Equal(suite.T(), int64(42), lines[1].OrderID)
}
