package models

import (
	"time"
)

// Order statuses. Submission only ever writes StatusPending; the rest are
// reserved for the kitchen/billing flows that update orders after the fact.
const (
	StatusPending   = "Pending"
	StatusPreparing = "Preparing"
	StatusServed    = "Served"
	StatusPaid      = "Paid"
	StatusCancelled = "Cancelled"
)

type Order struct {
	ID          int64     `json:"id" db:"id"`
	TableID     int64     `json:"table_id" db:"table_id"`
	UserID      int64     `json:"user_id" db:"user_id"`
	TotalAmount float64   `json:"total_amount" db:"total_amount"`
	Status      string    `json:"status" db:"status"`
	OrderDate   time.Time `json:"order_date" db:"order_date"`

	// Populated by the joined active-orders query only.
	TableNumber string `json:"table_number,omitempty" db:"-"`
	Username    string `json:"username,omitempty" db:"-"`
}

type OrderLine struct {
	OrderID   int64   `json:"order_id" db:"order_id"`
	ItemID    int64   `json:"item_id" db:"item_id"`
	Quantity  int     `json:"quantity" db:"quantity"`
	UnitPrice float64 `json:"unit_price" db:"unit_price"`
}
