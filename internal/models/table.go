package models

type Table struct {
	ID          int64  `json:"id" db:"id"`
	TableNumber string `json:"table_number" db:"table_number"`
}
