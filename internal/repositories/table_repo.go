package repositories

import (
	"context"

	"dinepos/internal/models"
)

type TableRepository interface {
	List(ctx context.Context) ([]*models.Table, error)
}

type tableRepo struct {
	db Database
}

func NewTableRepo(db Database) TableRepository {
	return &tableRepo{db: db}
}

func (r *tableRepo) List(ctx context.Context) ([]*models.Table, error) {
	query := `
		SELECT id, table_number
		FROM restaurant_tables
		ORDER BY id ASC
	`
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var tables []*models.Table
	for rows.Next() {
		table := &models.Table{}
		if err := rows.Scan(&table.ID, &table.TableNumber); err != nil {
			return nil, err
		}
		tables = append(tables, table)
	}
	return tables, rows.Err()
}
