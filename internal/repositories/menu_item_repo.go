package repositories

import (
	"context"
	"errors"

	"dinepos/internal/models"

	"github.com/jackc/pgx/v5"
)

type MenuItemRepository interface {
	Create(ctx context.Context, item *models.MenuItem) error
	GetByID(ctx context.Context, id int64) (*models.MenuItem, error)
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context) ([]*models.MenuItem, error)
	SetImageObject(ctx context.Context, id int64, object string) error
}

type menuItemRepo struct {
	db Database
}

func NewMenuItemRepo(db Database) MenuItemRepository {
	return &menuItemRepo{db: db}
}

func (r *menuItemRepo) Create(ctx context.Context, item *models.MenuItem) error {
	query := `
		INSERT INTO menu_items (name, description, price, category_id, is_available, created_at)
		VALUES ($1, $2, $3, $4, $5, NOW())
		RETURNING id
	`
	return r.db.QueryRow(ctx, query, item.Name, item.Description, item.Price, item.CategoryID, item.IsAvailable).Scan(&item.ID)
}

func (r *menuItemRepo) GetByID(ctx context.Context, id int64) (*models.MenuItem, error) {
	item := &models.MenuItem{}
	query := `
		SELECT m.id, m.name, m.description, m.price, m.category_id,
		       COALESCE(c.name, 'Unknown') AS category_name,
		       m.is_available, m.image_object, m.created_at
		FROM menu_items m
		LEFT JOIN categories c ON c.id = m.category_id
		WHERE m.id = $1
	`
	err := r.db.QueryRow(ctx, query, id).Scan(&item.ID, &item.Name, &item.Description, &item.Price,
		&item.CategoryID, &item.CategoryName, &item.IsAvailable, &item.ImageObject, &item.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return item, nil
}

// Delete is a no-op when the id does not exist; already-placed order lines
// referencing the item are intentionally left behind.
func (r *menuItemRepo) Delete(ctx context.Context, id int64) error {
	query := `DELETE FROM menu_items WHERE id = $1`
	_, err := r.db.Exec(ctx, query, id)
	return err
}

func (r *menuItemRepo) List(ctx context.Context) ([]*models.MenuItem, error) {
	query := `
		SELECT m.id, m.name, m.description, m.price, m.category_id,
		       COALESCE(c.name, 'Unknown') AS category_name,
		       m.is_available, m.image_object, m.created_at
		FROM menu_items m
		LEFT JOIN categories c ON c.id = m.category_id
		ORDER BY m.id ASC
	`
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []*models.MenuItem
	for rows.Next() {
		item := &models.MenuItem{}
		if err := rows.Scan(&item.ID, &item.Name, &item.Description, &item.Price,
			&item.CategoryID, &item.CategoryName, &item.IsAvailable, &item.ImageObject, &item.CreatedAt); err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

func (r *menuItemRepo) SetImageObject(ctx context.Context, id int64, object string) error {
	query := `UPDATE menu_items SET image_object = $1 WHERE id = $2`
	_, err := r.db.Exec(ctx, query, object, id)
	return err
}
