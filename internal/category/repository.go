package category

import (
	"context"
	"database/sql"
	"errors"
)

var ErrCategoryNotFound = errors.New("category not found")

type Repository interface {
	Create(ctx context.Context, c *Category) error
	GetAll(ctx context.Context) ([]*Category, error)
	GetByID(ctx context.Context, id string) (*Category, error)
	FindBySKU(ctx context.Context, sku string) (*Category, error)
	Update(ctx context.Context, c *Category) error
	Delete(ctx context.Context, id string) error
	CountProducts(ctx context.Context, id string) (int, error)
}

type repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, c *Category) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO categories (id, name, sku, description, image, created_by, created_at)
		VALUES ($1,$2,$3,$4,$5,$6,$7)
	`, c.ID, c.Name, c.SKU, c.Description, c.Image, c.CreatedBy, c.CreatedAt)
	return err
}

func (r *repository) GetAll(ctx context.Context) ([]*Category, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, name, sku, description, image, created_by, created_at
		FROM categories
		ORDER BY name ASC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var categories []*Category
	for rows.Next() {
		var c Category
		if err := rows.Scan(&c.ID, &c.Name, &c.SKU, &c.Description, &c.Image, &c.CreatedBy, &c.CreatedAt); err != nil {
			return nil, err
		}
		categories = append(categories, &c)
	}

	return categories, rows.Err()
}

func (r *repository) GetByID(ctx context.Context, id string) (*Category, error) {
	var c Category
	err := r.db.QueryRowContext(ctx, `
		SELECT id, name, sku, description, image, created_by, created_at
		FROM categories
		WHERE id = $1
	`, id).Scan(&c.ID, &c.Name, &c.SKU, &c.Description, &c.Image, &c.CreatedBy, &c.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrCategoryNotFound
	}
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *repository) FindBySKU(ctx context.Context, sku string) (*Category, error) {
	var c Category
	err := r.db.QueryRowContext(ctx, `
		SELECT id, name, sku, description, image, created_by, created_at
		FROM categories
		WHERE sku = $1
	`, sku).Scan(&c.ID, &c.Name, &c.SKU, &c.Description, &c.Image, &c.CreatedBy, &c.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrCategoryNotFound
	}
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *repository) Update(ctx context.Context, c *Category) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE categories
		SET name = $1, sku = $2, description = $3, image = $4
		WHERE id = $5
	`, c.Name, c.SKU, c.Description, c.Image, c.ID)
	if err != nil {
		return err
	}

	if affected, _ := res.RowsAffected(); affected == 0 {
		return ErrCategoryNotFound
	}
	return nil
}

func (r *repository) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM categories WHERE id = $1`, id)
	if err != nil {
		return err
	}

	if affected, _ := res.RowsAffected(); affected == 0 {
		return ErrCategoryNotFound
	}
	return nil
}

func (r *repository) CountProducts(ctx context.Context, id string) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx, `
		SELECT COUNT(*) FROM products WHERE category_id = $1
	`, id).Scan(&count)
	return count, err
}
