package product

import (
	"context"
	"database/sql"
	"errors"

	"storeadmin-be/internal/logger"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"go.uber.org/zap"
)

type Repository interface {
	Create(ctx context.Context, p *Product, imageURLs []string) error
	GetAll(ctx context.Context) ([]*Product, error)
	GetByID(ctx context.Context, id string) (*Product, error)
	Update(ctx context.Context, p *Product) error
	ReplaceImages(ctx context.Context, productID string, urls []string) ([]Image, error)
	Delete(ctx context.Context, id string) error
}

type repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &repository{db: db}
}

var ErrProductNotFound = errors.New("product not found")

func (r *repository) Create(ctx context.Context, p *Product, imageURLs []string) error {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "repository"),
		zap.String("method", "Create"),
		zap.String("product_id", p.ID),
	)

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}

	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	_, err = tx.ExecContext(ctx, `
		INSERT INTO products (
			id, name, description, category_id, price, stock,
			status, created_by, created_at
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)
	`,
		p.ID, p.Name, p.Description, p.CategoryID, p.Price, p.Stock,
		p.Status, p.CreatedBy, p.CreatedAt,
	)
	if err != nil {
		log.Error("failed to insert product", zap.Error(err))
		return err
	}

	for _, url := range imageURLs {
		img := Image{ID: uuid.New().String(), ProductID: p.ID, URL: url}
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO product_images (id, product_id, url) VALUES ($1,$2,$3)
		`, img.ID, img.ProductID, img.URL); err != nil {
			log.Error("failed to insert product image", zap.Error(err))
			return err
		}
		p.Images = append(p.Images, img)
	}

	if err := tx.Commit(); err != nil {
		return err
	}
	committed = true

	return nil
}

func (r *repository) GetAll(ctx context.Context) ([]*Product, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT p.id, p.name, p.description, p.category_id, c.name,
		       p.price, p.stock, p.status, p.created_by, p.created_at
		FROM products p
		JOIN categories c ON c.id = p.category_id
		ORDER BY p.name ASC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var products []*Product
	byID := make(map[string]*Product)
	ids := []string{}

	for rows.Next() {
		var p Product
		if err := rows.Scan(
			&p.ID, &p.Name, &p.Description, &p.CategoryID, &p.CategoryName,
			&p.Price, &p.Stock, &p.Status, &p.CreatedBy, &p.CreatedAt,
		); err != nil {
			return nil, err
		}
		products = append(products, &p)
		byID[p.ID] = &p
		ids = append(ids, p.ID)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	if len(products) == 0 {
		return products, nil
	}

	imgRows, err := r.db.QueryContext(ctx, `
		SELECT id, product_id, url FROM product_images WHERE product_id = ANY($1)
	`, pq.Array(ids))
	if err != nil {
		return nil, err
	}
	defer imgRows.Close()

	for imgRows.Next() {
		var img Image
		if err := imgRows.Scan(&img.ID, &img.ProductID, &img.URL); err != nil {
			return nil, err
		}
		if p, ok := byID[img.ProductID]; ok {
			p.Images = append(p.Images, img)
		}
	}

	return products, imgRows.Err()
}

func (r *repository) GetByID(ctx context.Context, id string) (*Product, error) {
	var p Product
	err := r.db.QueryRowContext(ctx, `
		SELECT p.id, p.name, p.description, p.category_id, c.name,
		       p.price, p.stock, p.status, p.created_by, p.created_at
		FROM products p
		JOIN categories c ON c.id = p.category_id
		WHERE p.id = $1
	`, id).Scan(
		&p.ID, &p.Name, &p.Description, &p.CategoryID, &p.CategoryName,
		&p.Price, &p.Stock, &p.Status, &p.CreatedBy, &p.CreatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrProductNotFound
	}
	if err != nil {
		return nil, err
	}

	imgRows, err := r.db.QueryContext(ctx, `
		SELECT id, product_id, url FROM product_images WHERE product_id = $1
	`, id)
	if err != nil {
		return nil, err
	}
	defer imgRows.Close()

	for imgRows.Next() {
		var img Image
		if err := imgRows.Scan(&img.ID, &img.ProductID, &img.URL); err != nil {
			return nil, err
		}
		p.Images = append(p.Images, img)
	}

	return &p, imgRows.Err()
}

func (r *repository) Update(ctx context.Context, p *Product) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE products
		SET name = $1, description = $2, category_id = $3,
		    price = $4, stock = $5, status = $6
		WHERE id = $7
	`, p.Name, p.Description, p.CategoryID, p.Price, p.Stock, p.Status, p.ID)
	if err != nil {
		return err
	}

	if affected, _ := res.RowsAffected(); affected == 0 {
		return ErrProductNotFound
	}
	return nil
}

func (r *repository) ReplaceImages(ctx context.Context, productID string, urls []string) ([]Image, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}

	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	if _, err := tx.ExecContext(ctx, `DELETE FROM product_images WHERE product_id = $1`, productID); err != nil {
		return nil, err
	}

	images := make([]Image, 0, len(urls))
	for _, url := range urls {
		img := Image{ID: uuid.New().String(), ProductID: productID, URL: url}
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO product_images (id, product_id, url) VALUES ($1,$2,$3)
		`, img.ID, img.ProductID, img.URL); err != nil {
			return nil, err
		}
		images = append(images, img)
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}
	committed = true

	return images, nil
}

func (r *repository) Delete(ctx context.Context, id string) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}

	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	if _, err := tx.ExecContext(ctx, `DELETE FROM product_images WHERE product_id = $1`, id); err != nil {
		return err
	}

	res, err := tx.ExecContext(ctx, `DELETE FROM products WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if affected, _ := res.RowsAffected(); affected == 0 {
		return ErrProductNotFound
	}

	if err := tx.Commit(); err != nil {
		return err
	}
	committed = true

	return nil
}
