package customer

import (
	"context"
	"database/sql"
	"errors"
	"time"
)

var ErrCustomerNotFound = errors.New("customer not found")

type Repository interface {
	Create(ctx context.Context, c *Customer, passwordHash string) error
	ExistsByEmailOrPhone(ctx context.Context, email, phone string) (bool, error)
	GetAll(ctx context.Context) ([]*Customer, error)
	GetByID(ctx context.Context, id string) (*Customer, error)
	Update(ctx context.Context, c *Customer) error
	Delete(ctx context.Context, id string) error
}

type repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &repository{db: db}
}

const customerColumns = `id, name, email, phone, location, status, total_spent, join_date`

func (r *repository) Create(ctx context.Context, c *Customer, passwordHash string) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO users (
			id, name, email, password, role, status, phone,
			location, total_spent, join_date, created_at
		) VALUES ($1,$2,$3,$4,'Customer',$5,$6,$7,$8,$9,$10)
	`,
		c.ID, c.Name, c.Email, passwordHash, c.Status, c.Phone,
		c.Location, c.TotalSpent, c.JoinDate, time.Now(),
	)
	return err
}

func (r *repository) ExistsByEmailOrPhone(ctx context.Context, email, phone string) (bool, error) {
	var exists bool
	err := r.db.QueryRowContext(ctx, `
		SELECT EXISTS(SELECT 1 FROM users WHERE email = $1 OR phone = $2)
	`, email, phone).Scan(&exists)
	return exists, err
}

func (r *repository) GetAll(ctx context.Context) ([]*Customer, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT `+customerColumns+`
		FROM users
		WHERE role = 'Customer'
		ORDER BY name ASC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var customers []*Customer
	for rows.Next() {
		var c Customer
		if err := rows.Scan(
			&c.ID, &c.Name, &c.Email, &c.Phone,
			&c.Location, &c.Status, &c.TotalSpent, &c.JoinDate,
		); err != nil {
			return nil, err
		}
		customers = append(customers, &c)
	}

	return customers, rows.Err()
}

func (r *repository) GetByID(ctx context.Context, id string) (*Customer, error) {
	var c Customer
	err := r.db.QueryRowContext(ctx, `
		SELECT `+customerColumns+`
		FROM users
		WHERE id = $1 AND role = 'Customer'
	`, id).Scan(
		&c.ID, &c.Name, &c.Email, &c.Phone,
		&c.Location, &c.Status, &c.TotalSpent, &c.JoinDate,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrCustomerNotFound
	}
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *repository) Update(ctx context.Context, c *Customer) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE users
		SET name = $1, email = $2, phone = $3, location = $4, status = $5
		WHERE id = $6 AND role = 'Customer'
	`, c.Name, c.Email, c.Phone, c.Location, c.Status, c.ID)
	if err != nil {
		return err
	}

	if affected, _ := res.RowsAffected(); affected == 0 {
		return ErrCustomerNotFound
	}
	return nil
}

func (r *repository) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `
		DELETE FROM users WHERE id = $1 AND role = 'Customer'
	`, id)
	if err != nil {
		return err
	}

	if affected, _ := res.RowsAffected(); affected == 0 {
		return ErrCustomerNotFound
	}
	return nil
}
