package user

import (
	"context"
	"database/sql"
	"errors"
	"time"
)

var (
	ErrUserNotFound  = errors.New("user not found")
	ErrResetNotFound = errors.New("password reset not found")
)

type Repository interface {
	FindByEmail(ctx context.Context, email string) (*User, error)
	FindByID(ctx context.Context, id string) (*User, error)
	UpdateLastLogin(ctx context.Context, id string, at time.Time) error
	ListNonAdmins(ctx context.Context) ([]*User, error)
	UpdateProfile(ctx context.Context, u *User) error
	UpdatePassword(ctx context.Context, id, passwordHash string) error

	SavePasswordReset(ctx context.Context, reset *PasswordReset) error
	GetPasswordReset(ctx context.Context, tokenHash string) (*PasswordReset, error)
	DeletePasswordResets(ctx context.Context, userID string) error
}

type repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &repository{db: db}
}

const userColumns = `
	id, name, email, password, role, status, phone, location,
	avatar, total_spent, join_date, last_login, created_at
`

func scanUser(row interface{ Scan(...any) error }) (*User, error) {
	var u User
	err := row.Scan(
		&u.ID, &u.Name, &u.Email, &u.Password, &u.Role, &u.Status,
		&u.Phone, &u.Location, &u.Avatar, &u.TotalSpent,
		&u.JoinDate, &u.LastLogin, &u.CreatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *repository) FindByEmail(ctx context.Context, email string) (*User, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+userColumns+` FROM users WHERE email = $1`, email)
	return scanUser(row)
}

func (r *repository) FindByID(ctx context.Context, id string) (*User, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1`, id)
	return scanUser(row)
}

func (r *repository) UpdateLastLogin(ctx context.Context, id string, at time.Time) error {
	_, err := r.db.ExecContext(ctx, `UPDATE users SET last_login = $1 WHERE id = $2`, at, id)
	return err
}

func (r *repository) ListNonAdmins(ctx context.Context) ([]*User, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT `+userColumns+`
		FROM users
		WHERE role <> 'Admin'
		ORDER BY name ASC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var users []*User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		users = append(users, u)
	}

	return users, rows.Err()
}

func (r *repository) UpdateProfile(ctx context.Context, u *User) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE users
		SET name = $1, email = $2, phone = $3, location = $4
		WHERE id = $5
	`, u.Name, u.Email, u.Phone, u.Location, u.ID)
	if err != nil {
		return err
	}

	if affected, _ := res.RowsAffected(); affected == 0 {
		return ErrUserNotFound
	}
	return nil
}

func (r *repository) UpdatePassword(ctx context.Context, id, passwordHash string) error {
	res, err := r.db.ExecContext(ctx, `UPDATE users SET password = $1 WHERE id = $2`, passwordHash, id)
	if err != nil {
		return err
	}

	if affected, _ := res.RowsAffected(); affected == 0 {
		return ErrUserNotFound
	}
	return nil
}

func (r *repository) SavePasswordReset(ctx context.Context, reset *PasswordReset) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO password_resets (user_id, token_hash, expires_at)
		VALUES ($1,$2,$3)
	`, reset.UserID, reset.TokenHash, reset.ExpiresAt)
	return err
}

func (r *repository) GetPasswordReset(ctx context.Context, tokenHash string) (*PasswordReset, error) {
	var reset PasswordReset
	err := r.db.QueryRowContext(ctx, `
		SELECT user_id, token_hash, expires_at
		FROM password_resets
		WHERE token_hash = $1
	`, tokenHash).Scan(&reset.UserID, &reset.TokenHash, &reset.ExpiresAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrResetNotFound
	}
	if err != nil {
		return nil, err
	}
	return &reset, nil
}

func (r *repository) DeletePasswordResets(ctx context.Context, userID string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM password_resets WHERE user_id = $1`, userID)
	return err
}
