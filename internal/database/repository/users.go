package repository

import (
	"context"
	"database/sql"
	"errors"
)

// UserRepo handles users.
type UserRepo struct {
	db *sql.DB
}

func NewUserRepo(db *sql.DB) *UserRepo { return &UserRepo{db: db} }

func (r *UserRepo) Upsert(ctx context.Context, u User) error {
	_, err := r.db.ExecContext(ctx, `
	INSERT INTO users(id, login, name, role, created_at) VALUES (?, ?, ?, ?, CURRENT_TIMESTAMP)
	ON CONFLICT(login) DO UPDATE SET name=excluded.name, role=excluded.role;
	`, u.ID, u.Login, u.Name, u.Role)
	return err
}

// ByLogin returns nil without error when no user has that login.
func (r *UserRepo) ByLogin(ctx context.Context, login string) (*User, error) {
	row := r.db.QueryRowContext(ctx, `SELECT id, login, name, role, created_at FROM users WHERE login = ?`, login)
	var u User
	if err := row.Scan(&u.ID, &u.Login, &u.Name, &u.Role, &u.CreatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &u, nil
}

func (r *UserRepo) List(ctx context.Context) ([]User, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id, login, name, role, created_at FROM users ORDER BY login`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []User
	for rows.Next() {
		var u User
		if err := rows.Scan(&u.ID, &u.Login, &u.Name, &u.Role, &u.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, u)
	}
	return out, rows.Err()
}
