package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"
)

const workOrderColumns = "id, number, title, requester, assignee, category, priority, status, deadline, created_at, updated_at"

// WorkOrderRepo handles work orders.
type WorkOrderRepo struct {
	db *sql.DB
}

func NewWorkOrderRepo(db *sql.DB) *WorkOrderRepo { return &WorkOrderRepo{db: db} }

// FindRecent returns up to limit work orders, most recently touched first.
// Zero rows is an empty slice, not an error.
func (r *WorkOrderRepo) FindRecent(ctx context.Context, limit int) ([]WorkOrder, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+workOrderColumns+` FROM work_orders
	ORDER BY updated_at DESC, created_at DESC, number DESC
	LIMIT ?`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []WorkOrder{}
	for rows.Next() {
		w, err := scanWorkOrder(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, w)
	}
	return out, rows.Err()
}

func (r *WorkOrderRepo) Get(ctx context.Context, id string) (*WorkOrder, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+workOrderColumns+` FROM work_orders WHERE id = ?`, id)
	w, err := scanWorkOrder(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &w, nil
}

func (r *WorkOrderRepo) ByNumber(ctx context.Context, number string) (*WorkOrder, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+workOrderColumns+` FROM work_orders WHERE number = ?`, number)
	w, err := scanWorkOrder(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &w, nil
}

func (r *WorkOrderRepo) Insert(ctx context.Context, w WorkOrder) error {
	now := time.Now().UTC()
	if w.CreatedAt.IsZero() {
		w.CreatedAt = now
	}
	if w.UpdatedAt.IsZero() {
		w.UpdatedAt = w.CreatedAt
	}
	_, err := r.db.ExecContext(ctx, `
	INSERT INTO work_orders(`+workOrderColumns+`)
	VALUES(?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?);
	`,
		w.ID, w.Number, w.Title, w.Requester, w.Assignee, w.Category, w.Priority, w.Status,
		w.Deadline, w.CreatedAt, w.UpdatedAt)
	return err
}

// Update rewrites the editable fields of an existing work order and bumps
// updated_at so it moves to the top of the recency order.
func (r *WorkOrderRepo) Update(ctx context.Context, w WorkOrder) error {
	res, err := r.db.ExecContext(ctx, `
	UPDATE work_orders SET
	 number = ?, title = ?, requester = ?, assignee = ?, category = ?, priority = ?,
	 status = ?, deadline = ?, updated_at = ?
	WHERE id = ?`,
		w.Number, w.Title, w.Requester, w.Assignee, w.Category, w.Priority,
		w.Status, w.Deadline, time.Now().UTC(), w.ID)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// scanner covers both *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...interface{}) error
}

func scanWorkOrder(row scanner) (WorkOrder, error) {
	var w WorkOrder
	var requester, assignee sql.NullString
	var deadline sql.NullTime
	if err := row.Scan(&w.ID, &w.Number, &w.Title, &requester, &assignee, &w.Category,
		&w.Priority, &w.Status, &deadline, &w.CreatedAt, &w.UpdatedAt); err != nil {
		return WorkOrder{}, err
	}
	if requester.Valid {
		w.Requester = &requester.String
	}
	if assignee.Valid {
		w.Assignee = &assignee.String
	}
	if deadline.Valid {
		w.Deadline = &deadline.Time
	}
	return w, nil
}
