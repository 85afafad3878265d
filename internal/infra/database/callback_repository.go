package database

import (
	"context"
	"database/sql"
	"errors"

	"github.com/fhhabitat/renov-admin/internal/entity"
)

type CallbackRepository struct {
	DB *sql.DB
}

func NewCallbackRepository(db *sql.DB) *CallbackRepository {
	return &CallbackRepository{DB: db}
}

func (r *CallbackRepository) List(ctx context.Context) ([]*entity.CallbackRequest, error) {
	query := `
		SELECT id, name, phone, status, created_at
		FROM callback_requests
		ORDER BY created_at DESC
	`

	rows, err := r.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var callbacks []*entity.CallbackRequest
	for rows.Next() {
		var cb entity.CallbackRequest
		if err := rows.Scan(&cb.ID, &cb.Name, &cb.Phone, &cb.Status, &cb.CreatedAt); err != nil {
			return nil, err
		}
		callbacks = append(callbacks, &cb)
	}
	return callbacks, rows.Err()
}

func (r *CallbackRepository) FindByID(ctx context.Context, id string) (*entity.CallbackRequest, error) {
	query := `SELECT id, name, phone, status, created_at FROM callback_requests WHERE id = $1`

	var cb entity.CallbackRequest
	err := r.DB.QueryRowContext(ctx, query, id).Scan(&cb.ID, &cb.Name, &cb.Phone, &cb.Status, &cb.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, entity.ErrCallbackNotFound
		}
		return nil, err
	}
	return &cb, nil
}

func (r *CallbackRepository) Create(ctx context.Context, cb *entity.CallbackRequest) error {
	query := `
		INSERT INTO callback_requests (id, name, phone, status, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`

	_, err := r.DB.ExecContext(ctx, query, cb.ID, cb.Name, cb.Phone, cb.Status, cb.CreatedAt)
	return err
}

func (r *CallbackRepository) UpdateStatus(ctx context.Context, id, status string) error {
	result, err := r.DB.ExecContext(ctx, `UPDATE callback_requests SET status = $1 WHERE id = $2`, status, id)
	if err != nil {
		return err
	}
	return requireRow(result)
}

func (r *CallbackRepository) Delete(ctx context.Context, id string) error {
	result, err := r.DB.ExecContext(ctx, `DELETE FROM callback_requests WHERE id = $1`, id)
	if err != nil {
		return err
	}
	return requireRow(result)
}

func requireRow(result sql.Result) error {
	n, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return entity.ErrCallbackNotFound
	}
	return nil
}
