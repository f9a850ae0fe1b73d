package repo

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/rogerio-castellano/pantry-tracker/internal/models"
)

const queryTimeout = 3 * time.Second

type PostgresItemRepository struct {
	db *sql.DB
}

func NewPostgresItemRepository(db *sql.DB) *PostgresItemRepository {
	return &PostgresItemRepository{db: db}
}

func (r *PostgresItemRepository) Insert(ctx context.Context, it models.Item) (models.Item, error) {
	query := `INSERT INTO items (id, name, quantity, expiry_date, created_at, updated_at) VALUES ($1, $2, $3, $4, $5, $6)`
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	now := time.Now().UTC()
	it.ID = uuid.NewString()
	it.CreatedAt = now
	it.UpdatedAt = now

	var expiry sql.NullTime
	if it.ExpiryDate != nil {
		expiry = sql.NullTime{Time: *it.ExpiryDate, Valid: true}
	}

	if _, err := r.db.ExecContext(ctx, query, it.ID, it.Name, it.Quantity, expiry, it.CreatedAt, it.UpdatedAt); err != nil {
		return models.Item{}, err
	}
	return it, nil
}

func (r *PostgresItemRepository) GetByID(ctx context.Context, id string) (models.Item, error) {
	query := `SELECT id, name, quantity, expiry_date, created_at, updated_at FROM items WHERE id = $1`
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	it, err := scanItem(r.db.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return models.Item{}, ErrItemNotFound
	}
	return it, err
}

func (r *PostgresItemRepository) List(ctx context.Context) (models.Snapshot, error) {
	query := `SELECT id, name, quantity, expiry_date, created_at, updated_at FROM items ORDER BY created_at, id`
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	snap := models.Snapshot{}
	for rows.Next() {
		it, err := scanItem(rows)
		if err != nil {
			return nil, err
		}
		snap = append(snap, it)
	}
	return snap, rows.Err()
}

func (r *PostgresItemRepository) UpdateQuantity(ctx context.Context, id string, quantity int) error {
	query := `UPDATE items SET quantity = $1, updated_at = $2 WHERE id = $3`
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	res, err := r.db.ExecContext(ctx, query, quantity, time.Now().UTC(), id)
	if err != nil {
		return err
	}
	rowsAffected, _ := res.RowsAffected()
	if rowsAffected == 0 {
		return ErrItemNotFound
	}
	return nil
}

func (r *PostgresItemRepository) Delete(ctx context.Context, id string) error {
	query := `DELETE FROM items WHERE id = $1`
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	res, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return err
	}
	rowsAffected, _ := res.RowsAffected()
	if rowsAffected == 0 {
		return ErrItemNotFound
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanItem(row rowScanner) (models.Item, error) {
	var it models.Item
	var expiry sql.NullTime
	if err := row.Scan(&it.ID, &it.Name, &it.Quantity, &expiry, &it.CreatedAt, &it.UpdatedAt); err != nil {
		return models.Item{}, err
	}
	if expiry.Valid {
		d := expiry.Time
		it.ExpiryDate = &d
	}
	return it, nil
}
