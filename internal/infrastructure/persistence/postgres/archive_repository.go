package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"orderdesk/internal/domain/order"
)

// ArchiveRepository upserts normalized records into the order_archive table.
// The full record is kept as JSONB next to the columns reporting queries
// actually filter on.
type ArchiveRepository struct {
	pool *pgxpool.Pool
}

func NewArchiveRepository(pool *pgxpool.Pool) *ArchiveRepository {
	return &ArchiveRepository{pool: pool}
}

func (r *ArchiveRepository) Save(ctx context.Context, rec order.Record) error {
	if rec.ID == "" {
		return fmt.Errorf("record id is empty")
	}

	payload, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("encode record: %w", err)
	}

	const query = `
		INSERT INTO order_archive (id, order_number, customer_name, status, total, order_date, payload, archived_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, now())
		ON CONFLICT (id) DO UPDATE
		SET order_number = EXCLUDED.order_number,
			customer_name = EXCLUDED.customer_name,
			status = EXCLUDED.status,
			total = EXCLUDED.total,
			order_date = EXCLUDED.order_date,
			payload = EXCLUDED.payload,
			archived_at = now();
	`

	if err := r.ensureTable(ctx); err != nil {
		return err
	}

	_, err = r.pool.Exec(ctx, query,
		rec.ID,
		rec.OrderNumber,
		rec.CustomerName,
		rec.Status.Label(),
		rec.Total,
		rec.Date,
		payload,
	)
	return err
}

func (r *ArchiveRepository) FindByID(ctx context.Context, id string) (*order.Record, error) {
	const query = `
		SELECT payload
		FROM order_archive
		WHERE id = $1;
	`
	var payload []byte
	err := r.pool.QueryRow(ctx, query, id).Scan(&payload)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var rec order.Record
	if err := json.Unmarshal(payload, &rec); err != nil {
		return nil, fmt.Errorf("decode archived record: %w", err)
	}
	return &rec, nil
}

func (r *ArchiveRepository) ensureTable(ctx context.Context) error {
	const stmt = `
		CREATE TABLE IF NOT EXISTS order_archive (
			id TEXT PRIMARY KEY,
			order_number TEXT NOT NULL DEFAULT '',
			customer_name TEXT NOT NULL DEFAULT '',
			status TEXT NOT NULL,
			total NUMERIC NOT NULL,
			order_date TIMESTAMPTZ NOT NULL,
			payload JSONB NOT NULL,
			archived_at TIMESTAMPTZ NOT NULL
		);
	`
	_, err := r.pool.Exec(ctx, stmt)
	return err
}
