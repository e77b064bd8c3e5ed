package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"courier-dispatch/internal/apperr"
	"courier-dispatch/internal/domain"
)

const orderColumns = `id, weight, region, delivery_hours, courier_id, completed_at`

func scanOrder(row rowScanner) (*domain.Order, error) {
	var (
		o     domain.Order
		hours []string
	)
	err := row.Scan(&o.ID, &o.Weight, &o.Region, &hours, &o.CourierID, &o.CompletedAt)
	if err != nil {
		return nil, err
	}
	o.DeliveryHours, err = domain.ParseTimeWindows(hours)
	if err != nil {
		return nil, fmt.Errorf("order %d: stored delivery hours: %w", o.ID, err)
	}
	return &o, nil
}

// OrderRepo represents order repository.
type OrderRepo struct{ db *pgxpool.Pool }

// NewOrderRepo creates a new OrderRepo.
func NewOrderRepo(db *pgxpool.Pool) *OrderRepo { return &OrderRepo{db: db} }

// CreateBatch inserts all orders in one transaction; a duplicate id rolls
// the whole batch back.
func (r *OrderRepo) CreateBatch(ctx context.Context, os []domain.Order) error {
	tx, err := r.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback(ctx) //nolint:errcheck // no-op after commit

	for _, o := range os {
		_, err := tx.Exec(ctx,
			`INSERT INTO orders(id, weight, region, delivery_hours)
             VALUES($1, $2, $3, $4)`,
			o.ID, o.Weight, o.Region, domain.FormatTimeWindows(o.DeliveryHours))
		if err != nil {
			if IsDuplicate(err) {
				return apperr.Conflict
			}
			return fmt.Errorf("create order %d: %w", o.ID, err)
		}
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit tx: %w", err)
	}
	return nil
}
