package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"courier-dispatch/internal/domain"
	"courier-dispatch/internal/ports/dispatchtx"
)

// DispatchRepo opens the per-request transactions the dispatch engine runs
// in. The courier row lock taken by CourierForUpdate serializes all state
// transitions for one courier across concurrent requests.
type DispatchRepo struct {
	db *pgxpool.Pool
}

// NewDispatchRepo creates a new DispatchRepo.
func NewDispatchRepo(db *pgxpool.Pool) *DispatchRepo {
	return &DispatchRepo{db: db}
}

// WithTx opens a transaction and executes fn within it.
func (r *DispatchRepo) WithTx(ctx context.Context, fn func(tx dispatchtx.Repository) error) (err error) {
	tx, err := r.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}

	defer func() {
		if p := recover(); p != nil {
			if rbErr := tx.Rollback(ctx); rbErr != nil {
				panic(rbErr)
			}
			panic(p)
		}
	}()

	if err := fn(&TxRepo{tx: tx}); err != nil {
		if rbErr := tx.Rollback(ctx); rbErr != nil {
			return fmt.Errorf("rollback tx: %w (original error: %s)", rbErr, err.Error())
		}
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit tx: %w", err)
	}
	return nil
}

// TxRepo is the transaction-scoped store view handed to the engine.
type TxRepo struct {
	tx pgx.Tx
}

var _ dispatchtx.Repository = (*TxRepo)(nil)

// CourierForUpdate loads and locks a courier row together with its stats.
func (r *TxRepo) CourierForUpdate(ctx context.Context, id int64) (*domain.Courier, error) {
	row := r.tx.QueryRow(ctx,
		`SELECT `+courierColumns+` FROM couriers WHERE id=$1 FOR UPDATE`, id)
	c, err := scanCourier(row)
	if err != nil {
		if IsNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("lock courier %d: %w", id, err)
	}

	c.Stats, err = loadStats(ctx, r.tx, id)
	if err != nil {
		return nil, fmt.Errorf("lock courier %d stats: %w", id, err)
	}
	return c, nil
}

// Order returns an order by id, or nil when unknown.
func (r *TxRepo) Order(ctx context.Context, id int64) (*domain.Order, error) {
	row := r.tx.QueryRow(ctx,
		`SELECT `+orderColumns+` FROM orders WHERE id=$1`, id)
	o, err := scanOrder(row)
	if err != nil {
		if IsNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get order %d: %w", id, err)
	}
	return o, nil
}

// OutstandingOrders returns assigned, incomplete orders ordered by id.
func (r *TxRepo) OutstandingOrders(ctx context.Context, courierID int64) ([]domain.Order, error) {
	return r.queryOrders(ctx,
		`SELECT `+orderColumns+` FROM orders
         WHERE courier_id=$1 AND completed_at IS NULL
         ORDER BY id`, courierID)
}

// CandidateOrders returns the incomplete orders that are unassigned or
// already assigned to the courier, ordered by id.
func (r *TxRepo) CandidateOrders(ctx context.Context, courierID int64) ([]domain.Order, error) {
	return r.queryOrders(ctx,
		`SELECT `+orderColumns+` FROM orders
         WHERE completed_at IS NULL AND (courier_id IS NULL OR courier_id=$1)
         ORDER BY id`, courierID)
}

func (r *TxRepo) queryOrders(ctx context.Context, sql string, args ...any) ([]domain.Order, error) {
	rows, err := r.tx.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.Order
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *o)
	}
	return out, rows.Err()
}

// ClaimOrder - compare-and-set claim of an unassigned (or own) order. The
// condition re-evaluates after any competing row lock is released, so a
// claim raced away by another courier reports false instead of double
// assigning.
func (r *TxRepo) ClaimOrder(ctx context.Context, orderID, courierID int64) (bool, error) {
	ct, err := r.tx.Exec(ctx, `
        UPDATE orders SET courier_id = $2
        WHERE id = $1
          AND completed_at IS NULL
          AND (courier_id IS NULL OR courier_id = $2)
    `, orderID, courierID)
	if err != nil {
		return false, fmt.Errorf("claim order %d: %w", orderID, err)
	}
	return ct.RowsAffected() > 0, nil
}

// ReleaseOrder - undo a claim taken earlier in this transaction.
func (r *TxRepo) ReleaseOrder(ctx context.Context, orderID, courierID int64) error {
	_, err := r.tx.Exec(ctx, `
        UPDATE orders SET courier_id = NULL
        WHERE id = $1 AND courier_id = $2 AND completed_at IS NULL
    `, orderID, courierID)
	if err != nil {
		return fmt.Errorf("release order %d: %w", orderID, err)
	}
	return nil
}

// OpenSession - record session formation on the courier row.
func (r *TxRepo) OpenSession(ctx context.Context, courierID int64, at time.Time, formed domain.CourierType) error {
	ct, err := r.tx.Exec(ctx, `
        UPDATE couriers
        SET assign_time = $2, type_when_formed = $3, last_action_at = $2
        WHERE id = $1
    `, courierID, at, string(formed))
	if err != nil {
		return fmt.Errorf("open session for courier %d: %w", courierID, err)
	}
	if ct.RowsAffected() == 0 {
		return fmt.Errorf("courier %d not found", courierID)
	}
	return nil
}

// CloseSession - clear session fields and credit the payout.
func (r *TxRepo) CloseSession(ctx context.Context, courierID int64, payout int64) error {
	ct, err := r.tx.Exec(ctx, `
        UPDATE couriers
        SET assign_time = NULL, type_when_formed = NULL, earnings = earnings + $2
        WHERE id = $1
    `, courierID, payout)
	if err != nil {
		return fmt.Errorf("close session for courier %d: %w", courierID, err)
	}
	if ct.RowsAffected() == 0 {
		return fmt.Errorf("courier %d not found", courierID)
	}
	return nil
}

// CompleteOrder - stamp the complete time; already completed orders are
// untouchable.
func (r *TxRepo) CompleteOrder(ctx context.Context, orderID int64, at time.Time) error {
	ct, err := r.tx.Exec(ctx, `
        UPDATE orders SET completed_at = $2
        WHERE id = $1 AND completed_at IS NULL
    `, orderID, at)
	if err != nil {
		return fmt.Errorf("complete order %d: %w", orderID, err)
	}
	if ct.RowsAffected() == 0 {
		return fmt.Errorf("order %d already completed or missing", orderID)
	}
	return nil
}

// RecordDelivery - fold one completion into regional stats and advance the
// courier's last action time.
func (r *TxRepo) RecordDelivery(ctx context.Context, courierID, region, elapsedSeconds int64, at time.Time) error {
	_, err := r.tx.Exec(ctx, `
        INSERT INTO courier_region_stats (courier_id, region, completed_count, total_seconds)
        VALUES ($1, $2, 1, $3)
        ON CONFLICT (courier_id, region) DO UPDATE
        SET completed_count = courier_region_stats.completed_count + 1,
            total_seconds   = courier_region_stats.total_seconds + EXCLUDED.total_seconds
    `, courierID, region, elapsedSeconds)
	if err != nil {
		return fmt.Errorf("record delivery for courier %d: %w", courierID, err)
	}

	ct, err := r.tx.Exec(ctx,
		`UPDATE couriers SET last_action_at = $2 WHERE id = $1`, courierID, at)
	if err != nil {
		return fmt.Errorf("advance last action for courier %d: %w", courierID, err)
	}
	if ct.RowsAffected() == 0 {
		return fmt.Errorf("courier %d not found", courierID)
	}
	return nil
}
