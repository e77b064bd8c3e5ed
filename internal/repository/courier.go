package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"courier-dispatch/internal/apperr"
	"courier-dispatch/internal/domain"
)

const courierColumns = `id, courier_type, regions, working_hours, assign_time, type_when_formed, last_action_at, earnings`

// rowScanner covers pgx.Row for both pool and transaction queries.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanCourier(row rowScanner) (*domain.Courier, error) {
	var (
		c        domain.Courier
		typ      string
		hours    []string
		assignAt *time.Time
		formed   *string
	)
	err := row.Scan(&c.ID, &typ, &c.Regions, &hours, &assignAt, &formed, &c.LastActionAt, &c.Earnings)
	if err != nil {
		return nil, err
	}
	c.Type = domain.CourierType(typ)
	c.WorkingHours, err = domain.ParseTimeWindows(hours)
	if err != nil {
		return nil, fmt.Errorf("courier %d: stored working hours: %w", c.ID, err)
	}
	if assignAt != nil {
		s := &domain.Session{AssignedAt: *assignAt}
		if formed != nil {
			s.FormedType = domain.CourierType(*formed)
		}
		c.Session = s
	}
	return &c, nil
}

// CourierRepo represents courier repository.
type CourierRepo struct{ db *pgxpool.Pool }

// NewCourierRepo creates a new CourierRepo.
func NewCourierRepo(db *pgxpool.Pool) *CourierRepo { return &CourierRepo{db: db} }

// Get - returns a courier with its delivery stats, or nil when unknown.
func (r *CourierRepo) Get(ctx context.Context, id int64) (*domain.Courier, error) {
	row := r.db.QueryRow(ctx,
		`SELECT `+courierColumns+` FROM couriers WHERE id=$1`, id)
	c, err := scanCourier(row)
	if err != nil {
		if IsNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get courier %d: %w", id, err)
	}

	c.Stats, err = loadStats(ctx, r.db, id)
	if err != nil {
		return nil, fmt.Errorf("get courier %d stats: %w", id, err)
	}
	return c, nil
}

type querier interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
}

func loadStats(ctx context.Context, q querier, courierID int64) (map[int64]domain.DeliveryStat, error) {
	rows, err := q.Query(ctx,
		`SELECT region, completed_count, total_seconds
         FROM courier_region_stats WHERE courier_id=$1`, courierID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	stats := make(map[int64]domain.DeliveryStat)
	for rows.Next() {
		var (
			region int64
			st     domain.DeliveryStat
		)
		if err := rows.Scan(&region, &st.Count, &st.TotalSeconds); err != nil {
			return nil, err
		}
		stats[region] = st
	}
	return stats, rows.Err()
}

// CreateBatch inserts all couriers in one transaction; a duplicate id rolls
// the whole batch back.
func (r *CourierRepo) CreateBatch(ctx context.Context, cs []domain.Courier) error {
	tx, err := r.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback(ctx) //nolint:errcheck // no-op after commit

	for _, c := range cs {
		_, err := tx.Exec(ctx,
			`INSERT INTO couriers(id, courier_type, regions, working_hours)
             VALUES($1, $2, $3, $4)`,
			c.ID, string(c.Type), c.Regions, domain.FormatTimeWindows(c.WorkingHours))
		if err != nil {
			if IsDuplicate(err) {
				return apperr.Conflict
			}
			return fmt.Errorf("create courier %d: %w", c.ID, err)
		}
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit tx: %w", err)
	}
	return nil
}

// UpdatePartial applies a partial update and returns true if a row was
// affected. Nil fields keep the stored value.
func (r *CourierRepo) UpdatePartial(ctx context.Context, u domain.PartialCourierUpdate) (bool, error) {
	var typ *string
	if u.Type != nil {
		s := string(*u.Type)
		typ = &s
	}
	var hours []string
	if u.WorkingHours != nil {
		hours = domain.FormatTimeWindows(u.WorkingHours)
	}

	ct, err := r.db.Exec(ctx, `
        UPDATE couriers
        SET
            courier_type  = COALESCE($2, courier_type),
            regions       = COALESCE($3, regions),
            working_hours = COALESCE($4, working_hours)
        WHERE id = $1
    `, u.ID, typ, u.Regions, hours)
	if err != nil {
		return false, fmt.Errorf("update courier %d: %w", u.ID, err)
	}
	return ct.RowsAffected() > 0, nil
}
