package dispatchtx

import (
	"context"
	"time"

	"courier-dispatch/internal/domain"
)

// Repository is the transaction-scoped view of the courier and order stores
// used by the dispatch service. Every method runs inside the same
// transaction; the courier row is locked for its duration, so all state
// transitions for a single courier are mutually exclusive.
type Repository interface {
	// CourierForUpdate loads a courier with its session, stats and earnings,
	// locking the row. Returns nil when the courier is unknown.
	CourierForUpdate(ctx context.Context, id int64) (*domain.Courier, error)

	// Order returns an order by id, or nil when unknown.
	Order(ctx context.Context, id int64) (*domain.Order, error)

	// OutstandingOrders returns the courier's assigned, not yet completed
	// orders ordered by id.
	OutstandingOrders(ctx context.Context, courierID int64) ([]domain.Order, error)

	// CandidateOrders returns the incomplete orders that are unassigned or
	// already assigned to the courier, ordered by id.
	CandidateOrders(ctx context.Context, courierID int64) ([]domain.Order, error)

	// ClaimOrder atomically assigns an order to the courier. It reports false
	// without error when the order was claimed by someone else in the
	// meantime (compare-and-set on the unassigned state).
	ClaimOrder(ctx context.Context, orderID, courierID int64) (bool, error)

	// ReleaseOrder undoes a claim made earlier in this transaction. Used to
	// back out a partially claimed selection after a lost claim.
	ReleaseOrder(ctx context.Context, orderID, courierID int64) error

	// OpenSession records session formation: assign time, the frozen courier
	// type, and the courier's last action time.
	OpenSession(ctx context.Context, courierID int64, at time.Time, formed domain.CourierType) error

	// CloseSession clears the session fields and credits the payout.
	CloseSession(ctx context.Context, courierID int64, payout int64) error

	// CompleteOrder stamps the order's complete time. It must not touch an
	// already completed order.
	CompleteOrder(ctx context.Context, orderID int64, at time.Time) error

	// RecordDelivery folds one completed delivery into the courier's
	// per-region stats and advances the courier's last action time to at.
	RecordDelivery(ctx context.Context, courierID, region, elapsedSeconds int64, at time.Time) error
}
