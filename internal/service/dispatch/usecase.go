package dispatch

import (
	"context"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"courier-dispatch/internal/apperr"
	"courier-dispatch/internal/domain"
	"courier-dispatch/internal/logx"
	"courier-dispatch/internal/ports/dispatchtx"
)

// Counters are the engine's prometheus counters. Nil counters are skipped.
type Counters struct {
	SessionsFormed prometheus.Counter
	SessionsClosed prometheus.Counter
	ClaimsLost     prometheus.Counter
}

func inc(c prometheus.Counter) {
	if c != nil {
		c.Inc()
	}
}

// Service - the matching orchestrator: forms and closes assignment sessions
// and folds completions into courier stats and earnings.
type Service struct {
	repo             dispatchRepository
	operationTimeout time.Duration
	logger           logx.Logger
	counters         Counters
	now              func() time.Time
}

// NewService creates a dispatch Service.
func NewService(r dispatchRepository, timeout time.Duration, logger logx.Logger, counters Counters) *Service {
	if timeout <= 0 {
		timeout = 3 * time.Second
	}
	if logger == nil {
		logger = logx.Nop()
	}
	return &Service{
		repo:             r,
		operationTimeout: timeout,
		logger:           logger,
		counters:         counters,
		now:              func() time.Time { return time.Now().UTC() },
	}
}

func (s *Service) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, s.operationTimeout)
}

// Assign forms or returns the courier's assignment session.
//
// A session with outstanding orders is frozen: the existing order list and
// assign time come back unchanged, with no re-matching and no capacity
// re-check. A session whose orders were all delivered is closed (payout)
// before a fresh one is formed. With no session, the allocator runs over the
// candidate pool and each selected order is claimed atomically; an empty
// selection leaves the courier idle with no assign time.
func (s *Service) Assign(ctx context.Context, courierID int64) (domain.AssignResult, error) {
	if courierID <= 0 {
		return domain.AssignResult{}, apperr.Invalid
	}
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	var (
		result domain.AssignResult
		formed bool
		closed bool
	)
	err := s.repo.WithTx(ctx, func(tx dispatchtx.Repository) error {
		c, err := tx.CourierForUpdate(ctx, courierID)
		if err != nil {
			return err
		}
		if c == nil {
			return apperr.NotFound
		}

		if c.Session != nil {
			outstanding, err := tx.OutstandingOrders(ctx, c.ID)
			if err != nil {
				return err
			}
			if len(outstanding) > 0 {
				at := c.Session.AssignedAt
				result = domain.AssignResult{OrderIDs: orderIDs(outstanding), AssignedAt: &at}
				return nil
			}
			// Fully delivered but never closed: pay out before forming anew.
			if err := tx.CloseSession(ctx, c.ID, domain.SessionPayout(c.Session.FormedType)); err != nil {
				return err
			}
			c.Session = nil
			closed = true
		}

		pool, err := tx.CandidateOrders(ctx, c.ID)
		if err != nil {
			return err
		}
		selected, err := s.claimSelection(ctx, tx, c, pool)
		if err != nil {
			return err
		}
		if len(selected) == 0 {
			result = domain.AssignResult{}
			return nil
		}

		now := s.now()
		if err := tx.OpenSession(ctx, c.ID, now, c.Type); err != nil {
			return err
		}
		result = domain.AssignResult{OrderIDs: orderIDs(selected), AssignedAt: &now}
		formed = true
		return nil
	})
	if err != nil {
		return domain.AssignResult{}, err
	}

	if closed {
		inc(s.counters.SessionsClosed)
	}
	if formed {
		inc(s.counters.SessionsFormed)
		s.logger.Info("session formed",
			logx.String("event", "session_formed"),
			logx.Int64("courier_id", courierID),
			logx.Int("orders", len(result.OrderIDs)),
			logx.Time("assigned_at", *result.AssignedAt),
		)
	}
	return result, nil
}

// claimSelection runs the allocator and claims every selected order. A lost
// claim backs out the fresh claims of this attempt, drops the contested
// order from the pool and re-runs the allocator; the pool shrinks by at
// least one order per attempt, so the loop terminates.
func (s *Service) claimSelection(ctx context.Context, tx dispatchtx.Repository, c *domain.Courier, pool []domain.Order) ([]domain.Order, error) {
	for len(pool) > 0 {
		selected, _ := AllocateOrders(c, pool)
		if len(selected) == 0 {
			return nil, nil
		}

		var (
			fresh []domain.Order
			lost  int64 = -1
		)
		for _, o := range selected {
			ok, err := tx.ClaimOrder(ctx, o.ID, c.ID)
			if err != nil {
				return nil, err
			}
			if !ok {
				lost = o.ID
				break
			}
			if o.CourierID == nil {
				fresh = append(fresh, o)
			}
		}
		if lost < 0 {
			return selected, nil
		}

		for _, o := range fresh {
			if err := tx.ReleaseOrder(ctx, o.ID, c.ID); err != nil {
				return nil, err
			}
		}
		inc(s.counters.ClaimsLost)
		s.logger.Warn("order claim lost, reallocating",
			logx.Int64("order_id", lost),
			logx.Int64("courier_id", c.ID),
		)
		pool = withoutOrder(pool, lost)
	}
	return nil, nil
}

// Complete marks an order delivered on behalf of the courier.
//
// Repeated completions of an already delivered order are a no-op that still
// succeeds. A first completion records the elapsed time against the order's
// region, advances the courier's last action time, and closes the session
// (payout at the frozen type) when no outstanding orders remain.
func (s *Service) Complete(ctx context.Context, courierID, orderID int64, completedAt time.Time) (int64, error) {
	if courierID <= 0 || orderID <= 0 {
		return 0, apperr.Invalid
	}
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	var closed bool
	err := s.repo.WithTx(ctx, func(tx dispatchtx.Repository) error {
		c, err := tx.CourierForUpdate(ctx, courierID)
		if err != nil {
			return err
		}
		if c == nil {
			return apperr.NotFound
		}

		o, err := tx.Order(ctx, orderID)
		if err != nil {
			return err
		}
		if o == nil {
			return apperr.NotFound
		}
		if !o.AssignedTo(c.ID) {
			return apperr.Invalid
		}
		if o.Completed() {
			return nil
		}

		if c.LastActionAt == nil || !completedAt.After(*c.LastActionAt) {
			return apperr.Invalid
		}
		elapsed := int64(completedAt.Sub(*c.LastActionAt) / time.Second)

		if err := tx.CompleteOrder(ctx, o.ID, completedAt); err != nil {
			return err
		}
		if err := tx.RecordDelivery(ctx, c.ID, o.Region, elapsed, completedAt); err != nil {
			return err
		}

		outstanding, err := tx.OutstandingOrders(ctx, c.ID)
		if err != nil {
			return err
		}
		if len(outstanding) == 0 && c.Session != nil {
			if err := tx.CloseSession(ctx, c.ID, domain.SessionPayout(c.Session.FormedType)); err != nil {
				return err
			}
			closed = true
		}
		return nil
	})
	if err != nil {
		return 0, err
	}

	if closed {
		inc(s.counters.SessionsClosed)
		s.logger.Info("session closed",
			logx.String("event", "session_closed"),
			logx.Int64("courier_id", courierID),
			logx.Int64("order_id", orderID),
		)
	}
	return orderID, nil
}

func orderIDs(orders []domain.Order) []int64 {
	ids := make([]int64, 0, len(orders))
	for _, o := range orders {
		ids = append(ids, o.ID)
	}
	return ids
}

func withoutOrder(pool []domain.Order, id int64) []domain.Order {
	out := make([]domain.Order, 0, len(pool))
	for _, o := range pool {
		if o.ID != id {
			out = append(out, o)
		}
	}
	return out
}
