package courier

import (
	"context"
	"time"

	"courier-dispatch/internal/apperr"
	"courier-dispatch/internal/domain"
)

// Service coordinates courier registration, updates and profile reads.
type Service struct {
	repo             courierRepository
	operationTimeout time.Duration
}

// NewService creates and configures a courier Service.
func NewService(r courierRepository, timeout time.Duration) *Service {
	if timeout <= 0 {
		timeout = 3 * time.Second
	}
	return &Service{repo: r, operationTimeout: timeout}
}

func (s *Service) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, s.operationTimeout)
}

// NewCourier is one entry of a registration batch, before validation.
// Nil slices mean the field was absent from the payload.
type NewCourier struct {
	ID           int64
	Type         string
	Regions      []int64
	WorkingHours []string
}

// ItemErrors lists validation failures for one batch entry.
type ItemErrors struct {
	ID     int64
	Errors []string
}

// Profile is the courier read model returned to clients. Rating is nil until
// the courier has at least one completed delivery.
type Profile struct {
	CourierID    int64
	Type         domain.CourierType
	Regions      []int64
	WorkingHours []string
	Rating       *float64
	Earnings     int64
}

// ProfileUpdate carries the PATCH payload; a nil field means “do not change”.
type ProfileUpdate struct {
	ID           int64
	Type         *string
	Regions      []int64
	WorkingHours []string
}

// RegisterBatch validates every entry and persists the batch only when all
// entries pass. Invalid entries come back with their per-field error
// messages; in that case nothing is stored.
func (s *Service) RegisterBatch(ctx context.Context, in []NewCourier) ([]int64, []ItemErrors, error) {
	var bad []ItemErrors
	couriers := make([]domain.Courier, 0, len(in))
	ids := make([]int64, 0, len(in))

	for _, nc := range in {
		c, errs := validateNewCourier(nc)
		if len(errs) > 0 {
			bad = append(bad, ItemErrors{ID: nc.ID, Errors: errs})
			continue
		}
		couriers = append(couriers, c)
		ids = append(ids, c.ID)
	}
	if len(bad) > 0 {
		return nil, bad, nil
	}

	ctx, cancel := s.withTimeout(ctx)
	defer cancel()
	if err := s.repo.CreateBatch(ctx, couriers); err != nil {
		return nil, nil, err
	}
	return ids, nil, nil
}

// Profile returns a courier profile with the rating derived from its
// delivery stats.
func (s *Service) Profile(ctx context.Context, id int64) (*Profile, error) {
	if id <= 0 {
		return nil, apperr.Invalid
	}
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	c, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, apperr.NotFound
	}

	p := &Profile{
		CourierID:    c.ID,
		Type:         c.Type,
		Regions:      c.Regions,
		WorkingHours: domain.FormatTimeWindows(c.WorkingHours),
		Earnings:     c.Earnings,
	}
	if rating, ok := domain.Rating(c.Stats); ok {
		p.Rating = &rating
	}
	return p, nil
}

// UpdateProfile applies a partial update and returns the refreshed profile
// fields. Already-claimed orders are not retroactively unassigned: the next
// assign call simply matches against the new attributes.
func (s *Service) UpdateProfile(ctx context.Context, upd ProfileUpdate) (*Profile, error) {
	u, err := validateUpdate(upd)
	if err != nil {
		return nil, err
	}

	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	ok, err := s.repo.UpdatePartial(ctx, u)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, apperr.NotFound
	}

	c, err := s.repo.Get(ctx, upd.ID)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, apperr.NotFound
	}
	return &Profile{
		CourierID:    c.ID,
		Type:         c.Type,
		Regions:      c.Regions,
		WorkingHours: domain.FormatTimeWindows(c.WorkingHours),
		Earnings:     c.Earnings,
	}, nil
}
