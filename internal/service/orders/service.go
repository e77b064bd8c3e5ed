package orders

import (
	"context"
	"time"

	"courier-dispatch/internal/domain"
)

// Service validates and persists order intake batches.
type Service struct {
	repo             orderRepository
	operationTimeout time.Duration
}

// NewService creates an order intake Service.
func NewService(r orderRepository, timeout time.Duration) *Service {
	if timeout <= 0 {
		timeout = 3 * time.Second
	}
	return &Service{repo: r, operationTimeout: timeout}
}

// NewOrder is one entry of an intake batch, before validation. Nil pointers
// and slices mean the field was absent from the payload.
type NewOrder struct {
	ID            int64
	Weight        *float64
	Region        *int64
	DeliveryHours []string
}

// ItemErrors lists validation failures for one batch entry.
type ItemErrors struct {
	ID     int64
	Errors []string
}

// Validation error messages are part of the public contract and kept stable.
const (
	msgIDPositive      = "Order ID must be positive integer."
	msgWeightRequired  = "Weight must be specified."
	msgWeightTooLight  = "The weight must be greater than or equal to 0.01."
	msgWeightTooHeavy  = "The weight must be less than or equal to 50."
	msgRegionRequired  = "Region must be specified."
	msgRegionPositive  = "Region must be positive integer."
	msgHoursRequired   = "Delivery hours must be specified."
	msgHoursEmpty      = "At least one delivery time slot is required."
	msgBadTimeInterval = `Wrong time interval format. Correct usage: "HH:MM-HH:MM"`
)

// RegisterBatch validates every entry and persists the batch only when all
// entries pass; invalid entries come back with their error messages and
// nothing is stored.
func (s *Service) RegisterBatch(ctx context.Context, in []NewOrder) ([]int64, []ItemErrors, error) {
	var bad []ItemErrors
	orders := make([]domain.Order, 0, len(in))
	ids := make([]int64, 0, len(in))

	for _, no := range in {
		o, errs := validateNewOrder(no)
		if len(errs) > 0 {
			bad = append(bad, ItemErrors{ID: no.ID, Errors: errs})
			continue
		}
		orders = append(orders, o)
		ids = append(ids, o.ID)
	}
	if len(bad) > 0 {
		return nil, bad, nil
	}

	ctx, cancel := context.WithTimeout(ctx, s.operationTimeout)
	defer cancel()
	if err := s.repo.CreateBatch(ctx, orders); err != nil {
		return nil, nil, err
	}
	return ids, nil, nil
}

func validateNewOrder(no NewOrder) (domain.Order, []string) {
	var errs []string

	if no.ID <= 0 {
		errs = append(errs, msgIDPositive)
	}

	switch {
	case no.Weight == nil:
		errs = append(errs, msgWeightRequired)
	case *no.Weight < domain.MinOrderWeight:
		errs = append(errs, msgWeightTooLight)
	case *no.Weight > domain.MaxOrderWeight:
		errs = append(errs, msgWeightTooHeavy)
	}

	switch {
	case no.Region == nil:
		errs = append(errs, msgRegionRequired)
	case *no.Region <= 0:
		errs = append(errs, msgRegionPositive)
	}

	var hours []domain.TimeWindow
	switch {
	case no.DeliveryHours == nil:
		errs = append(errs, msgHoursRequired)
	case len(no.DeliveryHours) == 0:
		errs = append(errs, msgHoursEmpty)
	default:
		for _, s := range no.DeliveryHours {
			w, err := domain.ParseTimeWindow(s)
			if err != nil {
				errs = append(errs, msgBadTimeInterval)
				continue
			}
			hours = append(hours, w)
		}
	}

	if len(errs) > 0 {
		return domain.Order{}, errs
	}
	return domain.Order{
		ID:            no.ID,
		Weight:        *no.Weight,
		Region:        *no.Region,
		DeliveryHours: hours,
	}, nil
}
