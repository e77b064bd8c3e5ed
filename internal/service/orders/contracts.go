package orders

import (
	"context"

	"courier-dispatch/internal/domain"
)

// orderRepository defines storage operations required by order intake.
type orderRepository interface {
	CreateBatch(ctx context.Context, os []domain.Order) error
}

// Intake abstracts the subset of intake operations the event processor needs.
type Intake interface {
	RegisterBatch(ctx context.Context, in []NewOrder) ([]int64, []ItemErrors, error)
}
