package courier

import (
	"context"

	"courier-dispatch/internal/domain"
)

// courierRepository defines storage operations required by the business layer.
type courierRepository interface {
	Get(ctx context.Context, id int64) (*domain.Courier, error)
	CreateBatch(ctx context.Context, cs []domain.Courier) error
	UpdatePartial(ctx context.Context, u domain.PartialCourierUpdate) (bool, error)
}
