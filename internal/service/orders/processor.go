package orders

import (
	"context"
	"errors"

	"courier-dispatch/internal/apperr"
	"courier-dispatch/internal/logx"
)

// Processor feeds streamed order events into the intake service.
type Processor struct {
	intake Intake
	logger logx.Logger
}

// NewProcessor creates a new orders.Processor
func NewProcessor(intake Intake, logger logx.Logger) *Processor {
	if logger == nil {
		logger = logx.Nop()
	}
	return &Processor{intake: intake, logger: logger}
}

// Handle processes a single order event. Events that fail validation are
// dropped with a warning rather than retried: a malformed event stays
// malformed. A duplicate order id means the event was already ingested.
func (p *Processor) Handle(ctx context.Context, e Event) error {
	weight := e.Weight
	region := e.Region
	_, bad, err := p.intake.RegisterBatch(ctx, []NewOrder{{
		ID:            e.OrderID,
		Weight:        &weight,
		Region:        &region,
		DeliveryHours: e.DeliveryHours,
	}})
	if errors.Is(err, apperr.Conflict) {
		p.logger.Debug("order event already ingested", logx.Int64("order_id", e.OrderID))
		return nil
	}
	if err != nil {
		return err
	}
	if len(bad) > 0 {
		p.logger.Warn("dropping invalid order event",
			logx.Int64("order_id", e.OrderID),
			logx.Any("errors", bad[0].Errors),
		)
	}
	return nil
}
