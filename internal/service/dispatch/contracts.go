package dispatch

import (
	"context"

	"courier-dispatch/internal/ports/dispatchtx"
)

// dispatchRepository abstracts the store behind a single-transaction entry
// point. The engine itself stays synchronous and pure; all I/O flows through
// the transaction-scoped repository.
type dispatchRepository interface {
	WithTx(ctx context.Context, fn func(tx dispatchtx.Repository) error) error
}
