package handlers

import (
	"errors"
	"net/http"

	"courier-dispatch/internal/apperr"
	"courier-dispatch/internal/logx"
)

// OrderHandler serves HTTP endpoints for order intake.
type OrderHandler struct {
	intake orderIntake
	logger logx.Logger
}

// NewOrderHandler wires an orderIntake into HTTP handlers.
func NewOrderHandler(logger logx.Logger, intake orderIntake) *OrderHandler {
	return &OrderHandler{intake: intake, logger: logger}
}

// RegisterBatch handles POST /orders. All-or-nothing, same as the courier
// batch endpoint.
func (h *OrderHandler) RegisterBatch(w http.ResponseWriter, r *http.Request) {
	var req orderBatchRequest
	if ok := decodeJSON(h.logger, w, r, &req); !ok {
		return
	}

	ids, bad, err := h.intake.RegisterBatch(r.Context(), toNewOrders(req.Data))
	switch {
	case err == nil && len(bad) == 0:
		writeJSON(h.logger, w, r, http.StatusCreated,
			orderBatchResponse{Orders: idRefs(ids)})
	case err == nil:
		writeJSON(h.logger, w, r, http.StatusBadRequest, orderValidationResponse{
			ValidationError: orderValidationErrors{Orders: toOrderItemErrors(bad)},
		})
	case errors.Is(err, apperr.Conflict):
		writeError(h.logger, w, r, http.StatusBadRequest, "duplicate order id")
	default:
		writeError(h.logger, w, r, http.StatusInternalServerError, "internal error")
	}
}
