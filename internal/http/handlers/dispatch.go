package handlers

import (
	"errors"
	"net/http"

	"courier-dispatch/internal/apperr"
	"courier-dispatch/internal/domain"
	"courier-dispatch/internal/logx"
)

// DispatchHandler serves the assign and complete endpoints.
type DispatchHandler struct {
	uc     dispatchUsecase
	logger logx.Logger
}

// NewDispatchHandler wires a dispatchUsecase into HTTP handlers.
func NewDispatchHandler(logger logx.Logger, uc dispatchUsecase) *DispatchHandler {
	return &DispatchHandler{uc: uc, logger: logger}
}

// Assign handles POST /orders/assign.
func (h *DispatchHandler) Assign(w http.ResponseWriter, r *http.Request) {
	var req assignRequest
	if ok := decodeJSON(h.logger, w, r, &req); !ok {
		return
	}
	if req.CourierID <= 0 {
		writeError(h.logger, w, r, http.StatusBadRequest, "courier_id must be positive")
		return
	}

	res, err := h.uc.Assign(r.Context(), req.CourierID)
	switch {
	case err == nil:
		writeJSON(h.logger, w, r, http.StatusOK, toAssignResponse(res))
	case errors.Is(err, apperr.NotFound), errors.Is(err, apperr.Invalid):
		writeError(h.logger, w, r, http.StatusBadRequest, "unknown courier")
	default:
		writeError(h.logger, w, r, http.StatusInternalServerError, "internal error")
	}
}

// Complete handles POST /orders/complete.
func (h *DispatchHandler) Complete(w http.ResponseWriter, r *http.Request) {
	var req completeRequest
	if ok := decodeJSON(h.logger, w, r, &req); !ok {
		return
	}
	if req.CourierID <= 0 || req.OrderID <= 0 {
		writeError(h.logger, w, r, http.StatusBadRequest, "courier_id and order_id must be positive")
		return
	}
	at, err := domain.ParseWireTime(req.CompleteTime)
	if err != nil {
		writeError(h.logger, w, r, http.StatusBadRequest, "invalid complete_time")
		return
	}

	orderID, err := h.uc.Complete(r.Context(), req.CourierID, req.OrderID, at)
	switch {
	case err == nil:
		writeJSON(h.logger, w, r, http.StatusOK, completeResponse{OrderID: orderID})
	case errors.Is(err, apperr.NotFound), errors.Is(err, apperr.Invalid):
		writeError(h.logger, w, r, http.StatusBadRequest, "invalid completion")
	default:
		writeError(h.logger, w, r, http.StatusInternalServerError, "internal error")
	}
}
