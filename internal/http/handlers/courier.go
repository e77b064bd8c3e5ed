package handlers

import (
	"errors"
	"net/http"

	"courier-dispatch/internal/apperr"
	"courier-dispatch/internal/logx"
	"courier-dispatch/internal/service/courier"
)

// CourierHandler serves HTTP endpoints for courier resources.
type CourierHandler struct {
	uc     courierUsecase
	logger logx.Logger
}

// NewCourierHandler wires a courierUsecase into HTTP handlers.
func NewCourierHandler(logger logx.Logger, uc courierUsecase) *CourierHandler {
	return &CourierHandler{uc: uc, logger: logger}
}

// RegisterBatch handles POST /couriers. Either every entry passes validation
// and the batch is stored, or nothing is and the response lists the failures
// per entry.
func (h *CourierHandler) RegisterBatch(w http.ResponseWriter, r *http.Request) {
	var req courierBatchRequest
	if ok := decodeJSON(h.logger, w, r, &req); !ok {
		return
	}

	ids, bad, err := h.uc.RegisterBatch(r.Context(), toNewCouriers(req.Data))
	switch {
	case err == nil && len(bad) == 0:
		writeJSON(h.logger, w, r, http.StatusCreated,
			courierBatchResponse{Couriers: idRefs(ids)})
	case err == nil:
		writeJSON(h.logger, w, r, http.StatusBadRequest, courierValidationResponse{
			ValidationError: courierValidationErrors{Couriers: toCourierItemErrors(bad)},
		})
	case errors.Is(err, apperr.Conflict):
		writeError(h.logger, w, r, http.StatusBadRequest, "duplicate courier id")
	default:
		writeError(h.logger, w, r, http.StatusInternalServerError, "internal error")
	}
}

// Profile handles GET /couriers/{id}.
func (h *CourierHandler) Profile(w http.ResponseWriter, r *http.Request) {
	id, err := idFromURL(r, "id")
	if err != nil {
		writeError(h.logger, w, r, http.StatusBadRequest, "invalid id")
		return
	}

	p, err := h.uc.Profile(r.Context(), id)
	switch {
	case err == nil:
		writeJSON(h.logger, w, r, http.StatusOK, toProfileResponse(p))
	case errors.Is(err, apperr.NotFound):
		writeError(h.logger, w, r, http.StatusNotFound, "courier not found")
	default:
		writeError(h.logger, w, r, http.StatusInternalServerError, "internal error")
	}
}

// Update handles PATCH /couriers/{id} with a partial update body.
func (h *CourierHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := idFromURL(r, "id")
	if err != nil {
		writeError(h.logger, w, r, http.StatusBadRequest, "invalid id")
		return
	}
	var req courierPatchRequest
	if ok := decodeJSON(h.logger, w, r, &req); !ok {
		return
	}

	p, err := h.uc.UpdateProfile(r.Context(), courier.ProfileUpdate{
		ID:           id,
		Type:         req.CourierType,
		Regions:      req.Regions,
		WorkingHours: req.WorkingHours,
	})
	switch {
	case err == nil:
		writeJSON(h.logger, w, r, http.StatusOK, toProfileResponse(p))
	case errors.Is(err, apperr.Invalid):
		writeError(h.logger, w, r, http.StatusBadRequest, "invalid input")
	case errors.Is(err, apperr.NotFound):
		writeError(h.logger, w, r, http.StatusNotFound, "courier not found")
	default:
		writeError(h.logger, w, r, http.StatusInternalServerError, "internal error")
	}
}
