package handlers

import (
	"context"
	"net/http"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/require"

	"courier-dispatch/internal/apperr"
	"courier-dispatch/internal/logx"
	"courier-dispatch/internal/service/orders"
)

type stubOrderIntake struct {
	got []orders.NewOrder
	ids []int64
	bad []orders.ItemErrors
	err error
}

func (s *stubOrderIntake) RegisterBatch(_ context.Context, in []orders.NewOrder) ([]int64, []orders.ItemErrors, error) {
	s.got = append(s.got, in...)
	return s.ids, s.bad, s.err
}

func ordersTestRouter(intake orderIntake) http.Handler {
	h := NewOrderHandler(logx.Nop(), intake)
	r := chi.NewRouter()
	r.Post("/orders", h.RegisterBatch)
	return r
}

func TestOrdersRegisterBatch_Created(t *testing.T) {
	t.Parallel()

	intake := &stubOrderIntake{ids: []int64{1}}
	h := ordersTestRouter(intake)

	w := doJSON(t, h, http.MethodPost, "/orders",
		`{"data":[{"order_id":1,"weight":1.5,"region":3,"delivery_hours":["10:00-12:00"]}]}`)

	require.Equal(t, http.StatusCreated, w.Code)
	require.JSONEq(t, `{"orders":[{"id":1}]}`, w.Body.String())

	require.Len(t, intake.got, 1)
	require.NotNil(t, intake.got[0].Weight)
	require.Equal(t, 1.5, *intake.got[0].Weight)
	require.NotNil(t, intake.got[0].Region)
	require.Equal(t, int64(3), *intake.got[0].Region)
}

func TestOrdersRegisterBatch_AbsentFieldsStayNil(t *testing.T) {
	t.Parallel()

	intake := &stubOrderIntake{ids: []int64{}}
	h := ordersTestRouter(intake)

	doJSON(t, h, http.MethodPost, "/orders", `{"data":[{"order_id":1}]}`)
	require.Len(t, intake.got, 1)
	require.Nil(t, intake.got[0].Weight, "absent weight must be distinguishable from zero")
	require.Nil(t, intake.got[0].Region)
	require.Nil(t, intake.got[0].DeliveryHours)
}

func TestOrdersRegisterBatch_ValidationErrors(t *testing.T) {
	t.Parallel()

	intake := &stubOrderIntake{
		bad: []orders.ItemErrors{{ID: 1, Errors: []string{"Weight must be specified."}}},
	}
	h := ordersTestRouter(intake)

	w := doJSON(t, h, http.MethodPost, "/orders", `{"data":[{"order_id":1}]}`)
	require.Equal(t, http.StatusBadRequest, w.Code)
	require.JSONEq(t,
		`{"validation_error":{"orders":[{"id":1,"errors":["Weight must be specified."]}]}}`,
		w.Body.String())
}

func TestOrdersRegisterBatch_Duplicate(t *testing.T) {
	t.Parallel()

	intake := &stubOrderIntake{err: apperr.Conflict}
	h := ordersTestRouter(intake)

	w := doJSON(t, h, http.MethodPost, "/orders",
		`{"data":[{"order_id":1,"weight":1,"region":1,"delivery_hours":["10:00-12:00"]}]}`)
	require.Equal(t, http.StatusBadRequest, w.Code)
}
