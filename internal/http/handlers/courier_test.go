package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/require"

	"courier-dispatch/internal/apperr"
	"courier-dispatch/internal/domain"
	"courier-dispatch/internal/logx"
	"courier-dispatch/internal/service/courier"
)

type stubCourierUsecase struct {
	registerIDs []int64
	registerBad []courier.ItemErrors
	registerErr error

	profile    *courier.Profile
	profileErr error

	updated    *courier.ProfileUpdate
	updateErr  error
	updateResp *courier.Profile
}

func (s *stubCourierUsecase) RegisterBatch(_ context.Context, in []courier.NewCourier) ([]int64, []courier.ItemErrors, error) {
	return s.registerIDs, s.registerBad, s.registerErr
}

func (s *stubCourierUsecase) Profile(_ context.Context, id int64) (*courier.Profile, error) {
	if s.profileErr != nil {
		return nil, s.profileErr
	}
	return s.profile, nil
}

func (s *stubCourierUsecase) UpdateProfile(_ context.Context, upd courier.ProfileUpdate) (*courier.Profile, error) {
	s.updated = &upd
	if s.updateErr != nil {
		return nil, s.updateErr
	}
	return s.updateResp, nil
}

func courierTestRouter(uc courierUsecase) http.Handler {
	h := NewCourierHandler(logx.Nop(), uc)
	r := chi.NewRouter()
	r.Post("/couriers", h.RegisterBatch)
	r.Get("/couriers/{id}", h.Profile)
	r.Patch("/couriers/{id}", h.Update)
	return r
}

func doJSON(t *testing.T, h http.Handler, method, target, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func TestCourierRegisterBatch_Created(t *testing.T) {
	t.Parallel()

	uc := &stubCourierUsecase{registerIDs: []int64{1, 2}}
	h := courierTestRouter(uc)

	w := doJSON(t, h, http.MethodPost, "/couriers",
		`{"data":[{"courier_id":1,"courier_type":"foot","regions":[1],"working_hours":["09:00-18:00"]},
		          {"courier_id":2,"courier_type":"bike","regions":[2],"working_hours":["09:00-18:00"]}]}`)

	require.Equal(t, http.StatusCreated, w.Code)
	require.JSONEq(t, `{"couriers":[{"id":1},{"id":2}]}`, w.Body.String())
}

func TestCourierRegisterBatch_ValidationErrors(t *testing.T) {
	t.Parallel()

	uc := &stubCourierUsecase{
		registerBad: []courier.ItemErrors{{ID: 5, Errors: []string{"Courier type must be specified."}}},
	}
	h := courierTestRouter(uc)

	w := doJSON(t, h, http.MethodPost, "/couriers", `{"data":[{"courier_id":5}]}`)

	require.Equal(t, http.StatusBadRequest, w.Code)
	require.JSONEq(t,
		`{"validation_error":{"couriers":[{"id":5,"errors":["Courier type must be specified."]}]}}`,
		w.Body.String())
}

func TestCourierRegisterBatch_BadJSON(t *testing.T) {
	t.Parallel()

	h := courierTestRouter(&stubCourierUsecase{})

	w := doJSON(t, h, http.MethodPost, "/couriers", `{not json`)
	require.Equal(t, http.StatusBadRequest, w.Code)

	w = doJSON(t, h, http.MethodPost, "/couriers", `{"data":[],"extra":1}`)
	require.Equal(t, http.StatusBadRequest, w.Code, "unknown fields are rejected")
}

func TestCourierRegisterBatch_Duplicate(t *testing.T) {
	t.Parallel()

	uc := &stubCourierUsecase{registerErr: apperr.Conflict}
	h := courierTestRouter(uc)

	w := doJSON(t, h, http.MethodPost, "/couriers",
		`{"data":[{"courier_id":1,"courier_type":"foot","regions":[1],"working_hours":["09:00-18:00"]}]}`)
	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCourierProfile(t *testing.T) {
	t.Parallel()

	rating := 4.0
	uc := &stubCourierUsecase{profile: &courier.Profile{
		CourierID:    7,
		Type:         domain.TypeBike,
		Regions:      []int64{1},
		WorkingHours: []string{"09:00-18:00"},
		Rating:       &rating,
		Earnings:     2500,
	}}
	h := courierTestRouter(uc)

	w := doJSON(t, h, http.MethodGet, "/couriers/7", "")
	require.Equal(t, http.StatusOK, w.Code)
	require.JSONEq(t,
		`{"courier_id":7,"courier_type":"bike","regions":[1],"working_hours":["09:00-18:00"],"rating":4,"earnings":2500}`,
		w.Body.String())
}

func TestCourierProfile_RatingOmittedWhenAbsent(t *testing.T) {
	t.Parallel()

	uc := &stubCourierUsecase{profile: &courier.Profile{
		CourierID:    7,
		Type:         domain.TypeFoot,
		Regions:      []int64{1},
		WorkingHours: []string{"09:00-18:00"},
	}}
	h := courierTestRouter(uc)

	w := doJSON(t, h, http.MethodGet, "/couriers/7", "")
	require.Equal(t, http.StatusOK, w.Code)
	require.NotContains(t, w.Body.String(), "rating")
}

func TestCourierProfile_NotFound(t *testing.T) {
	t.Parallel()

	uc := &stubCourierUsecase{profileErr: apperr.NotFound}
	h := courierTestRouter(uc)

	w := doJSON(t, h, http.MethodGet, "/couriers/99", "")
	require.Equal(t, http.StatusNotFound, w.Code)
}

func TestCourierProfile_BadID(t *testing.T) {
	t.Parallel()

	h := courierTestRouter(&stubCourierUsecase{})

	w := doJSON(t, h, http.MethodGet, "/couriers/abc", "")
	require.Equal(t, http.StatusBadRequest, w.Code)

	w = doJSON(t, h, http.MethodGet, "/couriers/-5", "")
	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCourierUpdate(t *testing.T) {
	t.Parallel()

	uc := &stubCourierUsecase{updateResp: &courier.Profile{
		CourierID:    7,
		Type:         domain.TypeCar,
		Regions:      []int64{1, 2},
		WorkingHours: []string{"08:00-20:00"},
	}}
	h := courierTestRouter(uc)

	w := doJSON(t, h, http.MethodPatch, "/couriers/7",
		`{"courier_type":"car","regions":[1,2],"working_hours":["08:00-20:00"]}`)
	require.Equal(t, http.StatusOK, w.Code)
	require.NotNil(t, uc.updated)
	require.Equal(t, int64(7), uc.updated.ID)
	require.Equal(t, "car", *uc.updated.Type)

	var resp courierProfileResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Equal(t, "car", resp.CourierType)
}

func TestCourierUpdate_PartialBodyKeepsNilFields(t *testing.T) {
	t.Parallel()

	uc := &stubCourierUsecase{updateResp: &courier.Profile{CourierID: 7, Type: domain.TypeFoot}}
	h := courierTestRouter(uc)

	w := doJSON(t, h, http.MethodPatch, "/couriers/7", `{"regions":[9]}`)
	require.Equal(t, http.StatusOK, w.Code)
	require.Nil(t, uc.updated.Type)
	require.Nil(t, uc.updated.WorkingHours)
	require.Equal(t, []int64{9}, uc.updated.Regions)
}

func TestCourierUpdate_Errors(t *testing.T) {
	t.Parallel()

	uc := &stubCourierUsecase{updateErr: apperr.Invalid}
	h := courierTestRouter(uc)
	w := doJSON(t, h, http.MethodPatch, "/couriers/7", `{"courier_type":"truck"}`)
	require.Equal(t, http.StatusBadRequest, w.Code)

	uc = &stubCourierUsecase{updateErr: apperr.NotFound}
	h = courierTestRouter(uc)
	w = doJSON(t, h, http.MethodPatch, "/couriers/7", `{"regions":[1]}`)
	require.Equal(t, http.StatusNotFound, w.Code)
}
