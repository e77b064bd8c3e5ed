package router

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"courier-dispatch/internal/http/handlers"
	"courier-dispatch/internal/logx"
)

func testRouter() http.Handler {
	return New(Deps{
		Logger: logx.Nop(),
		Base:   handlers.New(logx.Nop()),
	})
}

func TestRouter_Ping(t *testing.T) {
	t.Parallel()

	w := httptest.NewRecorder()
	testRouter().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ping", nil))

	require.Equal(t, http.StatusOK, w.Code)
	require.JSONEq(t, `{"message":"pong"}`, w.Body.String())
}

func TestRouter_Healthcheck(t *testing.T) {
	t.Parallel()

	w := httptest.NewRecorder()
	testRouter().ServeHTTP(w, httptest.NewRequest(http.MethodHead, "/healthcheck", nil))

	require.Equal(t, http.StatusNoContent, w.Code)
}

func TestRouter_UnknownRoute(t *testing.T) {
	t.Parallel()

	w := httptest.NewRecorder()
	testRouter().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/nope", nil))

	require.Equal(t, http.StatusNotFound, w.Code)
	require.JSONEq(t, `{"error":"route not found"}`, w.Body.String())
}

func TestRouter_RateLimitMiddlewareApplied(t *testing.T) {
	t.Parallel()

	denyAll := func(http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusTooManyRequests)
		})
	}
	r := New(Deps{
		Logger:    logx.Nop(),
		Base:      handlers.New(logx.Nop()),
		RateLimit: denyAll,
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ping", nil))
	require.Equal(t, http.StatusTooManyRequests, w.Code)
}
