package router

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"courier-dispatch/internal/http/handlers"
	mw "courier-dispatch/internal/http/middleware"
	"courier-dispatch/internal/logx"
)

// Deps collects everything the router mounts.
type Deps struct {
	Logger    logx.Logger
	Base      *handlers.Handlers
	Courier   *handlers.CourierHandler
	Orders    *handlers.OrderHandler
	Dispatch  *handlers.DispatchHandler
	RateLimit func(http.Handler) http.Handler
}

// New constructs a chi-based http.Handler with base middleware and routes.
func New(d Deps) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(mw.Observability(d.Logger))
	if d.RateLimit != nil {
		r.Use(d.RateLimit)
	}
	r.Use(middleware.Timeout(5 * time.Second))

	r.Post("/couriers", d.Courier.RegisterBatch)
	r.Get("/couriers/{id}", d.Courier.Profile)
	r.Patch("/couriers/{id}", d.Courier.Update)

	r.Post("/orders", d.Orders.RegisterBatch)
	r.Post("/orders/assign", d.Dispatch.Assign)
	r.Post("/orders/complete", d.Dispatch.Complete)

	r.Get("/ping", d.Base.Ping)
	r.Method(http.MethodHead, "/healthcheck", http.HandlerFunc(d.Base.HealthcheckHead))
	r.NotFound(http.HandlerFunc(d.Base.NotFound))

	return r
}
