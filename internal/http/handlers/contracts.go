package handlers

import (
	"context"
	"time"

	"courier-dispatch/internal/domain"
	"courier-dispatch/internal/service/courier"
	"courier-dispatch/internal/service/dispatch"
	"courier-dispatch/internal/service/orders"
)

type courierUsecase interface {
	RegisterBatch(ctx context.Context, in []courier.NewCourier) ([]int64, []courier.ItemErrors, error)
	Profile(ctx context.Context, id int64) (*courier.Profile, error)
	UpdateProfile(ctx context.Context, upd courier.ProfileUpdate) (*courier.Profile, error)
}

// NewCourierUsecase wires a courier Service into a courierUsecase.
func NewCourierUsecase(svc *courier.Service) courierUsecase {
	return svc
}

type orderIntake interface {
	RegisterBatch(ctx context.Context, in []orders.NewOrder) ([]int64, []orders.ItemErrors, error)
}

// NewOrderIntake wires an orders Service into an orderIntake.
func NewOrderIntake(svc *orders.Service) orderIntake {
	return svc
}

type dispatchUsecase interface {
	Assign(ctx context.Context, courierID int64) (domain.AssignResult, error)
	Complete(ctx context.Context, courierID, orderID int64, completedAt time.Time) (int64, error)
}

// NewDispatchUsecase wires a dispatch Service into a dispatchUsecase.
func NewDispatchUsecase(svc *dispatch.Service) dispatchUsecase {
	return svc
}
