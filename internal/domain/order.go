package domain

import "time"

// Order weight bounds in weight units; two-decimal precision is tolerated.
const (
	MinOrderWeight = 0.01
	MaxOrderWeight = 50
)

// Order represents a delivery order.
type Order struct {
	ID            int64
	Weight        float64
	Region        int64
	DeliveryHours []TimeWindow
	CourierID     *int64
	CompletedAt   *time.Time
}

// Completed reports whether the order has been delivered. A complete time,
// once set, never changes.
func (o *Order) Completed() bool {
	return o.CompletedAt != nil
}

// AssignedTo reports whether the order is currently claimed by the courier.
func (o *Order) AssignedTo(courierID int64) bool {
	return o.CourierID != nil && *o.CourierID == courierID
}

// AssignResult - struct representing the outcome of an assign request.
// AssignedAt is nil when no session was formed.
type AssignResult struct {
	OrderIDs   []int64
	AssignedAt *time.Time
}
