package handlers

// Request and response shapes for the public API. Field names follow the
// external contract, not the internal models.

type idRef struct {
	ID int64 `json:"id"`
}

type itemErrorsDTO struct {
	ID     int64    `json:"id"`
	Errors []string `json:"errors"`
}

type courierPayload struct {
	CourierID    int64    `json:"courier_id"`
	CourierType  string   `json:"courier_type"`
	Regions      []int64  `json:"regions"`
	WorkingHours []string `json:"working_hours"`
}

type courierBatchRequest struct {
	Data []courierPayload `json:"data"`
}

type courierBatchResponse struct {
	Couriers []idRef `json:"couriers"`
}

type courierValidationErrors struct {
	Couriers []itemErrorsDTO `json:"couriers"`
}

type courierValidationResponse struct {
	ValidationError courierValidationErrors `json:"validation_error"`
}

type courierProfileResponse struct {
	CourierID    int64    `json:"courier_id"`
	CourierType  string   `json:"courier_type"`
	Regions      []int64  `json:"regions"`
	WorkingHours []string `json:"working_hours"`
	Rating       *float64 `json:"rating,omitempty"`
	Earnings     int64    `json:"earnings"`
}

// courierPatchRequest carries a partial update; nil means "keep as is".
type courierPatchRequest struct {
	CourierType  *string  `json:"courier_type"`
	Regions      []int64  `json:"regions"`
	WorkingHours []string `json:"working_hours"`
}

type orderPayload struct {
	OrderID       int64    `json:"order_id"`
	Weight        *float64 `json:"weight"`
	Region        *int64   `json:"region"`
	DeliveryHours []string `json:"delivery_hours"`
}

type orderBatchRequest struct {
	Data []orderPayload `json:"data"`
}

type orderBatchResponse struct {
	Orders []idRef `json:"orders"`
}

type orderValidationErrors struct {
	Orders []itemErrorsDTO `json:"orders"`
}

type orderValidationResponse struct {
	ValidationError orderValidationErrors `json:"validation_error"`
}

type assignRequest struct {
	CourierID int64 `json:"courier_id"`
}

type assignResponse struct {
	Orders     []idRef `json:"orders"`
	AssignTime string  `json:"assign_time,omitempty"`
}

type completeRequest struct {
	CourierID    int64  `json:"courier_id"`
	OrderID      int64  `json:"order_id"`
	CompleteTime string `json:"complete_time"`
}

type completeResponse struct {
	OrderID int64 `json:"order_id"`
}
