package handlers

import (
	"courier-dispatch/internal/domain"
	"courier-dispatch/internal/service/courier"
	"courier-dispatch/internal/service/orders"
)

func toNewCouriers(in []courierPayload) []courier.NewCourier {
	out := make([]courier.NewCourier, 0, len(in))
	for _, p := range in {
		out = append(out, courier.NewCourier{
			ID:           p.CourierID,
			Type:         p.CourierType,
			Regions:      p.Regions,
			WorkingHours: p.WorkingHours,
		})
	}
	return out
}

func toNewOrders(in []orderPayload) []orders.NewOrder {
	out := make([]orders.NewOrder, 0, len(in))
	for _, p := range in {
		out = append(out, orders.NewOrder{
			ID:            p.OrderID,
			Weight:        p.Weight,
			Region:        p.Region,
			DeliveryHours: p.DeliveryHours,
		})
	}
	return out
}

func idRefs(ids []int64) []idRef {
	out := make([]idRef, 0, len(ids))
	for _, id := range ids {
		out = append(out, idRef{ID: id})
	}
	return out
}

func toCourierItemErrors(in []courier.ItemErrors) []itemErrorsDTO {
	out := make([]itemErrorsDTO, 0, len(in))
	for _, e := range in {
		out = append(out, itemErrorsDTO{ID: e.ID, Errors: e.Errors})
	}
	return out
}

func toOrderItemErrors(in []orders.ItemErrors) []itemErrorsDTO {
	out := make([]itemErrorsDTO, 0, len(in))
	for _, e := range in {
		out = append(out, itemErrorsDTO{ID: e.ID, Errors: e.Errors})
	}
	return out
}

func toProfileResponse(p *courier.Profile) courierProfileResponse {
	resp := courierProfileResponse{
		CourierID:    p.CourierID,
		CourierType:  string(p.Type),
		Regions:      p.Regions,
		WorkingHours: p.WorkingHours,
		Rating:       p.Rating,
		Earnings:     p.Earnings,
	}
	if resp.Regions == nil {
		resp.Regions = []int64{}
	}
	if resp.WorkingHours == nil {
		resp.WorkingHours = []string{}
	}
	return resp
}

func toAssignResponse(res domain.AssignResult) assignResponse {
	resp := assignResponse{Orders: idRefs(res.OrderIDs)}
	if res.AssignedAt != nil {
		resp.AssignTime = domain.FormatWireTime(*res.AssignedAt)
	}
	return resp
}
