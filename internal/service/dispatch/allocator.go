package dispatch

import (
	"sort"

	"courier-dispatch/internal/domain"
)

// weightEps absorbs float rounding when two-decimal weights sum up to
// exactly the capacity.
const weightEps = 1e-9

// AllocateOrders selects the subset of the candidate pool a courier may
// carry: orders in the courier's regions whose delivery windows overlap the
// working hours, packed greedily by ascending weight (ties by ascending id,
// so equal-weight orders always resolve in the same relative order) until
// the capacity of the courier's current type is reached. An order that does
// not fit is skipped, not a stop condition. The second return value is the
// residual pool in input order.
func AllocateOrders(c *domain.Courier, pool []domain.Order) (selected, rest []domain.Order) {
	capacity := c.Type.Capacity()

	eligible := make([]domain.Order, 0, len(pool))
	for _, o := range pool {
		if !c.HasRegion(o.Region) {
			continue
		}
		if !domain.AnyOverlap(c.WorkingHours, o.DeliveryHours) {
			continue
		}
		eligible = append(eligible, o)
	}

	sort.Slice(eligible, func(i, j int) bool {
		if eligible[i].Weight != eligible[j].Weight {
			return eligible[i].Weight < eligible[j].Weight
		}
		return eligible[i].ID < eligible[j].ID
	})

	taken := make(map[int64]struct{}, len(eligible))
	carried := 0.0
	for _, o := range eligible {
		if carried+o.Weight > capacity+weightEps {
			continue
		}
		carried += o.Weight
		taken[o.ID] = struct{}{}
		selected = append(selected, o)
	}

	for _, o := range pool {
		if _, ok := taken[o.ID]; !ok {
			rest = append(rest, o)
		}
	}
	return selected, rest
}
