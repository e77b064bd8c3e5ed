package domain

import (
	"math"
	"time"
)

// CourierType represents the transport type of a courier.
type CourierType string

// List of possible courier types
const (
	TypeFoot CourierType = "foot"
	TypeBike CourierType = "bike"
	TypeCar  CourierType = "car"
)

var allowedCourierTypes = [...]CourierType{TypeFoot, TypeBike, TypeCar}

// Valid checks if the CourierType is valid
func (t CourierType) Valid() bool {
	for _, v := range allowedCourierTypes {
		if t == v {
			return true
		}
	}
	return false
}

// Capacity returns the maximum total order weight a courier of this type may
// carry within one session.
func (t CourierType) Capacity() float64 {
	switch t {
	case TypeFoot:
		return 10
	case TypeBike:
		return 15
	case TypeCar:
		return 50
	default:
		return 0
	}
}

// PayRate is the per-session payout multiplier of a courier type.
func (t CourierType) PayRate() int64 {
	switch t {
	case TypeFoot:
		return 2
	case TypeBike:
		return 5
	case TypeCar:
		return 9
	default:
		return 0
	}
}

const sessionPayoutBase = 500

// SessionPayout is the amount credited once per closed session, keyed to the
// type frozen at session formation.
func SessionPayout(formed CourierType) int64 {
	return sessionPayoutBase * formed.PayRate()
}

// Session is the formed assignment a courier is currently carrying out.
// FormedType governs capacity and payout for the whole session regardless of
// later courier type changes.
type Session struct {
	AssignedAt time.Time
	FormedType CourierType
}

// DeliveryStat accumulates completed deliveries for one region.
type DeliveryStat struct {
	Count        int64
	TotalSeconds int64
}

// Courier represents a delivery courier with its dispatch state.
type Courier struct {
	ID           int64
	Type         CourierType
	Regions      []int64
	WorkingHours []TimeWindow
	Session      *Session
	Stats        map[int64]DeliveryStat
	Earnings     int64
	LastActionAt *time.Time
}

// HasRegion reports whether the courier serves the given region.
func (c *Courier) HasRegion(region int64) bool {
	for _, r := range c.Regions {
		if r == region {
			return true
		}
	}
	return false
}

const ratingCeilingSeconds = 3600

// Rating derives a courier rating from regional delivery stats: the best
// (lowest) regional average delivery time, capped at an hour, mapped linearly
// onto [0, 5] and rounded to two decimals. ok is false when no region has a
// completed delivery, in which case the rating is absent, not zero.
func Rating(stats map[int64]DeliveryStat) (rating float64, ok bool) {
	best := math.MaxFloat64
	for _, st := range stats {
		if st.Count == 0 {
			continue
		}
		avg := float64(st.TotalSeconds) / float64(st.Count)
		if avg < best {
			best = avg
			ok = true
		}
	}
	if !ok {
		return 0, false
	}
	if best > ratingCeilingSeconds {
		best = ratingCeilingSeconds
	}
	r := (ratingCeilingSeconds - best) / ratingCeilingSeconds * 5
	return math.Round(r*100) / 100, true
}

// PartialCourierUpdate carries optional fields to update a courier.
// A nil field means “do not change” that attribute.
type PartialCourierUpdate struct {
	ID           int64
	Type         *CourierType
	Regions      []int64
	WorkingHours []TimeWindow
}
