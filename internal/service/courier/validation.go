package courier

import (
	"courier-dispatch/internal/apperr"
	"courier-dispatch/internal/domain"
)

// Validation error messages are part of the public contract and kept stable.
const (
	msgIDPositive       = "Courier ID must be positive integer."
	msgTypeRequired     = "Courier type must be specified."
	msgTypeUnknown      = "Courier type must be one of following values: foot, car, bike."
	msgRegionsRequired  = "Courier regions must be specified."
	msgRegionsEmpty     = "At least one region is required."
	msgRegionsPositive  = "Regions must be positive integers."
	msgRegionsUnique    = "Regions must be unique"
	msgHoursRequired    = "Courier working hours must be specified"
	msgHoursEmpty       = "At least one working time slot is required."
	msgBadTimeInterval  = `Wrong time interval format. Correct usage: "HH:MM-HH:MM"`
)

func validateNewCourier(nc NewCourier) (domain.Courier, []string) {
	var errs []string

	if nc.ID <= 0 {
		errs = append(errs, msgIDPositive)
	}

	switch {
	case nc.Type == "":
		errs = append(errs, msgTypeRequired)
	case !domain.CourierType(nc.Type).Valid():
		errs = append(errs, msgTypeUnknown)
	}

	errs = append(errs, validateRegions(nc.Regions)...)

	var hours []domain.TimeWindow
	switch {
	case nc.WorkingHours == nil:
		errs = append(errs, msgHoursRequired)
	case len(nc.WorkingHours) == 0:
		errs = append(errs, msgHoursEmpty)
	default:
		var hourErrs []string
		hours, hourErrs = parseHours(nc.WorkingHours)
		errs = append(errs, hourErrs...)
	}

	if len(errs) > 0 {
		return domain.Courier{}, errs
	}
	return domain.Courier{
		ID:           nc.ID,
		Type:         domain.CourierType(nc.Type),
		Regions:      nc.Regions,
		WorkingHours: hours,
	}, nil
}

func validateRegions(regions []int64) []string {
	if regions == nil {
		return []string{msgRegionsRequired}
	}
	if len(regions) == 0 {
		return []string{msgRegionsEmpty}
	}
	var errs []string
	for _, r := range regions {
		if r <= 0 {
			errs = append(errs, msgRegionsPositive)
			break
		}
	}
	seen := make(map[int64]struct{}, len(regions))
	for _, r := range regions {
		if _, dup := seen[r]; dup {
			errs = append(errs, msgRegionsUnique)
			break
		}
		seen[r] = struct{}{}
	}
	return errs
}

func parseHours(raw []string) ([]domain.TimeWindow, []string) {
	var errs []string
	hours := make([]domain.TimeWindow, 0, len(raw))
	for _, s := range raw {
		w, err := domain.ParseTimeWindow(s)
		if err != nil {
			errs = append(errs, msgBadTimeInterval)
			continue
		}
		hours = append(hours, w)
	}
	if len(errs) > 0 {
		return nil, errs
	}
	return hours, nil
}

func validateUpdate(upd ProfileUpdate) (domain.PartialCourierUpdate, error) {
	if upd.ID <= 0 {
		return domain.PartialCourierUpdate{}, apperr.Invalid
	}
	if upd.Type == nil && upd.Regions == nil && upd.WorkingHours == nil {
		return domain.PartialCourierUpdate{}, apperr.Invalid
	}

	u := domain.PartialCourierUpdate{ID: upd.ID}

	if upd.Type != nil {
		t := domain.CourierType(*upd.Type)
		if !t.Valid() {
			return domain.PartialCourierUpdate{}, apperr.Invalid
		}
		u.Type = &t
	}
	if upd.Regions != nil {
		if len(validateRegions(upd.Regions)) > 0 {
			return domain.PartialCourierUpdate{}, apperr.Invalid
		}
		u.Regions = upd.Regions
	}
	if upd.WorkingHours != nil {
		if len(upd.WorkingHours) == 0 {
			return domain.PartialCourierUpdate{}, apperr.Invalid
		}
		hours, errs := parseHours(upd.WorkingHours)
		if len(errs) > 0 {
			return domain.PartialCourierUpdate{}, apperr.Invalid
		}
		u.WorkingHours = hours
	}
	return u, nil
}
