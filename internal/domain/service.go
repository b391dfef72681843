package domain

import "github.com/shopspring/decimal"

// Extra is an optional add-on of a service (e.g. head massage with a haircut)
type Extra struct {
	ID              int64
	Name            string
	Price           decimal.Decimal
	DurationMinutes int
}

// Service is a bookable catalog entry
type Service struct {
	ID                  int64
	Name                string
	BasePrice           decimal.Decimal
	BaseDurationMinutes int
	Extras              []Extra
	StaffIDs            []int64 // сотрудники, выполняющие услугу
}

// ExtrasByID returns the subset of the service's extras with the given ids.
// Unknown ids are skipped; the caller validates completeness.
func (s *Service) ExtrasByID(ids []int64) []Extra {
	if len(ids) == 0 {
		return nil
	}
	byID := make(map[int64]Extra, len(s.Extras))
	for _, e := range s.Extras {
		byID[e.ID] = e
	}
	result := make([]Extra, 0, len(ids))
	for _, id := range ids {
		if e, ok := byID[id]; ok {
			result = append(result, e)
		}
	}
	return result
}

// HasExtra reports whether the service offers the extra with the given id
func (s *Service) HasExtra(id int64) bool {
	for _, e := range s.Extras {
		if e.ID == id {
			return true
		}
	}
	return false
}

// IsPerformedBy reports whether the staff member performs this service
func (s *Service) IsPerformedBy(staffID int64) bool {
	for _, id := range s.StaffIDs {
		if id == staffID {
			return true
		}
	}
	return false
}

// EffectiveDurationMinutes returns the total appointment duration for a group:
// (base + extras) * (1 + additionalGuests). Both the base duration and every
// extra's duration scale with the group size.
func EffectiveDurationMinutes(service *Service, extras []Extra, additionalGuests int) int {
	total := service.BaseDurationMinutes
	for _, e := range extras {
		total += e.DurationMinutes
	}
	return total * (1 + additionalGuests)
}
