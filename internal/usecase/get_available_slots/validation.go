package get_available_slots

import (
	"fmt"
	"time"

	"github.com/chrisnails1212/salon-booking-engine/internal/domain"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.ServiceID <= 0 {
		return fmt.Errorf("%w: serviceID must be positive", ErrInvalidInput)
	}

	if req.StaffID != nil && *req.StaffID <= 0 {
		return fmt.Errorf("%w: staffID must be positive", ErrInvalidInput)
	}

	if req.AdditionalGuests < 0 || req.AdditionalGuests > domain.MaxAdditionalGuests {
		return fmt.Errorf("%w: additionalGuests must be between 0 and %d", ErrInvalidInput, domain.MaxAdditionalGuests)
	}

	// Проверяем, что дата не является нулевой
	if req.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	return nil
}

// validateDate проверяет, что дата подходит для бронирования
func validateDate(requestDate time.Time, now time.Time, maxLookaheadDays int) error {
	// Проверяем, что дата не в прошлом
	if isDateInPast(requestDate, now) {
		return ErrInvalidDate
	}

	maxDate := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location()).
		AddDate(0, 0, maxLookaheadDays)

	requestDateOnly := time.Date(requestDate.Year(), requestDate.Month(), requestDate.Day(), 0, 0, 0, 0, requestDate.Location())

	if requestDateOnly.After(maxDate) {
		return fmt.Errorf("%w: can only book %d days in advance", ErrDateTooFarInFuture, maxLookaheadDays)
	}

	return nil
}

// validateExtras проверяет, что все допуслуги принадлежат услуге
func validateExtras(service *domain.Service, extraIDs []int64) error {
	for _, id := range extraIDs {
		if !service.HasExtra(id) {
			return fmt.Errorf("%w: extra id=%d", ErrExtraNotFound, id)
		}
	}
	return nil
}
