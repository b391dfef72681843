package create_booking

import (
	"fmt"
	"time"

	"github.com/chrisnails1212/salon-booking-engine/internal/domain"
	"github.com/chrisnails1212/salon-booking-engine/pkg/types"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.UserID <= 0 {
		return fmt.Errorf("%w: userID must be positive", ErrInvalidInput)
	}

	if req.ServiceID <= 0 {
		return fmt.Errorf("%w: serviceID must be positive", ErrInvalidInput)
	}

	if req.StaffID <= 0 {
		return fmt.Errorf("%w: staffID must be positive", ErrInvalidInput)
	}

	if req.AdditionalGuests < 0 || req.AdditionalGuests > domain.MaxAdditionalGuests {
		return fmt.Errorf("%w: additionalGuests must be between 0 and %d", ErrInvalidInput, domain.MaxAdditionalGuests)
	}

	if req.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	if err := req.StartTime.Validate(); err != nil {
		return fmt.Errorf("%w: invalid startTime: %v", ErrInvalidInput, err)
	}

	if req.CouponCode != nil && *req.CouponCode == "" {
		return fmt.Errorf("%w: couponCode must not be empty", ErrInvalidInput)
	}

	// Одна карта не может участвовать в платеже дважды
	seen := make(map[string]bool, len(req.GiftcardCodes))
	for _, code := range req.GiftcardCodes {
		if code == "" {
			return fmt.Errorf("%w: giftcard code must not be empty", ErrInvalidInput)
		}
		if seen[code] {
			return fmt.Errorf("%w: code=%s", ErrDuplicateGiftcard, code)
		}
		seen[code] = true
	}

	return nil
}

// validateDate проверяет, что дата подходит для бронирования
func validateDate(requestDate time.Time, now time.Time, maxLookaheadDays int) error {
	dateOnly := time.Date(requestDate.Year(), requestDate.Month(), requestDate.Day(), 0, 0, 0, 0, requestDate.Location())
	nowOnly := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

	if dateOnly.Before(nowOnly) {
		return ErrInvalidDate
	}

	maxDate := nowOnly.AddDate(0, 0, maxLookaheadDays)
	if dateOnly.After(maxDate) {
		return fmt.Errorf("%w: can only book %d days in advance", ErrDateTooFarInFuture, maxLookaheadDays)
	}

	return nil
}

// validateStartTime проверяет, что время начала лежит в сетке слотов рабочего
// окна, визит помещается в окно целиком и не попадает на перерыв
func validateStartTime(window domain.WorkingWindow, start types.TimeString, granularityMinutes, durationMinutes int, breaks []domain.BreakWindow) error {
	if start.IsBefore(window.Start) {
		return fmt.Errorf("%w: before working window", ErrInvalidStartTime)
	}

	// Время начала должно совпадать с одним из кандидатов сетки
	startMinutes, err := start.Minutes()
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidStartTime, err)
	}
	windowStartMinutes, err := window.Start.Minutes()
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidStartTime, err)
	}
	offset := startMinutes - windowStartMinutes
	if offset%granularityMinutes != 0 {
		return fmt.Errorf("%w: not aligned to %d-minute grid", ErrInvalidStartTime, granularityMinutes)
	}

	end, err := start.AddMinutes(durationMinutes)
	if err != nil || end.IsAfter(window.End) {
		return fmt.Errorf("%w: appointment does not fit the working window", ErrInvalidStartTime)
	}

	for _, br := range breaks {
		if domain.Overlaps(start, end, br.Start, br.End) {
			return fmt.Errorf("%w: overlaps a break", ErrInvalidStartTime)
		}
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

// isSameDay проверяет, что две даты относятся к одному и тому же дню
func isSameDay(date1, date2 time.Time) bool {
	y1, m1, d1 := date1.Date()
	y2, m2, d2 := date2.Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}
