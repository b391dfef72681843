package get_available_slots

import (
	"time"

	"github.com/chrisnails1212/salon-booking-engine/internal/domain"
	"github.com/chrisnails1212/salon-booking-engine/pkg/types"
)

// generateCandidateSlots генерирует все кандидаты внутри рабочего окна
// Кандидаты идут с шагом granularity от начала окна; слот остается,
// только если визит целиком помещается до конца окна
func generateCandidateSlots(window domain.WorkingWindow, granularityMinutes, durationMinutes int) ([]types.TimeString, error) {
	if !window.IsWorking {
		return []types.TimeString{}, nil
	}

	candidates := make([]types.TimeString, 0)
	current := window.Start

	for current.IsBefore(window.End) {
		slotEnd, err := current.AddMinutes(durationMinutes)
		if err != nil {
			// Визит выходит за границу суток
			break
		}
		if slotEnd.IsAfter(window.End) {
			break
		}

		candidates = append(candidates, current)

		current, err = current.AddMinutes(granularityMinutes)
		if err != nil {
			break
		}
	}

	return candidates, nil
}

// filterBreaks убирает кандидатов, пересекающихся с перерывами
func filterBreaks(slots []types.TimeString, durationMinutes int, breaks []domain.BreakWindow) []types.TimeString {
	if len(breaks) == 0 {
		return slots
	}

	result := make([]types.TimeString, 0, len(slots))
	for _, slotStart := range slots {
		slotEnd, err := slotStart.AddMinutes(durationMinutes)
		if err != nil {
			continue
		}

		conflict := false
		for _, br := range breaks {
			if domain.Overlaps(slotStart, slotEnd, br.Start, br.End) {
				conflict = true
				break
			}
		}
		if !conflict {
			result = append(result, slotStart)
		}
	}

	return result
}

// filterBookings убирает кандидатов, пересекающихся с активными бронированиями
// Интервалы полуоткрытые: бронирование, заканчивающееся ровно в начале слота,
// пересечением не считается
func filterBookings(slots []types.TimeString, durationMinutes int, bookings []*domain.Booking) []types.TimeString {
	if len(bookings) == 0 {
		return slots
	}

	result := make([]types.TimeString, 0, len(slots))
	for _, slotStart := range slots {
		slotEnd, err := slotStart.AddMinutes(durationMinutes)
		if err != nil {
			continue
		}

		conflict := false
		for _, booking := range bookings {
			if !booking.IsActive() {
				continue
			}
			bookingEnd, err := booking.StartTime.AddMinutes(booking.DurationMinutes)
			if err != nil {
				continue
			}
			if domain.Overlaps(slotStart, slotEnd, booking.StartTime, bookingEnd) {
				conflict = true
				break
			}
		}
		if !conflict {
			result = append(result, slotStart)
		}
	}

	return result
}

// filterPastSlots убирает кандидатов, начинающихся раньше текущего времени
// Применяется только когда запрошенная дата - сегодня
func filterPastSlots(slots []types.TimeString, requestDate, now time.Time) []types.TimeString {
	if !isSameDay(requestDate, now) {
		return slots
	}

	currentTime := types.NewTimeString(now)
	result := make([]types.TimeString, 0, len(slots))
	for _, slot := range slots {
		if !slot.IsBefore(currentTime) {
			result = append(result, slot)
		}
	}

	return result
}

// isSameDay проверяет, что две даты относятся к одному и тому же дню
func isSameDay(date1, date2 time.Time) bool {
	y1, m1, d1 := date1.Date()
	y2, m2, d2 := date2.Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}

// isDateInPast проверяет, что дата в прошлом (раньше сегодняшнего дня)
func isDateInPast(date, now time.Time) bool {
	// Обнуляем время, чтобы сравнивать только даты
	dateOnly := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())
	nowOnly := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	return dateOnly.Before(nowOnly)
}
