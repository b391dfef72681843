package find_next_available

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/chrisnails1212/salon-booking-engine/internal/domain"
	"github.com/chrisnails1212/salon-booking-engine/internal/usecase/get_available_slots"
)

// UseCase use case для поиска ближайшего свободного слота
// Перебирает даты по одной, начиная со дня после даты отсчета,
// и возвращает первый день с непустым списком слотов
type UseCase struct {
	slotsResolver    SlotsResolver
	timeProvider     TimeProvider
	logger           Logger
	maxLookaheadDays int
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(slotsResolver SlotsResolver, logger Logger, maxLookaheadDays int) *UseCase {
	return &UseCase{
		slotsResolver:    slotsResolver,
		timeProvider:     &RealTimeProvider{},
		logger:           logger,
		maxLookaheadDays: maxLookaheadDays,
	}
}

// Execute выполняет use case поиска ближайшего свободного слота
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("FindNextAvailable: user=%d, service=%d, staff=%v", req.UserID, req.ServiceID, req.StaffID)

	if req.ServiceID <= 0 {
		return nil, fmt.Errorf("%w: serviceID must be positive", ErrInvalidInput)
	}

	now := uc.timeProvider.Now()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

	// Отсчет идет со дня, следующего за датой отсчета
	reference := today
	if req.FromDate != nil {
		reference = time.Date(req.FromDate.Year(), req.FromDate.Month(), req.FromDate.Day(), 0, 0, 0, 0, req.FromDate.Location())
	}
	start := reference.AddDate(0, 0, 1)
	if start.Before(today) {
		start = today
	}

	// Горизонт поиска ограничен тем же числом дней, что и бронирование
	horizon := today.AddDate(0, 0, uc.maxLookaheadDays)

	for date := start; !date.After(horizon); date = date.AddDate(0, 0, 1) {
		dayReq := &get_available_slots.Request{
			UserID:           req.UserID,
			ServiceID:        req.ServiceID,
			StaffID:          req.StaffID,
			Date:             date,
			ExtraIDs:         req.ExtraIDs,
			AdditionalGuests: req.AdditionalGuests,
		}

		resp, err := uc.slotsResolver.Execute(ctx, dayReq)
		if err != nil {
			// Для диапазонных ошибок продолжать бессмысленно
			if errors.Is(err, get_available_slots.ErrDateTooFarInFuture) {
				break
			}
			uc.logger.Error("FindNextAvailable: day resolution failed for %s: %v", date.Format(domain.DateFormat), err)
			return nil, err
		}

		if len(resp.Slots) > 0 {
			first := resp.Slots[0]
			uc.logger.Info("FindNextAvailable: found slot %s on %s for service=%d",
				first.StartTime, date.Format(domain.DateFormat), req.ServiceID)
			return &Response{
				Date:            date,
				StartTime:       first.StartTime,
				StaffIDs:        first.StaffIDs,
				ServiceID:       req.ServiceID,
				DurationMinutes: resp.DurationMinutes,
			}, nil
		}
	}

	uc.logger.Info("FindNextAvailable: no availability for service=%d within %d days", req.ServiceID, uc.maxLookaheadDays)
	return nil, ErrNoAvailability
}
