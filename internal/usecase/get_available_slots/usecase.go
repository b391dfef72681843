package get_available_slots

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/chrisnails1212/salon-booking-engine/internal/domain"
	catalogClient "github.com/chrisnails1212/salon-booking-engine/internal/integrations/catalogservice"
	staffClient "github.com/chrisnails1212/salon-booking-engine/internal/integrations/staffservice"
	"github.com/chrisnails1212/salon-booking-engine/pkg/types"
)

// UseCase use case для получения доступных слотов для бронирования
type UseCase struct {
	bookingRepo        BookingRepository
	staffClient        StaffServiceClient
	catalogClient      CatalogServiceClient
	timeProvider       TimeProvider
	logger             Logger
	granularityMinutes int
	maxLookaheadDays   int
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	staffClient StaffServiceClient,
	catalogClient CatalogServiceClient,
	logger Logger,
	granularityMinutes int,
	maxLookaheadDays int,
) *UseCase {
	return &UseCase{
		bookingRepo:        bookingRepo,
		staffClient:        staffClient,
		catalogClient:      catalogClient,
		timeProvider:       &RealTimeProvider{},
		logger:             logger,
		granularityMinutes: granularityMinutes,
		maxLookaheadDays:   maxLookaheadDays,
	}
}

// Execute выполняет use case получения доступных слотов
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GetAvailableSlots: user=%d, service=%d, staff=%v, date=%s",
		req.UserID, req.ServiceID, req.StaffID, req.Date.Format(domain.DateFormat))

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("GetAvailableSlots: validation failed: %v", err)
		return nil, err
	}

	// 2. Получаем текущее время
	now := uc.timeProvider.Now()

	// 3. Валидация даты с учетом горизонта бронирования
	if err := validateDate(req.Date, now, uc.maxLookaheadDays); err != nil {
		uc.logger.Warn("GetAvailableSlots: date validation failed: %v", err)
		return nil, err
	}

	// 4. Получаем услугу
	service, err := uc.catalogClient.GetService(ctx, req.ServiceID)
	if err != nil {
		if errors.Is(err, catalogClient.ErrServiceNotFound) {
			uc.logger.Warn("GetAvailableSlots: service id=%d not found", req.ServiceID)
			return nil, ErrServiceNotFound
		}
		uc.logger.Error("GetAvailableSlots: failed to get service id=%d: %v", req.ServiceID, err)
		return nil, fmt.Errorf("%w: failed to get service: %v", ErrInternal, err)
	}

	// 5. Проверяем допуслуги
	if err := validateExtras(service, req.ExtraIDs); err != nil {
		uc.logger.Warn("GetAvailableSlots: extras validation failed: %v", err)
		return nil, err
	}

	// 6. Полная длительность визита
	extras := service.ExtrasByID(req.ExtraIDs)
	duration := domain.EffectiveDurationMinutes(service, extras, req.AdditionalGuests)

	// 7. Определяем список сотрудников
	staffIDs, err := uc.resolveStaffIDs(req, service)
	if err != nil {
		return nil, err
	}

	// 8. Собираем свободные слоты каждого сотрудника и объединяем
	slotStaff := make(map[types.TimeString][]int64)
	for _, staffID := range staffIDs {
		staffSlots, err := uc.resolveStaffDay(ctx, staffID, req.Date, duration, now)
		if err != nil {
			return nil, err
		}
		for _, slot := range staffSlots {
			slotStaff[slot] = append(slotStaff[slot], staffID)
		}
	}

	// 9. Упорядочиваем объединение по времени начала
	starts := make([]types.TimeString, 0, len(slotStaff))
	for start := range slotStaff {
		starts = append(starts, start)
	}
	sort.Slice(starts, func(i, j int) bool { return starts[i].IsBefore(starts[j]) })

	slots := make([]Slot, len(starts))
	for i, start := range starts {
		slots[i] = Slot{StartTime: start, StaffIDs: slotStaff[start]}
	}

	uc.logger.Info("GetAvailableSlots: generated %d slots for service=%d, date=%s",
		len(slots), req.ServiceID, req.Date.Format(domain.DateFormat))

	return &Response{
		Date:            req.Date,
		ServiceID:       req.ServiceID,
		DurationMinutes: duration,
		Slots:           slots,
	}, nil
}

// resolveStaffIDs определяет сотрудников, для которых строится расписание
// Явно указанный сотрудник проверяется на принадлежность услуге,
// иначе берутся все исполнители услуги
func (uc *UseCase) resolveStaffIDs(req *Request, service *domain.Service) ([]int64, error) {
	if req.StaffID == nil {
		return service.StaffIDs, nil
	}

	if !service.IsPerformedBy(*req.StaffID) {
		uc.logger.Warn("GetAvailableSlots: staff id=%d does not perform service id=%d", *req.StaffID, req.ServiceID)
		return nil, ErrStaffDoesNotPerformService
	}
	return []int64{*req.StaffID}, nil
}

// resolveStaffDay строит свободные слоты одного сотрудника на одну дату
//
// Порядок разрешения:
//  1. Рабочее окно дня: праздник > особый день > недельный шаблон
//  2. Кандидаты с шагом granularity, визит помещается в окно целиком
//  3. Фильтр перерывов
//  4. Фильтр существующих активных бронирований
//  5. Для сегодняшней даты - фильтр прошедшего времени
func (uc *UseCase) resolveStaffDay(ctx context.Context, staffID int64, date time.Time, durationMinutes int, now time.Time) ([]types.TimeString, error) {
	schedule, err := uc.staffClient.GetSchedule(ctx, staffID)
	if err != nil {
		if errors.Is(err, staffClient.ErrStaffNotFound) || errors.Is(err, staffClient.ErrScheduleNotFound) {
			uc.logger.Warn("GetAvailableSlots: schedule for staff id=%d not found", staffID)
			return nil, ErrStaffNotFound
		}
		uc.logger.Error("GetAvailableSlots: failed to get schedule for staff id=%d: %v", staffID, err)
		return nil, fmt.Errorf("%w: failed to get schedule: %v", ErrInternal, err)
	}

	window, working := schedule.WindowFor(date)
	if !working {
		return []types.TimeString{}, nil
	}

	candidates, err := generateCandidateSlots(window, uc.granularityMinutes, durationMinutes)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to generate slots for staff id=%d: %v", staffID, err)
		return nil, fmt.Errorf("%w: failed to generate slots: %v", ErrInternal, err)
	}

	candidates = filterBreaks(candidates, durationMinutes, schedule.Breaks)

	filter := domain.StaffBookingsFilter{
		StaffID:         staffID,
		StartDate:       &date,
		EndDate:         &date,
		IncludeInactive: false, // Только активные бронирования
	}
	bookings, err := uc.bookingRepo.GetByStaffWithFilter(ctx, filter)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to get bookings for staff id=%d: %v", staffID, err)
		return nil, fmt.Errorf("%w: failed to get bookings: %v", ErrInternal, err)
	}

	candidates = filterBookings(candidates, durationMinutes, bookings)
	candidates = filterPastSlots(candidates, date, now)

	return candidates, nil
}
