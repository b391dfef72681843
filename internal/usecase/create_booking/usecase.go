package create_booking

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/chrisnails1212/salon-booking-engine/internal/domain"
	couponRepo "github.com/chrisnails1212/salon-booking-engine/internal/infra/storage/coupon"
	giftcardRepo "github.com/chrisnails1212/salon-booking-engine/internal/infra/storage/giftcard"
	catalogClient "github.com/chrisnails1212/salon-booking-engine/internal/integrations/catalogservice"
	staffClient "github.com/chrisnails1212/salon-booking-engine/internal/integrations/staffservice"
	"github.com/chrisnails1212/salon-booking-engine/internal/service/pricing"
	"github.com/chrisnails1212/salon-booking-engine/internal/service/promotions"
	"github.com/chrisnails1212/salon-booking-engine/pkg/types"
)

// UseCase use case для создания бронирования
// Слот, купон и карты перепроверяются внутри сериализуемой транзакции:
// котировка, полученная ранее, к моменту фиксации могла устареть
type UseCase struct {
	bookingRepo        BookingRepository
	couponRepo         CouponRepository
	giftcardRepo       GiftcardRepository
	taxRepo            TaxRepository
	staffClient        StaffServiceClient
	catalogClient      CatalogServiceClient
	pricingEngine      PricingEngine
	promoChecker       PromotionValidator
	ledger             LedgerRecorder
	txManager          TransactionManager
	timeProvider       TimeProvider
	logger             Logger
	granularityMinutes int
	maxLookaheadDays   int
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	couponRepo CouponRepository,
	giftcardRepo GiftcardRepository,
	taxRepo TaxRepository,
	staffClient StaffServiceClient,
	catalogClient CatalogServiceClient,
	pricingEngine PricingEngine,
	promoChecker PromotionValidator,
	ledger LedgerRecorder,
	txManager TransactionManager,
	logger Logger,
	granularityMinutes int,
	maxLookaheadDays int,
) *UseCase {
	return &UseCase{
		bookingRepo:        bookingRepo,
		couponRepo:         couponRepo,
		giftcardRepo:       giftcardRepo,
		taxRepo:            taxRepo,
		staffClient:        staffClient,
		catalogClient:      catalogClient,
		pricingEngine:      pricingEngine,
		promoChecker:       promoChecker,
		ledger:             ledger,
		txManager:          txManager,
		timeProvider:       &RealTimeProvider{},
		logger:             logger,
		granularityMinutes: granularityMinutes,
		maxLookaheadDays:   maxLookaheadDays,
	}
}

// Execute выполняет use case создания бронирования
// Использует сериализуемую транзакцию для предотвращения гонки данных
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateBooking: user=%d, service=%d, staff=%d, date=%s, time=%s",
		req.UserID, req.ServiceID, req.StaffID, req.Date.Format(domain.DateFormat), req.StartTime)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateBooking: validation failed: %v", err)
		return nil, err
	}

	// 2. Получаем текущее время
	now := uc.timeProvider.Now()

	// 3. Валидация даты с учетом горизонта бронирования
	if err := validateDate(req.Date, now, uc.maxLookaheadDays); err != nil {
		uc.logger.Warn("CreateBooking: date validation failed: %v", err)
		return nil, err
	}

	// Для сегодняшней даты время начала не может быть в прошлом
	if isSameDay(req.Date, now) && req.StartTime.IsBefore(types.NewTimeString(now)) {
		uc.logger.Warn("CreateBooking: start time %s is in the past", req.StartTime)
		return nil, fmt.Errorf("%w: start time is in the past", ErrInvalidStartTime)
	}

	// 4. Получаем услугу
	service, err := uc.catalogClient.GetService(ctx, req.ServiceID)
	if err != nil {
		if errors.Is(err, catalogClient.ErrServiceNotFound) {
			uc.logger.Warn("CreateBooking: service id=%d not found", req.ServiceID)
			return nil, ErrServiceNotFound
		}
		uc.logger.Error("CreateBooking: failed to get service id=%d: %v", req.ServiceID, err)
		return nil, fmt.Errorf("%w: failed to get service: %v", ErrInternal, err)
	}

	if !service.IsPerformedBy(req.StaffID) {
		uc.logger.Warn("CreateBooking: staff id=%d does not perform service id=%d", req.StaffID, req.ServiceID)
		return nil, ErrStaffDoesNotPerformService
	}

	if err := validateExtras(service, req.ExtraIDs); err != nil {
		uc.logger.Warn("CreateBooking: extras validation failed: %v", err)
		return nil, err
	}

	extras := service.ExtrasByID(req.ExtraIDs)
	duration := domain.EffectiveDurationMinutes(service, extras, req.AdditionalGuests)

	// 5. Получаем расписание сотрудника
	schedule, err := uc.staffClient.GetSchedule(ctx, req.StaffID)
	if err != nil {
		if errors.Is(err, staffClient.ErrStaffNotFound) || errors.Is(err, staffClient.ErrScheduleNotFound) {
			uc.logger.Warn("CreateBooking: schedule for staff id=%d not found", req.StaffID)
			return nil, ErrStaffNotFound
		}
		uc.logger.Error("CreateBooking: failed to get schedule for staff id=%d: %v", req.StaffID, err)
		return nil, fmt.Errorf("%w: failed to get schedule: %v", ErrInternal, err)
	}

	// 6. Рабочее окно: праздник > особый день > недельный шаблон
	window, working := schedule.WindowFor(req.Date)
	if !working {
		uc.logger.Warn("CreateBooking: staff id=%d is not working on %s", req.StaffID, req.Date.Format(domain.DateFormat))
		return nil, ErrStaffNotWorking
	}

	// 7. Время начала должно быть валидным кандидатом сетки слотов
	if err := validateStartTime(window, req.StartTime, uc.granularityMinutes, duration, schedule.Breaks); err != nil {
		uc.logger.Warn("CreateBooking: start time validation failed: %v", err)
		return nil, err
	}

	target := promotions.Target{
		ServiceID: req.ServiceID,
		StaffID:   req.StaffID,
		Subtotal:  subtotalFor(service, extras, req.AdditionalGuests),
	}

	// Переменные для хранения результата
	var result *domain.Booking
	var breakdown domain.PriceBreakdown

	// 8. Выполняем операции с БД в сериализуемой транзакции
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 8.1. Перепроверяем конфликт слота: бронирования дня читаются
		// с блокировкой FOR UPDATE
		if err := uc.recheckSlot(txCtx, req, duration); err != nil {
			return err
		}

		// 8.2. Перепроверяем купон (строка заблокирована FOR UPDATE)
		coupon, err := uc.recheckCoupon(txCtx, req.CouponCode, target, now)
		if err != nil {
			return err
		}

		// 8.3. Перепроверяем подарочные карты
		giftcards, err := uc.recheckGiftcards(txCtx, req.GiftcardCodes, target, now)
		if err != nil {
			return err
		}

		// 8.4. Сочетаемость инструментов
		if err := uc.promoChecker.ValidateCombination(coupon, giftcards); err != nil {
			uc.logger.Warn("CreateBooking: combination rejected: %v", err)
			return fmt.Errorf("%w: %v", ErrPromotionNoLongerEligible, err)
		}

		// 8.5. Пересчитываем цену по текущему состоянию
		taxes, err := uc.taxRepo.ListEnabled(txCtx)
		if err != nil {
			uc.logger.Error("CreateBooking: failed to load taxes: %v", err)
			return fmt.Errorf("%w: failed to load taxes: %v", ErrInternal, err)
		}

		breakdown = uc.pricingEngine.Calculate(pricing.Input{
			BasePrice:        service.BasePrice,
			Extras:           extras,
			AdditionalGuests: req.AdditionalGuests,
			Coupon:           coupon,
			Giftcards:        giftcards,
			Taxes:            taxes,
			ServiceID:        req.ServiceID,
			LocationID:       req.LocationID,
		})

		// 8.6. Создаем бронирование с зафиксированной разбивкой цены
		booking := &domain.Booking{
			UserID:           req.UserID,
			StaffID:          req.StaffID,
			ServiceID:        req.ServiceID,
			BookingDate:      req.Date,
			StartTime:        req.StartTime,
			DurationMinutes:  duration,
			Status:           domain.StatusConfirmed,
			AdditionalGuests: req.AdditionalGuests,
			ServiceName:      service.Name,
			ExtraIDs:         req.ExtraIDs,
			Subtotal:         breakdown.Subtotal,
			DiscountApplied:  breakdown.DiscountApplied,
			TaxApplied:       breakdown.TaxApplied,
			GiftcardApplied:  breakdown.GiftcardApplied,
			TotalPrice:       breakdown.Total,
			CouponCode:       req.CouponCode,
			Notes:            req.Notes,
		}

		created, err := uc.bookingRepo.Create(txCtx, booking)
		if err != nil {
			uc.logger.Error("CreateBooking: failed to create booking: %v", err)
			return fmt.Errorf("%w: failed to create booking: %v", ErrInternal, err)
		}
		result = created

		// 8.7. Фиксируем использование купона
		if coupon != nil && breakdown.DiscountApplied.IsPositive() {
			if err := uc.couponRepo.IncrementUsage(txCtx, coupon.ID); err != nil {
				if errors.Is(err, couponRepo.ErrUsageLimitReached) {
					uc.logger.Warn("CreateBooking: coupon id=%d usage limit reached at commit", coupon.ID)
					return fmt.Errorf("%w: coupon usage limit reached", ErrPromotionNoLongerEligible)
				}
				uc.logger.Error("CreateBooking: failed to increment coupon usage: %v", err)
				return fmt.Errorf("%w: failed to increment coupon usage: %v", ErrInternal, err)
			}
		}

		// 8.8. Записываем списания с карт в журнал
		for _, applied := range breakdown.Giftcards {
			card := findGiftcard(giftcards, applied.GiftcardID)
			if card == nil {
				return fmt.Errorf("%w: applied giftcard id=%d missing", ErrInternal, applied.GiftcardID)
			}
			if err := uc.ledger.RecordSpend(txCtx, card, applied.Deducted, created.ID); err != nil {
				uc.logger.Error("CreateBooking: failed to record spend for giftcard id=%d: %v", card.ID, err)
				return fmt.Errorf("%w: failed to record giftcard spend: %v", ErrInternal, err)
			}
		}

		return nil
	})

	if err != nil {
		return nil, err
	}

	uc.logger.Info("CreateBooking: successfully created booking id=%d, total=%s", result.ID, result.TotalPrice)
	return fromDomain(result, breakdown), nil
}

// recheckSlot перепроверяет доступность слота по текущим бронированиям
func (uc *UseCase) recheckSlot(ctx context.Context, req *Request, durationMinutes int) error {
	filter := domain.StaffBookingsFilter{
		StaffID:         req.StaffID,
		StartDate:       &req.Date,
		EndDate:         &req.Date,
		IncludeInactive: false, // Только активные бронирования
	}

	bookings, err := uc.bookingRepo.GetByStaffWithFilter(ctx, filter)
	if err != nil {
		uc.logger.Error("CreateBooking: failed to get bookings: %v", err)
		return fmt.Errorf("%w: failed to get bookings: %v", ErrInternal, err)
	}

	end, err := req.StartTime.AddMinutes(durationMinutes)
	if err != nil {
		return fmt.Errorf("%w: appointment end out of range", ErrInvalidStartTime)
	}

	for _, booking := range bookings {
		if !booking.IsActive() {
			continue
		}
		bookingEnd, err := booking.StartTime.AddMinutes(booking.DurationMinutes)
		if err != nil {
			continue
		}
		if domain.Overlaps(req.StartTime, end, booking.StartTime, bookingEnd) {
			uc.logger.Warn("CreateBooking: slot %s conflicts with booking id=%d", req.StartTime, booking.ID)
			return ErrSlotNotAvailable
		}
	}

	return nil
}

// recheckCoupon загружает купон с блокировкой и повторяет все проверки
func (uc *UseCase) recheckCoupon(ctx context.Context, code *string, target promotions.Target, now time.Time) (*domain.Coupon, error) {
	if code == nil {
		return nil, nil
	}

	coupon, err := uc.couponRepo.GetByCode(ctx, *code)
	if err != nil {
		if errors.Is(err, couponRepo.ErrCouponNotFound) {
			uc.logger.Warn("CreateBooking: coupon code=%s not found", *code)
			return nil, ErrCouponNotFound
		}
		uc.logger.Error("CreateBooking: failed to get coupon code=%s: %v", *code, err)
		return nil, fmt.Errorf("%w: failed to get coupon: %v", ErrInternal, err)
	}

	if err := uc.promoChecker.ValidateCoupon(coupon, target, now); err != nil {
		uc.logger.Warn("CreateBooking: coupon code=%s no longer eligible: %v", *code, err)
		return nil, fmt.Errorf("%w: %v", ErrPromotionNoLongerEligible, err)
	}

	return coupon, nil
}

// recheckGiftcards загружает карты с блокировкой и повторяет все проверки
func (uc *UseCase) recheckGiftcards(ctx context.Context, codes []string, target promotions.Target, now time.Time) ([]*domain.Giftcard, error) {
	if len(codes) == 0 {
		return nil, nil
	}

	giftcards := make([]*domain.Giftcard, 0, len(codes))
	for _, code := range codes {
		card, err := uc.giftcardRepo.GetByCode(ctx, code)
		if err != nil {
			if errors.Is(err, giftcardRepo.ErrGiftcardNotFound) {
				uc.logger.Warn("CreateBooking: giftcard code=%s not found", code)
				return nil, fmt.Errorf("%w: code=%s", ErrGiftcardNotFound, code)
			}
			uc.logger.Error("CreateBooking: failed to get giftcard code=%s: %v", code, err)
			return nil, fmt.Errorf("%w: failed to get giftcard: %v", ErrInternal, err)
		}

		if err := uc.promoChecker.ValidateGiftcard(card, target, now); err != nil {
			uc.logger.Warn("CreateBooking: giftcard code=%s no longer eligible: %v", code, err)
			return nil, fmt.Errorf("%w: %v", ErrPromotionNoLongerEligible, err)
		}

		giftcards = append(giftcards, card)
	}

	return giftcards, nil
}

func findGiftcard(giftcards []*domain.Giftcard, id int64) *domain.Giftcard {
	for _, card := range giftcards {
		if card.ID == id {
			return card
		}
	}
	return nil
}

// subtotalFor считает subtotal без движка - для проверки минимальной суммы купона
func subtotalFor(service *domain.Service, extras []domain.Extra, additionalGuests int) decimal.Decimal {
	sum := service.BasePrice
	for _, extra := range extras {
		sum = sum.Add(extra.Price)
	}
	return sum.Mul(decimal.NewFromInt(int64(1 + additionalGuests))).Round(2)
}
