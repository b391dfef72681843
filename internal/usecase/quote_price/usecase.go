package quote_price

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/chrisnails1212/salon-booking-engine/internal/domain"
	couponRepo "github.com/chrisnails1212/salon-booking-engine/internal/infra/storage/coupon"
	giftcardRepo "github.com/chrisnails1212/salon-booking-engine/internal/infra/storage/giftcard"
	catalogClient "github.com/chrisnails1212/salon-booking-engine/internal/integrations/catalogservice"
	"github.com/chrisnails1212/salon-booking-engine/internal/service/pricing"
	"github.com/chrisnails1212/salon-booking-engine/internal/service/promotions"
)

// UseCase use case для расчета цены без создания бронирования
// Расчет только читает данные: никакие лимиты и балансы не изменяются
type UseCase struct {
	couponRepo    CouponRepository
	giftcardRepo  GiftcardRepository
	taxRepo       TaxRepository
	catalogClient CatalogServiceClient
	pricingEngine PricingEngine
	promoChecker  PromotionValidator
	timeProvider  TimeProvider
	logger        Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	couponRepo CouponRepository,
	giftcardRepo GiftcardRepository,
	taxRepo TaxRepository,
	catalogClient CatalogServiceClient,
	pricingEngine PricingEngine,
	promoChecker PromotionValidator,
	logger Logger,
) *UseCase {
	return &UseCase{
		couponRepo:    couponRepo,
		giftcardRepo:  giftcardRepo,
		taxRepo:       taxRepo,
		catalogClient: catalogClient,
		pricingEngine: pricingEngine,
		promoChecker:  promoChecker,
		timeProvider:  &RealTimeProvider{},
		logger:        logger,
	}
}

// Execute выполняет use case расчета цены
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("QuotePrice: user=%d, service=%d, staff=%d, coupon=%v, giftcards=%d",
		req.UserID, req.ServiceID, req.StaffID, req.CouponCode, len(req.GiftcardCodes))

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("QuotePrice: validation failed: %v", err)
		return nil, err
	}

	now := uc.timeProvider.Now()

	// 2. Получаем услугу
	service, err := uc.catalogClient.GetService(ctx, req.ServiceID)
	if err != nil {
		if errors.Is(err, catalogClient.ErrServiceNotFound) {
			uc.logger.Warn("QuotePrice: service id=%d not found", req.ServiceID)
			return nil, ErrServiceNotFound
		}
		uc.logger.Error("QuotePrice: failed to get service id=%d: %v", req.ServiceID, err)
		return nil, fmt.Errorf("%w: failed to get service: %v", ErrInternal, err)
	}

	if !service.IsPerformedBy(req.StaffID) {
		uc.logger.Warn("QuotePrice: staff id=%d does not perform service id=%d", req.StaffID, req.ServiceID)
		return nil, ErrStaffDoesNotPerformService
	}

	if err := validateExtras(service, req.ExtraIDs); err != nil {
		uc.logger.Warn("QuotePrice: extras validation failed: %v", err)
		return nil, err
	}

	extras := service.ExtrasByID(req.ExtraIDs)
	target := promotions.Target{
		ServiceID: req.ServiceID,
		StaffID:   req.StaffID,
		Subtotal:  subtotalFor(service, extras, req.AdditionalGuests),
	}

	// 3. Купон
	coupon, err := uc.resolveCoupon(ctx, req.CouponCode, target, now)
	if err != nil {
		return nil, err
	}

	// 4. Подарочные карты, в порядке запроса
	giftcards, err := uc.resolveGiftcards(ctx, req.GiftcardCodes, target, now)
	if err != nil {
		return nil, err
	}

	// 5. Сочетаемость инструментов
	if err := uc.promoChecker.ValidateCombination(coupon, giftcards); err != nil {
		uc.logger.Warn("QuotePrice: combination rejected: %v", err)
		return nil, fmt.Errorf("%w: %v", ErrNotCombinable, err)
	}

	// 6. Налоговые правила
	taxes, err := uc.taxRepo.ListEnabled(ctx)
	if err != nil {
		uc.logger.Error("QuotePrice: failed to load taxes: %v", err)
		return nil, fmt.Errorf("%w: failed to load taxes: %v", ErrInternal, err)
	}

	// 7. Расчет разбивки
	breakdown := uc.pricingEngine.Calculate(pricing.Input{
		BasePrice:        service.BasePrice,
		Extras:           extras,
		AdditionalGuests: req.AdditionalGuests,
		Coupon:           coupon,
		Giftcards:        giftcards,
		Taxes:            taxes,
		ServiceID:        req.ServiceID,
		LocationID:       req.LocationID,
	})

	uc.logger.Info("QuotePrice: service=%d subtotal=%s total=%s",
		req.ServiceID, breakdown.Subtotal, breakdown.Total)

	return FromDomainBreakdown(breakdown), nil
}

// resolveCoupon загружает и проверяет купон, если он указан
func (uc *UseCase) resolveCoupon(ctx context.Context, code *string, target promotions.Target, now time.Time) (*domain.Coupon, error) {
	if code == nil {
		return nil, nil
	}

	coupon, err := uc.couponRepo.GetByCode(ctx, *code)
	if err != nil {
		if errors.Is(err, couponRepo.ErrCouponNotFound) {
			uc.logger.Warn("QuotePrice: coupon code=%s not found", *code)
			return nil, ErrCouponNotFound
		}
		uc.logger.Error("QuotePrice: failed to get coupon code=%s: %v", *code, err)
		return nil, fmt.Errorf("%w: failed to get coupon: %v", ErrInternal, err)
	}

	if err := uc.promoChecker.ValidateCoupon(coupon, target, now); err != nil {
		uc.logger.Warn("QuotePrice: coupon code=%s rejected: %v", *code, err)
		return nil, fmt.Errorf("%w: %v", ErrCouponNotApplicable, err)
	}

	return coupon, nil
}

// resolveGiftcards загружает и проверяет карты в порядке запроса
func (uc *UseCase) resolveGiftcards(ctx context.Context, codes []string, target promotions.Target, now time.Time) ([]*domain.Giftcard, error) {
	if len(codes) == 0 {
		return nil, nil
	}

	giftcards := make([]*domain.Giftcard, 0, len(codes))
	for _, code := range codes {
		card, err := uc.giftcardRepo.GetByCode(ctx, code)
		if err != nil {
			if errors.Is(err, giftcardRepo.ErrGiftcardNotFound) {
				uc.logger.Warn("QuotePrice: giftcard code=%s not found", code)
				return nil, fmt.Errorf("%w: code=%s", ErrGiftcardNotFound, code)
			}
			uc.logger.Error("QuotePrice: failed to get giftcard code=%s: %v", code, err)
			return nil, fmt.Errorf("%w: failed to get giftcard: %v", ErrInternal, err)
		}

		if err := uc.promoChecker.ValidateGiftcard(card, target, now); err != nil {
			uc.logger.Warn("QuotePrice: giftcard code=%s rejected: %v", code, err)
			return nil, fmt.Errorf("%w: %v", ErrGiftcardNotApplicable, err)
		}

		giftcards = append(giftcards, card)
	}

	return giftcards, nil
}
