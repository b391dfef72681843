package quote_price

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/chrisnails1212/salon-booking-engine/internal/domain"
	"github.com/chrisnails1212/salon-booking-engine/internal/service/pricing"
	"github.com/chrisnails1212/salon-booking-engine/internal/service/promotions"
)

// CouponRepository интерфейс репозитория купонов
type CouponRepository interface {
	GetByCode(ctx context.Context, code string) (*domain.Coupon, error)
}

// GiftcardRepository интерфейс репозитория подарочных карт
type GiftcardRepository interface {
	GetByCode(ctx context.Context, code string) (*domain.Giftcard, error)
}

// TaxRepository интерфейс репозитория налоговых правил
type TaxRepository interface {
	ListEnabled(ctx context.Context) ([]domain.Tax, error)
}

// CatalogServiceClient интерфейс клиента для CatalogService
type CatalogServiceClient interface {
	GetService(ctx context.Context, serviceID int64) (*domain.Service, error)
}

// PricingEngine интерфейс движка расчета цены
type PricingEngine interface {
	Calculate(in pricing.Input) domain.PriceBreakdown
}

// PromotionValidator интерфейс валидатора промо-инструментов
type PromotionValidator interface {
	ValidateCoupon(coupon *domain.Coupon, target promotions.Target, now time.Time) error
	ValidateGiftcard(card *domain.Giftcard, target promotions.Target, now time.Time) error
	ValidateCombination(coupon *domain.Coupon, giftcards []*domain.Giftcard) error
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}

// subtotalFor считает subtotal без движка - для проверки минимальной суммы купона
func subtotalFor(service *domain.Service, extras []domain.Extra, additionalGuests int) decimal.Decimal {
	sum := service.BasePrice
	for _, extra := range extras {
		sum = sum.Add(extra.Price)
	}
	return sum.Mul(decimal.NewFromInt(int64(1 + additionalGuests))).Round(2)
}
