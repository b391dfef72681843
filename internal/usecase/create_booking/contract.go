package create_booking

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/chrisnails1212/salon-booking-engine/internal/domain"
	"github.com/chrisnails1212/salon-booking-engine/internal/service/pricing"
	"github.com/chrisnails1212/salon-booking-engine/internal/service/promotions"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error)
	GetByStaffWithFilter(ctx context.Context, filter domain.StaffBookingsFilter) ([]*domain.Booking, error)
}

// CouponRepository интерфейс репозитория купонов
type CouponRepository interface {
	GetByCode(ctx context.Context, code string) (*domain.Coupon, error)
	IncrementUsage(ctx context.Context, id int64) error
}

// GiftcardRepository интерфейс репозитория подарочных карт
type GiftcardRepository interface {
	GetByCode(ctx context.Context, code string) (*domain.Giftcard, error)
}

// TaxRepository интерфейс репозитория налоговых правил
type TaxRepository interface {
	ListEnabled(ctx context.Context) ([]domain.Tax, error)
}

// StaffServiceClient интерфейс клиента для StaffService
type StaffServiceClient interface {
	GetSchedule(ctx context.Context, staffID int64) (*domain.ScheduleModel, error)
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

// LedgerRecorder интерфейс записи списаний в журнал подарочных карт
type LedgerRecorder interface {
	RecordSpend(ctx context.Context, card *domain.Giftcard, amount decimal.Decimal, bookingID int64) error
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
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
