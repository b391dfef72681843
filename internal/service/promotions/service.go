package promotions

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/chrisnails1212/salon-booking-engine/internal/domain"
)

// Target describes the booking a promotion instrument is applied to
type Target struct {
	ServiceID int64
	StaffID   int64
	Subtotal  decimal.Decimal
}

// Service проверяет применимость купонов и подарочных карт
// Все проверки чистые: состояние читается вызывающей стороной и
// передается целиком
type Service struct{}

// NewService создает новый экземпляр валидатора промо-инструментов
func NewService() *Service {
	return &Service{}
}

// ValidateCoupon runs every coupon gate in a fixed order and returns the
// first failed reason. nil means the coupon is applicable.
func (s *Service) ValidateCoupon(coupon *domain.Coupon, target Target, now time.Time) error {
	if coupon.Status != domain.CouponActive {
		return ErrCouponInactive
	}
	if coupon.ValidFrom != nil && now.Before(*coupon.ValidFrom) {
		return ErrCouponNotStarted
	}
	if coupon.ValidTo != nil && now.After(*coupon.ValidTo) {
		return ErrCouponExpired
	}
	if !coupon.HasUsageLeft() {
		return ErrCouponUsageLimitReached
	}
	if !coupon.AppliesToService(target.ServiceID) {
		return ErrCouponServiceMismatch
	}
	if !coupon.AppliesToStaff(target.StaffID) {
		return ErrCouponStaffMismatch
	}
	if coupon.MinimumPurchase != nil && target.Subtotal.LessThan(*coupon.MinimumPurchase) {
		return fmt.Errorf("%w: minimum %s, got %s",
			ErrCouponMinimumPurchase, coupon.MinimumPurchase.StringFixed(2), target.Subtotal.StringFixed(2))
	}
	return nil
}

// ValidateGiftcard runs every giftcard gate in a fixed order and returns the
// first failed reason. nil means the giftcard may participate in payment.
func (s *Service) ValidateGiftcard(card *domain.Giftcard, target Target, now time.Time) error {
	if !card.IsActive {
		return ErrGiftcardInactive
	}
	if card.IsExpired(now) {
		return ErrGiftcardExpired
	}
	if card.Leftover.LessThanOrEqual(decimal.Zero) {
		return ErrGiftcardEmpty
	}
	if !card.HasUsageLeft() {
		return ErrGiftcardUsageLimitReached
	}
	if card.DailyLimit != nil && dailyUsage(card, now).GreaterThanOrEqual(*card.DailyLimit) {
		return ErrGiftcardDailyLimitReached
	}
	if card.MonthlyLimit != nil && monthlyUsage(card, now).GreaterThanOrEqual(*card.MonthlyLimit) {
		return ErrGiftcardMonthlyLimitReached
	}
	if !card.AppliesToService(target.ServiceID) {
		return ErrGiftcardServiceMismatch
	}
	if !card.AppliesToStaff(target.StaffID) {
		return ErrGiftcardStaffMismatch
	}
	return nil
}

// ValidateCombination checks that the instruments may be used together.
//
// Купон с AllowCombination=false не сочетается ни с одной подарочной
// картой. Несколько карт в одном платеже допустимы.
func (s *Service) ValidateCombination(coupon *domain.Coupon, giftcards []*domain.Giftcard) error {
	if coupon == nil || len(giftcards) == 0 {
		return nil
	}
	if !coupon.AllowCombination {
		return ErrNotCombinable
	}
	return nil
}

// dailyUsage возвращает накопленную сумму списаний за текущий день
// Кэш дневного расхода относится к дате LastUsageDate: если последнее
// списание было в другой день, счетчик считается обнуленным
func dailyUsage(card *domain.Giftcard, now time.Time) decimal.Decimal {
	if card.LastUsageDate == nil {
		return decimal.Zero
	}
	ly, lm, ld := card.LastUsageDate.Date()
	ny, nm, nd := now.Date()
	if ly != ny || lm != nm || ld != nd {
		return decimal.Zero
	}
	return card.DailyUsage
}

// monthlyUsage возвращает накопленную сумму списаний за текущий месяц
func monthlyUsage(card *domain.Giftcard, now time.Time) decimal.Decimal {
	if card.LastUsageDate == nil {
		return decimal.Zero
	}
	ly, lm, _ := card.LastUsageDate.Date()
	ny, nm, _ := now.Date()
	if ly != ny || lm != nm {
		return decimal.Zero
	}
	return card.MonthlyUsage
}
