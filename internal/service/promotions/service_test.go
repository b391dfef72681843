package promotions

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chrisnails1212/salon-booking-engine/internal/domain"
)

func d(v string) decimal.Decimal {
	return decimal.RequireFromString(v)
}

func dp(v string) *decimal.Decimal {
	dec := decimal.RequireFromString(v)
	return &dec
}

func i64p(v int64) *int64 { return &v }

func tp(t time.Time) *time.Time { return &t }

func activeCoupon() *domain.Coupon {
	return &domain.Coupon{
		ID:            1,
		Code:          "SAVE10",
		DiscountType:  domain.DiscountPercentage,
		DiscountValue: d("10"),
		Status:        domain.CouponActive,
	}
}

func activeCard() *domain.Giftcard {
	return &domain.Giftcard{
		ID:       1,
		Code:     "GC-1",
		Balance:  d("100"),
		Spent:    decimal.Zero,
		Leftover: d("100"),
		IsActive: true,
	}
}

func TestValidateCoupon(t *testing.T) {
	now := time.Date(2026, 9, 15, 12, 0, 0, 0, time.UTC)
	target := Target{ServiceID: 1, StaffID: 2, Subtotal: d("100")}
	svc := NewService()

	tests := []struct {
		name    string
		mutate  func(c *domain.Coupon)
		wantErr error
	}{
		{
			name:   "applicable coupon",
			mutate: func(c *domain.Coupon) {},
		},
		{
			name:    "inactive status",
			mutate:  func(c *domain.Coupon) { c.Status = domain.CouponInactive },
			wantErr: ErrCouponInactive,
		},
		{
			name:    "not yet valid",
			mutate:  func(c *domain.Coupon) { c.ValidFrom = tp(now.AddDate(0, 0, 1)) },
			wantErr: ErrCouponNotStarted,
		},
		{
			name:    "expired",
			mutate:  func(c *domain.Coupon) { c.ValidTo = tp(now.AddDate(0, 0, -1)) },
			wantErr: ErrCouponExpired,
		},
		{
			name: "usage limit reached",
			mutate: func(c *domain.Coupon) {
				c.UsageLimit = i64p(5)
				c.TimesUsed = 5
			},
			wantErr: ErrCouponUsageLimitReached,
		},
		{
			name:    "service filter mismatch",
			mutate:  func(c *domain.Coupon) { c.ServiceFilter = []int64{99} },
			wantErr: ErrCouponServiceMismatch,
		},
		{
			name:    "staff filter mismatch",
			mutate:  func(c *domain.Coupon) { c.StaffFilter = []int64{99} },
			wantErr: ErrCouponStaffMismatch,
		},
		{
			name:    "minimum purchase not met",
			mutate:  func(c *domain.Coupon) { c.MinimumPurchase = dp("150") },
			wantErr: ErrCouponMinimumPurchase,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			coupon := activeCoupon()
			tt.mutate(coupon)

			err := svc.ValidateCoupon(coupon, target, now)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
		})
	}
}

func TestValidateCoupon_FirstFailureWins(t *testing.T) {
	now := time.Date(2026, 9, 15, 12, 0, 0, 0, time.UTC)
	svc := NewService()

	// Купон одновременно неактивен и просрочен: причина - первая по порядку
	coupon := activeCoupon()
	coupon.Status = domain.CouponInactive
	coupon.ValidTo = tp(now.AddDate(0, 0, -1))

	err := svc.ValidateCoupon(coupon, Target{ServiceID: 1, StaffID: 2, Subtotal: d("100")}, now)
	assert.ErrorIs(t, err, ErrCouponInactive)
}

func TestValidateGiftcard(t *testing.T) {
	now := time.Date(2026, 9, 15, 12, 0, 0, 0, time.UTC)
	target := Target{ServiceID: 1, StaffID: 2, Subtotal: d("100")}
	svc := NewService()

	tests := []struct {
		name    string
		mutate  func(c *domain.Giftcard)
		wantErr error
	}{
		{
			name:   "applicable card",
			mutate: func(c *domain.Giftcard) {},
		},
		{
			name:    "deactivated",
			mutate:  func(c *domain.Giftcard) { c.IsActive = false },
			wantErr: ErrGiftcardInactive,
		},
		{
			name:    "expired",
			mutate:  func(c *domain.Giftcard) { c.ExpiresAt = tp(now.AddDate(0, 0, -1)) },
			wantErr: ErrGiftcardExpired,
		},
		{
			name:    "empty",
			mutate:  func(c *domain.Giftcard) { c.Leftover = decimal.Zero },
			wantErr: ErrGiftcardEmpty,
		},
		{
			name: "usage count exhausted",
			mutate: func(c *domain.Giftcard) {
				c.UsageLimit = i64p(3)
				c.TimesUsed = 3
			},
			wantErr: ErrGiftcardUsageLimitReached,
		},
		{
			name: "daily limit reached today",
			mutate: func(c *domain.Giftcard) {
				c.DailyLimit = dp("50")
				c.DailyUsage = d("50")
				c.LastUsageDate = tp(now)
			},
			wantErr: ErrGiftcardDailyLimitReached,
		},
		{
			name: "daily counter resets on a new day",
			mutate: func(c *domain.Giftcard) {
				c.DailyLimit = dp("50")
				c.DailyUsage = d("50")
				c.LastUsageDate = tp(now.AddDate(0, 0, -1))
			},
		},
		{
			name: "monthly limit reached this month",
			mutate: func(c *domain.Giftcard) {
				c.MonthlyLimit = dp("200")
				c.MonthlyUsage = d("200")
				c.LastUsageDate = tp(now.AddDate(0, 0, -3))
			},
			wantErr: ErrGiftcardMonthlyLimitReached,
		},
		{
			name: "monthly counter resets on a new month",
			mutate: func(c *domain.Giftcard) {
				c.MonthlyLimit = dp("200")
				c.MonthlyUsage = d("200")
				c.LastUsageDate = tp(now.AddDate(0, -1, 0))
			},
		},
		{
			name:    "service filter mismatch",
			mutate:  func(c *domain.Giftcard) { c.ServiceFilter = []int64{99} },
			wantErr: ErrGiftcardServiceMismatch,
		},
		{
			name:    "staff filter mismatch",
			mutate:  func(c *domain.Giftcard) { c.StaffFilter = []int64{99} },
			wantErr: ErrGiftcardStaffMismatch,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			card := activeCard()
			tt.mutate(card)

			err := svc.ValidateGiftcard(card, target, now)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
		})
	}
}

func TestValidateCombination(t *testing.T) {
	svc := NewService()
	cards := []*domain.Giftcard{activeCard()}

	t.Run("coupon alone is fine", func(t *testing.T) {
		coupon := activeCoupon()
		assert.NoError(t, svc.ValidateCombination(coupon, nil))
	})

	t.Run("cards alone are fine", func(t *testing.T) {
		assert.NoError(t, svc.ValidateCombination(nil, cards))
	})

	t.Run("non-combinable coupon rejects any giftcard", func(t *testing.T) {
		coupon := activeCoupon()
		coupon.AllowCombination = false
		assert.ErrorIs(t, svc.ValidateCombination(coupon, cards), ErrNotCombinable)
	})

	t.Run("combinable coupon accepts giftcards", func(t *testing.T) {
		coupon := activeCoupon()
		coupon.AllowCombination = true
		assert.NoError(t, svc.ValidateCombination(coupon, cards))
	})
}
