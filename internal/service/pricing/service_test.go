package pricing

import (
	"testing"

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

func percentCoupon(value string) *domain.Coupon {
	return &domain.Coupon{
		ID:            1,
		Code:          "SAVE",
		DiscountType:  domain.DiscountPercentage,
		DiscountValue: d(value),
		Status:        domain.CouponActive,
	}
}

func fixedCoupon(value string) *domain.Coupon {
	return &domain.Coupon{
		ID:            2,
		Code:          "FLAT",
		DiscountType:  domain.DiscountFixedAmount,
		DiscountValue: d(value),
		Status:        domain.CouponActive,
	}
}

func simpleTax(id int64, rate string, onDiscounted bool) domain.Tax {
	return domain.Tax{
		ID:                     id,
		Name:                   "VAT",
		RatePercent:            d(rate),
		ApplyToDiscountedPrice: onDiscounted,
		Enabled:                true,
	}
}

func cardWithLeftover(id int64, leftover string) *domain.Giftcard {
	return &domain.Giftcard{
		ID:       id,
		Code:     "GC",
		Balance:  d(leftover),
		Spent:    decimal.Zero,
		Leftover: d(leftover),
		IsActive: true,
		PartialUsage: domain.PartialUsageRules{
			AllowPartialUse: true,
		},
	}
}

func TestCalculate_FullStack(t *testing.T) {
	// 100 -> купон 10% -> 90 -> налог 8% на 90 -> 97.20 -> карта 97.20 -> 0
	svc := NewService()

	card := cardWithLeftover(1, "200")
	breakdown := svc.Calculate(Input{
		BasePrice: d("100"),
		Coupon:    percentCoupon("10"),
		Taxes:     []domain.Tax{simpleTax(1, "8", true)},
		Giftcards: []*domain.Giftcard{card},
	})

	assert.True(t, breakdown.Subtotal.Equal(d("100")))
	assert.True(t, breakdown.DiscountApplied.Equal(d("10")))
	assert.True(t, breakdown.AfterCoupon.Equal(d("90")))
	assert.True(t, breakdown.TaxApplied.Equal(d("7.2")))
	assert.True(t, breakdown.AfterTax.Equal(d("97.2")))
	assert.True(t, breakdown.GiftcardApplied.Equal(d("97.2")))
	assert.True(t, breakdown.Total.IsZero())

	require.Len(t, breakdown.Giftcards, 1)
	assert.True(t, breakdown.Giftcards[0].Deducted.Equal(d("97.2")))
}

func TestCalculate_Subtotal(t *testing.T) {
	svc := NewService()

	tests := []struct {
		name         string
		basePrice    string
		extras       []string
		guests       int
		wantSubtotal string
	}{
		{
			name:         "base price only",
			basePrice:    "50",
			wantSubtotal: "50",
		},
		{
			name:         "extras are added before multiplying",
			basePrice:    "50",
			extras:       []string{"10", "5"},
			wantSubtotal: "65",
		},
		{
			name:         "two additional guests triple the subtotal",
			basePrice:    "40",
			extras:       []string{"10"},
			guests:       2,
			wantSubtotal: "150",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			extras := make([]domain.Extra, 0, len(tt.extras))
			for i, p := range tt.extras {
				extras = append(extras, domain.Extra{ID: int64(i + 1), Price: d(p)})
			}

			breakdown := svc.Calculate(Input{
				BasePrice:        d(tt.basePrice),
				Extras:           extras,
				AdditionalGuests: tt.guests,
			})
			assert.True(t, breakdown.Subtotal.Equal(d(tt.wantSubtotal)),
				"want %s, got %s", tt.wantSubtotal, breakdown.Subtotal)
		})
	}
}

func TestCalculate_CouponDiscount(t *testing.T) {
	svc := NewService()

	tests := []struct {
		name         string
		coupon       *domain.Coupon
		subtotal     string
		wantDiscount string
		wantAfter    string
	}{
		{
			name:         "percentage discount",
			coupon:       percentCoupon("25"),
			subtotal:     "80",
			wantDiscount: "20",
			wantAfter:    "60",
		},
		{
			name:         "fixed discount",
			coupon:       fixedCoupon("15"),
			subtotal:     "80",
			wantDiscount: "15",
			wantAfter:    "65",
		},
		{
			name:         "fixed discount larger than subtotal floors at zero",
			coupon:       fixedCoupon("150"),
			subtotal:     "80",
			wantDiscount: "80",
			wantAfter:    "0",
		},
		{
			name: "maximum discount caps percentage",
			coupon: &domain.Coupon{
				DiscountType:    domain.DiscountPercentage,
				DiscountValue:   d("50"),
				MaximumDiscount: dp("10"),
			},
			subtotal:     "80",
			wantDiscount: "10",
			wantAfter:    "70",
		},
		{
			name:         "no coupon",
			coupon:       nil,
			subtotal:     "80",
			wantDiscount: "0",
			wantAfter:    "80",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			breakdown := svc.Calculate(Input{
				BasePrice: d(tt.subtotal),
				Coupon:    tt.coupon,
			})
			assert.True(t, breakdown.DiscountApplied.Equal(d(tt.wantDiscount)),
				"discount: want %s, got %s", tt.wantDiscount, breakdown.DiscountApplied)
			assert.True(t, breakdown.AfterCoupon.Equal(d(tt.wantAfter)),
				"after coupon: want %s, got %s", tt.wantAfter, breakdown.AfterCoupon)
		})
	}
}

func TestCalculate_Taxes(t *testing.T) {
	svc := NewService()

	t.Run("tax on full subtotal ignores the coupon", func(t *testing.T) {
		breakdown := svc.Calculate(Input{
			BasePrice: d("100"),
			Coupon:    percentCoupon("50"),
			Taxes:     []domain.Tax{simpleTax(1, "10", false)},
		})
		// Налог считается от 100, а не от 50
		assert.True(t, breakdown.TaxApplied.Equal(d("10")))
		assert.True(t, breakdown.AfterTax.Equal(d("60")))
	})

	t.Run("tax amount clamping", func(t *testing.T) {
		tax := simpleTax(1, "10", true)
		tax.MinimumAmount = dp("5")
		tax.MaximumAmount = dp("7")

		// 10% от 20 = 2, поднимается до минимума 5
		low := svc.Calculate(Input{BasePrice: d("20"), Taxes: []domain.Tax{tax}})
		assert.True(t, low.TaxApplied.Equal(d("5")))

		// 10% от 200 = 20, срезается до максимума 7
		high := svc.Calculate(Input{BasePrice: d("200"), Taxes: []domain.Tax{tax}})
		assert.True(t, high.TaxApplied.Equal(d("7")))
	})

	t.Run("incorporated tax is shown but not added", func(t *testing.T) {
		tax := simpleTax(1, "20", true)
		tax.IncorporateIntoPrice = true

		breakdown := svc.Calculate(Input{BasePrice: d("100"), Taxes: []domain.Tax{tax}})
		require.Len(t, breakdown.Taxes, 1)
		assert.True(t, breakdown.Taxes[0].Amount.Equal(d("20")))
		assert.True(t, breakdown.TaxApplied.IsZero())
		assert.True(t, breakdown.AfterTax.Equal(d("100")))
	})

	t.Run("disabled and filtered taxes are skipped", func(t *testing.T) {
		disabled := simpleTax(1, "10", true)
		disabled.Enabled = false

		filtered := simpleTax(2, "10", true)
		filtered.ServiceFilter = []int64{99}

		breakdown := svc.Calculate(Input{
			BasePrice: d("100"),
			ServiceID: 1,
			Taxes:     []domain.Tax{disabled, filtered},
		})
		assert.Empty(t, breakdown.Taxes)
		assert.True(t, breakdown.TaxApplied.IsZero())
	})
}

func TestCalculate_Giftcards(t *testing.T) {
	svc := NewService()

	t.Run("cards apply in caller order", func(t *testing.T) {
		first := cardWithLeftover(1, "30")
		second := cardWithLeftover(2, "100")

		breakdown := svc.Calculate(Input{
			BasePrice: d("80"),
			Giftcards: []*domain.Giftcard{first, second},
		})

		require.Len(t, breakdown.Giftcards, 2)
		assert.Equal(t, int64(1), breakdown.Giftcards[0].GiftcardID)
		assert.True(t, breakdown.Giftcards[0].Deducted.Equal(d("30")))
		assert.Equal(t, int64(2), breakdown.Giftcards[1].GiftcardID)
		assert.True(t, breakdown.Giftcards[1].Deducted.Equal(d("50")))
		assert.True(t, breakdown.Total.IsZero())
	})

	t.Run("partial use disabled skips a card that cannot cover the rest", func(t *testing.T) {
		card := cardWithLeftover(1, "30")
		card.PartialUsage.AllowPartialUse = false

		breakdown := svc.Calculate(Input{
			BasePrice: d("80"),
			Giftcards: []*domain.Giftcard{card},
		})
		assert.Empty(t, breakdown.Giftcards)
		assert.True(t, breakdown.Total.Equal(d("80")))
	})

	t.Run("minimum remaining caps the deduction", func(t *testing.T) {
		card := cardWithLeftover(1, "100")
		card.PartialUsage.MinimumRemaining = dp("60")

		breakdown := svc.Calculate(Input{
			BasePrice: d("80"),
			Giftcards: []*domain.Giftcard{card},
		})
		require.Len(t, breakdown.Giftcards, 1)
		assert.True(t, breakdown.Giftcards[0].Deducted.Equal(d("40")))
		assert.True(t, breakdown.Total.Equal(d("40")))
	})

	t.Run("empty card contributes nothing", func(t *testing.T) {
		card := cardWithLeftover(1, "0")

		breakdown := svc.Calculate(Input{
			BasePrice: d("80"),
			Giftcards: []*domain.Giftcard{card},
		})
		assert.Empty(t, breakdown.Giftcards)
	})
}

func TestCalculate_Deterministic(t *testing.T) {
	svc := NewService()
	in := Input{
		BasePrice:        d("73.33"),
		Extras:           []domain.Extra{{ID: 1, Price: d("12.49")}},
		AdditionalGuests: 1,
		Coupon:           percentCoupon("7"),
		Taxes:            []domain.Tax{simpleTax(1, "8.875", true)},
	}

	first := svc.Calculate(in)
	second := svc.Calculate(in)

	assert.True(t, first.Total.Equal(second.Total))
	assert.True(t, first.TaxApplied.Equal(second.TaxApplied))
	// Каждый этап округляется до 2 знаков
	assert.GreaterOrEqual(t, first.Total.Exponent(), int32(-2))
}
