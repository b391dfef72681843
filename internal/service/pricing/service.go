package pricing

import (
	"github.com/shopspring/decimal"

	"github.com/chrisnails1212/salon-booking-engine/internal/domain"
)

var hundred = decimal.NewFromInt(100)

// Input carries everything a price computation depends on.
// Eligibility of the coupon and giftcards is checked by the promotions
// service beforehand; the engine only does arithmetic.
type Input struct {
	BasePrice        decimal.Decimal
	Extras           []domain.Extra
	AdditionalGuests int

	Coupon    *domain.Coupon    // nil = без купона
	Giftcards []*domain.Giftcard // применяются в порядке, заданном клиентом
	Taxes     []domain.Tax

	ServiceID  int64
	LocationID int64
}

// Service вычисляет итоговую цену бронирования
// Движок детерминированный и не имеет состояния: одинаковый вход всегда
// дает одинаковую разбивку
type Service struct{}

// NewService создает новый экземпляр движка расчета цены
func NewService() *Service {
	return &Service{}
}

// Calculate computes the full price breakdown.
//
// Порядок этапов фиксирован: subtotal -> купон -> налоги -> подарочные
// карты. Каждый промежуточный результат округляется до 2 знаков.
func (s *Service) Calculate(in Input) domain.PriceBreakdown {
	var b domain.PriceBreakdown

	// 1. Subtotal: (базовая цена + допуслуги) * (1 + дополнительные гости)
	sum := in.BasePrice
	for _, extra := range in.Extras {
		sum = sum.Add(extra.Price)
	}
	multiplier := decimal.NewFromInt(int64(1 + in.AdditionalGuests))
	b.Subtotal = sum.Mul(multiplier).Round(2)

	// 2. Скидка купона
	b.DiscountApplied = s.couponDiscount(in.Coupon, b.Subtotal)
	b.AfterCoupon = b.Subtotal.Sub(b.DiscountApplied)
	if b.AfterCoupon.IsNegative() {
		b.AfterCoupon = decimal.Zero
	}

	// 3. Налоги
	b.Taxes = s.applicableTaxes(in)
	b.TaxApplied = decimal.Zero
	for i := range b.Taxes {
		base := b.Subtotal
		tax := s.findTax(in.Taxes, b.Taxes[i].TaxID)
		if tax.ApplyToDiscountedPrice {
			base = b.AfterCoupon
		}
		amount := base.Mul(tax.RatePercent).Div(hundred).Round(2)
		amount = tax.ClampAmount(amount)
		b.Taxes[i].Amount = amount

		// Включенный в цену налог отражается в разбивке, но не добавляется сверху
		if !tax.IncorporateIntoPrice {
			b.TaxApplied = b.TaxApplied.Add(amount)
		}
	}
	b.TaxApplied = b.TaxApplied.Round(2)
	b.AfterTax = b.AfterCoupon.Add(b.TaxApplied)

	// 4. Подарочные карты, строго в порядке клиента
	remaining := b.AfterTax
	b.GiftcardApplied = decimal.Zero
	b.Giftcards = make([]domain.AppliedGiftcard, 0, len(in.Giftcards))
	for _, card := range in.Giftcards {
		deducted := giftcardDeduction(card, remaining)
		if deducted.IsZero() {
			continue
		}
		remaining = remaining.Sub(deducted)
		b.GiftcardApplied = b.GiftcardApplied.Add(deducted)
		b.Giftcards = append(b.Giftcards, domain.AppliedGiftcard{
			GiftcardID: card.ID,
			Code:       card.Code,
			Deducted:   deducted,
		})
	}

	b.Total = remaining
	if b.Total.IsNegative() {
		b.Total = decimal.Zero
	}

	return b
}

// couponDiscount рассчитывает сумму скидки с учетом потолка MaximumDiscount
func (s *Service) couponDiscount(coupon *domain.Coupon, subtotal decimal.Decimal) decimal.Decimal {
	if coupon == nil {
		return decimal.Zero
	}

	var discount decimal.Decimal
	switch coupon.DiscountType {
	case domain.DiscountPercentage:
		discount = subtotal.Mul(coupon.DiscountValue).Div(hundred)
	case domain.DiscountFixedAmount:
		discount = coupon.DiscountValue
		if discount.GreaterThan(subtotal) {
			discount = subtotal
		}
	default:
		return decimal.Zero
	}

	if coupon.MaximumDiscount != nil && discount.GreaterThan(*coupon.MaximumDiscount) {
		discount = *coupon.MaximumDiscount
	}

	return discount.Round(2)
}

// applicableTaxes отбирает налоги, подходящие услуге и локации
func (s *Service) applicableTaxes(in Input) []domain.AppliedTax {
	applied := make([]domain.AppliedTax, 0, len(in.Taxes))
	for _, tax := range in.Taxes {
		if !tax.Enabled {
			continue
		}
		if !tax.AppliesToService(in.ServiceID) || !tax.AppliesToLocation(in.LocationID) {
			continue
		}
		applied = append(applied, domain.AppliedTax{TaxID: tax.ID, Name: tax.Name})
	}
	return applied
}

func (s *Service) findTax(taxes []domain.Tax, id int64) *domain.Tax {
	for i := range taxes {
		if taxes[i].ID == id {
			return &taxes[i]
		}
	}
	return &domain.Tax{}
}

// giftcardDeduction определяет, сколько карта покрывает из остатка
// с учетом правил частичного использования
func giftcardDeduction(card *domain.Giftcard, remaining decimal.Decimal) decimal.Decimal {
	if remaining.LessThanOrEqual(decimal.Zero) || card.Leftover.LessThanOrEqual(decimal.Zero) {
		return decimal.Zero
	}

	deducted := card.Leftover
	if deducted.GreaterThan(remaining) {
		deducted = remaining
	}

	if deducted.LessThan(remaining) || card.Leftover.GreaterThan(remaining) {
		// Частичное списание: карта покрывает не весь остаток либо
		// на карте остаются средства после списания
		if !card.PartialUsage.AllowPartialUse && card.Leftover.LessThan(remaining) {
			return decimal.Zero
		}
		if card.PartialUsage.MinimumRemaining != nil && card.Leftover.GreaterThan(remaining) {
			maxDeduction := card.Leftover.Sub(*card.PartialUsage.MinimumRemaining)
			if maxDeduction.IsNegative() {
				maxDeduction = decimal.Zero
			}
			if deducted.GreaterThan(maxDeduction) {
				deducted = maxDeduction
			}
		}
	}

	return deducted.Round(2)
}
