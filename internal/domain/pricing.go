package domain

import "github.com/shopspring/decimal"

// AppliedGiftcard is the audit record of one giftcard deduction inside a quote
type AppliedGiftcard struct {
	GiftcardID int64
	Code       string
	Deducted   decimal.Decimal
}

// AppliedTax is the audit record of one tax line inside a quote
type AppliedTax struct {
	TaxID  int64
	Name   string
	Amount decimal.Decimal
}

// PriceBreakdown is the itemized result of a price computation.
// Every intermediate is retained for display and audit, not only the total.
type PriceBreakdown struct {
	Subtotal        decimal.Decimal // (base + extras) * (1 + additionalGuests)
	DiscountApplied decimal.Decimal
	AfterCoupon     decimal.Decimal
	TaxApplied      decimal.Decimal
	AfterTax        decimal.Decimal
	GiftcardApplied decimal.Decimal
	Total           decimal.Decimal

	Taxes     []AppliedTax
	Giftcards []AppliedGiftcard
}
