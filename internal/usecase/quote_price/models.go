package quote_price

import (
	"github.com/shopspring/decimal"

	"github.com/chrisnails1212/salon-booking-engine/internal/domain"
)

// Request модель запроса на расчет цены
type Request struct {
	UserID           int64    // ID пользователя (для логирования, не влияет на результат)
	ServiceID        int64    // ID услуги
	StaffID          int64    // ID сотрудника
	LocationID       int64    // ID локации салона (для налоговых фильтров)
	ExtraIDs         []int64  // Дополнительные услуги
	AdditionalGuests int      // Дополнительные гости
	CouponCode       *string  // Код купона (опционально)
	GiftcardCodes    []string // Коды подарочных карт в порядке применения
}

// AppliedTax строка налога в разбивке
type AppliedTax struct {
	TaxID  int64           `json:"taxId"`
	Name   string          `json:"name"`
	Amount decimal.Decimal `json:"amount"`
}

// AppliedGiftcard строка списания с карты в разбивке
type AppliedGiftcard struct {
	GiftcardID int64           `json:"giftcardId"`
	Code       string          `json:"code"`
	Deducted   decimal.Decimal `json:"deducted"`
}

// Response модель ответа с полной разбивкой цены
type Response struct {
	Subtotal        decimal.Decimal   `json:"subtotal"`
	DiscountApplied decimal.Decimal   `json:"discountApplied"`
	AfterCoupon     decimal.Decimal   `json:"afterCoupon"`
	TaxApplied      decimal.Decimal   `json:"taxApplied"`
	AfterTax        decimal.Decimal   `json:"afterTax"`
	GiftcardApplied decimal.Decimal   `json:"giftcardApplied"`
	Total           decimal.Decimal   `json:"total"`
	Taxes           []AppliedTax      `json:"taxes"`
	Giftcards       []AppliedGiftcard `json:"giftcards"`
}

// FromDomainBreakdown конвертирует доменную разбивку в response
func FromDomainBreakdown(b domain.PriceBreakdown) *Response {
	resp := &Response{
		Subtotal:        b.Subtotal,
		DiscountApplied: b.DiscountApplied,
		AfterCoupon:     b.AfterCoupon,
		TaxApplied:      b.TaxApplied,
		AfterTax:        b.AfterTax,
		GiftcardApplied: b.GiftcardApplied,
		Total:           b.Total,
		Taxes:           make([]AppliedTax, len(b.Taxes)),
		Giftcards:       make([]AppliedGiftcard, len(b.Giftcards)),
	}
	for i, t := range b.Taxes {
		resp.Taxes[i] = AppliedTax{TaxID: t.TaxID, Name: t.Name, Amount: t.Amount}
	}
	for i, g := range b.Giftcards {
		resp.Giftcards[i] = AppliedGiftcard{GiftcardID: g.GiftcardID, Code: g.Code, Deducted: g.Deducted}
	}
	return resp
}
