package quote_price

import (
	quotePrice "github.com/chrisnails1212/salon-booking-engine/internal/usecase/quote_price"
)

// QuotePriceRequest HTTP request model
type QuotePriceRequest struct {
	ServiceID        int64    `json:"serviceId"`
	StaffID          int64    `json:"staffId"`
	LocationID       int64    `json:"locationId,omitempty"`
	ExtraIDs         []int64  `json:"extraIds,omitempty"`
	AdditionalGuests int      `json:"additionalGuests,omitempty"`
	CouponCode       *string  `json:"couponCode,omitempty"`
	GiftcardCodes    []string `json:"giftcardCodes,omitempty"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *QuotePriceRequest) ToUseCaseRequest(userID int64) *quotePrice.Request {
	return &quotePrice.Request{
		UserID:           userID,
		ServiceID:        r.ServiceID,
		StaffID:          r.StaffID,
		LocationID:       r.LocationID,
		ExtraIDs:         r.ExtraIDs,
		AdditionalGuests: r.AdditionalGuests,
		CouponCode:       r.CouponCode,
		GiftcardCodes:    r.GiftcardCodes,
	}
}
