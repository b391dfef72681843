package create_booking

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/chrisnails1212/salon-booking-engine/internal/domain"
	"github.com/chrisnails1212/salon-booking-engine/pkg/types"
)

// Request модель запроса на создание бронирования
type Request struct {
	UserID           int64            // ID пользователя
	ServiceID        int64            // ID услуги
	StaffID          int64            // ID сотрудника
	LocationID       int64            // ID локации салона (для налоговых фильтров)
	Date             time.Time        // Дата бронирования (без времени)
	StartTime        types.TimeString // Время начала (например, "10:00")
	ExtraIDs         []int64          // Дополнительные услуги
	AdditionalGuests int              // Дополнительные гости
	CouponCode       *string          // Код купона (опционально)
	GiftcardCodes    []string         // Коды подарочных карт в порядке применения
	Notes            *string          // Заметки клиента
}

// AppliedGiftcard строка списания с карты в ответе
type AppliedGiftcard struct {
	GiftcardID int64           `json:"giftcardId"`
	Code       string          `json:"code"`
	Deducted   decimal.Decimal `json:"deducted"`
}

// Response модель ответа с созданным бронированием
type Response struct {
	ID               int64            `json:"id"`
	UserID           int64            `json:"userId"`
	StaffID          int64            `json:"staffId"`
	ServiceID        int64            `json:"serviceId"`
	BookingDate      time.Time        `json:"bookingDate"`
	StartTime        types.TimeString `json:"startTime"`
	DurationMinutes  int              `json:"durationMinutes"`
	Status           string           `json:"status"`
	AdditionalGuests int              `json:"additionalGuests"`
	ServiceName      string           `json:"serviceName"`
	ExtraIDs         []int64          `json:"extraIds,omitempty"`

	// Зафиксированная разбивка цены
	Subtotal        decimal.Decimal   `json:"subtotal"`
	DiscountApplied decimal.Decimal   `json:"discountApplied"`
	TaxApplied      decimal.Decimal   `json:"taxApplied"`
	GiftcardApplied decimal.Decimal   `json:"giftcardApplied"`
	TotalPrice      decimal.Decimal   `json:"totalPrice"`
	CouponCode      *string           `json:"couponCode,omitempty"`
	Giftcards       []AppliedGiftcard `json:"giftcards,omitempty"`

	Notes     *string   `json:"notes,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// fromDomain собирает response из созданного бронирования и разбивки цены
func fromDomain(b *domain.Booking, breakdown domain.PriceBreakdown) *Response {
	resp := &Response{
		ID:               b.ID,
		UserID:           b.UserID,
		StaffID:          b.StaffID,
		ServiceID:        b.ServiceID,
		BookingDate:      b.BookingDate,
		StartTime:        b.StartTime,
		DurationMinutes:  b.DurationMinutes,
		Status:           string(b.Status),
		AdditionalGuests: b.AdditionalGuests,
		ServiceName:      b.ServiceName,
		ExtraIDs:         b.ExtraIDs,
		Subtotal:         b.Subtotal,
		DiscountApplied:  b.DiscountApplied,
		TaxApplied:       b.TaxApplied,
		GiftcardApplied:  b.GiftcardApplied,
		TotalPrice:       b.TotalPrice,
		CouponCode:       b.CouponCode,
		Notes:            b.Notes,
		CreatedAt:        b.CreatedAt,
		UpdatedAt:        b.UpdatedAt,
	}
	for _, g := range breakdown.Giftcards {
		resp.Giftcards = append(resp.Giftcards, AppliedGiftcard{
			GiftcardID: g.GiftcardID,
			Code:       g.Code,
			Deducted:   g.Deducted,
		})
	}
	return resp
}
