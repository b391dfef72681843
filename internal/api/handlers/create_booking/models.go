package create_booking

import (
	"fmt"
	"time"

	createBooking "github.com/chrisnails1212/salon-booking-engine/internal/usecase/create_booking"
	"github.com/chrisnails1212/salon-booking-engine/pkg/types"
)

// CreateBookingRequest HTTP request model
type CreateBookingRequest struct {
	ServiceID        int64    `json:"serviceId"`
	StaffID          int64    `json:"staffId"`
	LocationID       int64    `json:"locationId,omitempty"`
	Date             string   `json:"date"`
	StartTime        string   `json:"startTime"`
	ExtraIDs         []int64  `json:"extraIds,omitempty"`
	AdditionalGuests int      `json:"additionalGuests,omitempty"`
	CouponCode       *string  `json:"couponCode,omitempty"`
	GiftcardCodes    []string `json:"giftcardCodes,omitempty"`
	Notes            *string  `json:"notes,omitempty"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CreateBookingRequest) ToUseCaseRequest(userID int64) (*createBooking.Request, error) {
	date, err := time.Parse("2006-01-02", r.Date)
	if err != nil {
		return nil, fmt.Errorf("invalid date format, expected YYYY-MM-DD: %v", err)
	}

	startTime := types.TimeString(r.StartTime)
	if err := startTime.Validate(); err != nil {
		return nil, fmt.Errorf("invalid start time format: %v", err)
	}

	return &createBooking.Request{
		UserID:           userID,
		ServiceID:        r.ServiceID,
		StaffID:          r.StaffID,
		LocationID:       r.LocationID,
		Date:             date,
		StartTime:        startTime,
		ExtraIDs:         r.ExtraIDs,
		AdditionalGuests: r.AdditionalGuests,
		CouponCode:       r.CouponCode,
		GiftcardCodes:    r.GiftcardCodes,
		Notes:            r.Notes,
	}, nil
}
