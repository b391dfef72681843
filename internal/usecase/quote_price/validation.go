package quote_price

import (
	"fmt"

	"github.com/chrisnails1212/salon-booking-engine/internal/domain"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.ServiceID <= 0 {
		return fmt.Errorf("%w: serviceID must be positive", ErrInvalidInput)
	}

	if req.StaffID <= 0 {
		return fmt.Errorf("%w: staffID must be positive", ErrInvalidInput)
	}

	if req.AdditionalGuests < 0 || req.AdditionalGuests > domain.MaxAdditionalGuests {
		return fmt.Errorf("%w: additionalGuests must be between 0 and %d", ErrInvalidInput, domain.MaxAdditionalGuests)
	}

	if req.CouponCode != nil && *req.CouponCode == "" {
		return fmt.Errorf("%w: couponCode must not be empty", ErrInvalidInput)
	}

	// Одна карта не может участвовать в платеже дважды
	seen := make(map[string]bool, len(req.GiftcardCodes))
	for _, code := range req.GiftcardCodes {
		if code == "" {
			return fmt.Errorf("%w: giftcard code must not be empty", ErrInvalidInput)
		}
		if seen[code] {
			return fmt.Errorf("%w: code=%s", ErrDuplicateGiftcard, code)
		}
		seen[code] = true
	}

	return nil
}

// validateExtras проверяет, что все допуслуги принадлежат услуге
func validateExtras(service *domain.Service, extraIDs []int64) error {
	for _, id := range extraIDs {
		if !service.HasExtra(id) {
			return fmt.Errorf("%w: extra id=%d", ErrExtraNotFound, id)
		}
	}
	return nil
}
