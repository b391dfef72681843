package quote_price

import "errors"

var (
	// ErrServiceNotFound возвращается, когда услуга не найдена
	ErrServiceNotFound = errors.New("service not found")

	// ErrStaffDoesNotPerformService возвращается, когда сотрудник не оказывает услугу
	ErrStaffDoesNotPerformService = errors.New("staff member does not perform this service")

	// ErrExtraNotFound возвращается, когда допуслуга не принадлежит услуге
	ErrExtraNotFound = errors.New("extra does not belong to this service")

	// ErrCouponNotFound возвращается, когда купон не найден
	ErrCouponNotFound = errors.New("coupon not found")

	// ErrCouponNotApplicable возвращается, когда купон не прошел проверки
	ErrCouponNotApplicable = errors.New("coupon is not applicable")

	// ErrGiftcardNotFound возвращается, когда подарочная карта не найдена
	ErrGiftcardNotFound = errors.New("giftcard not found")

	// ErrGiftcardNotApplicable возвращается, когда карта не прошла проверки
	ErrGiftcardNotApplicable = errors.New("giftcard is not applicable")

	// ErrNotCombinable возвращается при недопустимом сочетании промо-инструментов
	ErrNotCombinable = errors.New("coupon cannot be combined with giftcards")

	// ErrDuplicateGiftcard возвращается, когда одна карта указана дважды
	ErrDuplicateGiftcard = errors.New("giftcard listed more than once")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("usecase: internal error")
)
