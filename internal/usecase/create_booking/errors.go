package create_booking

import "errors"

var (
	// ErrStaffNotFound возвращается, когда сотрудник или его расписание не найдены
	ErrStaffNotFound = errors.New("staff member not found")

	// ErrServiceNotFound возвращается, когда услуга не найдена
	ErrServiceNotFound = errors.New("service not found")

	// ErrStaffDoesNotPerformService возвращается, когда сотрудник не оказывает услугу
	ErrStaffDoesNotPerformService = errors.New("staff member does not perform this service")

	// ErrExtraNotFound возвращается, когда допуслуга не принадлежит услуге
	ErrExtraNotFound = errors.New("extra does not belong to this service")

	// ErrStaffNotWorking возвращается, когда сотрудник не работает в указанную дату
	ErrStaffNotWorking = errors.New("staff member is not working on this date")

	// ErrSlotNotAvailable возвращается, когда запрошенный слот занят или не существует
	ErrSlotNotAvailable = errors.New("slot is no longer available")

	// ErrPromotionNoLongerEligible возвращается, когда купон или карта перестали
	// проходить проверки к моменту фиксации бронирования
	ErrPromotionNoLongerEligible = errors.New("promotion is no longer eligible")

	// ErrCouponNotFound возвращается, когда купон не найден
	ErrCouponNotFound = errors.New("coupon not found")

	// ErrGiftcardNotFound возвращается, когда подарочная карта не найдена
	ErrGiftcardNotFound = errors.New("giftcard not found")

	// ErrDuplicateGiftcard возвращается, когда одна карта указана дважды
	ErrDuplicateGiftcard = errors.New("giftcard listed more than once")

	// ErrInvalidDate возвращается при некорректной дате бронирования
	ErrInvalidDate = errors.New("invalid booking date")

	// ErrDateTooFarInFuture возвращается, когда дата превышает горизонт бронирования
	ErrDateTooFarInFuture = errors.New("date is too far in the future")

	// ErrInvalidStartTime возвращается, когда время начала не попадает в сетку слотов
	ErrInvalidStartTime = errors.New("invalid start time")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("usecase: internal error")
)
