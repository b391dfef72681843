package promotions

import "errors"

// Каждая причина отказа - отдельная ошибка: клиент получает точный код,
// а не общее "купон не применим"
var (
	// ErrCouponInactive возвращается, когда купон выключен или помечен истекшим
	ErrCouponInactive = errors.New("coupon is not active")

	// ErrCouponNotStarted возвращается до начала окна действия купона
	ErrCouponNotStarted = errors.New("coupon validity window has not started")

	// ErrCouponExpired возвращается после окончания окна действия купона
	ErrCouponExpired = errors.New("coupon validity window has passed")

	// ErrCouponUsageLimitReached возвращается при исчерпании лимита применений
	ErrCouponUsageLimitReached = errors.New("coupon usage limit reached")

	// ErrCouponServiceMismatch возвращается, когда услуга не входит в фильтр купона
	ErrCouponServiceMismatch = errors.New("coupon does not apply to this service")

	// ErrCouponStaffMismatch возвращается, когда сотрудник не входит в фильтр купона
	ErrCouponStaffMismatch = errors.New("coupon does not apply to this staff member")

	// ErrCouponMinimumPurchase возвращается, когда subtotal ниже минимальной суммы
	ErrCouponMinimumPurchase = errors.New("purchase amount below coupon minimum")

	// ErrGiftcardInactive возвращается для деактивированной карты
	ErrGiftcardInactive = errors.New("giftcard is not active")

	// ErrGiftcardExpired возвращается для карты с истекшим сроком
	ErrGiftcardExpired = errors.New("giftcard has expired")

	// ErrGiftcardEmpty возвращается для карты с нулевым остатком
	ErrGiftcardEmpty = errors.New("giftcard has no remaining balance")

	// ErrGiftcardUsageLimitReached возвращается при исчерпании числа списаний
	ErrGiftcardUsageLimitReached = errors.New("giftcard usage limit reached")

	// ErrGiftcardDailyLimitReached возвращается при превышении дневного лимита суммы
	ErrGiftcardDailyLimitReached = errors.New("giftcard daily spending limit reached")

	// ErrGiftcardMonthlyLimitReached возвращается при превышении месячного лимита суммы
	ErrGiftcardMonthlyLimitReached = errors.New("giftcard monthly spending limit reached")

	// ErrGiftcardServiceMismatch возвращается, когда услуга не входит в фильтр карты
	ErrGiftcardServiceMismatch = errors.New("giftcard does not apply to this service")

	// ErrGiftcardStaffMismatch возвращается, когда сотрудник не входит в фильтр карты
	ErrGiftcardStaffMismatch = errors.New("giftcard does not apply to this staff member")

	// ErrNotCombinable возвращается при попытке сочетать несочетаемые инструменты
	ErrNotCombinable = errors.New("coupon cannot be combined with giftcards")
)
