package ledger

import "errors"

var (
	// ErrGiftcardNotFound возвращается, когда карта не найдена
	ErrGiftcardNotFound = errors.New("giftcard not found")

	// ErrDuplicateCode возвращается при выпуске карты с занятым кодом
	ErrDuplicateCode = errors.New("giftcard code already exists")

	// ErrInvalidAmount возвращается для нулевой или отрицательной суммы операции
	ErrInvalidAmount = errors.New("amount must be positive")

	// ErrInvalidExpiryDate возвращается при невалидной дате окончания действия карты
	ErrInvalidExpiryDate = errors.New("invalid expiry date")

	// ErrGiftcardInactive возвращается для операций над деактивированной картой
	ErrGiftcardInactive = errors.New("giftcard is not active")

	// ErrInsufficientBalance возвращается, когда остатка не хватает на операцию
	ErrInsufficientBalance = errors.New("insufficient giftcard balance")

	// ErrTransferNotAllowed возвращается, когда правила карты запрещают перевод
	ErrTransferNotAllowed = errors.New("transfers are not allowed for this giftcard")

	// ErrTransferLimitExceeded возвращается при превышении максимальной суммы перевода
	ErrTransferLimitExceeded = errors.New("transfer amount exceeds the allowed maximum")

	// ErrTransferToSelf возвращается при попытке перевода карты самой себе
	ErrTransferToSelf = errors.New("cannot transfer giftcard balance to itself")

	// ErrRefundNotAllowed возвращается, когда правила карты запрещают возврат
	ErrRefundNotAllowed = errors.New("refunds are not allowed for this giftcard")

	// ErrRefundDeadlinePassed возвращается после истечения срока возврата
	ErrRefundDeadlinePassed = errors.New("refund deadline has passed")

	// ErrLedgerCorrupted возвращается при расхождении кэша баланса с журналом
	ErrLedgerCorrupted = errors.New("giftcard ledger is inconsistent")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("ledger service: internal error")
)
