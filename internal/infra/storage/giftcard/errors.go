package giftcard

import "errors"

var (
	// ErrGiftcardNotFound возвращается, когда подарочная карта не найдена
	ErrGiftcardNotFound = errors.New("giftcard.repository: giftcard not found")

	// ErrDuplicateCode возвращается при попытке выпустить карту с существующим кодом
	ErrDuplicateCode = errors.New("giftcard.repository: duplicate giftcard code")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("giftcard.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("giftcard.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("giftcard.repository: failed to scan row")
)
