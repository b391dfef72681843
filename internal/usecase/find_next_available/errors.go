package find_next_available

import "errors"

var (
	// ErrNoAvailability возвращается, когда в пределах горизонта нет свободных слотов
	ErrNoAvailability = errors.New("no available slots within the booking horizon")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("usecase: internal error")
)
