package create_hold

import "errors"

var (
	// ErrVenueNotFound возвращается, когда площадка не найдена
	ErrVenueNotFound = errors.New("create_hold: venue not found")

	// ErrValidation возвращается при некорректных параметрах запроса
	ErrValidation = errors.New("create_hold: validation failed")

	// ErrSlotConflict возвращается, когда интервал уже занят бронированием,
	// активным hold'ом, блокировкой или slot lock'ом
	ErrSlotConflict = errors.New("create_hold: slot conflict")

	// ErrInternal возвращается при внутренних ошибках
	ErrInternal = errors.New("create_hold: internal error")
)
