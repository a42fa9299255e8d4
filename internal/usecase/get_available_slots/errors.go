package get_available_slots

import "errors"

var (
	// ErrVenueNotFound возвращается, когда площадка не найдена
	ErrVenueNotFound = errors.New("get_available_slots: venue not found")

	// ErrValidation возвращается при некорректных параметрах запроса
	ErrValidation = errors.New("get_available_slots: validation failed")

	// ErrInternal возвращается при внутренних ошибках
	ErrInternal = errors.New("get_available_slots: internal error")
)
