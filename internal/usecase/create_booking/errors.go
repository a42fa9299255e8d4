package create_booking

import "errors"

var (
	// ErrHoldNotFound возвращается, когда hold не найден
	ErrHoldNotFound = errors.New("create_booking: hold not found")

	// ErrAccessDenied возвращается при попытке погасить чужой hold
	ErrAccessDenied = errors.New("create_booking: access denied")

	// ErrHoldNotActive возвращается, когда hold истёк или уже погашен
	ErrHoldNotActive = errors.New("create_booking: hold is not active")

	// ErrSlotConflict возвращается, когда интервал hold'а успел стать занятым
	ErrSlotConflict = errors.New("create_booking: slot conflict")

	// ErrValidation возвращается при некорректных параметрах запроса
	ErrValidation = errors.New("create_booking: validation failed")

	// ErrInternal возвращается при внутренних ошибках
	ErrInternal = errors.New("create_booking: internal error")
)
