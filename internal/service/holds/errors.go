package holds

import "errors"

var (
	// ErrHoldNotFound возвращается, когда hold не найден
	ErrHoldNotFound = errors.New("holds.service: hold not found")

	// ErrAccessDenied возвращается при попытке отменить чужой hold
	ErrAccessDenied = errors.New("holds.service: access denied")

	// ErrHoldNotActive возвращается, когда hold уже истёк или погашен
	ErrHoldNotActive = errors.New("holds.service: hold is not active")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("holds.service: internal error")
)
