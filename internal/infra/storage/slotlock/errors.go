package slotlock

import "errors"

var (
	// ErrLockHeld возвращается, когда неистёкший lock на этот интервал уже существует
	ErrLockHeld = errors.New("slotlock.repository: slot lock already held")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("slotlock.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("slotlock.repository: failed to execute query")
)
