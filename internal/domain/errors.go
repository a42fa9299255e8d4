package domain

import "errors"

var (
	// ErrUnknownBookingStatus is returned when a status string does not
	// match any known booking status.
	ErrUnknownBookingStatus = errors.New("unknown booking status")

	// ErrUnknownHoldStatus is returned when a status string does not
	// match any known hold status.
	ErrUnknownHoldStatus = errors.New("unknown hold status")
)
