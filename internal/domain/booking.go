package domain

import "time"

// BookingStatus represents the status of a booking
type BookingStatus string

const (
	// StatusBookingConfirmed is the only status the slot engine treats as busy
	StatusBookingConfirmed BookingStatus = "confirmed"
	// StatusBookingCancelled is set by administrative edits, out of the core flow
	StatusBookingCancelled BookingStatus = "cancelled"
)

// Booking represents a confirmed reservation of a venue interval.
// Bookings are created only by promoting a hold; once confirmed they are
// immutable except for administrative status edits.
type Booking struct {
	ID         int64
	VenueID    int64
	CustomerID int64
	StartAt    time.Time // UTC
	EndAt      time.Time // UTC
	Status     BookingStatus

	HoldID           int64  // the hold this booking was promoted from
	PaymentRef       string // opaque payment reference
	VerificationCode string // front-of-house scanning code, derived from the booking id

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Interval returns the booked interval.
func (b *Booking) Interval() Interval {
	return Interval{Start: b.StartAt, End: b.EndAt}
}

// IsConfirmed reports whether the booking occupies its interval.
func (b *Booking) IsConfirmed() bool {
	return b.Status == StatusBookingConfirmed
}

// VenueBookingsFilter narrows venue booking listings. Only VenueID is
// required; nil fields are ignored.
type VenueBookingsFilter struct {
	VenueID int64
	From    *time.Time
	To      *time.Time
	Status  *BookingStatus
}
