package notifyservice

import "time"

// BookingConfirmedNotification уведомление о подтверждённом бронировании
type BookingConfirmedNotification struct {
	BookingID        int64     `json:"bookingId"`
	VenueID          int64     `json:"venueId"`
	CustomerID       int64     `json:"customerId"`
	StartAtUtc       time.Time `json:"startAtUtc"`
	EndAtUtc         time.Time `json:"endAtUtc"`
	VerificationCode string    `json:"verificationCode"`
}
