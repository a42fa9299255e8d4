package create_booking

import "time"

// Request входные параметры промоутинга hold в бронирование
type Request struct {
	HoldID     int64
	CustomerID int64
	PaymentRef string
}

// Response подтверждённое бронирование
type Response struct {
	ID               int64
	VenueID          int64
	CustomerID       int64
	StartAtUtc       time.Time
	EndAtUtc         time.Time
	Status           string
	HoldID           int64
	PaymentRef       string
	VerificationCode string
	CreatedAt        time.Time
}
