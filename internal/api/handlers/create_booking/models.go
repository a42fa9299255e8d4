package create_booking

import (
	"time"

	createBooking "github.com/courtify/CourtBookingService/internal/usecase/create_booking"
)

// CreateBookingRequest HTTP request model
type CreateBookingRequest struct {
	HoldID     int64  `json:"holdId"`
	CustomerID int64  `json:"customerId"`
	PaymentRef string `json:"paymentRef,omitempty"`
}

// BookingResponse HTTP response model
type BookingResponse struct {
	ID               int64     `json:"id"`
	VenueID          int64     `json:"venueId"`
	CustomerID       int64     `json:"customerId"`
	StartAtUtc       time.Time `json:"startAtUtc"`
	EndAtUtc         time.Time `json:"endAtUtc"`
	Status           string    `json:"status"`
	HoldID           int64     `json:"holdId"`
	PaymentRef       string    `json:"paymentRef,omitempty"`
	VerificationCode string    `json:"verificationCode"`
	CreatedAt        time.Time `json:"createdAt"`
}

// ToUseCaseRequest конвертирует HTTP request в запрос use case
func (r *CreateBookingRequest) ToUseCaseRequest() *createBooking.Request {
	return &createBooking.Request{
		HoldID:     r.HoldID,
		CustomerID: r.CustomerID,
		PaymentRef: r.PaymentRef,
	}
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *createBooking.Response) *BookingResponse {
	return &BookingResponse{
		ID:               resp.ID,
		VenueID:          resp.VenueID,
		CustomerID:       resp.CustomerID,
		StartAtUtc:       resp.StartAtUtc,
		EndAtUtc:         resp.EndAtUtc,
		Status:           resp.Status,
		HoldID:           resp.HoldID,
		PaymentRef:       resp.PaymentRef,
		VerificationCode: resp.VerificationCode,
		CreatedAt:        resp.CreatedAt,
	}
}
