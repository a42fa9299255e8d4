package create_hold

import (
	"time"

	createHold "github.com/courtify/CourtBookingService/internal/usecase/create_hold"
)

// CreateHoldRequest HTTP request model
type CreateHoldRequest struct {
	VenueID        int64     `json:"venueId"`
	CustomerID     int64     `json:"customerId"`
	StartAtUtc     time.Time `json:"startAtUtc"`
	EndAtUtc       time.Time `json:"endAtUtc"`
	IdempotencyKey string    `json:"idempotencyKey"`
}

// HoldResponse HTTP response model
type HoldResponse struct {
	ID         int64     `json:"id"`
	VenueID    int64     `json:"venueId"`
	CustomerID int64     `json:"customerId"`
	StartAtUtc time.Time `json:"startAtUtc"`
	EndAtUtc   time.Time `json:"endAtUtc"`
	Status     string    `json:"status"`
	ExpiresAt  time.Time `json:"expiresAt"`
	CreatedAt  time.Time `json:"createdAt"`
}

// ToUseCaseRequest конвертирует HTTP request в запрос use case
func (r *CreateHoldRequest) ToUseCaseRequest() *createHold.Request {
	return &createHold.Request{
		VenueID:        r.VenueID,
		CustomerID:     r.CustomerID,
		StartAt:        r.StartAtUtc,
		EndAt:          r.EndAtUtc,
		IdempotencyKey: r.IdempotencyKey,
	}
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *createHold.Response) *HoldResponse {
	return &HoldResponse{
		ID:         resp.ID,
		VenueID:    resp.VenueID,
		CustomerID: resp.CustomerID,
		StartAtUtc: resp.StartAtUtc,
		EndAtUtc:   resp.EndAtUtc,
		Status:     resp.Status,
		ExpiresAt:  resp.ExpiresAt,
		CreatedAt:  resp.CreatedAt,
	}
}
