package create_offline_block

import (
	"time"

	"github.com/courtify/CourtBookingService/internal/service/venues/models"
)

// CreateOfflineBlockRequest HTTP request model
type CreateOfflineBlockRequest struct {
	StartAtUtc time.Time `json:"startAtUtc"`
	EndAtUtc   time.Time `json:"endAtUtc"`
	Reason     string    `json:"reason,omitempty"`
}

// OfflineBlockResponse HTTP response model
type OfflineBlockResponse struct {
	ID         int64     `json:"id"`
	VenueID    int64     `json:"venueId"`
	StartAtUtc time.Time `json:"startAtUtc"`
	EndAtUtc   time.Time `json:"endAtUtc"`
	Reason     string    `json:"reason,omitempty"`
	CreatedAt  time.Time `json:"createdAt"`
}

// ToServiceRequest конвертирует HTTP request в модель сервиса
func (r *CreateOfflineBlockRequest) ToServiceRequest(venueID int64) *models.CreateOfflineBlockRequest {
	return &models.CreateOfflineBlockRequest{
		VenueID: venueID,
		StartAt: r.StartAtUtc,
		EndAt:   r.EndAtUtc,
		Reason:  r.Reason,
	}
}

// FromServiceResponse конвертирует ответ сервиса в HTTP response
func FromServiceResponse(resp *models.OfflineBlockResponse) *OfflineBlockResponse {
	return &OfflineBlockResponse{
		ID:         resp.ID,
		VenueID:    resp.VenueID,
		StartAtUtc: resp.StartAtUtc,
		EndAtUtc:   resp.EndAtUtc,
		Reason:     resp.Reason,
		CreatedAt:  resp.CreatedAt,
	}
}
