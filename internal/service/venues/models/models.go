package models

import (
	"time"

	"github.com/courtify/CourtBookingService/internal/domain"
)

// VenueResponse модель площадки для внешних потребителей сервиса
type VenueResponse struct {
	ID           int64
	Name         string
	Timezone     string
	OpeningHours []OpeningHoursEntry
}

// OpeningHoursEntry одно рабочее окно недельного расписания
type OpeningHoursEntry struct {
	Weekday   int
	OpenTime  string
	CloseTime string
}

// CreateOfflineBlockRequest запрос на создание оффлайн-блокировки
type CreateOfflineBlockRequest struct {
	VenueID int64
	StartAt time.Time
	EndAt   time.Time
	Reason  string
}

// OfflineBlockResponse модель оффлайн-блокировки
type OfflineBlockResponse struct {
	ID         int64
	VenueID    int64
	StartAtUtc time.Time
	EndAtUtc   time.Time
	Reason     string
	CreatedAt  time.Time
}

// FromDomainVenue конвертирует domain.Venue в response
func FromDomainVenue(v *domain.Venue) *VenueResponse {
	hours := make([]OpeningHoursEntry, 0, len(v.OpeningHours))
	for _, e := range v.OpeningHours {
		hours = append(hours, OpeningHoursEntry{
			Weekday:   e.Weekday,
			OpenTime:  e.OpenTime.String(),
			CloseTime: e.CloseTime.String(),
		})
	}
	return &VenueResponse{
		ID:           v.ID,
		Name:         v.Name,
		Timezone:     v.Timezone,
		OpeningHours: hours,
	}
}

// FromDomainOfflineBlock конвертирует domain.OfflineBlock в response
func FromDomainOfflineBlock(b *domain.OfflineBlock) *OfflineBlockResponse {
	return &OfflineBlockResponse{
		ID:         b.ID,
		VenueID:    b.VenueID,
		StartAtUtc: b.StartAt,
		EndAtUtc:   b.EndAt,
		Reason:     b.Reason,
		CreatedAt:  b.CreatedAt,
	}
}
