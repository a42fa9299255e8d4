package get_venue

import (
	"github.com/courtify/CourtBookingService/internal/service/venues/models"
)

// VenueResponse HTTP response model
type VenueResponse struct {
	ID           int64              `json:"id"`
	Name         string             `json:"name"`
	Timezone     string             `json:"timezone"`
	OpeningHours []OpeningHoursItem `json:"openingHours"`
}

// OpeningHoursItem одно рабочее окно недельного расписания
type OpeningHoursItem struct {
	Weekday   int    `json:"weekday"`
	OpenTime  string `json:"openTime"`
	CloseTime string `json:"closeTime"`
}

// FromServiceResponse конвертирует ответ сервиса в HTTP response
func FromServiceResponse(resp *models.VenueResponse) *VenueResponse {
	hours := make([]OpeningHoursItem, len(resp.OpeningHours))
	for i, e := range resp.OpeningHours {
		hours[i] = OpeningHoursItem{
			Weekday:   e.Weekday,
			OpenTime:  e.OpenTime,
			CloseTime: e.CloseTime,
		}
	}

	return &VenueResponse{
		ID:           resp.ID,
		Name:         resp.Name,
		Timezone:     resp.Timezone,
		OpeningHours: hours,
	}
}
