package get_available_slots

import (
	"time"

	"github.com/courtify/CourtBookingService/internal/domain"
	getAvailableSlots "github.com/courtify/CourtBookingService/internal/usecase/get_available_slots"
)

// AvailableSlotsResponse HTTP response model
type AvailableSlotsResponse struct {
	VenueID                int64           `json:"venueId"`
	From                   string          `json:"from"`
	To                     string          `json:"to"`
	ServiceDurationMinutes int             `json:"serviceDurationMinutes"`
	Slots                  []AvailableSlot `json:"slots"`
}

// AvailableSlot один свободный слот
type AvailableSlot struct {
	StartAtUtc time.Time `json:"startAtUtc"`
	EndAtUtc   time.Time `json:"endAtUtc"`
	State      string    `json:"state"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *getAvailableSlots.Response) *AvailableSlotsResponse {
	slots := make([]AvailableSlot, len(resp.Slots))
	for i, slot := range resp.Slots {
		slots[i] = AvailableSlot{
			StartAtUtc: slot.StartAtUtc,
			EndAtUtc:   slot.EndAtUtc,
			State:      "available",
		}
	}

	return &AvailableSlotsResponse{
		VenueID:                resp.VenueID,
		From:                   resp.From.Format(domain.DateFormat),
		To:                     resp.To.AddDate(0, 0, -1).Format(domain.DateFormat),
		ServiceDurationMinutes: resp.ServiceDurationMinutes,
		Slots:                  slots,
	}
}

// ToUseCaseRequest создает запрос use case из параметров запроса
// Дата to включительна: диапазон расширяется до начала следующего дня
func ToUseCaseRequest(venueID int64, fromStr, toStr string, serviceDuration int) (*getAvailableSlots.Request, error) {
	from, err := time.ParseInLocation(domain.DateFormat, fromStr, time.UTC)
	if err != nil {
		return nil, err
	}

	to, err := time.ParseInLocation(domain.DateFormat, toStr, time.UTC)
	if err != nil {
		return nil, err
	}

	return &getAvailableSlots.Request{
		VenueID:                venueID,
		From:                   from,
		To:                     to.AddDate(0, 0, 1),
		ServiceDurationMinutes: serviceDuration,
	}, nil
}
