package get_venue_bookings

import (
	"time"

	"github.com/courtify/CourtBookingService/internal/domain"
	"github.com/courtify/CourtBookingService/internal/service/bookings/models"
	"github.com/courtify/CourtBookingService/pkg/ptr"
)

// ToServiceRequest собирает запрос сервиса из параметров URL и query
// Дата to включительна: период расширяется до начала следующего дня
func ToServiceRequest(venueID int64, fromStr, toStr, statusStr string) (*models.GetVenueBookingsRequest, error) {
	req := &models.GetVenueBookingsRequest{VenueID: venueID}

	if fromStr != "" {
		from, err := time.ParseInLocation(domain.DateFormat, fromStr, time.UTC)
		if err != nil {
			return nil, err
		}
		req.From = ptr.Ptr(from)
	}

	if toStr != "" {
		to, err := time.ParseInLocation(domain.DateFormat, toStr, time.UTC)
		if err != nil {
			return nil, err
		}
		req.To = ptr.Ptr(to.AddDate(0, 0, 1))
	}

	if statusStr != "" {
		req.Status = ptr.Ptr(statusStr)
	}

	return req, nil
}
