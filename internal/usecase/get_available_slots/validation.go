package get_available_slots

import (
	"fmt"
	"time"

	"github.com/courtify/CourtBookingService/internal/domain"
)

// validateRequest проверяет параметры запроса до обращения к хранилищу
func validateRequest(req *Request) error {
	if req.VenueID <= 0 {
		return fmt.Errorf("%w: venueId must be positive", ErrValidation)
	}

	if req.From.IsZero() || req.To.IsZero() {
		return fmt.Errorf("%w: from and to are required", ErrValidation)
	}

	if !req.From.Before(req.To) {
		return fmt.Errorf("%w: from must be before to", ErrValidation)
	}

	if req.To.Sub(req.From) > domain.MaxSlotRangeDays*24*time.Hour {
		return fmt.Errorf("%w: range exceeds %d days", ErrValidation, domain.MaxSlotRangeDays)
	}

	// Кратность шагу сетки не требуется: слоты некратной длительности
	// просто оставляют непредлагаемый хвост в конце окна
	if req.ServiceDurationMinutes < domain.MinServiceDurationMinutes ||
		req.ServiceDurationMinutes > domain.MaxServiceDurationMinutes {
		return fmt.Errorf("%w: serviceDurationMinutes must be between %d and %d",
			ErrValidation, domain.MinServiceDurationMinutes, domain.MaxServiceDurationMinutes)
	}

	return nil
}
