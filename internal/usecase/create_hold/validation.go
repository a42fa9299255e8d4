package create_hold

import (
	"fmt"
	"time"

	"github.com/courtify/CourtBookingService/internal/domain"
)

// validateRequest проверяет параметры запроса до обращения к хранилищу
func validateRequest(req *Request, now time.Time) error {
	if req.VenueID <= 0 {
		return fmt.Errorf("%w: venueId must be positive", ErrValidation)
	}

	if req.CustomerID <= 0 {
		return fmt.Errorf("%w: customerId must be positive", ErrValidation)
	}

	if req.IdempotencyKey == "" {
		return fmt.Errorf("%w: idempotencyKey is required", ErrValidation)
	}

	if req.StartAt.IsZero() || req.EndAt.IsZero() {
		return fmt.Errorf("%w: startAt and endAt are required", ErrValidation)
	}

	if !req.StartAt.Before(req.EndAt) {
		return fmt.Errorf("%w: startAt must be before endAt", ErrValidation)
	}

	if req.EndAt.Before(now) {
		return fmt.Errorf("%w: interval is in the past", ErrValidation)
	}

	durationMinutes := int(req.EndAt.Sub(req.StartAt) / time.Minute)
	if durationMinutes < domain.MinServiceDurationMinutes || durationMinutes > domain.MaxServiceDurationMinutes {
		return fmt.Errorf("%w: duration must be between %d and %d minutes",
			ErrValidation, domain.MinServiceDurationMinutes, domain.MaxServiceDurationMinutes)
	}

	return nil
}
