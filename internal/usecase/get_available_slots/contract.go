package get_available_slots

import (
	"context"

	"github.com/courtify/CourtBookingService/internal/domain"
)

// VenueRepository интерфейс репозитория площадок
type VenueRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Venue, error)
}

// AvailabilityService агрегатор занятых интервалов площадки
type AvailabilityService interface {
	BusyIntervals(ctx context.Context, venueID int64, interval domain.Interval) ([]domain.Interval, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
