package venues

import (
	"context"

	"github.com/courtify/CourtBookingService/internal/domain"
)

// VenueRepository интерфейс репозитория площадок
type VenueRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Venue, error)
}

// OfflineBlockRepository интерфейс репозитория оффлайн-блокировок
type OfflineBlockRepository interface {
	Create(ctx context.Context, block *domain.OfflineBlock) (*domain.OfflineBlock, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
