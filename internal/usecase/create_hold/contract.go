package create_hold

import (
	"context"
	"time"

	"github.com/courtify/CourtBookingService/internal/domain"
	"github.com/courtify/CourtBookingService/internal/infra/outbox"
)

// VenueRepository интерфейс репозитория площадок
type VenueRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Venue, error)
}

// HoldRepository интерфейс репозитория hold'ов
type HoldRepository interface {
	Create(ctx context.Context, hold *domain.Hold) (*domain.Hold, error)
	GetByIdempotencyKey(ctx context.Context, venueID, customerID int64, key string) (*domain.Hold, error)
	SweepExpired(ctx context.Context, now time.Time) (int64, error)
}

// SlotLockRepository репозиторий краткоживущих блокировок интервалов
type SlotLockRepository interface {
	Acquire(ctx context.Context, venueID int64, interval domain.Interval, now time.Time, ttl time.Duration) error
}

// AvailabilityService агрегатор занятых интервалов площадки
type AvailabilityService interface {
	BusyIntervals(ctx context.Context, venueID int64, interval domain.Interval) ([]domain.Interval, error)
}

// OutboxRepository запись доменных событий в той же транзакции
type OutboxRepository interface {
	Add(ctx context.Context, event outbox.Event) error
}

// TransactionManager интерфейс менеджера транзакций
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
