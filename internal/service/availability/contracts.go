package availability

import (
	"context"
	"time"

	"github.com/courtify/CourtBookingService/internal/domain"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	ListConfirmedIntersecting(ctx context.Context, venueID int64, interval domain.Interval) ([]domain.Interval, error)
}

// HoldRepository интерфейс репозитория hold'ов
type HoldRepository interface {
	ListActiveIntersecting(ctx context.Context, venueID int64, interval domain.Interval, now time.Time, excludeHoldID int64) ([]domain.Interval, error)
}

// OfflineBlockRepository интерфейс репозитория административных блокировок
type OfflineBlockRepository interface {
	ListIntersecting(ctx context.Context, venueID int64, interval domain.Interval) ([]domain.Interval, error)
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
