package create_booking

import (
	"context"
	"time"

	"github.com/courtify/CourtBookingService/internal/domain"
	"github.com/courtify/CourtBookingService/internal/infra/outbox"
	"github.com/courtify/CourtBookingService/internal/integrations/notifyservice"
)

// HoldRepository интерфейс репозитория hold'ов
type HoldRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Hold, error)
	UpdateStatus(ctx context.Context, id int64, status domain.HoldStatus) error
}

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error)
	SetVerificationCode(ctx context.Context, id int64, code string) error
}

// AvailabilityService агрегатор занятых интервалов площадки
type AvailabilityService interface {
	BusyIntervalsExcludingHold(ctx context.Context, venueID int64, interval domain.Interval, excludeHoldID int64) ([]domain.Interval, error)
}

// OutboxRepository запись доменных событий в той же транзакции
type OutboxRepository interface {
	Add(ctx context.Context, event outbox.Event) error
}

// NotifyClient клиент сервиса уведомлений
type NotifyClient interface {
	NotifyBookingConfirmedAsync(notification notifyservice.BookingConfirmedNotification)
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
