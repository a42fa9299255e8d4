package holds

import (
	"context"
	"time"

	"github.com/courtify/CourtBookingService/internal/domain"
)

// HoldRepository интерфейс репозитория hold'ов
type HoldRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Hold, error)
	UpdateStatus(ctx context.Context, id int64, status domain.HoldStatus) error
}

// TxManager интерфейс менеджера транзакций
type TxManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// TimeProvider источник текущего времени
type TimeProvider interface {
	Now() time.Time
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
