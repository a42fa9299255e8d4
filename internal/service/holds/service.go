package holds

import (
	"context"
	"errors"
	"fmt"

	"github.com/courtify/CourtBookingService/internal/domain"
	holdRepo "github.com/courtify/CourtBookingService/internal/infra/storage/hold"
)

// Service сервис для управления жизненным циклом hold'ов
type Service struct {
	holdRepo     HoldRepository
	txManager    TxManager
	timeProvider TimeProvider
	logger       Logger
}

// NewService создает новый экземпляр сервиса hold'ов
func NewService(
	holdRepo HoldRepository,
	txManager TxManager,
	logger Logger,
) *Service {
	return &Service{
		holdRepo:     holdRepo,
		txManager:    txManager,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// WithTimeProvider подменяет провайдер времени (для тестов)
func (s *Service) WithTimeProvider(tp TimeProvider) *Service {
	s.timeProvider = tp
	return s
}

// Cancel досрочно освобождает hold
// Пользователь может отменить только свой активный hold. Отмена переводит
// hold в статус expired, после чего интервал немедленно освобождается.
func (s *Service) Cancel(ctx context.Context, holdID int64, customerID int64) error {
	s.logger.Info("Cancel: cancelling hold id=%d by customer=%d", holdID, customerID)

	err := s.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// Шаг 1: Получаем hold с блокировкой строки (FOR UPDATE)
		hold, err := s.holdRepo.GetByID(txCtx, holdID)
		if err != nil {
			if errors.Is(err, holdRepo.ErrHoldNotFound) {
				return ErrHoldNotFound
			}
			return fmt.Errorf("%w: Cancel - repository error: %w", ErrInternal, err)
		}

		// Шаг 2: Проверяем владельца
		if hold.CustomerID != customerID {
			return ErrAccessDenied
		}

		// Шаг 3: Отменить можно только активный непросроченный hold
		if !hold.IsActive(s.timeProvider.Now()) {
			return ErrHoldNotActive
		}

		// Шаг 4: Переводим в expired - интервал сразу свободен
		if err := s.holdRepo.UpdateStatus(txCtx, holdID, domain.StatusHoldExpired); err != nil {
			return fmt.Errorf("%w: Cancel - repository error: %w", ErrInternal, err)
		}

		return nil
	})
	if err != nil {
		switch {
		case errors.Is(err, ErrHoldNotFound):
			s.logger.Warn("Cancel: hold id=%d not found", holdID)
		case errors.Is(err, ErrAccessDenied):
			s.logger.Warn("Cancel: access denied for customer=%d to hold id=%d", customerID, holdID)
		case errors.Is(err, ErrHoldNotActive):
			s.logger.Warn("Cancel: hold id=%d is not active", holdID)
		default:
			s.logger.Error("Cancel: transaction failed for hold id=%d: %v", holdID, err)
		}
		return err
	}

	s.logger.Info("Cancel: successfully cancelled hold id=%d", holdID)
	return nil
}
