package create_hold

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/courtify/CourtBookingService/internal/domain"
	"github.com/courtify/CourtBookingService/internal/infra/outbox"
	holdRepo "github.com/courtify/CourtBookingService/internal/infra/storage/hold"
	slotlockRepo "github.com/courtify/CourtBookingService/internal/infra/storage/slotlock"
	venueRepo "github.com/courtify/CourtBookingService/internal/infra/storage/venue"
)

// UseCase use case для создания hold - краткоживущего резерва интервала
//
// Протокол двойной блокировки: сначала захватывается slot lock (вставка с
// уникальным ограничением на интервал), затем проверяются занятые интервалы,
// и только после этого создается hold. Все шаги выполняются в одной
// сериализуемой транзакции: при любом конфликте откат не оставляет следов
type UseCase struct {
	venueRepo    VenueRepository
	holdRepo     HoldRepository
	slotLockRepo SlotLockRepository
	availability AvailabilityService
	outboxRepo   OutboxRepository
	txManager    TransactionManager
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	venueRepo VenueRepository,
	holdRepo HoldRepository,
	slotLockRepo SlotLockRepository,
	availability AvailabilityService,
	outboxRepo OutboxRepository,
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		venueRepo:    venueRepo,
		holdRepo:     holdRepo,
		slotLockRepo: slotLockRepo,
		availability: availability,
		outboxRepo:   outboxRepo,
		txManager:    txManager,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// WithTimeProvider подменяет провайдер времени (для тестов)
func (uc *UseCase) WithTimeProvider(tp TimeProvider) *UseCase {
	uc.timeProvider = tp
	return uc
}

// маркер гонки по ключу идемпотентности внутри транзакции
var errIdempotentReplay = errors.New("create_hold: idempotent replay")

// Execute выполняет use case создания hold
// Использует сериализуемую транзакцию для предотвращения гонки данных
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateHold: venue=%d, customer=%d, interval=[%s, %s)",
		req.VenueID, req.CustomerID, req.StartAt.Format(time.RFC3339), req.EndAt.Format(time.RFC3339))

	// 1. Получаем текущее время
	now := uc.timeProvider.Now()

	// 2. Валидация входных данных
	if err := validateRequest(req, now); err != nil {
		uc.logger.Warn("CreateHold: validation failed: %v", err)
		return nil, err
	}

	interval := domain.Interval{Start: req.StartAt.UTC(), End: req.EndAt.UTC()}

	// 3. Проверяем существование площадки
	if _, err := uc.venueRepo.GetByID(ctx, req.VenueID); err != nil {
		if errors.Is(err, venueRepo.ErrVenueNotFound) {
			uc.logger.Warn("CreateHold: venue id=%d not found", req.VenueID)
			return nil, ErrVenueNotFound
		}
		uc.logger.Error("CreateHold: failed to get venue id=%d: %v", req.VenueID, err)
		return nil, fmt.Errorf("%w: failed to get venue: %w", ErrInternal, err)
	}

	// Переменная для хранения результата
	var result *domain.Hold

	// 4. Выполняем операции с БД в сериализуемой транзакции
	err := uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 4.1. Проверка идемпотентности: повтор с тем же ключом возвращает
		// исходный hold, даже если интервал в запросе другой
		existing, err := uc.holdRepo.GetByIdempotencyKey(txCtx, req.VenueID, req.CustomerID, req.IdempotencyKey)
		if err == nil {
			result = existing
			return errIdempotentReplay
		}
		if !errors.Is(err, holdRepo.ErrHoldNotFound) {
			uc.logger.Error("CreateHold: idempotency lookup failed: %v", err)
			return fmt.Errorf("%w: idempotency lookup failed: %w", ErrInternal, err)
		}

		// 4.2. Попутная уборка истёкших hold'ов
		if swept, err := uc.holdRepo.SweepExpired(txCtx, now); err != nil {
			uc.logger.Error("CreateHold: failed to sweep expired holds: %v", err)
			return fmt.Errorf("%w: failed to sweep expired holds: %w", ErrInternal, err)
		} else if swept > 0 {
			uc.logger.Info("CreateHold: swept %d expired holds", swept)
		}

		// 4.3. Захватываем slot lock на интервал. Конкурент, пытающийся
		// захватить тот же интервал, упрется в уникальное ограничение
		if err := uc.slotLockRepo.Acquire(txCtx, req.VenueID, interval, now, domain.SlotLockTTL); err != nil {
			if errors.Is(err, slotlockRepo.ErrLockHeld) {
				uc.logger.Warn("CreateHold: slot lock held for venue=%d, interval=[%s, %s)",
					req.VenueID, interval.Start.Format(time.RFC3339), interval.End.Format(time.RFC3339))
				return ErrSlotConflict
			}
			uc.logger.Error("CreateHold: failed to acquire slot lock: %v", err)
			return fmt.Errorf("%w: failed to acquire slot lock: %w", ErrInternal, err)
		}

		// 4.4. Проверяем занятость интервала всеми тремя источниками
		busy, err := uc.availability.BusyIntervals(txCtx, req.VenueID, interval)
		if err != nil {
			uc.logger.Error("CreateHold: failed to get busy intervals: %v", err)
			return fmt.Errorf("%w: failed to get busy intervals: %w", ErrInternal, err)
		}
		if interval.IntersectsAny(busy) {
			uc.logger.Warn("CreateHold: interval busy for venue=%d, customer=%d", req.VenueID, req.CustomerID)
			return ErrSlotConflict
		}

		// 4.5. Создаем hold
		created, err := uc.holdRepo.Create(txCtx, &domain.Hold{
			VenueID:        req.VenueID,
			CustomerID:     req.CustomerID,
			StartAt:        interval.Start,
			EndAt:          interval.End,
			Status:         domain.StatusHoldActive,
			ExpiresAt:      now.Add(domain.HoldTTL),
			IdempotencyKey: req.IdempotencyKey,
		})
		if err != nil {
			if errors.Is(err, holdRepo.ErrDuplicateIdempotencyKey) {
				// Конкурент с тем же ключом вставил hold между нашей
				// проверкой идемпотентности и вставкой. После ошибки
				// транзакция непригодна, hold победителя читается снаружи
				return err
			}
			uc.logger.Error("CreateHold: failed to create hold: %v", err)
			return fmt.Errorf("%w: failed to create hold: %w", ErrInternal, err)
		}

		// 4.6. Записываем доменное событие в outbox той же транзакцией
		if err := uc.addHoldCreatedEvent(txCtx, created); err != nil {
			uc.logger.Error("CreateHold: failed to add outbox event: %v", err)
			return fmt.Errorf("%w: failed to add outbox event: %w", ErrInternal, err)
		}

		result = created
		return nil
	})

	switch {
	case err == nil:
		uc.logger.Info("CreateHold: successfully created hold id=%d, expires at %s",
			result.ID, result.ExpiresAt.Format(time.RFC3339))
	case errors.Is(err, errIdempotentReplay):
		uc.logger.Info("CreateHold: idempotent replay, returning hold id=%d for key=%s",
			result.ID, req.IdempotencyKey)
	case errors.Is(err, holdRepo.ErrDuplicateIdempotencyKey):
		// Проигравший гонку по ключу тоже получает исходный hold
		existing, lookupErr := uc.holdRepo.GetByIdempotencyKey(ctx, req.VenueID, req.CustomerID, req.IdempotencyKey)
		if lookupErr != nil {
			uc.logger.Error("CreateHold: lookup after duplicate key failed: %v", lookupErr)
			return nil, fmt.Errorf("%w: lookup after duplicate key: %w", ErrInternal, lookupErr)
		}
		result = existing
		uc.logger.Info("CreateHold: idempotent replay after duplicate key, returning hold id=%d for key=%s",
			result.ID, req.IdempotencyKey)
	default:
		return nil, err
	}

	return &Response{
		ID:         result.ID,
		VenueID:    result.VenueID,
		CustomerID: result.CustomerID,
		StartAtUtc: result.StartAt,
		EndAtUtc:   result.EndAt,
		Status:     string(result.Status),
		ExpiresAt:  result.ExpiresAt,
		CreatedAt:  result.CreatedAt,
	}, nil
}

func (uc *UseCase) addHoldCreatedEvent(ctx context.Context, hold *domain.Hold) error {
	payload, err := json.Marshal(map[string]interface{}{
		"holdId":     hold.ID,
		"venueId":    hold.VenueID,
		"customerId": hold.CustomerID,
		"startAt":    hold.StartAt.Format(time.RFC3339),
		"endAt":      hold.EndAt.Format(time.RFC3339),
		"expiresAt":  hold.ExpiresAt.Format(time.RFC3339),
	})
	if err != nil {
		return err
	}

	return uc.outboxRepo.Add(ctx, outbox.Event{
		AggregateType: "hold",
		AggregateID:   strconv.FormatInt(hold.ID, 10),
		EventType:     outbox.EventHoldCreated,
		Payload:       payload,
	})
}
