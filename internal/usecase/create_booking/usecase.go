package create_booking

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
	"github.com/courtify/CourtBookingService/internal/integrations/notifyservice"
)

// UseCase use case промоутинга hold в подтверждённое бронирование
//
// Hold читается с блокировкой строки, занятость интервала перепроверяется
// (исключая сам hold), и только затем hold гасится и создается бронирование.
// Все в одной сериализуемой транзакции: два конкурентных промоутинга одного
// hold'а не могут создать два бронирования
type UseCase struct {
	holdRepo     HoldRepository
	bookingRepo  BookingRepository
	availability AvailabilityService
	outboxRepo   OutboxRepository
	notifyClient NotifyClient
	txManager    TransactionManager
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	holdRepo HoldRepository,
	bookingRepo BookingRepository,
	availability AvailabilityService,
	outboxRepo OutboxRepository,
	notifyClient NotifyClient,
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		holdRepo:     holdRepo,
		bookingRepo:  bookingRepo,
		availability: availability,
		outboxRepo:   outboxRepo,
		notifyClient: notifyClient,
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

// Execute выполняет use case промоутинга hold
// Использует сериализуемую транзакцию для предотвращения гонки данных
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateBooking: promoting hold id=%d by customer=%d", req.HoldID, req.CustomerID)

	// 1. Валидация входных данных
	if req.HoldID <= 0 || req.CustomerID <= 0 {
		uc.logger.Warn("CreateBooking: validation failed: holdId=%d, customerId=%d", req.HoldID, req.CustomerID)
		return nil, fmt.Errorf("%w: holdId and customerId must be positive", ErrValidation)
	}

	// 2. Получаем текущее время
	now := uc.timeProvider.Now()

	// Переменная для хранения результата
	var result *domain.Booking

	// 3. Выполняем операции с БД в сериализуемой транзакции
	err := uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 3.1. Получаем hold с блокировкой строки (FOR UPDATE)
		hold, err := uc.holdRepo.GetByID(txCtx, req.HoldID)
		if err != nil {
			if errors.Is(err, holdRepo.ErrHoldNotFound) {
				uc.logger.Warn("CreateBooking: hold id=%d not found", req.HoldID)
				return ErrHoldNotFound
			}
			uc.logger.Error("CreateBooking: failed to get hold id=%d: %v", req.HoldID, err)
			return fmt.Errorf("%w: failed to get hold: %w", ErrInternal, err)
		}

		// 3.2. Промоутить hold может только его создатель
		if hold.CustomerID != req.CustomerID {
			uc.logger.Warn("CreateBooking: access denied for customer=%d to hold id=%d", req.CustomerID, req.HoldID)
			return ErrAccessDenied
		}

		// 3.3. Hold должен быть активен и не истёкшим. Истёкший hold не
		// воскрешается: клиент обязан создать новый
		if !hold.CanBePromotedBy(req.CustomerID, now) {
			uc.logger.Warn("CreateBooking: hold id=%d is not active (status=%s, expires=%s)",
				hold.ID, hold.Status, hold.ExpiresAt.Format(time.RFC3339))
			return ErrHoldNotActive
		}

		// 3.4. Перепроверяем занятость, исключая собственный hold. Другой
		// источник мог занять интервал, напр. административная блокировка
		busy, err := uc.availability.BusyIntervalsExcludingHold(txCtx, hold.VenueID, hold.Interval(), hold.ID)
		if err != nil {
			uc.logger.Error("CreateBooking: failed to get busy intervals: %v", err)
			return fmt.Errorf("%w: failed to get busy intervals: %w", ErrInternal, err)
		}
		if hold.Interval().IntersectsAny(busy) {
			uc.logger.Warn("CreateBooking: interval busy for hold id=%d, venue=%d", hold.ID, hold.VenueID)
			return ErrSlotConflict
		}

		// 3.5. Гасим hold
		if err := uc.holdRepo.UpdateStatus(txCtx, hold.ID, domain.StatusHoldConsumed); err != nil {
			uc.logger.Error("CreateBooking: failed to consume hold id=%d: %v", hold.ID, err)
			return fmt.Errorf("%w: failed to consume hold: %w", ErrInternal, err)
		}

		// 3.6. Создаем подтверждённое бронирование
		created, err := uc.bookingRepo.Create(txCtx, &domain.Booking{
			VenueID:    hold.VenueID,
			CustomerID: hold.CustomerID,
			StartAt:    hold.StartAt,
			EndAt:      hold.EndAt,
			Status:     domain.StatusBookingConfirmed,
			HoldID:     hold.ID,
			PaymentRef: req.PaymentRef,
		})
		if err != nil {
			uc.logger.Error("CreateBooking: failed to create booking: %v", err)
			return fmt.Errorf("%w: failed to create booking: %w", ErrInternal, err)
		}

		// 3.7. Код верификации выводится из ID, поэтому проставляется
		// отдельным шагом после вставки
		created.VerificationCode = verificationCode(created.ID)
		if err := uc.bookingRepo.SetVerificationCode(txCtx, created.ID, created.VerificationCode); err != nil {
			uc.logger.Error("CreateBooking: failed to set verification code for booking id=%d: %v", created.ID, err)
			return fmt.Errorf("%w: failed to set verification code: %w", ErrInternal, err)
		}

		// 3.8. Записываем доменные события в outbox той же транзакцией
		if err := uc.addEvents(txCtx, hold, created); err != nil {
			uc.logger.Error("CreateBooking: failed to add outbox events: %v", err)
			return fmt.Errorf("%w: failed to add outbox events: %w", ErrInternal, err)
		}

		result = created
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.logger.Info("CreateBooking: successfully created booking id=%d from hold id=%d", result.ID, req.HoldID)

	// 4. Уведомление отправляется после коммита, в фоне
	uc.notifyClient.NotifyBookingConfirmedAsync(notifyservice.BookingConfirmedNotification{
		BookingID:        result.ID,
		VenueID:          result.VenueID,
		CustomerID:       result.CustomerID,
		StartAtUtc:       result.StartAt,
		EndAtUtc:         result.EndAt,
		VerificationCode: result.VerificationCode,
	})

	return &Response{
		ID:               result.ID,
		VenueID:          result.VenueID,
		CustomerID:       result.CustomerID,
		StartAtUtc:       result.StartAt,
		EndAtUtc:         result.EndAt,
		Status:           string(result.Status),
		HoldID:           result.HoldID,
		PaymentRef:       result.PaymentRef,
		VerificationCode: result.VerificationCode,
		CreatedAt:        result.CreatedAt,
	}, nil
}

func (uc *UseCase) addEvents(ctx context.Context, hold *domain.Hold, booking *domain.Booking) error {
	holdPayload, err := json.Marshal(map[string]interface{}{
		"holdId":    hold.ID,
		"venueId":   hold.VenueID,
		"bookingId": booking.ID,
	})
	if err != nil {
		return err
	}

	if err := uc.outboxRepo.Add(ctx, outbox.Event{
		AggregateType: "hold",
		AggregateID:   strconv.FormatInt(hold.ID, 10),
		EventType:     outbox.EventHoldConsumed,
		Payload:       holdPayload,
	}); err != nil {
		return err
	}

	bookingPayload, err := json.Marshal(map[string]interface{}{
		"bookingId":  booking.ID,
		"venueId":    booking.VenueID,
		"customerId": booking.CustomerID,
		"startAt":    booking.StartAt.Format(time.RFC3339),
		"endAt":      booking.EndAt.Format(time.RFC3339),
		"holdId":     booking.HoldID,
	})
	if err != nil {
		return err
	}

	return uc.outboxRepo.Add(ctx, outbox.Event{
		AggregateType: "booking",
		AggregateID:   strconv.FormatInt(booking.ID, 10),
		EventType:     outbox.EventBookingConfirmed,
		Payload:       bookingPayload,
	})
}
