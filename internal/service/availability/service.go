package availability

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/courtify/CourtBookingService/internal/domain"
	"github.com/courtify/CourtBookingService/pkg/dbmetrics"
)

// ErrInternal возвращается при ошибках чтения занятых интервалов
var ErrInternal = errors.New("availability: internal error")

// Service агрегатор занятых интервалов площадки
//
// Занятым считается интервал любого из трёх источников: подтверждённое
// бронирование, активный неистёкший hold, административная блокировка.
// Слияние пересекающихся интервалов не выполняется: потребителю достаточно
// проверки "пересекает ли кандидат хоть что-нибудь"
type Service struct {
	bookingRepo  BookingRepository
	holdRepo     HoldRepository
	blockRepo    OfflineBlockRepository
	timeProvider TimeProvider
}

// NewService создает агрегатор занятых интервалов
func NewService(bookingRepo BookingRepository, holdRepo HoldRepository, blockRepo OfflineBlockRepository) *Service {
	return &Service{
		bookingRepo:  bookingRepo,
		holdRepo:     holdRepo,
		blockRepo:    blockRepo,
		timeProvider: &RealTimeProvider{},
	}
}

// WithTimeProvider подменяет провайдер времени (для тестов)
func (s *Service) WithTimeProvider(tp TimeProvider) *Service {
	s.timeProvider = tp
	return s
}

// BusyIntervals возвращает все занятые интервалы площадки, пересекающие interval
func (s *Service) BusyIntervals(ctx context.Context, venueID int64, interval domain.Interval) ([]domain.Interval, error) {
	return s.BusyIntervalsExcludingHold(ctx, venueID, interval, 0)
}

// BusyIntervalsExcludingHold возвращает занятые интервалы, исключая hold
// с указанным ID (используется промоутером: собственный hold бронирования
// не является конфликтом)
//
// Вне транзакции три источника опрашиваются параллельно. Внутри транзакции
// запросы выполняются последовательно на её соединении: чтение обязано
// видеть изоляцию транзакции, а *sql.Tx не поддерживает параллельные запросы
func (s *Service) BusyIntervalsExcludingHold(ctx context.Context, venueID int64, interval domain.Interval, excludeHoldID int64) ([]domain.Interval, error) {
	if dbmetrics.IsInTransaction(ctx) {
		return s.collectSequential(ctx, venueID, interval, excludeHoldID)
	}
	return s.collectConcurrent(ctx, venueID, interval, excludeHoldID)
}

func (s *Service) collectSequential(ctx context.Context, venueID int64, interval domain.Interval, excludeHoldID int64) ([]domain.Interval, error) {
	now := s.timeProvider.Now()

	bookings, err := s.bookingRepo.ListConfirmedIntersecting(ctx, venueID, interval)
	if err != nil {
		return nil, fmt.Errorf("%w: bookings: %w", ErrInternal, err)
	}

	holds, err := s.holdRepo.ListActiveIntersecting(ctx, venueID, interval, now, excludeHoldID)
	if err != nil {
		return nil, fmt.Errorf("%w: holds: %w", ErrInternal, err)
	}

	blocks, err := s.blockRepo.ListIntersecting(ctx, venueID, interval)
	if err != nil {
		return nil, fmt.Errorf("%w: offline blocks: %w", ErrInternal, err)
	}

	busy := make([]domain.Interval, 0, len(bookings)+len(holds)+len(blocks))
	busy = append(busy, bookings...)
	busy = append(busy, holds...)
	busy = append(busy, blocks...)
	return busy, nil
}

func (s *Service) collectConcurrent(ctx context.Context, venueID int64, interval domain.Interval, excludeHoldID int64) ([]domain.Interval, error) {
	now := s.timeProvider.Now()

	var bookings, holds, blocks []domain.Interval

	g, gCtx := errgroup.WithContext(ctx)

	g.Go(func() error {
		var err error
		bookings, err = s.bookingRepo.ListConfirmedIntersecting(gCtx, venueID, interval)
		if err != nil {
			return fmt.Errorf("%w: bookings: %w", ErrInternal, err)
		}
		return nil
	})

	g.Go(func() error {
		var err error
		holds, err = s.holdRepo.ListActiveIntersecting(gCtx, venueID, interval, now, excludeHoldID)
		if err != nil {
			return fmt.Errorf("%w: holds: %w", ErrInternal, err)
		}
		return nil
	})

	g.Go(func() error {
		var err error
		blocks, err = s.blockRepo.ListIntersecting(gCtx, venueID, interval)
		if err != nil {
			return fmt.Errorf("%w: offline blocks: %w", ErrInternal, err)
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}

	busy := make([]domain.Interval, 0, len(bookings)+len(holds)+len(blocks))
	busy = append(busy, bookings...)
	busy = append(busy, holds...)
	busy = append(busy, blocks...)
	return busy, nil
}
