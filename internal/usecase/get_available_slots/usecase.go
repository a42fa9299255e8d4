package get_available_slots

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/courtify/CourtBookingService/internal/domain"
	venueRepo "github.com/courtify/CourtBookingService/internal/infra/storage/venue"
)

// UseCase use case для получения свободных слотов площадки
//
// Слоты не фильтруются по текущему моменту: прошедшие слоты отрезает
// вызывающая сторона выбором диапазона, а защита от бронирования прошлого
// живет в create_hold
type UseCase struct {
	venueRepo    VenueRepository
	availability AvailabilityService
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	venueRepo VenueRepository,
	availability AvailabilityService,
	logger Logger,
) *UseCase {
	return &UseCase{
		venueRepo:    venueRepo,
		availability: availability,
		logger:       logger,
	}
}

// Execute выполняет use case получения свободных слотов
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GetAvailableSlots: venue=%d, from=%s, to=%s, duration=%d",
		req.VenueID, req.From.Format(domain.DateFormat), req.To.Format(domain.DateFormat), req.ServiceDurationMinutes)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("GetAvailableSlots: validation failed: %v", err)
		return nil, err
	}

	// 2. Получаем площадку с расписанием
	venue, err := uc.venueRepo.GetByID(ctx, req.VenueID)
	if err != nil {
		if errors.Is(err, venueRepo.ErrVenueNotFound) {
			uc.logger.Warn("GetAvailableSlots: venue id=%d not found", req.VenueID)
			return nil, ErrVenueNotFound
		}
		uc.logger.Error("GetAvailableSlots: failed to get venue id=%d: %v", req.VenueID, err)
		return nil, fmt.Errorf("%w: failed to get venue: %v", ErrInternal, err)
	}

	loc, err := venue.Location()
	if err != nil {
		uc.logger.Error("GetAvailableSlots: unknown timezone %q for venue=%d: %v", venue.Timezone, req.VenueID, err)
		return nil, fmt.Errorf("%w: unknown timezone %q: %v", ErrInternal, venue.Timezone, err)
	}

	// 3. Даты диапазона - календарные дни площадки, поэтому границы строятся
	// как локальные полуночи в её таймзоне
	localFrom := time.Date(req.From.Year(), req.From.Month(), req.From.Day(), 0, 0, 0, 0, loc)
	localTo := time.Date(req.To.Year(), req.To.Month(), req.To.Day(), 0, 0, 0, 0, loc)

	// 4. Разворачиваем недельное расписание в рабочие окна диапазона
	windows, err := resolveOpeningWindows(venue, loc, localFrom, localTo)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to resolve opening windows for venue=%d: %v", req.VenueID, err)
		return nil, fmt.Errorf("%w: failed to resolve opening windows: %v", ErrInternal, err)
	}

	// 5. Генерируем кандидатов по сетке с шагом 15 минут
	candidates := generateCandidates(windows, req.ServiceDurationMinutes)

	// 6. Занятые интервалы читаем одним заходом на весь диапазон
	busy, err := uc.availability.BusyIntervals(ctx, req.VenueID,
		domain.Interval{Start: localFrom.UTC(), End: localTo.UTC()})
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to get busy intervals for venue=%d: %v", req.VenueID, err)
		return nil, fmt.Errorf("%w: failed to get busy intervals: %v", ErrInternal, err)
	}

	// 7. Отбрасываем кандидатов, пересекающих занятое
	slots := filterFree(candidates, busy)

	uc.logger.Info("GetAvailableSlots: generated %d slots for venue=%d (candidates=%d, busy=%d)",
		len(slots), req.VenueID, len(candidates), len(busy))

	return &Response{
		VenueID:                req.VenueID,
		From:                   req.From,
		To:                     req.To,
		ServiceDurationMinutes: req.ServiceDurationMinutes,
		Slots:                  slots,
	}, nil
}
