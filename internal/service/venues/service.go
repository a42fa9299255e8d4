package venues

import (
	"context"
	"errors"
	"fmt"

	"github.com/courtify/CourtBookingService/internal/domain"
	venueRepo "github.com/courtify/CourtBookingService/internal/infra/storage/venue"
	"github.com/courtify/CourtBookingService/internal/service/venues/models"
)

// Service сервис для работы с площадками и их оффлайн-блокировками
type Service struct {
	venueRepo        VenueRepository
	offlineBlockRepo OfflineBlockRepository
	logger           Logger
}

// NewService создает новый экземпляр сервиса площадок
func NewService(
	venueRepo VenueRepository,
	offlineBlockRepo OfflineBlockRepository,
	logger Logger,
) *Service {
	return &Service{
		venueRepo:        venueRepo,
		offlineBlockRepo: offlineBlockRepo,
		logger:           logger,
	}
}

// GetByID получает площадку с её недельным расписанием
func (s *Service) GetByID(ctx context.Context, id int64) (*models.VenueResponse, error) {
	s.logger.Info("GetByID: fetching venue id=%d", id)

	venue, err := s.venueRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, venueRepo.ErrVenueNotFound) {
			s.logger.Warn("GetByID: venue id=%d not found", id)
			return nil, ErrVenueNotFound
		}
		s.logger.Error("GetByID: repository error for venue id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: GetByID - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetByID: successfully fetched venue id=%d", id)
	return models.FromDomainVenue(venue), nil
}

// CreateOfflineBlock создает оффлайн-блокировку интервала площадки
// Блокировка всегда считается занятой и не истекает
func (s *Service) CreateOfflineBlock(ctx context.Context, req *models.CreateOfflineBlockRequest) (*models.OfflineBlockResponse, error) {
	s.logger.Info("CreateOfflineBlock: creating block for venue=%d, interval=[%s, %s)",
		req.VenueID, req.StartAt.Format(domain.DateFormat+" "+domain.TimeFormat), req.EndAt.Format(domain.DateFormat+" "+domain.TimeFormat))

	// 1. Валидируем входные данные
	if err := s.validateBlockData(req); err != nil {
		s.logger.Warn("CreateOfflineBlock: validation failed for venue=%d: %v", req.VenueID, err)
		return nil, err
	}

	// 2. Проверяем существование площадки
	if _, err := s.venueRepo.GetByID(ctx, req.VenueID); err != nil {
		if errors.Is(err, venueRepo.ErrVenueNotFound) {
			s.logger.Warn("CreateOfflineBlock: venue id=%d not found", req.VenueID)
			return nil, ErrVenueNotFound
		}
		s.logger.Error("CreateOfflineBlock: failed to get venue id=%d: %v", req.VenueID, err)
		return nil, fmt.Errorf("%w: failed to get venue: %v", ErrInternal, err)
	}

	// 3. Создаем блокировку
	block, err := s.offlineBlockRepo.Create(ctx, &domain.OfflineBlock{
		VenueID: req.VenueID,
		StartAt: req.StartAt.UTC(),
		EndAt:   req.EndAt.UTC(),
		Reason:  req.Reason,
	})
	if err != nil {
		s.logger.Error("CreateOfflineBlock: repository error for venue=%d: %v", req.VenueID, err)
		return nil, fmt.Errorf("%w: CreateOfflineBlock - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("CreateOfflineBlock: successfully created block id=%d for venue=%d", block.ID, block.VenueID)
	return models.FromDomainOfflineBlock(block), nil
}

func (s *Service) validateBlockData(req *models.CreateOfflineBlockRequest) error {
	if req.StartAt.IsZero() || req.EndAt.IsZero() {
		return fmt.Errorf("%w: startAt and endAt are required", ErrInvalidInput)
	}
	if !req.StartAt.Before(req.EndAt) {
		return fmt.Errorf("%w: startAt must be before endAt", ErrInvalidInput)
	}
	if len(req.Reason) > domain.MaxReasonLength {
		return fmt.Errorf("%w: reason exceeds %d characters", ErrInvalidInput, domain.MaxReasonLength)
	}
	return nil
}
