package create_offline_block

import (
	"context"

	"github.com/courtify/CourtBookingService/internal/service/venues/models"
)

type VenueService interface {
	CreateOfflineBlock(ctx context.Context, req *models.CreateOfflineBlockRequest) (*models.OfflineBlockResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
