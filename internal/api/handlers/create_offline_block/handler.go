package create_offline_block

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/courtify/CourtBookingService/internal/api/handlers"
	"github.com/courtify/CourtBookingService/internal/service/venues"
)

const (
	msgInvalidVenueID     = "некорректный ID площадки"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgVenueNotFound      = "площадка не найдена"
	msgValidationFailed   = "некорректные параметры блокировки"
)

type Handler struct {
	service VenueService
	logger  Logger
}

func NewHandler(service VenueService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle POST /api/v1/venues/{venueId}/offline
// Блокировка создается без проверки конфликтов: существующие бронирования
// на интервале остаются, их судьбу решает администратор
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	venueID, err := strconv.ParseInt(vars["venueId"], 10, 64)
	if err != nil {
		h.logger.Warn("POST /venues/{id}/offline - Invalid venue ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidVenueID)
		return
	}

	// Декодируем body
	var req CreateOfflineBlockRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /venues/{id}/offline - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.CreateOfflineBlock(r.Context(), req.ToServiceRequest(venueID))
	if err != nil {
		switch {
		case errors.Is(err, venues.ErrVenueNotFound):
			h.logger.Warn("POST /venues/{id}/offline - Venue not found: venue_id=%d", venueID)
			handlers.RespondNotFound(w, msgVenueNotFound)

		case errors.Is(err, venues.ErrInvalidInput):
			h.logger.Warn("POST /venues/{id}/offline - Validation failed: venue_id=%d, error=%v", venueID, err)
			handlers.RespondBadRequest(w, msgValidationFailed)

		default:
			h.logger.Error("POST /venues/{id}/offline - Failed to create block: venue_id=%d, error=%v", venueID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /venues/{id}/offline - Offline block created successfully: block_id=%d, venue_id=%d",
		result.ID, result.VenueID)
	handlers.RespondJSON(w, http.StatusCreated, FromServiceResponse(result))
}
