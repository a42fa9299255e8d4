package get_available_slots

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/courtify/CourtBookingService/internal/api/handlers"
	getAvailableSlots "github.com/courtify/CourtBookingService/internal/usecase/get_available_slots"
)

const (
	msgInvalidVenueID         = "некорректный ID площадки"
	msgMissingDates           = "параметры from и to обязательны"
	msgInvalidDate            = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgMissingServiceDuration = "параметр serviceDuration обязателен"
	msgInvalidServiceDuration = "некорректная длительность услуги"
	msgVenueNotFound          = "площадка не найдена"
	msgValidationFailed       = "некорректные параметры запроса"
)

type Handler struct {
	useCase GetAvailableSlotsUseCase
	logger  Logger
}

func NewHandler(useCase GetAvailableSlotsUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/venues/{venueId}/slots
// Query params: from (required, YYYY-MM-DD), to (required, YYYY-MM-DD, включительно),
// serviceDuration (required, минуты)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	// Извлекаем venueId из URL
	venueID, err := strconv.ParseInt(vars["venueId"], 10, 64)
	if err != nil {
		h.logger.Warn("GET /venues/{id}/slots - Invalid venue ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidVenueID)
		return
	}

	// Извлекаем from и to из query параметров
	fromStr := r.URL.Query().Get("from")
	toStr := r.URL.Query().Get("to")
	if fromStr == "" || toStr == "" {
		h.logger.Warn("GET /venues/{id}/slots - Missing from/to params: venue_id=%d", venueID)
		handlers.RespondBadRequest(w, msgMissingDates)
		return
	}

	// Извлекаем serviceDuration из query параметров
	durationStr := r.URL.Query().Get("serviceDuration")
	if durationStr == "" {
		h.logger.Warn("GET /venues/{id}/slots - Missing service duration: venue_id=%d", venueID)
		handlers.RespondBadRequest(w, msgMissingServiceDuration)
		return
	}

	serviceDuration, err := strconv.Atoi(durationStr)
	if err != nil {
		h.logger.Warn("GET /venues/{id}/slots - Invalid service duration: %v", err)
		handlers.RespondBadRequest(w, msgInvalidServiceDuration)
		return
	}

	// Формируем запрос к use case (с парсингом дат)
	useCaseReq, err := ToUseCaseRequest(venueID, fromStr, toStr, serviceDuration)
	if err != nil {
		h.logger.Warn("GET /venues/{id}/slots - Invalid date format: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	// Вызываем use case
	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, getAvailableSlots.ErrVenueNotFound):
			h.logger.Warn("GET /venues/{id}/slots - Venue not found: venue_id=%d", venueID)
			handlers.RespondNotFound(w, msgVenueNotFound)

		case errors.Is(err, getAvailableSlots.ErrValidation):
			h.logger.Warn("GET /venues/{id}/slots - Validation failed: venue_id=%d, error=%v", venueID, err)
			handlers.RespondBadRequest(w, msgValidationFailed)

		default:
			h.logger.Error("GET /venues/{id}/slots - Failed to get slots: venue_id=%d, error=%v", venueID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /venues/{id}/slots - Slots retrieved successfully: venue_id=%d, slots_count=%d",
		venueID, len(result.Slots))
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
