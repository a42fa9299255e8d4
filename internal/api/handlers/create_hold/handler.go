package create_hold

import (
	"errors"
	"net/http"

	"github.com/courtify/CourtBookingService/internal/api/handlers"
	createHold "github.com/courtify/CourtBookingService/internal/usecase/create_hold"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgVenueNotFound      = "площадка не найдена"
	msgSlotConflict       = "интервал уже занят"
	msgValidationFailed   = "некорректные параметры запроса"
)

type Handler struct {
	useCase CreateHoldUseCase
	logger  Logger
}

func NewHandler(useCase CreateHoldUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/holds
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	// Декодируем body
	var req CreateHoldRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /holds - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	// Вызываем use case
	result, err := h.useCase.Execute(r.Context(), req.ToUseCaseRequest())
	if err != nil {
		switch {
		case errors.Is(err, createHold.ErrVenueNotFound):
			h.logger.Warn("POST /holds - Venue not found: venue_id=%d", req.VenueID)
			handlers.RespondNotFound(w, msgVenueNotFound)

		case errors.Is(err, createHold.ErrSlotConflict):
			h.logger.Warn("POST /holds - Slot conflict: venue_id=%d, customer_id=%d", req.VenueID, req.CustomerID)
			handlers.RespondConflict(w, msgSlotConflict)

		case errors.Is(err, createHold.ErrValidation):
			h.logger.Warn("POST /holds - Validation failed: %v", err)
			handlers.RespondBadRequest(w, msgValidationFailed)

		default:
			h.logger.Error("POST /holds - Failed to create hold: venue_id=%d, customer_id=%d, error=%v",
				req.VenueID, req.CustomerID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /holds - Hold created successfully: hold_id=%d, venue_id=%d, customer_id=%d",
		result.ID, result.VenueID, result.CustomerID)
	handlers.RespondJSON(w, http.StatusCreated, FromUseCaseResponse(result))
}
