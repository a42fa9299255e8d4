package create_booking

import (
	"errors"
	"net/http"

	"github.com/courtify/CourtBookingService/internal/api/handlers"
	createBooking "github.com/courtify/CourtBookingService/internal/usecase/create_booking"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgHoldNotFound       = "резерв не найден"
	msgHoldConflict       = "резерв недействителен или интервал занят"
	msgValidationFailed   = "некорректные параметры запроса"
)

type Handler struct {
	useCase CreateBookingUseCase
	logger  Logger
}

func NewHandler(useCase CreateBookingUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/bookings
// Промоутит активный hold в подтверждённое бронирование. Чужой, истёкший
// или уже использованный hold, как и занятый интервал, дают 409
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	// Декодируем body
	var req CreateBookingRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /bookings - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	// Вызываем use case
	result, err := h.useCase.Execute(r.Context(), req.ToUseCaseRequest())
	if err != nil {
		switch {
		case errors.Is(err, createBooking.ErrHoldNotFound):
			h.logger.Warn("POST /bookings - Hold not found: hold_id=%d", req.HoldID)
			handlers.RespondNotFound(w, msgHoldNotFound)

		case errors.Is(err, createBooking.ErrAccessDenied),
			errors.Is(err, createBooking.ErrHoldNotActive),
			errors.Is(err, createBooking.ErrSlotConflict):
			h.logger.Warn("POST /bookings - Promotion conflict: hold_id=%d, customer_id=%d, error=%v",
				req.HoldID, req.CustomerID, err)
			handlers.RespondConflict(w, msgHoldConflict)

		case errors.Is(err, createBooking.ErrValidation):
			h.logger.Warn("POST /bookings - Validation failed: %v", err)
			handlers.RespondBadRequest(w, msgValidationFailed)

		default:
			h.logger.Error("POST /bookings - Failed to create booking: hold_id=%d, customer_id=%d, error=%v",
				req.HoldID, req.CustomerID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /bookings - Booking created successfully: booking_id=%d, hold_id=%d, customer_id=%d",
		result.ID, result.HoldID, result.CustomerID)
	handlers.RespondJSON(w, http.StatusCreated, FromUseCaseResponse(result))
}
