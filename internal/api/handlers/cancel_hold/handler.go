package cancel_hold

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/courtify/CourtBookingService/internal/api/handlers"
	"github.com/courtify/CourtBookingService/internal/api/middleware"
	"github.com/courtify/CourtBookingService/internal/service/holds"
)

const (
	msgInvalidHoldID = "некорректный ID резерва"
	msgUnauthorized  = "пользователь не аутентифицирован"
	msgNotFound      = "резерв не найден"
	msgForbidden     = "доступ запрещен"
	msgNotActive     = "резерв уже истёк или использован"
)

type Handler struct {
	service HoldService
	logger  Logger
}

func NewHandler(service HoldService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle DELETE /api/v1/holds/{holdId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	holdID, err := strconv.ParseInt(vars["holdId"], 10, 64)
	if err != nil {
		h.logger.Warn("DELETE /holds/{id} - Invalid hold ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidHoldID)
		return
	}

	customerID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("DELETE /holds/{id} - Missing user ID in context: hold_id=%d", holdID)
		handlers.RespondUnauthorized(w, msgUnauthorized)
		return
	}

	err = h.service.Cancel(r.Context(), holdID, customerID)
	if err != nil {
		switch {
		case errors.Is(err, holds.ErrHoldNotFound):
			h.logger.Warn("DELETE /holds/{id} - Hold not found: hold_id=%d", holdID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, holds.ErrAccessDenied):
			h.logger.Warn("DELETE /holds/{id} - Access denied: hold_id=%d, customer_id=%d", holdID, customerID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, holds.ErrHoldNotActive):
			h.logger.Warn("DELETE /holds/{id} - Hold not active: hold_id=%d", holdID)
			handlers.RespondConflict(w, msgNotActive)

		default:
			h.logger.Error("DELETE /holds/{id} - Failed to cancel hold: hold_id=%d, error=%v", holdID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("DELETE /holds/{id} - Hold cancelled successfully: hold_id=%d, customer_id=%d", holdID, customerID)
	handlers.RespondJSON(w, http.StatusNoContent, nil)
}
