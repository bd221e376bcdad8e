package get_available_slots

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-BookingLifecycle/internal/api/handlers"
	"github.com/m04kA/SMC-BookingLifecycle/internal/domain"
)

const (
	msgMissingStylistID = "отсутствует ID мастера"
	msgMissingDate      = "дата обязательна"
	msgInvalidQuery     = "некорректный формат даты (YYYY-MM-DD) или длительности"
	msgInvalidRequest   = "некорректные параметры запроса"
	msgStylistNotFound  = "мастер не найден"
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

// Handle GET /api/v1/stylists/{stylistId}/availability
// Query params: date (required, YYYY-MM-DD), durationMinutes (optional)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	stylistID := mux.Vars(r)["stylistId"]
	if stylistID == "" {
		h.logger.Warn("GET /stylists/{id}/availability - Missing stylist ID")
		handlers.RespondBadRequest(w, msgMissingStylistID)
		return
	}

	dateStr := r.URL.Query().Get("date")
	if dateStr == "" {
		h.logger.Warn("GET /stylists/{id}/availability - Missing date")
		handlers.RespondBadRequest(w, msgMissingDate)
		return
	}

	useCaseReq, err := ToUseCaseRequest(stylistID, dateStr, r.URL.Query().Get("durationMinutes"))
	if err != nil {
		h.logger.Warn("GET /stylists/{id}/availability - Invalid query: %v", err)
		handlers.RespondBadRequest(w, msgInvalidQuery)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidInput):
			h.logger.Warn("GET /stylists/{id}/availability - Invalid request: stylist_id=%s, error=%v", stylistID, err)
			handlers.RespondBadRequest(w, msgInvalidRequest)

		case errors.Is(err, domain.ErrNotFound):
			h.logger.Warn("GET /stylists/{id}/availability - Stylist not found: stylist_id=%s", stylistID)
			handlers.RespondNotFound(w, msgStylistNotFound)

		default:
			h.logger.Error("GET /stylists/{id}/availability - Failed to get slots: stylist_id=%s, error=%v",
				stylistID, err)
			handlers.RespondDomainError(w, err)
		}
		return
	}

	h.logger.Info("GET /stylists/{id}/availability - Slots retrieved successfully: stylist_id=%s, date=%s, source=%s, slots_count=%d",
		stylistID, dateStr, result.Source, len(result.Slots))
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
