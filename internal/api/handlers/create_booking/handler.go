package create_booking

import (
	"errors"
	"net/http"
	"time"

	"github.com/m04kA/SMC-BookingLifecycle/internal/api/handlers"
	"github.com/m04kA/SMC-BookingLifecycle/internal/domain"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidStartTime   = "некорректное время начала, ожидается RFC3339"
	msgInvalidRequest     = "некорректные данные бронирования"
	msgSlotUnavailable    = "выбранное время уже занято"
	msgStylistUnavailable = "мастер сейчас не принимает записи"
	msgServiceNotFound    = "услуга не найдена"
)

type Handler struct {
	store  BookingStore
	logger Logger
}

func NewHandler(store BookingStore, logger Logger) *Handler {
	return &Handler{
		store:  store,
		logger: logger,
	}
}

// Handle POST /api/v1/bookings
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req CreateBookingRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /bookings - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	domainReq, err := req.ToDomainRequest()
	if err != nil {
		h.logger.Warn("POST /bookings - Failed to parse request: %v", err)
		handlers.RespondBadRequest(w, msgInvalidStartTime)
		return
	}

	booking, err := h.store.Create(r.Context(), domainReq)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidInput):
			h.logger.Warn("POST /bookings - Validation failed: %v", err)
			handlers.RespondBadRequest(w, msgInvalidRequest)

		case errors.Is(err, domain.ErrSlotUnavailable):
			h.logger.Warn("POST /bookings - Slot unavailable: stylist_id=%s, start=%s", req.StylistID, req.ScheduledStartTime)
			handlers.RespondConflict(w, msgSlotUnavailable, err)

		case errors.Is(err, domain.ErrProviderUnavailable):
			h.logger.Warn("POST /bookings - Stylist unavailable: stylist_id=%s", req.StylistID)
			handlers.RespondConflict(w, msgStylistUnavailable, err)

		case errors.Is(err, domain.ErrServiceNotFound):
			h.logger.Warn("POST /bookings - Service not found: stylist_id=%s, service_id=%s", req.StylistID, req.ServiceID)
			handlers.RespondError(w, http.StatusNotFound, msgServiceNotFound, err)

		default:
			h.logger.Error("POST /bookings - Failed to create booking: stylist_id=%s, error=%v", req.StylistID, err)
			handlers.RespondDomainError(w, err)
		}
		return
	}

	h.logger.Info("POST /bookings - Booking created successfully: booking_id=%s, stylist_id=%s", booking.ID, req.StylistID)
	handlers.RespondJSON(w, http.StatusCreated, handlers.FromDomainBooking(booking, time.Now()))
}
