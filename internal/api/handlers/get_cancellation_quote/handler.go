package get_cancellation_quote

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-BookingLifecycle/internal/api/handlers"
	"github.com/m04kA/SMC-BookingLifecycle/internal/domain"
)

const (
	msgMissingBookingID = "отсутствует ID бронирования"
	msgNotFound         = "бронирование не найдено"
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

// Handle GET /api/v1/bookings/{bookingId}/cancellation-quote
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	bookingID := mux.Vars(r)["bookingId"]
	if bookingID == "" {
		h.logger.Warn("GET /bookings/{id}/cancellation-quote - Missing booking ID")
		handlers.RespondBadRequest(w, msgMissingBookingID)
		return
	}

	quote, err := h.store.QuoteCancellation(r.Context(), bookingID)
	if errors.Is(err, domain.ErrNotFound) {
		// Бронирования нет в кэше, загружаем его и считаем заново
		if _, err = h.store.FetchOne(r.Context(), bookingID); err == nil {
			quote, err = h.store.QuoteCancellation(r.Context(), bookingID)
		}
	}
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrNotFound):
			h.logger.Warn("GET /bookings/{id}/cancellation-quote - Booking not found: booking_id=%s", bookingID)
			handlers.RespondNotFound(w, msgNotFound)

		default:
			h.logger.Error("GET /bookings/{id}/cancellation-quote - Failed to quote: booking_id=%s, error=%v",
				bookingID, err)
			handlers.RespondDomainError(w, err)
		}
		return
	}

	h.logger.Info("GET /bookings/{id}/cancellation-quote - Quote calculated: booking_id=%s, refund=%d%%",
		bookingID, quote.Policy.RefundPercentage)
	handlers.RespondJSON(w, http.StatusOK, FromQuote(quote))
}
