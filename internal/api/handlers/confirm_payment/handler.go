package confirm_payment

import (
	"errors"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-BookingLifecycle/internal/api/handlers"
	"github.com/m04kA/SMC-BookingLifecycle/internal/domain"
)

const (
	msgMissingBookingID   = "отсутствует ID бронирования"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidTxHash      = "некорректный хэш транзакции, ожидается 0x и 64 hex символа"
	msgNotFound           = "бронирование не найдено"
	msgEscrowNotFound     = "удержание средств не найдено"
	msgEscrowMismatch     = "сумма удержания не совпадает с суммой бронирования"
	msgInvalidTransition  = "бронирование нельзя подтвердить в текущем статусе"
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

// Handle POST /api/v1/bookings/{bookingId}/confirm-payment
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	bookingID := mux.Vars(r)["bookingId"]
	if bookingID == "" {
		h.logger.Warn("POST /bookings/{id}/confirm-payment - Missing booking ID")
		handlers.RespondBadRequest(w, msgMissingBookingID)
		return
	}

	var req ConfirmPaymentRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /bookings/{id}/confirm-payment - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	opts := domain.ConfirmPaymentOptions{SkipOnChainVerification: req.SkipOnChainVerification}
	result, err := h.store.ConfirmPayment(r.Context(), bookingID, req.EscrowTxHash, opts)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidInput):
			h.logger.Warn("POST /bookings/{id}/confirm-payment - Invalid tx hash: booking_id=%s", bookingID)
			handlers.RespondBadRequest(w, msgInvalidTxHash)

		case errors.Is(err, domain.ErrNotFound):
			h.logger.Warn("POST /bookings/{id}/confirm-payment - Booking not found: booking_id=%s", bookingID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, domain.ErrEscrowNotFound):
			h.logger.Warn("POST /bookings/{id}/confirm-payment - Escrow not found: booking_id=%s", bookingID)
			handlers.RespondError(w, http.StatusUnprocessableEntity, msgEscrowNotFound, err)

		case errors.Is(err, domain.ErrEscrowMismatch):
			h.logger.Warn("POST /bookings/{id}/confirm-payment - Escrow mismatch: booking_id=%s, error=%v", bookingID, err)
			handlers.RespondError(w, http.StatusUnprocessableEntity, msgEscrowMismatch, err)

		case errors.Is(err, domain.ErrInvalidTransition):
			h.logger.Warn("POST /bookings/{id}/confirm-payment - Invalid transition: booking_id=%s", bookingID)
			handlers.RespondConflict(w, msgInvalidTransition, err)

		default:
			h.logger.Error("POST /bookings/{id}/confirm-payment - Failed to confirm payment: booking_id=%s, error=%v",
				bookingID, err)
			handlers.RespondDomainError(w, err)
		}
		return
	}

	h.logger.Info("POST /bookings/{id}/confirm-payment - Payment confirmed: booking_id=%s, status=%s",
		bookingID, result.Booking.Status)
	handlers.RespondJSON(w, http.StatusOK, FromConfirmation(result, time.Now()))
}
