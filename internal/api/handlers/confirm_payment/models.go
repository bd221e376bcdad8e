package confirm_payment

import (
	"time"

	"github.com/m04kA/SMC-BookingLifecycle/internal/api/handlers"
	"github.com/m04kA/SMC-BookingLifecycle/internal/domain"
	"github.com/m04kA/SMC-BookingLifecycle/pkg/money"
)

// ConfirmPaymentRequest HTTP request model
type ConfirmPaymentRequest struct {
	EscrowTxHash            string `json:"escrowTxHash"`
	SkipOnChainVerification bool   `json:"skipOnChainVerification,omitempty"`
}

// ConfirmPaymentResponse HTTP response model
type ConfirmPaymentResponse struct {
	Booking handlers.BookingResponse `json:"booking"`
	Message string                   `json:"message,omitempty"`
	Escrow  *EscrowResponse          `json:"escrow,omitempty"`
}

// EscrowResponse запись об удержании средств
type EscrowResponse struct {
	TxHash string       `json:"txHash"`
	Amount money.Amount `json:"amount"`
	Status string       `json:"status"`
}

// FromConfirmation конвертирует результат подтверждения в HTTP response
func FromConfirmation(c *domain.PaymentConfirmation, now time.Time) *ConfirmPaymentResponse {
	resp := &ConfirmPaymentResponse{
		Booking: handlers.FromDomainBooking(c.Booking, now),
		Message: c.Message,
	}
	if c.Escrow != nil {
		resp.Escrow = &EscrowResponse{
			TxHash: c.Escrow.Reference,
			Amount: money.Amount(c.Escrow.AmountMinor),
			Status: c.Escrow.Status,
		}
	}
	return resp
}
