package register_escrow

import (
	"github.com/m04kA/SMC-BookingLifecycle/internal/domain"
	"github.com/m04kA/SMC-BookingLifecycle/pkg/money"
)

// RegisterEscrowRequest HTTP request model. Сумма равна totalAmount бронирования.
type RegisterEscrowRequest struct {
	Amount *money.Amount `json:"amount"`
}

// EscrowResponse HTTP response model
type EscrowResponse struct {
	TxHash string       `json:"txHash"`
	Amount money.Amount `json:"amount"`
	Status string       `json:"status"`
}

// FromDomainEscrow конвертирует запись об удержании в HTTP response
func FromDomainEscrow(e domain.EscrowRecord) *EscrowResponse {
	return &EscrowResponse{
		TxHash: e.Reference,
		Amount: money.Amount(e.AmountMinor),
		Status: e.Status,
	}
}
