package register_escrow

import (
	"net/http"

	"github.com/m04kA/SMC-BookingLifecycle/internal/api/handlers"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidAmount      = "сумма удержания должна быть больше нуля"
)

type Handler struct {
	registry EscrowRegistry
	logger   Logger
}

func NewHandler(registry EscrowRegistry, logger Logger) *Handler {
	return &Handler{
		registry: registry,
		logger:   logger,
	}
}

// Handle POST /api/v1/simulated/escrows
// Блокирует демо-расчет, txHash из ответа передается в confirm-payment.
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req RegisterEscrowRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /simulated/escrows - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}
	if req.Amount == nil || req.Amount.Minor() <= 0 {
		h.logger.Warn("POST /simulated/escrows - Missing or non-positive amount")
		handlers.RespondBadRequest(w, msgInvalidAmount)
		return
	}

	escrow, err := h.registry.RegisterEscrow(req.Amount.Minor())
	if err != nil {
		h.logger.Error("POST /simulated/escrows - Failed to register escrow: amount=%s, error=%v", req.Amount, err)
		handlers.RespondDomainError(w, err)
		return
	}

	h.logger.Info("POST /simulated/escrows - Escrow locked: tx_hash=%s, amount=%s", escrow.Reference, req.Amount)
	handlers.RespondJSON(w, http.StatusCreated, FromDomainEscrow(escrow))
}
