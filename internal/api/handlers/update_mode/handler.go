package update_mode

import (
	"net/http"

	"github.com/m04kA/SMC-BookingLifecycle/internal/api/handlers"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgMissingSimulated   = "поле simulated обязательно"
)

type Handler struct {
	mode   ModeSwitcher
	logger Logger
}

func NewHandler(mode ModeSwitcher, logger Logger) *Handler {
	return &Handler{
		mode:   mode,
		logger: logger,
	}
}

// Handle PUT /api/v1/mode
// Новый режим применяется к действиям, начатым после переключения.
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req UpdateModeRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /mode - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}
	if req.Simulated == nil {
		h.logger.Warn("PUT /mode - Missing simulated flag")
		handlers.RespondBadRequest(w, msgMissingSimulated)
		return
	}

	previous := h.mode.Simulated()
	h.mode.SetSimulated(*req.Simulated)

	h.logger.Info("PUT /mode - Mode switched: simulated=%t -> %t", previous, *req.Simulated)
	handlers.RespondJSON(w, http.StatusOK, &ModeResponse{Simulated: *req.Simulated})
}
