package get_mode

import (
	"net/http"

	"github.com/m04kA/SMC-BookingLifecycle/internal/api/handlers"
)

type Handler struct {
	mode   ModeProvider
	logger Logger
}

func NewHandler(mode ModeProvider, logger Logger) *Handler {
	return &Handler{
		mode:   mode,
		logger: logger,
	}
}

// Handle GET /api/v1/mode
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	handlers.RespondJSON(w, http.StatusOK, &ModeResponse{Simulated: h.mode.Simulated()})
}
