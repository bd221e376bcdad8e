package reset_session

import (
	"net/http"

	"github.com/m04kA/SMC-BookingLifecycle/internal/api/handlers"
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

// Handle DELETE /api/v1/session
// Очищает кэш бронирований, ответы на уже начатые запросы будут отброшены.
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	h.store.Reset()
	h.logger.Info("DELETE /session - Session reset")
	handlers.RespondNoContent(w)
}
