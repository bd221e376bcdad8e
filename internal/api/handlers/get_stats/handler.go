package get_stats

import (
	"net/http"

	"github.com/m04kA/SMC-BookingLifecycle/internal/api/handlers"
	"github.com/m04kA/SMC-BookingLifecycle/internal/api/middleware"
)

const (
	msgMissingUserID = "отсутствует ID пользователя"
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

// Handle GET /api/v1/bookings/stats
// Ошибка загрузки не возвращается клиенту, отдается последняя известная статистика.
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("GET /bookings/stats - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	h.store.FetchStats(r.Context())
	stats := h.store.State().Stats

	h.logger.Info("GET /bookings/stats - Stats retrieved: user_id=%s, available=%t", userID, stats != nil)
	handlers.RespondJSON(w, http.StatusOK, FromDomainStats(stats))
}
