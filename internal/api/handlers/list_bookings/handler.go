package list_bookings

import (
	"net/http"
	"time"

	"github.com/m04kA/SMC-BookingLifecycle/internal/api/handlers"
)

const (
	msgInvalidFilter = "некорректный фильтр, проверьте status и role"
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

// Handle GET /api/v1/bookings
// Query params: status, role (customer|stylist), more=true догружает следующую страницу
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	filter, err := ParseFilter(query.Get("status"), query.Get("role"))
	if err != nil {
		h.logger.Warn("GET /bookings - Invalid filter: %v", err)
		handlers.RespondBadRequest(w, msgInvalidFilter)
		return
	}

	state := h.store.State()
	more := query.Get("more") == "true"

	// Смена фильтра всегда начинает список заново
	switch {
	case !filter.Equal(state.Filter):
		err = h.store.SetFilter(r.Context(), filter)
	case more && state.Page > 0:
		err = h.store.FetchList(r.Context(), false)
	default:
		err = h.store.FetchList(r.Context(), true)
	}
	if err != nil {
		h.logger.Error("GET /bookings - Failed to fetch bookings: error=%v", err)
		handlers.RespondDomainError(w, err)
		return
	}

	state = h.store.State()
	h.logger.Info("GET /bookings - Bookings retrieved successfully: count=%d, page=%d, has_more=%t",
		len(state.Bookings), state.Page, state.HasMore)
	handlers.RespondJSON(w, http.StatusOK, FromState(state, time.Now()))
}
