package list_stylists

import (
	"net/http"

	"github.com/m04kA/SMC-BookingLifecycle/internal/api/handlers"
)

type Handler struct {
	catalog Catalog
	logger  Logger
}

func NewHandler(catalog Catalog, logger Logger) *Handler {
	return &Handler{
		catalog: catalog,
		logger:  logger,
	}
}

// Handle GET /api/v1/simulated/stylists
// Отдает каталог демо-режима, из которого берутся ID мастеров и услуг.
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	stylists := h.catalog.Stylists()

	h.logger.Info("GET /simulated/stylists - Catalog listed: count=%d", len(stylists))
	handlers.RespondJSON(w, http.StatusOK, FromCatalog(stylists))
}
