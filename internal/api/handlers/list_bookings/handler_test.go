package list_bookings

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-BookingLifecycle/internal/config"
	"github.com/m04kA/SMC-BookingLifecycle/internal/domain"
	"github.com/m04kA/SMC-BookingLifecycle/internal/integrations/simulated"
	"github.com/m04kA/SMC-BookingLifecycle/internal/service/bookings"
	"github.com/m04kA/SMC-BookingLifecycle/pkg/logger"
)

var actor = domain.Actor{ID: "cust-1", Token: "token"}

// newHandler собирает обработчик поверх настоящего хранилища в демо-режиме
func newHandler(t *testing.T) *Handler {
	t.Helper()
	log := logger.NewNop()
	provider := simulated.NewProvider(simulated.Config{
		Seed:               7,
		Stylists:           4,
		ServicesPerStylist: 2,
		BookingsPerActor:   6,
	}, nil, log)
	store := bookings.NewStore(nil, provider, config.NewMode(true), log, bookings.WithPageSize(4))
	return NewHandler(store, log)
}

func get(t *testing.T, h *Handler, query string, withActor bool) (*httptest.ResponseRecorder, BookingsResponse) {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/bookings"+query, nil)
	if withActor {
		req = req.WithContext(domain.WithActor(req.Context(), actor))
	}
	rec := httptest.NewRecorder()
	h.Handle(rec, req)

	var resp BookingsResponse
	if rec.Code == http.StatusOK {
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	}
	return rec, resp
}

func TestHandlePaginates(t *testing.T) {
	h := newHandler(t)

	rec, resp := get(t, h, "", true)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, resp.Bookings, 4)
	assert.Equal(t, 1, resp.Page)
	assert.True(t, resp.HasMore)
	assert.Equal(t, 6, resp.Total)

	rec, resp = get(t, h, "?more=true", true)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, resp.Bookings, 6)
	assert.Equal(t, 2, resp.Page)
	assert.False(t, resp.HasMore)

	// Без more список загружается заново
	rec, resp = get(t, h, "", true)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, resp.Bookings, 4)
}

func TestHandleFilter(t *testing.T) {
	h := newHandler(t)

	rec, resp := get(t, h, "?role=stylist", true)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, resp.Bookings)
	assert.Equal(t, "stylist", resp.Role)

	rec, resp = get(t, h, "?role=customer&status=CANCELLED", true)
	require.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, resp.Status)
	assert.Equal(t, "CANCELLED", *resp.Status)
	for _, b := range resp.Bookings {
		assert.Equal(t, "CANCELLED", b.Status)
	}
}

func TestHandleInvalid(t *testing.T) {
	h := newHandler(t)

	rec, _ := get(t, h, "?status=LOST", true)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec, _ = get(t, h, "?role=admin", true)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec, _ = get(t, h, "", false)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
