package create_booking

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-BookingLifecycle/internal/api/handlers"
	"github.com/m04kA/SMC-BookingLifecycle/internal/domain"
	"github.com/m04kA/SMC-BookingLifecycle/pkg/logger"
)

type fakeStore struct {
	got domain.CreateBookingRequest
	fn  func(req domain.CreateBookingRequest) (*domain.Booking, error)
}

func (f *fakeStore) Create(_ context.Context, req domain.CreateBookingRequest) (*domain.Booking, error) {
	f.got = req
	return f.fn(req)
}

const body = `{
	"stylistId": "sty-1",
	"serviceId": "svc-1",
	"scheduledStartTime": "2026-09-20T10:00:00Z",
	"location": {"type": "STYLIST_BASE", "address": "12 Palm Ave"},
	"notes": "first visit"
}`

func serve(t *testing.T, store *fakeStore, payload string) *httptest.ResponseRecorder {
	t.Helper()
	h := NewHandler(store, logger.NewNop())
	rec := httptest.NewRecorder()
	h.Handle(rec, httptest.NewRequest(http.MethodPost, "/api/v1/bookings", strings.NewReader(payload)))
	return rec
}

func TestHandleCreated(t *testing.T) {
	store := &fakeStore{fn: func(req domain.CreateBookingRequest) (*domain.Booking, error) {
		return &domain.Booking{
			ID:             "bk-1",
			CustomerID:     "cust-1",
			Service:        domain.ServiceSnapshot{ID: req.ServiceID, PriceMinor: 50000, EstimatedDuration: 60},
			ScheduledStart: req.ScheduledStart,
			Location:       domain.Location{Kind: req.Location.Kind, Address: req.Location.Address},
			TotalAmount:    55000,
			PlatformFee:    5000,
			Status:         domain.StatusPendingPayment,
		}, nil
	}}

	rec := serve(t, store, body)
	require.Equal(t, http.StatusCreated, rec.Code)

	assert.Equal(t, "sty-1", store.got.StylistID)
	assert.Equal(t, domain.LocationProviderBase, store.got.Location.Kind)
	assert.True(t, store.got.ScheduledStart.Equal(time.Date(2026, 9, 20, 10, 0, 0, 0, time.UTC)))
	require.NotNil(t, store.got.Notes)
	assert.Equal(t, "first visit", *store.got.Notes)

	var resp handlers.BookingResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "bk-1", resp.ID)
	assert.Equal(t, "PENDING_PAYMENT", resp.Status)
	assert.EqualValues(t, 55000, resp.TotalAmount)
}

func TestHandleBadRequests(t *testing.T) {
	store := &fakeStore{fn: func(domain.CreateBookingRequest) (*domain.Booking, error) {
		t.Fatal("store must not be called")
		return nil, nil
	}}

	assert.Equal(t, http.StatusBadRequest, serve(t, store, `{`).Code)
	assert.Equal(t, http.StatusBadRequest, serve(t, store, `{"scheduledStartTime":"tomorrow"}`).Code)
}

func TestHandleErrors(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
		code   string
	}{
		{"validation", fmt.Errorf("%w: bad", domain.ErrInvalidInput), http.StatusBadRequest, "INVALID_INPUT"},
		{"slot taken", domain.ErrSlotUnavailable, http.StatusConflict, "SLOT_UNAVAILABLE"},
		{"stylist away", domain.ErrProviderUnavailable, http.StatusConflict, "STYLIST_UNAVAILABLE"},
		{"no service", domain.ErrServiceNotFound, http.StatusNotFound, "SERVICE_NOT_FOUND"},
		{"no actor", domain.ErrUnauthenticated, http.StatusUnauthorized, "UNAUTHENTICATED"},
		{"remote down", domain.ErrRequestFailed, http.StatusBadGateway, "REQUEST_FAILED"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := &fakeStore{fn: func(domain.CreateBookingRequest) (*domain.Booking, error) {
				return nil, tt.err
			}}

			rec := serve(t, store, body)
			assert.Equal(t, tt.status, rec.Code)

			var resp handlers.ErrorResponse
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
			assert.Equal(t, tt.code, resp.Code)
			assert.Equal(t, domain.IsRetryable(tt.err), resp.Retryable)
		})
	}
}
