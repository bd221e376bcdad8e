package lifecycleapi

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-BookingLifecycle/internal/domain"
	"github.com/m04kA/SMC-BookingLifecycle/pkg/logger"
	"github.com/m04kA/SMC-BookingLifecycle/pkg/metrics"
)

var (
	actor = domain.Actor{ID: "cust-1", Token: "secret-token"}
	start = time.Date(2026, 9, 1, 9, 0, 0, 0, time.UTC)
)

const bookingJSON = `{
	"id": "bk-1",
	"customerId": "cust-1",
	"stylistId": "sty-1",
	"stylist": {"id": "sty-1", "displayName": "Ama", "verificationStatus": "VERIFIED"},
	"serviceId": "svc-1",
	"service": {"id": "svc-1", "name": "Knotless braids", "priceAmount": "500.00", "estimatedDurationMin": 180},
	"scheduledStartTime": "2026-09-01T09:00:00Z",
	"locationType": "STYLIST_BASE",
	"locationAddress": "12 Palm Ave",
	"totalAmount": "500.00",
	"platformFee": "50.00",
	"status": "PENDING_PAYMENT",
	"createdAt": "2026-08-20T10:00:00Z"
}`

func newTestClient(t *testing.T, handler http.HandlerFunc, opts ...Option) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewClient(srv.URL, 5*time.Second, logger.NewNop(), opts...)
}

func writeJSON(w http.ResponseWriter, status int, body string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write([]byte(body))
}

func TestCreate(t *testing.T) {
	var got CreateBookingRequest
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/bookings", r.URL.Path)
		assert.Equal(t, "Bearer secret-token", r.Header.Get("Authorization"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		writeJSON(w, http.StatusCreated, bookingJSON)
	})

	b, err := client.Create(context.Background(), actor, domain.CreateBookingRequest{
		StylistID:      "sty-1",
		ServiceID:      "svc-1",
		ScheduledStart: start,
		Location:       domain.LocationRequest{Kind: domain.LocationProviderBase, Address: "12 Palm Ave"},
	})
	require.NoError(t, err)

	assert.Equal(t, "2026-09-01T09:00:00Z", got.ScheduledStartTime)
	assert.Equal(t, "STYLIST_BASE", got.LocationType)
	assert.Nil(t, got.LocationLat)

	assert.Equal(t, "bk-1", b.ID)
	assert.Equal(t, domain.StatusPendingPayment, b.Status)
	assert.Equal(t, int64(50000), b.TotalAmount)
	assert.Equal(t, int64(5000), b.PlatformFee)
	assert.Equal(t, int64(50000), b.Service.PriceMinor)
	assert.Equal(t, 180, b.Service.EstimatedDuration)
	assert.True(t, b.Stylist.Verified)
	assert.True(t, b.ScheduledStart.Equal(start))
}

func TestCreateErrorCodes(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
		want   error
	}{
		{"slot code", http.StatusConflict, `{"error":{"code":"SLOT_UNAVAILABLE","message":"taken"}}`, domain.ErrSlotUnavailable},
		{"stylist code", http.StatusBadRequest, `{"error":{"code":"STYLIST_UNAVAILABLE","message":"away"}}`, domain.ErrProviderUnavailable},
		{"service code", http.StatusNotFound, `{"error":{"code":"SERVICE_NOT_FOUND","message":"gone"}}`, domain.ErrServiceNotFound},
		{"conflict without code", http.StatusConflict, `slot taken`, domain.ErrSlotUnavailable},
		{"server error", http.StatusBadGateway, `upstream down`, domain.ErrRequestFailed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				writeJSON(w, tt.status, tt.body)
			})

			_, err := client.Create(context.Background(), actor, domain.CreateBookingRequest{})
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.want)

			var remote *RemoteError
			require.ErrorAs(t, err, &remote)
			assert.Equal(t, tt.status, remote.Status)
			assert.NotEmpty(t, remote.Message)
		})
	}
}

func TestServerErrorKeepsRawMessage(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusInternalServerError, `{"error":{"message":"database is on fire"}}`)
	})

	_, err := client.Get(context.Background(), actor, "bk-1")
	assert.ErrorIs(t, err, domain.ErrRequestFailed)
	assert.Contains(t, err.Error(), "database is on fire")
}

func TestEveryRequestCarriesFreshRequestID(t *testing.T) {
	var ids []string
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		ids = append(ids, r.Header.Get(headerRequestID))
		writeJSON(w, http.StatusOK, bookingJSON)
	})

	for range 2 {
		_, err := client.Get(context.Background(), actor, "bk-1")
		require.NoError(t, err)
	}

	require.Len(t, ids, 2)
	assert.Regexp(t, `^[0-9a-f]{8}-[0-9a-f]{4}-[0-9a-f]{4}-[0-9a-f]{4}-[0-9a-f]{12}$`, ids[0])
	assert.NotEqual(t, ids[0], ids[1])
}

func TestListEncodesQueryAndNeverFailsOnEmpty(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/bookings", r.URL.Path)
		assert.Equal(t, "CONFIRMED", r.URL.Query().Get("status"))
		assert.Equal(t, "stylist", r.URL.Query().Get("role"))
		assert.Equal(t, "2", r.URL.Query().Get("page"))
		assert.Equal(t, "10", r.URL.Query().Get("limit"))
		writeJSON(w, http.StatusOK, `{"bookings":[],"total":0,"page":2,"limit":10,"hasMore":false}`)
	})

	status := domain.StatusConfirmed
	page, err := client.List(context.Background(), actor, domain.ListFilter{Status: &status, Role: domain.RoleStylist}, 2, 10)
	require.NoError(t, err)
	assert.Empty(t, page.Bookings)
	assert.False(t, page.HasMore)
}

func TestListPage(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Empty(t, r.URL.Query().Get("status"))
		writeJSON(w, http.StatusOK, `{"bookings":[`+bookingJSON+`],"total":11,"page":1,"limit":10,"hasMore":true}`)
	})

	page, err := client.List(context.Background(), actor, domain.ListFilter{}, 1, 10)
	require.NoError(t, err)
	require.Len(t, page.Bookings, 1)
	assert.True(t, page.HasMore)
	assert.Equal(t, 11, page.Total)
}

func TestGetNotFound(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/bookings/bk-404", r.URL.Path)
		writeJSON(w, http.StatusNotFound, `{"error":{"code":"BOOKING_NOT_FOUND","message":"no such booking"}}`)
	})

	_, err := client.Get(context.Background(), actor, "bk-404")
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.False(t, domain.IsRetryable(err))
}

func TestCancel(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/bookings/bk-1/cancel", r.URL.Path)
		var body CancelBookingRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "sick", body.Reason)
		writeJSON(w, http.StatusConflict, `{}`)
	})

	_, err := client.Cancel(context.Background(), actor, "bk-1", "sick")
	assert.ErrorIs(t, err, domain.ErrCannotCancel)
}

func TestUpdateStatus(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPatch, r.Method)
		assert.Equal(t, "/bookings/bk-1/status", r.URL.Path)
		var body UpdateStatusRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "IN_PROGRESS", body.Status)
		writeJSON(w, http.StatusOK, `{"id":"bk-1","status":"IN_PROGRESS","scheduledStartTime":"2026-09-01T09:00:00Z","totalAmount":"10.00","platformFee":"1.00"}`)
	})

	b, err := client.UpdateStatus(context.Background(), actor, "bk-1", domain.StatusInProgress, nil)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusInProgress, b.Status)
}

func TestConfirmPayment(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		var body ConfirmPaymentRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "0xabc", body.EscrowTxHash)
		assert.True(t, body.SkipOnChainVerification)
		writeJSON(w, http.StatusOK, `{"booking":`+bookingJSON+`,"message":"ok","escrow":{"txHash":"0xabc","amount":"500.00","status":"LOCKED"}}`)
	})

	res, err := client.ConfirmPayment(context.Background(), actor, "bk-1", "0xabc", domain.ConfirmPaymentOptions{SkipOnChainVerification: true})
	require.NoError(t, err)
	assert.Equal(t, "ok", res.Message)
	require.NotNil(t, res.Escrow)
	assert.Equal(t, int64(50000), res.Escrow.AmountMinor)
}

func TestConfirmPaymentEscrowErrors(t *testing.T) {
	for code, want := range map[string]error{
		"ESCROW_NOT_FOUND":       domain.ErrEscrowNotFound,
		"ESCROW_AMOUNT_MISMATCH": domain.ErrEscrowMismatch,
	} {
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			writeJSON(w, http.StatusBadRequest, `{"error":{"code":"`+code+`","message":"escrow problem"}}`)
		})

		_, err := client.ConfirmPayment(context.Background(), actor, "bk-1", "0xabc", domain.ConfirmPaymentOptions{})
		assert.ErrorIs(t, err, want, code)
	}
}

func TestStats(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/bookings/stats", r.URL.Path)
		writeJSON(w, http.StatusOK, `{"asCustomer":{"total":3,"completed":1,"totalSpent":"120.50"},"asStylist":{"total":2,"pending":2,"totalEarned":"0.00"}}`)
	})

	stats, err := client.Stats(context.Background(), actor)
	require.NoError(t, err)
	assert.Equal(t, 3, stats.AsCustomer.Total)
	assert.Equal(t, int64(12050), stats.AsCustomer.AmountMinor)
	assert.Equal(t, 2, stats.AsStylist.Pending)
}

func TestAvailability(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/stylists/sty-1/availability", r.URL.Path)
		assert.Equal(t, "2026-09-01", r.URL.Query().Get("date"))
		writeJSON(w, http.StatusOK, `{"date":"2026-09-01","slots":[{"startTime":"09:00","available":true},{"startTime":"09:30","available":false}]}`)
	})

	slots, err := client.Availability(context.Background(), actor, "sty-1", start)
	require.NoError(t, err)
	require.Len(t, slots, 2)
	assert.Equal(t, "09:30", slots[1].StartTime.String())
	assert.False(t, slots[1].Available)
}

func TestInvalidResponses(t *testing.T) {
	t.Run("bad money invariant", func(t *testing.T) {
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			writeJSON(w, http.StatusOK, `{"id":"bk-1","status":"CONFIRMED","scheduledStartTime":"2026-09-01T09:00:00Z","totalAmount":"1.00","platformFee":"5.00"}`)
		})
		_, err := client.Get(context.Background(), actor, "bk-1")
		assert.ErrorIs(t, err, ErrInvalidResponse)
		assert.Equal(t, domain.ErrRequestFailed, domain.KindOf(err))
	})

	t.Run("unknown status", func(t *testing.T) {
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			writeJSON(w, http.StatusOK, `{"id":"bk-1","status":"ARCHIVED","scheduledStartTime":"2026-09-01T09:00:00Z"}`)
		})
		_, err := client.Get(context.Background(), actor, "bk-1")
		assert.ErrorIs(t, err, ErrInvalidResponse)
	})

	t.Run("bad slot time", func(t *testing.T) {
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			writeJSON(w, http.StatusOK, `{"date":"2026-09-01","slots":[{"startTime":"9am","available":true}]}`)
		})
		_, err := client.Availability(context.Background(), actor, "sty-1", start)
		assert.ErrorIs(t, err, ErrInvalidResponse)
	})
}

func TestNetworkFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close()

	client := NewClient(srv.URL, time.Second, logger.NewNop())
	_, err := client.Stats(context.Background(), actor)
	assert.ErrorIs(t, err, domain.ErrRequestFailed)
	assert.True(t, domain.IsRetryable(err))
}

func TestNoAutomaticRetry(t *testing.T) {
	var calls atomic.Int32
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		writeJSON(w, http.StatusServiceUnavailable, `busy`)
	})

	_, err := client.Cancel(context.Background(), actor, "bk-1", "")
	require.Error(t, err)
	assert.Equal(t, int32(1), calls.Load())
}

func TestMetricsAreRecorded(t *testing.T) {
	m := metrics.NewWithRegisterer("test", prometheus.NewRegistry())
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, bookingJSON)
	}, WithMetrics(m), WithRateLimit(1000, 10))

	_, err := client.Get(context.Background(), actor, "bk-1")
	require.NoError(t, err)

	assert.Equal(t, 1.0, testutil.ToFloat64(m.GatewayRequestsTotal.WithLabelValues(opGet, metrics.OutcomeSuccess)))
}

func TestRateLimiterHonoursContext(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, bookingJSON)
	}, WithRateLimit(0.001, 1))

	_, err := client.Get(context.Background(), actor, "bk-1")
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()
	_, err = client.Get(ctx, actor, "bk-1")
	assert.ErrorIs(t, err, domain.ErrRequestFailed)
}
