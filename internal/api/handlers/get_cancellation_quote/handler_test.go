package get_cancellation_quote

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-BookingLifecycle/internal/config"
	"github.com/m04kA/SMC-BookingLifecycle/internal/domain"
	"github.com/m04kA/SMC-BookingLifecycle/internal/integrations/simulated"
	"github.com/m04kA/SMC-BookingLifecycle/internal/service/bookings"
	"github.com/m04kA/SMC-BookingLifecycle/pkg/logger"
)

var actor = domain.Actor{ID: "cust-1", Token: "token"}

func TestHandleLoadsMissingBooking(t *testing.T) {
	log := logger.NewNop()
	provider := simulated.NewProvider(simulated.Config{
		Seed:               3,
		Stylists:           4,
		ServicesPerStylist: 2,
		BookingsPerActor:   6,
	}, nil, log)
	store := bookings.NewStore(nil, provider, config.NewMode(true), log)
	h := NewHandler(store, log)

	ctx := domain.WithActor(context.Background(), actor)
	page, err := provider.List(ctx, actor, domain.ListFilter{}, 1, 10)
	require.NoError(t, err)
	require.NotEmpty(t, page.Bookings)
	target := page.Bookings[0]

	quote := func(id string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodGet, "/api/v1/bookings/"+id+"/cancellation-quote", nil)
		req = mux.SetURLVars(req.WithContext(ctx), map[string]string{"bookingId": id})
		rec := httptest.NewRecorder()
		h.Handle(rec, req)
		return rec
	}

	rec := quote(target.ID)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp QuoteResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, target.ID, resp.BookingID)
	assert.Contains(t, []int{0, 50, 75, 100}, resp.RefundPercentage)
	assert.Equal(t, target.TotalAmount, resp.RefundAmount.Minor()+resp.StylistFee.Minor())
	assert.Equal(t, target.CanBeCancelled(time.Now()), resp.Cancellable)

	assert.Equal(t, http.StatusNotFound, quote("missing").Code)
}
