package get_available_slots

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-BookingLifecycle/internal/domain"
	"github.com/m04kA/SMC-BookingLifecycle/pkg/logger"
	"github.com/m04kA/SMC-BookingLifecycle/pkg/types"
)

type fakeSource struct {
	calls int
	date  time.Time
	slots []domain.AvailabilitySlot
	err   error
}

func (f *fakeSource) Availability(_ context.Context, _ domain.Actor, _ string, date time.Time) ([]domain.AvailabilitySlot, error) {
	f.calls++
	f.date = date
	return f.slots, f.err
}

type mode bool

func (m mode) Simulated() bool {
	return bool(m)
}

type countingMetrics struct {
	fallbacks int
}

func (m *countingMetrics) ObserveSlotFallback() {
	m.fallbacks++
}

type fixedTime struct {
	now time.Time
}

func (f *fixedTime) Now() time.Time {
	return f.now
}

var (
	now = time.Date(2026, 9, 1, 10, 15, 0, 0, time.UTC)
	ctx = domain.WithActor(context.Background(), domain.Actor{ID: "cust-1", Token: "t"})
)

func newUseCase(live, sim *fakeSource, simulated bool, m *countingMetrics) *UseCase {
	uc := NewUseCase(live, sim, mode(simulated), domain.DefaultSlotConfig, time.UTC, m, logger.NewNop())
	uc.timeProvider = &fixedTime{now: now}
	return uc
}

func remoteSlots() []domain.AvailabilitySlot {
	return []domain.AvailabilitySlot{
		{StartTime: types.TimeString("09:00"), Available: true},
		{StartTime: types.TimeString("09:30"), Available: false},
	}
}

func TestExecuteLive(t *testing.T) {
	live := &fakeSource{slots: remoteSlots()}
	sim := &fakeSource{}
	uc := newUseCase(live, sim, false, &countingMetrics{})

	resp, err := uc.Execute(ctx, &Request{StylistID: "sty-1", Date: now.AddDate(0, 0, 1)})
	require.NoError(t, err)

	assert.Equal(t, domain.SlotSourceRemote, resp.Source)
	assert.Equal(t, remoteSlots(), resp.Slots)
	assert.Equal(t, 1, live.calls)
	assert.Zero(t, sim.calls)
	assert.Equal(t, 0, live.date.Hour())
}

func TestExecuteSimulated(t *testing.T) {
	live := &fakeSource{}
	sim := &fakeSource{slots: remoteSlots()}
	uc := newUseCase(live, sim, true, &countingMetrics{})

	resp, err := uc.Execute(ctx, &Request{StylistID: "sty-1", Date: now})
	require.NoError(t, err)
	assert.Equal(t, remoteSlots(), resp.Slots)
	assert.Zero(t, live.calls)
	assert.Equal(t, 1, sim.calls)
}

func TestExecuteFallsBackToGenerator(t *testing.T) {
	live := &fakeSource{err: fmt.Errorf("%w: dial tcp: refused", domain.ErrRequestFailed)}
	m := &countingMetrics{}
	uc := newUseCase(live, &fakeSource{}, false, m)

	resp, err := uc.Execute(ctx, &Request{StylistID: "sty-1", Date: now.AddDate(0, 0, 1), DurationMinutes: 60})
	require.NoError(t, err)

	assert.Equal(t, domain.SlotSourceGenerated, resp.Source)
	require.Len(t, resp.Slots, 19)
	assert.Equal(t, "08:00", resp.Slots[0].StartTime.String())
	assert.Equal(t, "17:00", resp.Slots[18].StartTime.String())
	assert.Equal(t, 1, m.fallbacks)
}

func TestExecuteFallbackToday(t *testing.T) {
	live := &fakeSource{err: domain.ErrRequestFailed}
	uc := newUseCase(live, &fakeSource{}, false, &countingMetrics{})

	resp, err := uc.Execute(ctx, &Request{StylistID: "sty-1", Date: now})
	require.NoError(t, err)
	require.NotEmpty(t, resp.Slots)
	assert.Equal(t, "10:30", resp.Slots[0].StartTime.String())
}

func TestExecuteDoesNotMaskDomainErrors(t *testing.T) {
	live := &fakeSource{err: fmt.Errorf("%w: stylist", domain.ErrNotFound)}
	m := &countingMetrics{}
	uc := newUseCase(live, &fakeSource{}, false, m)

	_, err := uc.Execute(ctx, &Request{StylistID: "sty-1", Date: now})
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.Zero(t, m.fallbacks)
}

func TestExecuteValidation(t *testing.T) {
	uc := newUseCase(&fakeSource{}, &fakeSource{}, false, &countingMetrics{})

	for _, req := range []*Request{
		{Date: now},
		{StylistID: "sty-1"},
		{StylistID: "sty-1", Date: now, DurationMinutes: -30},
	} {
		_, err := uc.Execute(ctx, req)
		assert.ErrorIs(t, err, domain.ErrInvalidInput)
	}

	_, err := uc.Execute(context.Background(), &Request{StylistID: "sty-1", Date: now})
	assert.ErrorIs(t, err, domain.ErrUnauthenticated)
}

func TestExecuteFallbackUsesScheduleLocation(t *testing.T) {
	sast := time.FixedZone("SAST", 2*3600)
	live := &fakeSource{err: domain.ErrRequestFailed}
	uc := NewUseCase(live, &fakeSource{}, mode(false), domain.DefaultSlotConfig, sast, &countingMetrics{}, logger.NewNop())
	// 08:15 UTC = 10:15 SAST
	uc.timeProvider = &fixedTime{now: time.Date(2026, 10, 14, 8, 15, 0, 0, time.UTC)}

	// Дата из запроса разобрана в UTC
	resp, err := uc.Execute(ctx, &Request{
		StylistID:       "sty-1",
		Date:            time.Date(2026, 10, 14, 0, 0, 0, 0, time.UTC),
		DurationMinutes: 60,
	})
	require.NoError(t, err)

	require.Len(t, resp.Slots, 14)
	assert.Equal(t, "10:30", resp.Slots[0].StartTime.String())
	assert.Equal(t, "17:00", resp.Slots[13].StartTime.String())
	assert.Equal(t, sast, live.date.Location())
}

func TestNewUseCaseDefaultsToUTC(t *testing.T) {
	uc := NewUseCase(&fakeSource{}, &fakeSource{}, mode(false), domain.DefaultSlotConfig, nil, nil, logger.NewNop())
	assert.Equal(t, time.UTC, uc.location)
}
