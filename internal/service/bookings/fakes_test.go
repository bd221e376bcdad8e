package bookings

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"time"

	"github.com/m04kA/SMC-BookingLifecycle/internal/domain"
)

var errNotConfigured = errors.New("fake source: not configured")

// fakeSource источник с подменяемым поведением каждого метода
type fakeSource struct {
	mu    sync.Mutex
	calls map[string]int

	createFn  func(req domain.CreateBookingRequest) (*domain.Booking, error)
	listFn    func(filter domain.ListFilter, page, limit int) (*domain.BookingPage, error)
	getFn     func(id string) (*domain.Booking, error)
	cancelFn  func(id, reason string) (*domain.Booking, error)
	updateFn  func(id string, status domain.Status) (*domain.Booking, error)
	confirmFn func(id, ref string) (*domain.PaymentConfirmation, error)
	statsFn   func() (*domain.BookingStats, error)
}

func newFakeSource() *fakeSource {
	return &fakeSource{calls: make(map[string]int)}
}

func (f *fakeSource) record(name string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls[name]++
}

func (f *fakeSource) count(name string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls[name]
}

func (f *fakeSource) Create(_ context.Context, _ domain.Actor, req domain.CreateBookingRequest) (*domain.Booking, error) {
	f.record("create")
	if f.createFn == nil {
		return nil, errNotConfigured
	}
	return f.createFn(req)
}

func (f *fakeSource) List(_ context.Context, _ domain.Actor, filter domain.ListFilter, page, limit int) (*domain.BookingPage, error) {
	f.record("list")
	if f.listFn == nil {
		return nil, errNotConfigured
	}
	return f.listFn(filter, page, limit)
}

func (f *fakeSource) Get(_ context.Context, _ domain.Actor, id string) (*domain.Booking, error) {
	f.record("get")
	if f.getFn == nil {
		return nil, errNotConfigured
	}
	return f.getFn(id)
}

func (f *fakeSource) Cancel(_ context.Context, _ domain.Actor, id, reason string) (*domain.Booking, error) {
	f.record("cancel")
	if f.cancelFn == nil {
		return nil, errNotConfigured
	}
	return f.cancelFn(id, reason)
}

func (f *fakeSource) UpdateStatus(_ context.Context, _ domain.Actor, id string, status domain.Status, _ *string) (*domain.Booking, error) {
	f.record("update_status")
	if f.updateFn == nil {
		return nil, errNotConfigured
	}
	return f.updateFn(id, status)
}

func (f *fakeSource) ConfirmPayment(_ context.Context, _ domain.Actor, id, ref string, _ domain.ConfirmPaymentOptions) (*domain.PaymentConfirmation, error) {
	f.record("confirm_payment")
	if f.confirmFn == nil {
		return nil, errNotConfigured
	}
	return f.confirmFn(id, ref)
}

func (f *fakeSource) Stats(_ context.Context, _ domain.Actor) (*domain.BookingStats, error) {
	f.record("stats")
	if f.statsFn == nil {
		return nil, errNotConfigured
	}
	return f.statsFn()
}

type modeFlag struct {
	simulated atomic.Bool
}

func (m *modeFlag) Simulated() bool {
	return m.simulated.Load()
}

type fixedTime struct {
	now time.Time
}

func (f *fixedTime) Now() time.Time {
	return f.now
}

type fakeMetrics struct {
	mu    sync.Mutex
	stale map[string]int
	runs  map[string]int
}

func newFakeMetrics() *fakeMetrics {
	return &fakeMetrics{stale: make(map[string]int), runs: make(map[string]int)}
}

func (m *fakeMetrics) ObserveStoreAction(operation, source string, _ error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.runs[operation+"/"+source]++
}

func (m *fakeMetrics) ObserveStale(operation string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.stale[operation]++
}

func (m *fakeMetrics) staleCount(operation string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.stale[operation]
}

func (m *fakeMetrics) runCount(operation, source string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.runs[operation+"/"+source]
}

// gate блокирует первый вызов до release и сообщает о его начале через started
type gate struct {
	once    sync.Once
	started chan struct{}
	release chan struct{}
}

func newGate() *gate {
	return &gate{started: make(chan struct{}), release: make(chan struct{})}
}

func (g *gate) wait() {
	g.once.Do(func() { close(g.started) })
	<-g.release
}
