// Package simulated serves demo bookings from an in-memory fixture set.
// It applies the same lifecycle rules as the remote service so the store cannot tell them apart.
package simulated

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/brianvoe/gofakeit/v7"

	"github.com/m04kA/SMC-BookingLifecycle/internal/domain"
	"github.com/m04kA/SMC-BookingLifecycle/internal/policy"
	"github.com/m04kA/SMC-BookingLifecycle/internal/scheduling"
	"github.com/m04kA/SMC-BookingLifecycle/pkg/ptr"
	"github.com/m04kA/SMC-BookingLifecycle/pkg/types"
)

const (
	escrowStatusLocked  = "LOCKED"
	escrowStatusSkipped = "UNVERIFIED"

	msgPaymentConfirmed = "Payment confirmed, booking is now confirmed"
)

// Provider источник демо-данных с тем же набором методов, что и lifecycleapi.Client
type Provider struct {
	mu sync.Mutex

	faker    *gofakeit.Faker
	cfg      Config
	clock    TimeProvider
	log      Logger
	stylists []*Stylist

	// bookings отсортированы от новых к старым
	bookings []*domain.Booking
	seeded   map[string]bool
	escrows  map[string]domain.EscrowRecord
}

// NewProvider создает провайдер и генерирует каталог мастеров из cfg.Seed.
// Нулевой seed дает случайные данные.
func NewProvider(cfg Config, clock TimeProvider, log Logger) *Provider {
	if clock == nil {
		clock = &RealTimeProvider{}
	}
	if cfg.Location == nil {
		cfg.Location = time.UTC
	}
	if cfg.Slots.StepMinutes <= 0 {
		cfg.Slots = domain.DefaultSlotConfig
	}

	f := gofakeit.New(cfg.Seed)
	p := &Provider{
		faker:    f,
		cfg:      cfg,
		clock:    clock,
		log:      log,
		stylists: newStylists(f, cfg),
		seeded:   make(map[string]bool),
		escrows:  make(map[string]domain.EscrowRecord),
	}

	log.Info("simulated: generated %d stylists (seed=%d)", len(p.stylists), cfg.Seed)
	return p
}

// Stylists возвращает копию каталога мастеров
func (p *Provider) Stylists() []Stylist {
	p.mu.Lock()
	defer p.mu.Unlock()

	out := make([]Stylist, 0, len(p.stylists))
	for _, s := range p.stylists {
		c := *s
		c.Services = append([]domain.ServiceSnapshot(nil), s.Services...)
		out = append(out, c)
	}
	return out
}

// RegisterEscrow блокирует демо-расчет на сумму amountMinor.
// Ссылку из записи затем передают в ConfirmPayment.
func (p *Provider) RegisterEscrow(amountMinor int64) (domain.EscrowRecord, error) {
	if amountMinor <= 0 {
		return domain.EscrowRecord{}, fmt.Errorf("%w: escrow amount must be positive", domain.ErrInvalidInput)
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	ref := newReference(p.faker)
	escrow := domain.EscrowRecord{Reference: ref, AmountMinor: amountMinor, Status: escrowStatusLocked}
	p.escrows[ref] = escrow

	p.log.Info("simulated RegisterEscrow: locked %d under %s", amountMinor, ref)
	return escrow, nil
}

// Create создает бронирование в статусе PENDING_PAYMENT
func (p *Provider) Create(ctx context.Context, actor domain.Actor, req domain.CreateBookingRequest) (*domain.Booking, error) {
	if err := p.wait(ctx); err != nil {
		return nil, err
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	p.ensureSeeded(actor.ID)

	now := p.clock.Now()

	stylist := p.findStylist(req.StylistID)
	if stylist == nil || !stylist.Available {
		p.log.Warn("simulated Create: stylist %s unavailable", req.StylistID)
		return nil, fmt.Errorf("%w: stylist %s", domain.ErrProviderUnavailable, req.StylistID)
	}

	service, ok := stylist.findService(req.ServiceID)
	if !ok {
		p.log.Warn("simulated Create: service %s not found at stylist %s", req.ServiceID, req.StylistID)
		return nil, fmt.Errorf("%w: service %s", domain.ErrServiceNotFound, req.ServiceID)
	}

	if !req.Location.Kind.IsValid() || req.Location.Address == "" {
		return nil, fmt.Errorf("%w: location is required", domain.ErrInvalidInput)
	}

	if !req.ScheduledStart.After(now) {
		return nil, fmt.Errorf("%w: start %s is in the past", domain.ErrSlotUnavailable, req.ScheduledStart.Format(time.RFC3339))
	}

	localStart := req.ScheduledStart.In(p.cfg.Location)
	if !p.cfg.Slots.Window.Contains(types.NewTimeString(localStart), service.EstimatedDuration) {
		return nil, fmt.Errorf("%w: %s is outside operating hours", domain.ErrSlotUnavailable, localStart.Format(domain.TimeFormat))
	}

	duration := time.Duration(service.EstimatedDuration) * time.Minute
	for _, b := range p.bookings {
		if b.Stylist.ID == stylist.Summary.ID && b.IsActive() && b.Overlaps(req.ScheduledStart, duration) {
			p.log.Warn("simulated Create: slot %s overlaps booking %s", localStart.Format(time.RFC3339), b.ID)
			return nil, fmt.Errorf("%w: overlaps an existing booking", domain.ErrSlotUnavailable)
		}
	}

	price, err := policy.CalculatePrice(service.PriceMinor, req.Location.Kind.HasTravelFee())
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
	}

	b := &domain.Booking{
		ID:             p.faker.UUID(),
		CustomerID:     actor.ID,
		Stylist:        stylist.Summary,
		Service:        service,
		ScheduledStart: req.ScheduledStart.UTC(),
		Location: domain.Location{
			Kind:      req.Location.Kind,
			Address:   req.Location.Address,
			Latitude:  req.Location.Latitude,
			Longitude: req.Location.Longitude,
		},
		TotalAmount: price.TotalAmount,
		PlatformFee: price.PlatformFee,
		Status:      domain.StatusPendingPayment,
		Notes:       req.Notes,
		CreatedAt:   now.UTC(),
	}
	// Не храним указатели вызывающего
	b = b.Clone()

	p.bookings = append([]*domain.Booking{b}, p.bookings...)
	p.log.Info("simulated Create: booking %s created for actor %s", b.ID, actor.ID)

	return b.Clone(), nil
}

// List возвращает страницу бронирований пользователя
func (p *Provider) List(ctx context.Context, actor domain.Actor, filter domain.ListFilter, page, limit int) (*domain.BookingPage, error) {
	if err := p.wait(ctx); err != nil {
		return nil, err
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	p.ensureSeeded(actor.ID)

	if page < 1 {
		page = 1
	}
	if limit <= 0 {
		limit = domain.DefaultPageSize
	}
	if limit > domain.MaxPageSize {
		limit = domain.MaxPageSize
	}

	matched := make([]*domain.Booking, 0)
	for _, b := range p.bookings {
		if filter.Matches(b, actor.ID) {
			matched = append(matched, b)
		}
	}

	offset := (page - 1) * limit
	end := min(offset+limit, len(matched))

	bookings := make([]*domain.Booking, 0, limit)
	for i := offset; i < end; i++ {
		bookings = append(bookings, matched[i].Clone())
	}

	return &domain.BookingPage{
		Bookings: bookings,
		Total:    len(matched),
		Page:     page,
		Limit:    limit,
		HasMore:  end < len(matched),
	}, nil
}

// Get возвращает бронирование по ID
func (p *Provider) Get(ctx context.Context, actor domain.Actor, id string) (*domain.Booking, error) {
	if err := p.wait(ctx); err != nil {
		return nil, err
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	p.ensureSeeded(actor.ID)

	b, err := p.findBooking(actor.ID, id)
	if err != nil {
		return nil, err
	}
	return b.Clone(), nil
}

// Cancel отменяет бронирование, если оно еще не началось
func (p *Provider) Cancel(ctx context.Context, actor domain.Actor, id, reason string) (*domain.Booking, error) {
	if err := p.wait(ctx); err != nil {
		return nil, err
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	p.ensureSeeded(actor.ID)

	b, err := p.findBooking(actor.ID, id)
	if err != nil {
		return nil, err
	}

	if err := p.cancel(b, reason); err != nil {
		return nil, err
	}

	p.log.Info("simulated Cancel: booking %s cancelled", id)
	return b.Clone(), nil
}

// UpdateStatus переводит бронирование в новый статус по таблице переходов
func (p *Provider) UpdateStatus(ctx context.Context, actor domain.Actor, id string, status domain.Status, settlementRef *string) (*domain.Booking, error) {
	if err := p.wait(ctx); err != nil {
		return nil, err
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	p.ensureSeeded(actor.ID)

	b, err := p.findBooking(actor.ID, id)
	if err != nil {
		return nil, err
	}

	if !domain.CanTransition(b.Status, status) {
		return nil, fmt.Errorf("%w: %s -> %s", domain.ErrInvalidTransition, b.Status, status)
	}

	switch status {
	case domain.StatusCancelled:
		if err := p.cancel(b, ""); err != nil {
			return nil, err
		}
	case domain.StatusCompleted:
		b.Status = status
		b.CompletedAt = ptr.Ptr(p.clock.Now().UTC())
	default:
		b.Status = status
	}

	if settlementRef != nil {
		b.SettlementRef = ptr.Ptr(*settlementRef)
	}

	p.log.Info("simulated UpdateStatus: booking %s is now %s", id, b.Status)
	return b.Clone(), nil
}

// ConfirmPayment прикрепляет ссылку на расчет и подтверждает бронирование
func (p *Provider) ConfirmPayment(ctx context.Context, actor domain.Actor, id, settlementRef string, opts domain.ConfirmPaymentOptions) (*domain.PaymentConfirmation, error) {
	if err := p.wait(ctx); err != nil {
		return nil, err
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	p.ensureSeeded(actor.ID)

	b, err := p.findBooking(actor.ID, id)
	if err != nil {
		return nil, err
	}

	if !domain.CanTransition(b.Status, domain.StatusConfirmed) {
		return nil, fmt.Errorf("%w: %s -> %s", domain.ErrInvalidTransition, b.Status, domain.StatusConfirmed)
	}

	escrow, ok := p.escrows[settlementRef]
	switch {
	case opts.SkipOnChainVerification:
		escrow = domain.EscrowRecord{Reference: settlementRef, AmountMinor: b.TotalAmount, Status: escrowStatusSkipped}
	case !ok:
		p.log.Warn("simulated ConfirmPayment: escrow %s not found", settlementRef)
		return nil, fmt.Errorf("%w: %s", domain.ErrEscrowNotFound, settlementRef)
	case escrow.AmountMinor != b.TotalAmount:
		p.log.Warn("simulated ConfirmPayment: escrow %s amount %d, booking total %d", settlementRef, escrow.AmountMinor, b.TotalAmount)
		return nil, fmt.Errorf("%w: escrow %d, booking %d", domain.ErrEscrowMismatch, escrow.AmountMinor, b.TotalAmount)
	}

	b.Status = domain.StatusConfirmed
	b.SettlementRef = ptr.Ptr(settlementRef)

	p.log.Info("simulated ConfirmPayment: booking %s confirmed", id)
	return &domain.PaymentConfirmation{
		Booking: b.Clone(),
		Message: msgPaymentConfirmed,
		Escrow:  &escrow,
	}, nil
}

// Stats считает статистику пользователя в роли клиента и мастера
func (p *Provider) Stats(ctx context.Context, actor domain.Actor) (*domain.BookingStats, error) {
	if err := p.wait(ctx); err != nil {
		return nil, err
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	p.ensureSeeded(actor.ID)

	stats := &domain.BookingStats{}
	for _, b := range p.bookings {
		if b.CustomerID == actor.ID {
			stats.AsCustomer.Add(b)
		}
		if b.Stylist.ID == actor.ID {
			stats.AsStylist.Add(b)
		}
	}
	return stats, nil
}

// Availability генерирует слоты мастера с шагом сетки и отмечает занятые
func (p *Provider) Availability(ctx context.Context, actor domain.Actor, stylistID string, date time.Time) ([]domain.AvailabilitySlot, error) {
	if err := p.wait(ctx); err != nil {
		return nil, err
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	p.ensureSeeded(actor.ID)

	stylist := p.findStylist(stylistID)
	if stylist == nil {
		return nil, fmt.Errorf("%w: stylist %s", domain.ErrNotFound, stylistID)
	}

	day := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, p.cfg.Location)
	step := p.cfg.Slots.StepMinutes

	slots, err := scheduling.GenerateSlots(day, step, p.cfg.Slots, p.clock.Now())
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
	}

	if !stylist.Available {
		for i := range slots {
			slots[i].Available = false
		}
		return slots, nil
	}

	own := make([]*domain.Booking, 0)
	for _, b := range p.bookings {
		if b.Stylist.ID == stylistID {
			own = append(own, b)
		}
	}

	return scheduling.MarkBooked(slots, day, step, own), nil
}

// cancel применяет правила отмены к записи, мьютекс должен быть захвачен
func (p *Provider) cancel(b *domain.Booking, reason string) error {
	now := p.clock.Now()
	if !b.CanBeCancelled(now) {
		return fmt.Errorf("%w: booking %s status=%s", domain.ErrCannotCancel, b.ID, b.Status)
	}

	b.Status = domain.StatusCancelled
	b.CancelledAt = ptr.Ptr(now.UTC())
	if reason != "" {
		b.CancellationReason = ptr.Ptr(reason)
	}
	return nil
}

// ensureSeeded генерирует историю пользователя при первом обращении
func (p *Provider) ensureSeeded(actorID string) {
	if actorID == "" || p.seeded[actorID] {
		return
	}
	p.seeded[actorID] = true

	fixtures := newBookings(p.faker, p.stylists, actorID, p.cfg.BookingsPerActor, p.clock.Now(), p.cfg.Location)
	p.bookings = append(p.bookings, fixtures...)
	p.log.Info("simulated: seeded %d bookings for actor %s", len(fixtures), actorID)
}

func (p *Provider) findStylist(id string) *Stylist {
	for _, s := range p.stylists {
		if s.Summary.ID == id {
			return s
		}
	}
	return nil
}

// findBooking ищет бронирование, видимое пользователю
func (p *Provider) findBooking(actorID, id string) (*domain.Booking, error) {
	for _, b := range p.bookings {
		if b.ID == id && (b.CustomerID == actorID || b.Stylist.ID == actorID) {
			return b, nil
		}
	}
	return nil, fmt.Errorf("%w: booking %s", domain.ErrNotFound, id)
}

// wait имитирует сетевую задержку
func (p *Provider) wait(ctx context.Context) error {
	if p.cfg.Latency <= 0 {
		return nil
	}

	timer := time.NewTimer(p.cfg.Latency)
	defer timer.Stop()

	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return fmt.Errorf("%w: %v", domain.ErrRequestFailed, ctx.Err())
	}
}
