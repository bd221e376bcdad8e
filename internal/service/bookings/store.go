// Package bookings holds the client-side cache of the actor's bookings.
// Every action picks the live or simulated source at the moment it starts.
package bookings

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/m04kA/SMC-BookingLifecycle/internal/domain"
	"github.com/m04kA/SMC-BookingLifecycle/internal/policy"
)

// Store кэш бронирований с постраничной загрузкой и текущей записью для детального просмотра.
// Состояние меняется только через методы Store.
type Store struct {
	live      Source
	simulated Source
	mode      ModeProvider
	clock     TimeProvider
	validate  *validator.Validate
	metrics   Metrics
	logger    Logger
	pageSize  int

	mu       sync.Mutex
	owner    string
	bookings []*domain.Booking
	page     int
	hasMore  bool
	total    int
	filter   domain.ListFilter
	current  *domain.Booking
	stats    *domain.BookingStats
	loading  map[Operation]bool
	errs     map[Operation]error

	// listSource источник, из которого загружена коллекция
	listSource string

	// generation растет при Reset, listSeq и detailSeq при каждом новом запросе.
	// Ответ с устаревшим номером отбрасывается.
	generation uint64
	listSeq    uint64
	detailSeq  uint64

	subscribers map[int]func(State)
	nextSubID   int
}

// Option настраивает Store
type Option func(*Store)

// WithTimeProvider подменяет часы (используется в тестах)
func WithTimeProvider(tp TimeProvider) Option {
	return func(s *Store) {
		if tp != nil {
			s.clock = tp
		}
	}
}

// WithMetrics включает метрики действий
func WithMetrics(m Metrics) Option {
	return func(s *Store) {
		if m != nil {
			s.metrics = m
		}
	}
}

// WithPageSize задает размер страницы
func WithPageSize(n int) Option {
	return func(s *Store) {
		if n > 0 && n <= domain.MaxPageSize {
			s.pageSize = n
		}
	}
}

// NewStore создает пустое хранилище
func NewStore(live, simulated Source, mode ModeProvider, logger Logger, opts ...Option) *Store {
	s := &Store{
		live:        live,
		simulated:   simulated,
		mode:        mode,
		clock:       &RealTimeProvider{},
		validate:    newValidator(),
		metrics:     nopMetrics{},
		logger:      logger,
		pageSize:    domain.DefaultPageSize,
		loading:     make(map[Operation]bool),
		errs:        make(map[Operation]error),
		subscribers: make(map[int]func(State)),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// FetchList загружает бронирования. refresh заменяет коллекцию первой страницей,
// иначе догружается следующая страница. Пока загрузка идет, повторный вызов ничего не делает.
// После переключения источника коллекция всегда заменяется первой страницей нового источника.
func (s *Store) FetchList(ctx context.Context, refresh bool) error {
	actor, err := s.actor(ctx)
	if err != nil {
		return s.fail(OpFetchList, err)
	}
	source, sourceName := s.source()

	var (
		skip   bool
		seq    uint64
		page   int
		filter domain.ListFilter
	)
	s.update(func() bool {
		// Страницы другого источника не дописываются к коллекции
		if s.page > 0 && s.listSource != sourceName {
			refresh = true
		}
		if s.loading[OpFetchList] || (!refresh && s.page > 0 && !s.hasMore) {
			skip = true
			return false
		}
		s.loading[OpFetchList] = true
		delete(s.errs, OpFetchList)
		s.listSeq++
		seq = s.listSeq
		filter = copyFilter(s.filter)
		page = 1
		if !refresh && s.page > 0 {
			page = s.page + 1
		}
		return true
	})
	if skip {
		s.logger.Info("FetchList: skipped, fetch in flight or no more pages")
		return nil
	}

	s.logger.Info("FetchList: page=%d refresh=%t source=%s", page, refresh, sourceName)
	result, err := source.List(ctx, actor, filter, page, s.pageSize)
	s.metrics.ObserveStoreAction(string(OpFetchList), sourceName, err)

	stale := false
	s.update(func() bool {
		if seq != s.listSeq {
			stale = true
			return false
		}
		s.loading[OpFetchList] = false
		if err != nil {
			s.errs[OpFetchList] = err
			return true
		}
		if page == 1 {
			s.bookings = cloneAll(result.Bookings)
		} else {
			s.appendLocked(result.Bookings)
		}
		s.page = page
		s.hasMore = result.HasMore
		s.total = result.Total
		s.listSource = sourceName
		return true
	})

	if stale {
		s.metrics.ObserveStale(string(OpFetchList))
		s.logger.Warn("FetchList: discarded stale response for page=%d", page)
		return err
	}
	if err != nil {
		s.logger.Error("FetchList: failed to fetch page=%d: %v", page, err)
		return err
	}

	s.logger.Info("FetchList: loaded %d bookings, page=%d hasMore=%t", len(result.Bookings), page, result.HasMore)
	return nil
}

// SetFilter меняет фильтр, очищает коллекцию и загружает первую страницу.
// Фильтр сохраняется для последующих обновлений.
func (s *Store) SetFilter(ctx context.Context, filter domain.ListFilter) error {
	if _, err := s.actor(ctx); err != nil {
		return s.fail(OpFetchList, err)
	}

	s.update(func() bool {
		s.filter = copyFilter(filter)
		s.bookings = nil
		s.page = 0
		s.hasMore = false
		s.total = 0
		// Загрузка по старому фильтру больше не актуальна
		s.listSeq++
		s.loading[OpFetchList] = false
		return true
	})

	s.logger.Info("SetFilter: status=%v role=%q", statusLabel(filter.Status), filter.Role)
	return s.FetchList(ctx, true)
}

// FetchOne загружает бронирование в текущую запись и обновляет его в коллекции.
// При NotFound кэш не меняется.
func (s *Store) FetchOne(ctx context.Context, id string) (*domain.Booking, error) {
	if err := validateID(id); err != nil {
		return nil, s.fail(OpFetchOne, err)
	}
	actor, err := s.actor(ctx)
	if err != nil {
		return nil, s.fail(OpFetchOne, err)
	}
	source, sourceName := s.source()

	var seq uint64
	s.update(func() bool {
		s.detailSeq++
		seq = s.detailSeq
		s.loading[OpFetchOne] = true
		delete(s.errs, OpFetchOne)
		return true
	})

	s.logger.Info("FetchOne: booking id=%s source=%s", id, sourceName)
	b, err := source.Get(ctx, actor, id)
	s.metrics.ObserveStoreAction(string(OpFetchOne), sourceName, err)

	stale := false
	s.update(func() bool {
		if seq != s.detailSeq {
			stale = true
			return false
		}
		s.loading[OpFetchOne] = false
		if err != nil {
			s.errs[OpFetchOne] = err
			return true
		}
		s.current = b.Clone()
		s.replaceLocked(b)
		return true
	})

	if stale {
		s.metrics.ObserveStale(string(OpFetchOne))
		s.logger.Warn("FetchOne: discarded stale response for booking id=%s", id)
	}
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			s.logger.Warn("FetchOne: booking id=%s not found", id)
		} else {
			s.logger.Error("FetchOne: failed to fetch booking id=%s: %v", id, err)
		}
		return nil, err
	}

	return b.Clone(), nil
}

// Create создает бронирование и добавляет его в начало коллекции
func (s *Store) Create(ctx context.Context, req domain.CreateBookingRequest) (*domain.Booking, error) {
	actor, err := s.actor(ctx)
	if err != nil {
		return nil, s.fail(OpCreate, err)
	}
	req, err = validateCreateRequest(s.validate, req, s.clock.Now())
	if err != nil {
		s.logger.Warn("Create: validation failed: %v", err)
		return nil, s.fail(OpCreate, err)
	}
	source, sourceName := s.source()

	gen, err := s.begin(OpCreate)
	if err != nil {
		return nil, err
	}

	s.logger.Info("Create: stylist=%s service=%s start=%s source=%s",
		req.StylistID, req.ServiceID, req.ScheduledStart.Format(time.RFC3339), sourceName)
	b, err := source.Create(ctx, actor, req)
	s.metrics.ObserveStoreAction(string(OpCreate), sourceName, err)

	s.end(OpCreate, gen, err, func() {
		s.removeLocked(b.ID)
		if s.filter.Matches(b, actor.ID) {
			s.bookings = append([]*domain.Booking{b.Clone()}, s.bookings...)
			s.total++
		}
		s.current = b.Clone()
	})
	if err != nil {
		s.logger.Error("Create: failed to create booking: %v", err)
		return nil, err
	}

	s.logger.Info("Create: booking id=%s created, total=%d", b.ID, b.TotalAmount)
	return b.Clone(), nil
}

// Cancel отменяет бронирование и заменяет его в кэше ответом источника.
// Статус заранее не меняется.
func (s *Store) Cancel(ctx context.Context, id, reason string) (*domain.Booking, error) {
	if err := validateID(id); err != nil {
		return nil, s.fail(OpCancel, err)
	}
	if err := validateReason(reason); err != nil {
		return nil, s.fail(OpCancel, err)
	}
	actor, err := s.actor(ctx)
	if err != nil {
		return nil, s.fail(OpCancel, err)
	}

	// Отменяемость проверяется на момент вызова
	if cached := s.find(id); cached != nil && !cached.CanBeCancelled(s.clock.Now()) {
		s.logger.Warn("Cancel: booking id=%s cannot be cancelled, status=%s", id, cached.Status)
		return nil, s.fail(OpCancel, fmt.Errorf("%w: booking %s status=%s", domain.ErrCannotCancel, id, cached.Status))
	}
	source, sourceName := s.source()

	gen, err := s.begin(OpCancel)
	if err != nil {
		return nil, err
	}

	s.logger.Info("Cancel: booking id=%s source=%s", id, sourceName)
	b, err := source.Cancel(ctx, actor, id, reason)
	s.metrics.ObserveStoreAction(string(OpCancel), sourceName, err)

	s.end(OpCancel, gen, err, func() {
		s.replaceLocked(b)
	})
	if err != nil {
		s.logger.Error("Cancel: failed to cancel booking id=%s: %v", id, err)
		return nil, err
	}

	s.logger.Info("Cancel: booking id=%s is now %s", id, b.Status)
	return b.Clone(), nil
}

// ConfirmPayment прикрепляет ссылку на расчет и заменяет бронирование в кэше
func (s *Store) ConfirmPayment(ctx context.Context, id, settlementRef string, opts domain.ConfirmPaymentOptions) (*domain.PaymentConfirmation, error) {
	if err := validateID(id); err != nil {
		return nil, s.fail(OpConfirmPayment, err)
	}
	if err := validateSettlementRef(settlementRef); err != nil {
		return nil, s.fail(OpConfirmPayment, err)
	}
	actor, err := s.actor(ctx)
	if err != nil {
		return nil, s.fail(OpConfirmPayment, err)
	}
	source, sourceName := s.source()

	gen, err := s.begin(OpConfirmPayment)
	if err != nil {
		return nil, err
	}

	s.logger.Info("ConfirmPayment: booking id=%s source=%s", id, sourceName)
	res, err := source.ConfirmPayment(ctx, actor, id, settlementRef, opts)
	if err == nil && res.Escrow != nil && res.Escrow.AmountMinor != res.Booking.TotalAmount {
		err = fmt.Errorf("%w: escrow %d, booking total %d", domain.ErrEscrowMismatch, res.Escrow.AmountMinor, res.Booking.TotalAmount)
	}
	s.metrics.ObserveStoreAction(string(OpConfirmPayment), sourceName, err)

	s.end(OpConfirmPayment, gen, err, func() {
		s.replaceLocked(res.Booking)
	})
	if err != nil {
		s.logger.Error("ConfirmPayment: failed for booking id=%s: %v", id, err)
		return nil, err
	}

	s.logger.Info("ConfirmPayment: booking id=%s is now %s", id, res.Booking.Status)
	return &domain.PaymentConfirmation{
		Booking: res.Booking.Clone(),
		Message: res.Message,
		Escrow:  res.Escrow,
	}, nil
}

// UpdateStatus запрашивает смену статуса. Переход проверяется по кэшу до вызова,
// DISPUTED клиент не инициирует.
func (s *Store) UpdateStatus(ctx context.Context, id string, status domain.Status, settlementRef *string) (*domain.Booking, error) {
	if err := validateID(id); err != nil {
		return nil, s.fail(OpUpdateStatus, err)
	}
	if !status.IsValid() {
		return nil, s.fail(OpUpdateStatus, fmt.Errorf("%w: %q", domain.ErrInvalidStatus, status))
	}
	if status == domain.StatusDisputed {
		return nil, s.fail(OpUpdateStatus, fmt.Errorf("%w: disputes are opened by the platform", domain.ErrInvalidTransition))
	}
	if settlementRef != nil {
		if err := validateSettlementRef(*settlementRef); err != nil {
			return nil, s.fail(OpUpdateStatus, err)
		}
	}
	actor, err := s.actor(ctx)
	if err != nil {
		return nil, s.fail(OpUpdateStatus, err)
	}

	if cached := s.find(id); cached != nil {
		if !domain.CanTransition(cached.Status, status) {
			s.logger.Warn("UpdateStatus: booking id=%s transition %s -> %s is not allowed", id, cached.Status, status)
			return nil, s.fail(OpUpdateStatus, fmt.Errorf("%w: %s -> %s", domain.ErrInvalidTransition, cached.Status, status))
		}
		if status == domain.StatusCancelled && !cached.CanBeCancelled(s.clock.Now()) {
			return nil, s.fail(OpUpdateStatus, fmt.Errorf("%w: booking %s has already started", domain.ErrCannotCancel, id))
		}
	}
	source, sourceName := s.source()

	gen, err := s.begin(OpUpdateStatus)
	if err != nil {
		return nil, err
	}

	s.logger.Info("UpdateStatus: booking id=%s status=%s source=%s", id, status, sourceName)
	b, err := source.UpdateStatus(ctx, actor, id, status, settlementRef)
	s.metrics.ObserveStoreAction(string(OpUpdateStatus), sourceName, err)

	s.end(OpUpdateStatus, gen, err, func() {
		s.replaceLocked(b)
	})
	if err != nil {
		s.logger.Error("UpdateStatus: failed for booking id=%s: %v", id, err)
		return nil, err
	}

	return b.Clone(), nil
}

// FetchStats обновляет статистику. Ошибка только логируется, прежнее значение сохраняется.
func (s *Store) FetchStats(ctx context.Context) {
	actor, err := s.actor(ctx)
	if err != nil {
		s.logger.Warn("FetchStats: %v", err)
		return
	}
	source, sourceName := s.source()

	var (
		skip bool
		gen  uint64
	)
	s.update(func() bool {
		if s.loading[OpFetchStats] {
			skip = true
			return false
		}
		s.loading[OpFetchStats] = true
		gen = s.generation
		return true
	})
	if skip {
		return
	}

	stats, err := source.Stats(ctx, actor)
	s.metrics.ObserveStoreAction(string(OpFetchStats), sourceName, err)

	s.update(func() bool {
		if gen != s.generation {
			return false
		}
		s.loading[OpFetchStats] = false
		if err == nil {
			c := *stats
			s.stats = &c
		}
		return true
	})

	if err != nil {
		s.logger.Warn("FetchStats: keeping last known stats: %v", err)
	}
}

// QuoteCancellation считает условия отмены закэшированного бронирования на текущий момент
func (s *Store) QuoteCancellation(ctx context.Context, id string) (*CancellationQuote, error) {
	if _, err := s.actor(ctx); err != nil {
		return nil, err
	}

	b := s.find(id)
	if b == nil {
		return nil, fmt.Errorf("%w: booking %s is not loaded", domain.ErrNotFound, id)
	}

	now := s.clock.Now()
	p := policy.EvaluateCancellation(b.ScheduledStart, now)
	refund, err := policy.SplitRefund(b.TotalAmount, p.RefundPercentage)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidBooking, err)
	}

	return &CancellationQuote{
		BookingID:   b.ID,
		Policy:      p,
		Refund:      refund,
		Cancellable: b.CanBeCancelled(now),
	}, nil
}

// ClearCurrent очищает текущую запись; незавершенная загрузка в нее не попадет
func (s *Store) ClearCurrent() {
	s.update(func() bool {
		s.current = nil
		s.detailSeq++
		s.loading[OpFetchOne] = false
		return true
	})
}

// Reset очищает хранилище (выход из аккаунта). Ответы на начатые запросы отбрасываются.
func (s *Store) Reset() {
	s.update(func() bool {
		s.resetLocked()
		s.owner = ""
		return true
	})
	s.logger.Info("Reset: store cleared")
}

// State возвращает снимок состояния
func (s *Store) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

// Subscribe подписывает fn на изменения состояния, возвращает функцию отписки
func (s *Store) Subscribe(fn func(State)) func() {
	s.mu.Lock()
	id := s.nextSubID
	s.nextSubID++
	s.subscribers[id] = fn
	s.mu.Unlock()

	return func() {
		s.mu.Lock()
		delete(s.subscribers, id)
		s.mu.Unlock()
	}
}

// actor извлекает пользователя из контекста. Если кэш заполнен для другого
// пользователя, он сначала очищается.
func (s *Store) actor(ctx context.Context) (domain.Actor, error) {
	actor, err := domain.ActorFromContext(ctx)
	if err != nil {
		return domain.Actor{}, err
	}

	switched := false
	s.update(func() bool {
		if s.owner == actor.ID {
			return false
		}
		switched = s.owner != ""
		if switched {
			s.resetLocked()
		}
		s.owner = actor.ID
		return switched
	})
	if switched {
		s.logger.Warn("Store: actor changed to %s, cache cleared", actor.ID)
	}

	return actor, nil
}

func (s *Store) resetLocked() {
	s.bookings = nil
	s.page = 0
	s.hasMore = false
	s.total = 0
	s.filter = domain.ListFilter{}
	s.listSource = ""
	s.current = nil
	s.stats = nil
	s.loading = make(map[Operation]bool)
	s.errs = make(map[Operation]error)
	s.generation++
	s.listSeq++
	s.detailSeq++
}

// source выбирает источник по текущему значению флага
func (s *Store) source() (Source, string) {
	if s.mode.Simulated() {
		return s.simulated, SourceSimulated
	}
	return s.live, SourceLive
}

// begin отмечает начало мутации и очищает прошлую ошибку операции
func (s *Store) begin(op Operation) (uint64, error) {
	var (
		gen uint64
		err error
	)
	s.update(func() bool {
		if s.loading[op] {
			err = fmt.Errorf("%w: %s", domain.ErrOperationInProgress, op)
			return false
		}
		s.loading[op] = true
		delete(s.errs, op)
		gen = s.generation
		return true
	})
	return gen, err
}

// end завершает мутацию. После Reset результат в кэш не попадает.
func (s *Store) end(op Operation, gen uint64, err error, apply func()) {
	stale := false
	s.update(func() bool {
		if gen != s.generation {
			stale = true
			return false
		}
		s.loading[op] = false
		if err != nil {
			s.errs[op] = err
			return true
		}
		apply()
		return true
	})

	if stale {
		s.metrics.ObserveStale(string(op))
		s.logger.Warn("%s: store was reset, result not cached", op)
	}
}

// fail записывает ошибку операции и возвращает ее
func (s *Store) fail(op Operation, err error) error {
	s.update(func() bool {
		s.errs[op] = err
		return true
	})
	return err
}

// update применяет fn под мьютексом и, если fn вернула true, рассылает снимок подписчикам
func (s *Store) update(fn func() bool) {
	s.mu.Lock()
	if !fn() {
		s.mu.Unlock()
		return
	}
	state := s.snapshotLocked()
	subs := make([]func(State), 0, len(s.subscribers))
	for _, sub := range s.subscribers {
		subs = append(subs, sub)
	}
	s.mu.Unlock()

	for _, sub := range subs {
		sub(state)
	}
}

func (s *Store) find(id string) *domain.Booking {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, b := range s.bookings {
		if b.ID == id {
			return b.Clone()
		}
	}
	if s.current != nil && s.current.ID == id {
		return s.current.Clone()
	}
	return nil
}

// replaceLocked заменяет запись в коллекции и в текущей записи, если она там есть
func (s *Store) replaceLocked(b *domain.Booking) {
	for i, existing := range s.bookings {
		if existing.ID == b.ID {
			s.bookings[i] = b.Clone()
		}
	}
	if s.current != nil && s.current.ID == b.ID {
		s.current = b.Clone()
	}
}

func (s *Store) removeLocked(id string) {
	kept := s.bookings[:0]
	for _, b := range s.bookings {
		if b.ID != id {
			kept = append(kept, b)
			continue
		}
		s.total--
	}
	s.bookings = kept
}

// appendLocked добавляет страницу, пропуская уже загруженные записи
func (s *Store) appendLocked(page []*domain.Booking) {
	seen := make(map[string]struct{}, len(s.bookings))
	for _, b := range s.bookings {
		seen[b.ID] = struct{}{}
	}
	for _, b := range page {
		if _, ok := seen[b.ID]; ok {
			continue
		}
		seen[b.ID] = struct{}{}
		s.bookings = append(s.bookings, b.Clone())
	}
}

func (s *Store) snapshotLocked() State {
	state := State{
		Bookings: cloneAll(s.bookings),
		Page:     s.page,
		HasMore:  s.hasMore,
		Total:    s.total,
		Filter:   copyFilter(s.filter),
		Current:  s.current.Clone(),
		Loading:  make(map[Operation]bool, len(s.loading)),
		Errors:   make(map[Operation]error, len(s.errs)),
	}
	if s.stats != nil {
		c := *s.stats
		state.Stats = &c
	}
	for op, v := range s.loading {
		if v {
			state.Loading[op] = true
		}
	}
	for op, err := range s.errs {
		state.Errors[op] = err
	}
	return state
}

func cloneAll(bookings []*domain.Booking) []*domain.Booking {
	out := make([]*domain.Booking, 0, len(bookings))
	for _, b := range bookings {
		out = append(out, b.Clone())
	}
	return out
}

func copyFilter(f domain.ListFilter) domain.ListFilter {
	if f.Status != nil {
		status := *f.Status
		f.Status = &status
	}
	return f
}

func statusLabel(status *domain.Status) string {
	if status == nil {
		return "any"
	}
	return string(*status)
}
