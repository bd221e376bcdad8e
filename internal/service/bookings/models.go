package bookings

import (
	"github.com/m04kA/SMC-BookingLifecycle/internal/domain"
	"github.com/m04kA/SMC-BookingLifecycle/internal/policy"
)

// Operation действие хранилища, у каждого свой флаг загрузки и своя ошибка
type Operation string

const (
	OpFetchList      Operation = "fetch_list"
	OpFetchOne       Operation = "fetch_one"
	OpCreate         Operation = "create"
	OpCancel         Operation = "cancel"
	OpConfirmPayment Operation = "confirm_payment"
	OpUpdateStatus   Operation = "update_status"
	OpFetchStats     Operation = "fetch_stats"
)

// Имена источников данных для логов и метрик
const (
	SourceLive      = "live"
	SourceSimulated = "simulated"
)

// State неизменяемый снимок хранилища.
// Page номер последней загруженной страницы, 0 пока ничего не загружено.
type State struct {
	Bookings []*domain.Booking
	Page     int
	HasMore  bool
	Total    int
	Filter   domain.ListFilter
	Current  *domain.Booking
	Stats    *domain.BookingStats
	Loading  map[Operation]bool
	Errors   map[Operation]error
}

// IsLoading возвращает true, если операция выполняется
func (s State) IsLoading(op Operation) bool {
	return s.Loading[op]
}

// Err возвращает последнюю ошибку операции
func (s State) Err(op Operation) error {
	return s.Errors[op]
}

// CancellationQuote условия отмены бронирования на текущий момент
type CancellationQuote struct {
	BookingID   string
	Policy      policy.CancellationPolicy
	Refund      policy.RefundSplit
	Cancellable bool
}
