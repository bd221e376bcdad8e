package get_cancellation_quote

import (
	"context"

	"github.com/m04kA/SMC-BookingLifecycle/internal/domain"
	"github.com/m04kA/SMC-BookingLifecycle/internal/service/bookings"
)

type BookingStore interface {
	QuoteCancellation(ctx context.Context, id string) (*bookings.CancellationQuote, error)
	FetchOne(ctx context.Context, id string) (*domain.Booking, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
