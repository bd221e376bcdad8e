package get_stats

import (
	"context"

	"github.com/m04kA/SMC-BookingLifecycle/internal/service/bookings"
)

type BookingStore interface {
	FetchStats(ctx context.Context)
	State() bookings.State
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
