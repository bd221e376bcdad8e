package cancel_booking

import (
	"context"

	"github.com/m04kA/SMC-BookingLifecycle/internal/domain"
)

type BookingStore interface {
	Cancel(ctx context.Context, id, reason string) (*domain.Booking, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
