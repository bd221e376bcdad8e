package create_booking

import (
	"context"

	"github.com/m04kA/SMC-BookingLifecycle/internal/domain"
)

type BookingStore interface {
	Create(ctx context.Context, req domain.CreateBookingRequest) (*domain.Booking, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
