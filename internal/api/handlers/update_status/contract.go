package update_status

import (
	"context"

	"github.com/m04kA/SMC-BookingLifecycle/internal/domain"
)

type BookingStore interface {
	UpdateStatus(ctx context.Context, id string, status domain.Status, settlementRef *string) (*domain.Booking, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
