package list_bookings

import (
	"context"

	"github.com/m04kA/SMC-BookingLifecycle/internal/domain"
	"github.com/m04kA/SMC-BookingLifecycle/internal/service/bookings"
)

type BookingStore interface {
	FetchList(ctx context.Context, refresh bool) error
	SetFilter(ctx context.Context, filter domain.ListFilter) error
	State() bookings.State
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
