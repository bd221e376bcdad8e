package confirm_payment

import (
	"context"

	"github.com/m04kA/SMC-BookingLifecycle/internal/domain"
)

type BookingStore interface {
	ConfirmPayment(ctx context.Context, id, settlementRef string, opts domain.ConfirmPaymentOptions) (*domain.PaymentConfirmation, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
