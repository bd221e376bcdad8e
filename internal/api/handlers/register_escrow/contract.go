package register_escrow

import (
	"github.com/m04kA/SMC-BookingLifecycle/internal/domain"
)

type EscrowRegistry interface {
	RegisterEscrow(amountMinor int64) (domain.EscrowRecord, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
