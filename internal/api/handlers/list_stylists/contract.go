package list_stylists

import (
	"github.com/m04kA/SMC-BookingLifecycle/internal/integrations/simulated"
)

type Catalog interface {
	Stylists() []simulated.Stylist
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
