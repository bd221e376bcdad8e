package lifecycleapi

import "time"

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// Metrics интерфейс для фиксации вызовов удаленного API
type Metrics interface {
	ObserveGateway(operation string, started time.Time, err error)
}

type nopMetrics struct{}

func (nopMetrics) ObserveGateway(string, time.Time, error) {}
