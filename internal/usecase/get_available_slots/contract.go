package get_available_slots

import (
	"context"
	"time"

	"github.com/m04kA/SMC-BookingLifecycle/internal/domain"
)

// AvailabilitySource источник слотов мастера: удаленный сервис или демо-данные
type AvailabilitySource interface {
	Availability(ctx context.Context, actor domain.Actor, stylistID string, date time.Time) ([]domain.AvailabilitySlot, error)
}

// ModeProvider флаг демо-режима
type ModeProvider interface {
	Simulated() bool
}

// Metrics интерфейс для метрик use case
type Metrics interface {
	ObserveSlotFallback()
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}

type nopMetrics struct{}

func (nopMetrics) ObserveSlotFallback() {}
