package bookings

import (
	"context"
	"time"

	"github.com/m04kA/SMC-BookingLifecycle/internal/domain"
)

// Source источник данных о бронированиях: удаленный сервис или демо-данные
type Source interface {
	Create(ctx context.Context, actor domain.Actor, req domain.CreateBookingRequest) (*domain.Booking, error)
	List(ctx context.Context, actor domain.Actor, filter domain.ListFilter, page, limit int) (*domain.BookingPage, error)
	Get(ctx context.Context, actor domain.Actor, id string) (*domain.Booking, error)
	Cancel(ctx context.Context, actor domain.Actor, id, reason string) (*domain.Booking, error)
	UpdateStatus(ctx context.Context, actor domain.Actor, id string, status domain.Status, settlementRef *string) (*domain.Booking, error)
	ConfirmPayment(ctx context.Context, actor domain.Actor, id, settlementRef string, opts domain.ConfirmPaymentOptions) (*domain.PaymentConfirmation, error)
	Stats(ctx context.Context, actor domain.Actor) (*domain.BookingStats, error)
}

// ModeProvider флаг демо-режима, читается в начале каждого действия
type ModeProvider interface {
	Simulated() bool
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

// Metrics интерфейс для метрик хранилища
type Metrics interface {
	ObserveStoreAction(operation, source string, err error)
	ObserveStale(operation string)
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}

type nopMetrics struct{}

func (nopMetrics) ObserveStoreAction(string, string, error) {}
func (nopMetrics) ObserveStale(string) {}
