package metrics

import (
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Outcome результат операции для меток метрик
const (
	OutcomeSuccess = "success"
	OutcomeError   = "error"
)

// Metrics коллекторы сервиса
type Metrics struct {
	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec

	GatewayRequestsTotal   *prometheus.CounterVec
	GatewayRequestDuration *prometheus.HistogramVec

	StoreActionsTotal  *prometheus.CounterVec
	StaleResponses     *prometheus.CounterVec
	SlotFallbacksTotal prometheus.Counter
}

// New создает и регистрирует метрики в глобальном реестре prometheus
func New(serviceName string) *Metrics {
	return NewWithRegisterer(serviceName, prometheus.DefaultRegisterer)
}

// NewWithRegisterer создает и регистрирует метрики в указанном реестре
func NewWithRegisterer(serviceName string, reg prometheus.Registerer) *Metrics {
	namespace := sanitize(serviceName)

	m := &Metrics{
		HTTPRequestsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "Total number of HTTP requests handled by the bridge",
		}, []string{"method", "route", "status"}),
		HTTPRequestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request duration in seconds",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route"}),
		GatewayRequestsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "gateway_requests_total",
			Help:      "Total number of calls to the remote booking API",
		}, []string{"operation", "outcome"}),
		GatewayRequestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "gateway_request_duration_seconds",
			Help:      "Remote booking API call duration in seconds",
			Buckets:   prometheus.DefBuckets,
		}, []string{"operation"}),
		StoreActionsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "store_actions_total",
			Help:      "Store actions by operation, data source and outcome",
		}, []string{"operation", "source", "outcome"}),
		StaleResponses: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "store_stale_responses_total",
			Help:      "Responses discarded because a newer request superseded them",
		}, []string{"operation"}),
		SlotFallbacksTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "slot_generator_fallbacks_total",
			Help:      "Availability requests served by the local slot generator after a remote failure",
		}),
	}

	reg.MustRegister(
		m.HTTPRequestsTotal,
		m.HTTPRequestDuration,
		m.GatewayRequestsTotal,
		m.GatewayRequestDuration,
		m.StoreActionsTotal,
		m.StaleResponses,
		m.SlotFallbacksTotal,
	)

	return m
}

// ObserveGateway фиксирует вызов удаленного API
func (m *Metrics) ObserveGateway(operation string, started time.Time, err error) {
	if m == nil {
		return
	}
	m.GatewayRequestsTotal.WithLabelValues(operation, outcome(err)).Inc()
	m.GatewayRequestDuration.WithLabelValues(operation).Observe(time.Since(started).Seconds())
}

// ObserveStoreAction фиксирует действие хранилища
func (m *Metrics) ObserveStoreAction(operation, source string, err error) {
	if m == nil {
		return
	}
	m.StoreActionsTotal.WithLabelValues(operation, source, outcome(err)).Inc()
}

// ObserveStale фиксирует отброшенный устаревший ответ
func (m *Metrics) ObserveStale(operation string) {
	if m == nil {
		return
	}
	m.StaleResponses.WithLabelValues(operation).Inc()
}

// ObserveSlotFallback фиксирует генерацию слотов локально вместо удаленного API
func (m *Metrics) ObserveSlotFallback() {
	if m == nil {
		return
	}
	m.SlotFallbacksTotal.Inc()
}

func outcome(err error) string {
	if err != nil {
		return OutcomeError
	}
	return OutcomeSuccess
}

func sanitize(name string) string {
	return strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '_':
			return r
		default:
			return '_'
		}
	}, name)
}
